package subject

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateSubjectRequest struct {
	Name        string
	Description string
}

type UpdateSubjectRequest struct {
	Name        *string
	Description *string
}

type ListSubjectRequest struct {
	Name string
	Page pagination.Pagination
}

type ListSubjectResponse struct {
	pagination.PageInfo
	Items []Subject `json:"items"`
}

type Service interface {
	Create(ctx context.Context, req CreateSubjectRequest) (Subject, error)
	List(ctx context.Context, req ListSubjectRequest) (ListSubjectResponse, error)
	GetByID(ctx context.Context, id string) (Subject, error)
	Update(ctx context.Context, id string, req UpdateSubjectRequest) (Subject, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrNameRequired = errors.New("subject name is required")
	ErrInvalidID    = errors.New("invalid subject id")
	ErrNotFound     = errors.New("subject not found")
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  Repository
}

type service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  Repository
}

func New(p Params) Service {
	return &service{
		db:    p.DB,
		log:   p.Log.Named("subject.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *service) Create(ctx context.Context, req CreateSubjectRequest) (Subject, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Subject{}, ErrNameRequired
	}

	now := time.Now().UTC()
	subject := Subject{
		ID:          s.genID.Generate(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, &subject); err != nil {
		return Subject{}, err
	}
	return subject, nil
}

func (s *service) List(ctx context.Context, req ListSubjectRequest) (ListSubjectResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Page = req.Page.Normalize()

	items, total, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return ListSubjectResponse{}, err
	}

	resp := ListSubjectResponse{Items: items}
	resp.Page = req.Page.Page
	resp.PageSize = req.Page.PageSize
	resp.Total = total
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (Subject, error) {
	subject, err := s.load(ctx, id)
	if err != nil {
		return Subject{}, err
	}
	return *subject, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateSubjectRequest) (Subject, error) {
	subject, err := s.load(ctx, id)
	if err != nil {
		return Subject{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return Subject{}, ErrNameRequired
		}
		subject.Name = name
	}
	if req.Description != nil {
		subject.Description = strings.TrimSpace(*req.Description)
	}
	subject.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, subject); err != nil {
		return Subject{}, err
	}
	return *subject, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	subject, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, subject.ID)
}

func (s *service) load(ctx context.Context, id string) (*Subject, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return nil, ErrInvalidID
	}
	subject, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, ErrNotFound
	}
	return subject, nil
}
