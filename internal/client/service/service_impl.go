package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/internal/client/domain"
	"github.com/energoledger/energoledger/internal/subject"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	SubjectRepo subject.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	subjectRepo subject.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("client.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		subjectRepo: p.SubjectRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateClientRequest) (domain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Client{}, domain.ErrNameRequired
	}

	now := time.Now().UTC()
	client := domain.Client{
		ID:        s.genID.Generate(),
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		Metadata:  req.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, &client); err != nil {
		return domain.Client{}, err
	}
	return client, nil
}

func (s *Service) List(ctx context.Context, req domain.ListClientRequest) (domain.ListClientResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Page = req.Page.Normalize()

	items, total, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return domain.ListClientResponse{}, err
	}

	resp := domain.ListClientResponse{Items: items}
	resp.Page = req.Page.Page
	resp.PageSize = req.Page.PageSize
	resp.Total = total
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Client, error) {
	client, err := s.load(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}
	return *client, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateClientRequest) (domain.Client, error) {
	client, err := s.load(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Client{}, domain.ErrNameRequired
		}
		client.Name = name
	}
	if req.Email != nil {
		client.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		client.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		client.Address = strings.TrimSpace(*req.Address)
	}
	if req.Metadata != nil {
		client.Metadata = req.Metadata
	}
	client.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, client); err != nil {
		return domain.Client{}, err
	}
	return *client, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	client, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	entries, err := s.repo.CountLedgerEntries(ctx, s.db, client.ID)
	if err != nil {
		return err
	}
	if entries > 0 {
		return domain.ErrInUse
	}
	return s.repo.Delete(ctx, s.db, client.ID)
}

func (s *Service) SetSubjects(ctx context.Context, id string, subjectIDs []string) (domain.Client, error) {
	client, err := s.load(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}

	ids := make([]snowflake.ID, 0, len(subjectIDs))
	seen := make(map[snowflake.ID]struct{}, len(subjectIDs))
	for _, raw := range subjectIDs {
		parsed, err := snowflake.ParseString(strings.TrimSpace(raw))
		if err != nil || parsed == 0 {
			return domain.Client{}, domain.ErrSubjectUnknown
		}
		if _, ok := seen[parsed]; ok {
			continue
		}
		seen[parsed] = struct{}{}
		ids = append(ids, parsed)
	}

	if len(ids) > 0 {
		found, err := s.subjectRepo.FindByIDs(ctx, s.db, ids)
		if err != nil {
			return domain.Client{}, err
		}
		if len(found) != len(ids) {
			return domain.Client{}, domain.ErrSubjectUnknown
		}
	}

	if err := s.repo.ReplaceSubjects(ctx, s.db, client, ids); err != nil {
		return domain.Client{}, err
	}

	updated, err := s.repo.FindByID(ctx, s.db, client.ID)
	if err != nil {
		return domain.Client{}, err
	}
	return *updated, nil
}

func (s *Service) load(ctx context.Context, id string) (*domain.Client, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return nil, domain.ErrInvalidID
	}
	client, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return client, nil
}
