package servicetype

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

type CreateServiceTypeRequest struct {
	Name        string
	Description string
}

type UpdateServiceTypeRequest struct {
	Name        *string
	Description *string
}

type ListServiceTypeRequest struct {
	Name string
	Page pagination.Pagination
}

type ListServiceTypeResponse struct {
	pagination.PageInfo
	Items []ServiceType `json:"items"`
}

type Service interface {
	Create(ctx context.Context, req CreateServiceTypeRequest) (ServiceType, error)
	List(ctx context.Context, req ListServiceTypeRequest) (ListServiceTypeResponse, error)
	GetByID(ctx context.Context, id string) (ServiceType, error)
	Update(ctx context.Context, id string, req UpdateServiceTypeRequest) (ServiceType, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrNameRequired = errors.New("service type name is required")
	ErrInvalidID    = errors.New("invalid service type id")
	ErrNotFound     = errors.New("service type not found")
	ErrInUse        = errors.New("service type is referenced by services and cannot be deleted")
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
		log:   p.Log.Named("servicetype.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *service) Create(ctx context.Context, req CreateServiceTypeRequest) (ServiceType, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ServiceType{}, ErrNameRequired
	}

	now := time.Now().UTC()
	serviceType := ServiceType{
		ID:          s.genID.Generate(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, &serviceType); err != nil {
		return ServiceType{}, err
	}
	return serviceType, nil
}

func (s *service) List(ctx context.Context, req ListServiceTypeRequest) (ListServiceTypeResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Page = req.Page.Normalize()

	items, total, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return ListServiceTypeResponse{}, err
	}

	resp := ListServiceTypeResponse{Items: items}
	resp.Page = req.Page.Page
	resp.PageSize = req.Page.PageSize
	resp.Total = total
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ServiceType, error) {
	serviceType, err := s.load(ctx, id)
	if err != nil {
		return ServiceType{}, err
	}
	return *serviceType, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateServiceTypeRequest) (ServiceType, error) {
	serviceType, err := s.load(ctx, id)
	if err != nil {
		return ServiceType{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return ServiceType{}, ErrNameRequired
		}
		serviceType.Name = name
	}
	if req.Description != nil {
		serviceType.Description = strings.TrimSpace(*req.Description)
	}
	serviceType.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, serviceType); err != nil {
		return ServiceType{}, err
	}
	return *serviceType, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	serviceType, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.repo.CountServices(ctx, s.db, serviceType.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrInUse
	}
	return s.repo.Delete(ctx, s.db, serviceType.ID)
}

func (s *service) load(ctx context.Context, id string) (*ServiceType, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return nil, ErrInvalidID
	}
	serviceType, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if serviceType == nil {
		return nil, ErrNotFound
	}
	return serviceType, nil
}
