package property

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

type CreatePropertyRequest struct {
	ClientID    string
	Address     string
	Area        *float64
	Description string
}

type UpdatePropertyRequest struct {
	ClientID    *string
	Address     *string
	Area        *float64
	Description *string
}

type ListPropertyRequest struct {
	ClientID snowflake.ID
	Address  string
	Page     pagination.Pagination
}

type ListPropertyResponse struct {
	pagination.PageInfo
	Items []Property `json:"items"`
}

type Service interface {
	Create(ctx context.Context, req CreatePropertyRequest) (Property, error)
	List(ctx context.Context, req ListPropertyRequest) (ListPropertyResponse, error)
	GetByID(ctx context.Context, id string) (Property, error)
	Update(ctx context.Context, id string, req UpdatePropertyRequest) (Property, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrAddressRequired = errors.New("property address is required")
	ErrClientUnknown   = errors.New("client does not exist")
	ErrInvalidID       = errors.New("invalid property id")
	ErrNotFound        = errors.New("property not found")
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
		log:   p.Log.Named("property.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *service) Create(ctx context.Context, req CreatePropertyRequest) (Property, error) {
	address := strings.TrimSpace(req.Address)
	if address == "" {
		return Property{}, ErrAddressRequired
	}

	clientID, err := s.resolveClient(ctx, req.ClientID)
	if err != nil {
		return Property{}, err
	}

	now := time.Now().UTC()
	property := Property{
		ID:          s.genID.Generate(),
		ClientID:    clientID,
		Address:     address,
		Area:        req.Area,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, &property); err != nil {
		return Property{}, err
	}
	return property, nil
}

func (s *service) List(ctx context.Context, req ListPropertyRequest) (ListPropertyResponse, error) {
	req.Address = strings.TrimSpace(req.Address)
	req.Page = req.Page.Normalize()

	items, total, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return ListPropertyResponse{}, err
	}

	resp := ListPropertyResponse{Items: items}
	resp.Page = req.Page.Page
	resp.PageSize = req.Page.PageSize
	resp.Total = total
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (Property, error) {
	property, err := s.load(ctx, id)
	if err != nil {
		return Property{}, err
	}
	return *property, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePropertyRequest) (Property, error) {
	property, err := s.load(ctx, id)
	if err != nil {
		return Property{}, err
	}

	if req.ClientID != nil {
		clientID, err := s.resolveClient(ctx, *req.ClientID)
		if err != nil {
			return Property{}, err
		}
		property.ClientID = clientID
	}
	if req.Address != nil {
		address := strings.TrimSpace(*req.Address)
		if address == "" {
			return Property{}, ErrAddressRequired
		}
		property.Address = address
	}
	if req.Area != nil {
		property.Area = req.Area
	}
	if req.Description != nil {
		property.Description = strings.TrimSpace(*req.Description)
	}
	property.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, property); err != nil {
		return Property{}, err
	}
	return *property, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	property, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, property.ID)
}

func (s *service) resolveClient(ctx context.Context, raw string) (snowflake.ID, error) {
	clientID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || clientID == 0 {
		return 0, ErrClientUnknown
	}
	exists, err := s.repo.ClientExists(ctx, s.db, clientID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrClientUnknown
	}
	return clientID, nil
}

func (s *service) load(ctx context.Context, id string) (*Property, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return nil, ErrInvalidID
	}
	property, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, ErrNotFound
	}
	return property, nil
}
