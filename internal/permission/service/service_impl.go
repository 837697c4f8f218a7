package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/internal/permission/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("permission.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePermissionRequest) (domain.Permission, error) {
	action := normalize(req.Action)
	if action == "" {
		return domain.Permission{}, domain.ErrActionRequired
	}
	resource := normalize(req.Resource)
	if resource == "" {
		return domain.Permission{}, domain.ErrResourceRequired
	}

	now := time.Now().UTC()
	permission := domain.Permission{
		ID:          s.genID.Generate(),
		Action:      action,
		Resource:    resource,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, &permission); err != nil {
		return domain.Permission{}, err
	}
	return permission, nil
}

func (s *Service) List(ctx context.Context, req domain.ListPermissionRequest) (domain.ListPermissionResponse, error) {
	req.Action = normalize(req.Action)
	req.Resource = normalize(req.Resource)
	req.Page = req.Page.Normalize()

	items, total, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return domain.ListPermissionResponse{}, err
	}

	resp := domain.ListPermissionResponse{Items: items}
	resp.Page = req.Page.Page
	resp.PageSize = req.Page.PageSize
	resp.Total = total
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Permission, error) {
	parsed, err := parseID(id)
	if err != nil {
		return domain.Permission{}, err
	}
	permission, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Permission{}, err
	}
	if permission == nil {
		return domain.Permission{}, domain.ErrNotFound
	}
	return *permission, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdatePermissionRequest) (domain.Permission, error) {
	parsed, err := parseID(id)
	if err != nil {
		return domain.Permission{}, err
	}
	permission, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Permission{}, err
	}
	if permission == nil {
		return domain.Permission{}, domain.ErrNotFound
	}

	if req.Action != nil {
		action := normalize(*req.Action)
		if action == "" {
			return domain.Permission{}, domain.ErrActionRequired
		}
		permission.Action = action
	}
	if req.Resource != nil {
		resource := normalize(*req.Resource)
		if resource == "" {
			return domain.Permission{}, domain.ErrResourceRequired
		}
		permission.Resource = resource
	}
	if req.Description != nil {
		permission.Description = strings.TrimSpace(*req.Description)
	}
	permission.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, permission); err != nil {
		return domain.Permission{}, err
	}
	return *permission, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return err
	}
	permission, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return err
	}
	if permission == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, parsed)
}

func normalize(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
