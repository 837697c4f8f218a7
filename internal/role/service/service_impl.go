package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	permissiondomain "github.com/energoledger/energoledger/internal/permission/domain"
	"github.com/energoledger/energoledger/internal/role/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB             *gorm.DB
	Log            *zap.Logger
	GenID          *snowflake.Node
	Repo           domain.Repository
	PermissionRepo permissiondomain.Repository
}

type Service struct {
	db             *gorm.DB
	log            *zap.Logger
	genID          *snowflake.Node
	repo           domain.Repository
	permissionRepo permissiondomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:             p.DB,
		log:            p.Log.Named("role.service"),
		genID:          p.GenID,
		repo:           p.Repo,
		permissionRepo: p.PermissionRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRoleRequest) (domain.Role, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Role{}, domain.ErrNameRequired
	}

	now := time.Now().UTC()
	role := domain.Role{
		ID:          s.genID.Generate(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, &role); err != nil {
		return domain.Role{}, err
	}
	return role, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRoleRequest) (domain.ListRoleResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Page = req.Page.Normalize()

	items, total, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return domain.ListRoleResponse{}, err
	}

	resp := domain.ListRoleResponse{Items: items}
	resp.Page = req.Page.Page
	resp.PageSize = req.Page.PageSize
	resp.Total = total
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Role, error) {
	role, err := s.load(ctx, id)
	if err != nil {
		return domain.Role{}, err
	}
	return *role, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRoleRequest) (domain.Role, error) {
	role, err := s.load(ctx, id)
	if err != nil {
		return domain.Role{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Role{}, domain.ErrNameRequired
		}
		role.Name = name
	}
	if req.Description != nil {
		role.Description = strings.TrimSpace(*req.Description)
	}
	role.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, role); err != nil {
		return domain.Role{}, err
	}
	return *role, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	role, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	users, err := s.repo.CountUsers(ctx, s.db, role.ID)
	if err != nil {
		return err
	}
	if users > 0 {
		return domain.ErrInUse
	}
	return s.repo.Delete(ctx, s.db, role.ID)
}

func (s *Service) SetPermissions(ctx context.Context, id string, permissionIDs []string) (domain.Role, error) {
	role, err := s.load(ctx, id)
	if err != nil {
		return domain.Role{}, err
	}

	parsed := make([]snowflake.ID, 0, len(permissionIDs))
	for _, raw := range permissionIDs {
		permissionID, err := snowflake.ParseString(strings.TrimSpace(raw))
		if err != nil || permissionID == 0 {
			return domain.Role{}, domain.ErrPermissionUnknown
		}
		parsed = append(parsed, permissionID)
	}

	found, err := s.permissionRepo.FindByIDs(ctx, s.db, parsed)
	if err != nil {
		return domain.Role{}, err
	}
	if len(found) != len(parsed) {
		return domain.Role{}, domain.ErrPermissionUnknown
	}

	if err := s.repo.ReplacePermissions(ctx, s.db, role, parsed); err != nil {
		return domain.Role{}, err
	}

	role.Permissions = found
	return *role, nil
}

func (s *Service) load(ctx context.Context, id string) (*domain.Role, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return nil, domain.ErrInvalidID
	}
	role, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	return role, nil
}
