package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/internal/auth/password"
	"github.com/energoledger/energoledger/internal/cache"
	"github.com/energoledger/energoledger/internal/identity"
	roledomain "github.com/energoledger/energoledger/internal/role/domain"
	"github.com/energoledger/energoledger/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPasswordLen = 8

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	RoleRepo roledomain.Repository
	Cache    *cache.Cache `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	roleRepo roledomain.Repository
	cache    *cache.Cache
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("user.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		roleRepo: p.RoleRepo,
		cache:    p.Cache,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateUserRequest) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, domain.ErrEmailRequired
	}
	if len(req.Password) < minPasswordLen {
		return domain.User{}, domain.ErrWeakPassword
	}

	roleID, err := s.resolveRole(ctx, req.RoleID)
	if err != nil {
		return domain.User{}, err
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		RoleID:       roleID,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.TwoFactorEnabled != nil {
		user.TwoFactorEnabled = *req.TwoFactorEnabled
	}

	if err := s.repo.Insert(ctx, s.db, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *Service) List(ctx context.Context, req domain.ListUserRequest) (domain.ListUserResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.RoleID = strings.TrimSpace(req.RoleID)
	req.Page = req.Page.Normalize()

	items, total, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return domain.ListUserResponse{}, err
	}

	resp := domain.ListUserResponse{Items: items}
	resp.Page = req.Page.Page
	resp.PageSize = req.Page.PageSize
	resp.Total = total
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	return *user, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateUserRequest) (domain.User, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" || !strings.Contains(email, "@") {
			return domain.User{}, domain.ErrEmailRequired
		}
		user.Email = email
	}
	if req.Password != nil {
		if len(*req.Password) < minPasswordLen {
			return domain.User{}, domain.ErrWeakPassword
		}
		hash, err := password.Hash(*req.Password)
		if err != nil {
			return domain.User{}, err
		}
		user.PasswordHash = hash
	}
	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.RoleID != nil {
		roleID, err := s.resolveRole(ctx, *req.RoleID)
		if err != nil {
			return domain.User{}, err
		}
		user.RoleID = roleID
		user.Role = roledomain.Role{}
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.TwoFactorEnabled != nil {
		user.TwoFactorEnabled = *req.TwoFactorEnabled
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, user); err != nil {
		return domain.User{}, err
	}
	s.invalidate(ctx, user.ID)
	return *user, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	user, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, s.db, user.ID); err != nil {
		return err
	}
	s.invalidate(ctx, user.ID)
	return nil
}

func (s *Service) resolveRole(ctx context.Context, raw string) (snowflake.ID, error) {
	roleID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || roleID == 0 {
		return 0, domain.ErrRoleUnknown
	}
	role, err := s.roleRepo.FindByID(ctx, s.db, roleID)
	if err != nil {
		return 0, err
	}
	if role == nil {
		return 0, domain.ErrRoleUnknown
	}
	return roleID, nil
}

func (s *Service) load(ctx context.Context, id string) (*domain.User, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return nil, domain.ErrInvalidID
	}
	user, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

// invalidate drops the cached identity snapshot so role or status changes
// take effect before the cache TTL expires.
func (s *Service) invalidate(ctx context.Context, userID snowflake.ID) {
	if s.cache != nil {
		s.cache.Delete(ctx, identity.CacheKey(userID))
	}
}
