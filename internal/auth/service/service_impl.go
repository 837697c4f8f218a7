package service

import (
	"context"
	"strings"

	authdomain "github.com/energoledger/energoledger/internal/auth/domain"
	"github.com/energoledger/energoledger/internal/auth/password"
	"github.com/energoledger/energoledger/internal/cache"
	"github.com/energoledger/energoledger/internal/config"
	"github.com/energoledger/energoledger/internal/identity"
	"github.com/energoledger/energoledger/internal/token"
	userdomain "github.com/energoledger/energoledger/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Cfg      config.Config
	Codec    *token.Codec
	UserRepo userdomain.Repository
	Cache    *cache.Cache `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	cfg      config.Config
	codec    *token.Codec
	userRepo userdomain.Repository
	cache    *cache.Cache
}

func New(p Params) authdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("auth.service"),
		cfg:      p.Cfg,
		codec:    p.Codec,
		userRepo: p.UserRepo,
		cache:    p.Cache,
	}
}

func (s *Service) Login(ctx context.Context, req authdomain.LoginRequest) (authdomain.LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return authdomain.LoginResult{}, authdomain.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return authdomain.LoginResult{}, err
	}
	if user == nil || !user.Active {
		return authdomain.LoginResult{}, authdomain.ErrInvalidCredentials
	}
	if !password.Verify(req.Password, user.PasswordHash) {
		return authdomain.LoginResult{}, authdomain.ErrInvalidCredentials
	}

	signed, expiresAt, err := s.codec.Issue(user.ID, user.TwoFactorEnabled)
	if err != nil {
		return authdomain.LoginResult{}, err
	}

	return authdomain.LoginResult{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      *user,
	}, nil
}

func (s *Service) Identify(ctx context.Context, rawToken string) (identity.Identity, error) {
	claims, err := s.codec.Verify(rawToken)
	if err != nil {
		return identity.Identity{}, authdomain.ErrInvalidToken
	}

	key := identity.CacheKey(claims.UserID)
	if s.cache != nil {
		var cached identity.Identity
		if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, s.db, claims.UserID)
	if err != nil {
		return identity.Identity{}, err
	}
	if user == nil || !user.Active {
		return identity.Identity{}, authdomain.ErrUserInactiveOrMissing
	}

	id := identity.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		RoleID:   user.RoleID,
		RoleName: user.Role.Name,
	}
	for _, p := range user.Role.Permissions {
		id.Permissions = append(id.Permissions, p.Pair())
	}

	if s.cache != nil {
		s.cache.SetJSON(ctx, key, id, s.cfg.IdentityCacheTTL)
	}
	return id, nil
}

func (s *Service) CurrentUser(ctx context.Context) (userdomain.User, error) {
	id, ok := identity.FromContext(ctx)
	if !ok {
		return userdomain.User{}, authdomain.ErrUnauthenticated
	}
	user, err := s.userRepo.FindByID(ctx, s.db, id.UserID)
	if err != nil {
		return userdomain.User{}, err
	}
	if user == nil {
		return userdomain.User{}, authdomain.ErrUserInactiveOrMissing
	}
	return *user, nil
}
