package domain

import (
	"context"
	"errors"
	"time"

	"github.com/energoledger/energoledger/internal/identity"
	userdomain "github.com/energoledger/energoledger/internal/user/domain"
)

type LoginRequest struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      userdomain.User `json:"user"`
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResult, error)
	// Identify verifies a bearer token and resolves the caller's identity,
	// including role and permission set.
	Identify(ctx context.Context, rawToken string) (identity.Identity, error)
	CurrentUser(ctx context.Context) (userdomain.User, error)
}

var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrUnauthenticated       = errors.New("authentication required")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrUserInactiveOrMissing = errors.New("user is inactive or no longer exists")
)
