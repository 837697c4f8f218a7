package domain

import (
	"context"
	"errors"

	"github.com/energoledger/energoledger/pkg/db/pagination"
)

type CreateUserRequest struct {
	Email            string
	Password         string
	FirstName        string
	LastName         string
	RoleID           string
	Active           *bool
	TwoFactorEnabled *bool
}

type UpdateUserRequest struct {
	Email            *string
	Password         *string
	FirstName        *string
	LastName         *string
	RoleID           *string
	Active           *bool
	TwoFactorEnabled *bool
}

type ListUserRequest struct {
	Email  string
	RoleID string
	Active *bool
	Page   pagination.Pagination
}

type ListUserResponse struct {
	pagination.PageInfo
	Items []User `json:"items"`
}

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (User, error)
	List(ctx context.Context, req ListUserRequest) (ListUserResponse, error)
	GetByID(ctx context.Context, id string) (User, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (User, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrEmailRequired = errors.New("a valid email is required")
	ErrWeakPassword  = errors.New("password must be at least 8 characters")
	ErrRoleUnknown   = errors.New("role does not exist")
	ErrInvalidID     = errors.New("invalid user id")
	ErrNotFound      = errors.New("user not found")
)
