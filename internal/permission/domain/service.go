package domain

import (
	"context"
	"errors"

	"github.com/energoledger/energoledger/pkg/db/pagination"
)

type CreatePermissionRequest struct {
	Action      string
	Resource    string
	Description string
}

type UpdatePermissionRequest struct {
	Action      *string
	Resource    *string
	Description *string
}

type ListPermissionRequest struct {
	Action   string
	Resource string
	Page     pagination.Pagination
}

type ListPermissionResponse struct {
	pagination.PageInfo
	Items []Permission `json:"items"`
}

type Service interface {
	Create(ctx context.Context, req CreatePermissionRequest) (Permission, error)
	List(ctx context.Context, req ListPermissionRequest) (ListPermissionResponse, error)
	GetByID(ctx context.Context, id string) (Permission, error)
	Update(ctx context.Context, id string, req UpdatePermissionRequest) (Permission, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrActionRequired   = errors.New("action is required")
	ErrResourceRequired = errors.New("resource is required")
	ErrInvalidID        = errors.New("invalid permission id")
	ErrNotFound         = errors.New("permission not found")
)
