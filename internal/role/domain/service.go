package domain

import (
	"context"
	"errors"

	"github.com/energoledger/energoledger/pkg/db/pagination"
)

type CreateRoleRequest struct {
	Name        string
	Description string
}

type UpdateRoleRequest struct {
	Name        *string
	Description *string
}

type ListRoleRequest struct {
	Name string
	Page pagination.Pagination
}

type ListRoleResponse struct {
	pagination.PageInfo
	Items []Role `json:"items"`
}

type Service interface {
	Create(ctx context.Context, req CreateRoleRequest) (Role, error)
	List(ctx context.Context, req ListRoleRequest) (ListRoleResponse, error)
	GetByID(ctx context.Context, id string) (Role, error)
	Update(ctx context.Context, id string, req UpdateRoleRequest) (Role, error)
	Delete(ctx context.Context, id string) error
	SetPermissions(ctx context.Context, id string, permissionIDs []string) (Role, error)
}

var (
	ErrNameRequired      = errors.New("role name is required")
	ErrInvalidID         = errors.New("invalid role id")
	ErrNotFound          = errors.New("role not found")
	ErrPermissionUnknown = errors.New("one or more permissions do not exist")
	ErrInUse             = errors.New("role is assigned to users and cannot be deleted")
)
