package domain

import (
	"context"
	"errors"

	"github.com/energoledger/energoledger/pkg/db/pagination"
)

type CreateClientRequest struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	Metadata map[string]any
}

type UpdateClientRequest struct {
	Name     *string
	Email    *string
	Phone    *string
	Address  *string
	Metadata map[string]any
}

type ListClientRequest struct {
	Name  string
	Email string
	Page  pagination.Pagination
}

type ListClientResponse struct {
	pagination.PageInfo
	Items []Client `json:"items"`
}

type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (Client, error)
	List(ctx context.Context, req ListClientRequest) (ListClientResponse, error)
	GetByID(ctx context.Context, id string) (Client, error)
	Update(ctx context.Context, id string, req UpdateClientRequest) (Client, error)
	Delete(ctx context.Context, id string) error
	SetSubjects(ctx context.Context, id string, subjectIDs []string) (Client, error)
}

var (
	ErrNameRequired   = errors.New("client name is required")
	ErrInvalidID      = errors.New("invalid client id")
	ErrNotFound       = errors.New("client not found")
	ErrSubjectUnknown = errors.New("one or more subjects do not exist")
	ErrInUse          = errors.New("client has works or services and cannot be deleted")
)
