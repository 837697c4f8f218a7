package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/internal/reconcile"
	"github.com/energoledger/energoledger/pkg/db/pagination"
)

type CreateWorkRequest struct {
	ClientID    string
	PropertyID  *string
	Description string
	Amount      *int64
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// UpdateWorkRequest uses pointer fields so absent and zero values can be
// told apart. AmountSet distinguishes "leave the amount alone" from
// "clear it to null".
type UpdateWorkRequest struct {
	ClientID    *string
	PropertyID  *string
	Description *string
	Amount      *int64
	AmountSet   bool
	StartedAt   *time.Time
	CompletedAt *time.Time
}

type ListWorkRequest struct {
	ClientID   snowflake.ID
	PropertyID snowflake.ID
	Status     reconcile.Status
	Page       pagination.Pagination
}

type ListWorkResponse struct {
	pagination.PageInfo
	Items []Work `json:"items"`
}

type Service interface {
	Create(ctx context.Context, req CreateWorkRequest) (Work, error)
	List(ctx context.Context, req ListWorkRequest) (ListWorkResponse, error)
	GetByID(ctx context.Context, id string) (Work, error)
	Update(ctx context.Context, id string, req UpdateWorkRequest) (Work, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrDescriptionRequired = errors.New("work description is required")
	ErrClientUnknown       = errors.New("client does not exist")
	ErrPropertyUnknown     = errors.New("property does not exist")
	ErrInvalidID           = errors.New("invalid work id")
	ErrNotFound            = errors.New("work not found")
)
