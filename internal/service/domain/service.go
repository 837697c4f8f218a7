package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/internal/reconcile"
	"github.com/energoledger/energoledger/pkg/db/pagination"
)

type CreateServiceRequest struct {
	ClientID      string
	ServiceTypeID string
	Description   string
	Amount        *int64
	PerformedAt   *time.Time
}

// AmountSet distinguishes "leave the amount alone" from "clear it to null".
type UpdateServiceRequest struct {
	ClientID      *string
	ServiceTypeID *string
	Description   *string
	Amount        *int64
	AmountSet     bool
	PerformedAt   *time.Time
}

type ListServiceRequest struct {
	ClientID      snowflake.ID
	ServiceTypeID snowflake.ID
	Status        reconcile.Status
	Page          pagination.Pagination
}

type ListServiceResponse struct {
	pagination.PageInfo
	Items []Service `json:"items"`
}

// Manager is the service-record service; the usual Service name is taken
// by the entity.
type Manager interface {
	Create(ctx context.Context, req CreateServiceRequest) (Service, error)
	List(ctx context.Context, req ListServiceRequest) (ListServiceResponse, error)
	GetByID(ctx context.Context, id string) (Service, error)
	Update(ctx context.Context, id string, req UpdateServiceRequest) (Service, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrClientUnknown      = errors.New("client does not exist")
	ErrServiceTypeUnknown = errors.New("service type does not exist")
	ErrInvalidID          = errors.New("invalid service id")
	ErrNotFound           = errors.New("service not found")
)
