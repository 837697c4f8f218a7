package domain

import (
	"context"
	"errors"
	"time"

	"github.com/energoledger/energoledger/internal/reconcile"
	"github.com/energoledger/energoledger/pkg/db/pagination"
)

// TargetRef is the wire form of a link target.
type TargetRef struct {
	Kind string `json:"kind" binding:"required"`
	ID   string `json:"id" binding:"required"`
}

type CreatePaymentRequest struct {
	Amount   int64
	IsRefund bool
	Status   string
	Method   string
	Comment  string
	PaidAt   *time.Time
	Targets  []TargetRef
}

type UpdatePaymentRequest struct {
	Amount   *int64
	IsRefund *bool
	Status   *string
	Method   *string
	Comment  *string
	PaidAt   *time.Time
}

type ListPaymentRequest struct {
	Status   string
	IsRefund *bool
	Page     pagination.Pagination
}

type ListPaymentResponse struct {
	pagination.PageInfo
	Items []Payment `json:"items"`
}

// PaymentDetail is a payment together with everything it is linked to.
type PaymentDetail struct {
	Payment
	Targets []reconcile.Target `json:"targets"`
}

type Service interface {
	Create(ctx context.Context, req CreatePaymentRequest) (PaymentDetail, error)
	List(ctx context.Context, req ListPaymentRequest) (ListPaymentResponse, error)
	GetByID(ctx context.Context, id string) (PaymentDetail, error)
	Update(ctx context.Context, id string, req UpdatePaymentRequest) (PaymentDetail, error)
	Delete(ctx context.Context, id string) error
	Link(ctx context.Context, id string, refs []TargetRef) (PaymentDetail, error)
	Unlink(ctx context.Context, id string, refs []TargetRef) (PaymentDetail, error)
}

var (
	ErrAmountRequired = errors.New("payment amount must be positive")
	ErrInvalidStatus  = errors.New("invalid payment status")
	ErrInvalidID      = errors.New("invalid payment id")
	ErrNotFound       = errors.New("payment not found")
	ErrInvalidTarget  = errors.New("invalid link target")
	ErrTargetUnknown  = errors.New("link target does not exist")
)
