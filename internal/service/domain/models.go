package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/internal/reconcile"
)

// Service is a recurring billable delivery for a client, categorized by
// service type. PaymentStatus is derived from linked payments and is only
// written by the reconciler.
type Service struct {
	ID            snowflake.ID     `gorm:"primaryKey" json:"id"`
	ClientID      snowflake.ID     `gorm:"not null;index" json:"client_id"`
	ServiceTypeID snowflake.ID     `gorm:"not null;index" json:"service_type_id"`
	Description   string           `json:"description,omitempty"`
	Amount        *int64           `json:"amount,omitempty"`
	PaymentStatus reconcile.Status `gorm:"not null;default:PENDING" json:"payment_status"`
	PerformedAt   *time.Time       `json:"performed_at,omitempty"`
	CreatedAt     time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
