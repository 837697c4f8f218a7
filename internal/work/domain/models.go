package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/internal/reconcile"
)

// Work is a one-off job performed for a client, optionally tied to a
// property. PaymentStatus is derived from linked payments and is only
// written by the reconciler.
type Work struct {
	ID            snowflake.ID     `gorm:"primaryKey" json:"id"`
	ClientID      snowflake.ID     `gorm:"not null;index" json:"client_id"`
	PropertyID    *snowflake.ID    `gorm:"index" json:"property_id,omitempty"`
	Description   string           `gorm:"not null" json:"description"`
	Amount        *int64           `json:"amount,omitempty"`
	PaymentStatus reconcile.Status `gorm:"not null;default:PENDING" json:"payment_status"`
	StartedAt     *time.Time       `json:"started_at,omitempty"`
	CompletedAt   *time.Time       `json:"completed_at,omitempty"`
	CreatedAt     time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
