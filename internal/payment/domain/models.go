package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Payment lifecycle states. Only COMPLETED payments contribute to a
// target's derived payment status.
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

type Payment struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Amount    int64        `gorm:"not null" json:"amount"`
	IsRefund  bool         `gorm:"not null;default:false" json:"is_refund"`
	Status    string       `gorm:"not null;default:PENDING" json:"status"`
	Method    string       `json:"method,omitempty"`
	Comment   string       `json:"comment,omitempty"`
	PaidAt    *time.Time   `json:"paid_at,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// WorkPayment and ServicePayment are the link rows between a payment and
// the records it settles. One table per target kind.
type WorkPayment struct {
	WorkID    snowflake.ID `gorm:"primaryKey"`
	PaymentID snowflake.ID `gorm:"primaryKey"`
}

func (WorkPayment) TableName() string { return "work_payments" }

type ServicePayment struct {
	ServiceID snowflake.ID `gorm:"primaryKey"`
	PaymentID snowflake.ID `gorm:"primaryKey"`
}

func (ServicePayment) TableName() string { return "service_payments" }
