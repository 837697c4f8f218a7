package property

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Property is a physical site (building, apartment, plot) owned by a client.
type Property struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	ClientID    snowflake.ID `gorm:"not null;index" json:"client_id"`
	Address     string       `gorm:"not null" json:"address"`
	Area        *float64     `json:"area,omitempty"`
	Description string       `json:"description,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
