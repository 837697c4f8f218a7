package subject

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Subject is a billable line of activity (heating, maintenance, metering)
// that clients can be attached to.
type Subject struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"not null;uniqueIndex:ux_subjects_name" json:"name"`
	Description string       `json:"description,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
