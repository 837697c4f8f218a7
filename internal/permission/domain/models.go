package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/internal/identity"
)

// Permission is a fine-grained capability. Action and resource are stored
// uppercase; the wire form is the "action:resource" string.
type Permission struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Action      string       `gorm:"not null;uniqueIndex:ux_permissions_action_resource" json:"action"`
	Resource    string       `gorm:"not null;uniqueIndex:ux_permissions_action_resource" json:"resource"`
	Description string       `json:"description,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (p Permission) Pair() identity.Permission {
	return identity.Permission{Action: p.Action, Resource: p.Resource}
}
