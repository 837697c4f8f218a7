package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	permissiondomain "github.com/energoledger/energoledger/internal/permission/domain"
)

type Role struct {
	ID          snowflake.ID                  `gorm:"primaryKey" json:"id"`
	Name        string                        `gorm:"not null;uniqueIndex:ux_roles_name" json:"name"`
	Description string                        `json:"description,omitempty"`
	Permissions []permissiondomain.Permission `gorm:"many2many:role_permissions" json:"permissions,omitempty"`
	CreatedAt   time.Time                     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time                     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
