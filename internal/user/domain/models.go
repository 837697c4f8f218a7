package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	roledomain "github.com/energoledger/energoledger/internal/role/domain"
)

type User struct {
	ID               snowflake.ID    `gorm:"primaryKey" json:"id"`
	Email            string          `gorm:"not null;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash     string          `gorm:"not null" json:"-"`
	FirstName        string          `json:"first_name,omitempty"`
	LastName         string          `json:"last_name,omitempty"`
	RoleID           snowflake.ID    `gorm:"not null;index" json:"role_id"`
	Role             roledomain.Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Active           bool            `gorm:"not null;default:true" json:"active"`
	TwoFactorEnabled bool            `gorm:"not null;default:false" json:"two_factor_enabled"`
	CreatedAt        time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
