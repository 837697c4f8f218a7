package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/internal/subject"
	"gorm.io/datatypes"
)

type Client struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"not null;index" json:"name"`
	Email     string            `gorm:"uniqueIndex:ux_clients_email,where:email <> ''" json:"email,omitempty"`
	Phone     string            `json:"phone,omitempty"`
	Address   string            `json:"address,omitempty"`
	Subjects  []subject.Subject `gorm:"many2many:client_subjects" json:"subjects,omitempty"`
	Metadata  datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
