package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, permission *Permission) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Permission, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]Permission, error)
	List(ctx context.Context, db *gorm.DB, filter ListPermissionRequest) ([]Permission, int64, error)
	Update(ctx context.Context, db *gorm.DB, permission *Permission) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
