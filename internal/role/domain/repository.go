package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, role *Role) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Role, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*Role, error)
	List(ctx context.Context, db *gorm.DB, filter ListRoleRequest) ([]Role, int64, error)
	Update(ctx context.Context, db *gorm.DB, role *Role) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	ReplacePermissions(ctx context.Context, db *gorm.DB, role *Role, permissionIDs []snowflake.ID) error
	CountUsers(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
}
