package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, work *Work) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Work, error)
	List(ctx context.Context, db *gorm.DB, filter ListWorkRequest) ([]Work, int64, error)
	Update(ctx context.Context, db *gorm.DB, work *Work) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	ClientExists(ctx context.Context, db *gorm.DB, clientID snowflake.ID) (bool, error)
	PropertyExists(ctx context.Context, db *gorm.DB, propertyID snowflake.ID) (bool, error)
}
