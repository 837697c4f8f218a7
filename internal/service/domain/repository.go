package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, svc *Service) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Service, error)
	List(ctx context.Context, db *gorm.DB, filter ListServiceRequest) ([]Service, int64, error)
	Update(ctx context.Context, db *gorm.DB, svc *Service) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	ClientExists(ctx context.Context, db *gorm.DB, clientID snowflake.ID) (bool, error)
	ServiceTypeExists(ctx context.Context, db *gorm.DB, serviceTypeID snowflake.ID) (bool, error)
}
