package property

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, property *Property) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Property, error)
	List(ctx context.Context, db *gorm.DB, filter ListPropertyRequest) ([]Property, int64, error)
	Update(ctx context.Context, db *gorm.DB, property *Property) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	ClientExists(ctx context.Context, db *gorm.DB, clientID snowflake.ID) (bool, error)
}

type repo struct{}

func ProvideRepository() Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, property *Property) error {
	return db.WithContext(ctx).Create(property).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Property, error) {
	var property Property
	err := db.WithContext(ctx).First(&property, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &property, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter ListPropertyRequest) ([]Property, int64, error) {
	stmt := db.WithContext(ctx).Model(&Property{})
	if filter.ClientID != 0 {
		stmt = stmt.Where("client_id = ?", filter.ClientID)
	}
	if filter.Address != "" {
		stmt = stmt.Where("address LIKE ?", "%"+filter.Address+"%")
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var properties []Property
	err := filter.Page.Apply(stmt).Order("address").Find(&properties).Error
	return properties, total, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, property *Property) error {
	return db.WithContext(ctx).Save(property).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&Property{}, "id = ?", id).Error
}

func (r *repo) ClientExists(ctx context.Context, db *gorm.DB, clientID snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Table("clients").Where("id = ?", clientID).Count(&count).Error
	return count > 0, err
}
