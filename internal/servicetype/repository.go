package servicetype

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, serviceType *ServiceType) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ServiceType, error)
	List(ctx context.Context, db *gorm.DB, filter ListServiceTypeRequest) ([]ServiceType, int64, error)
	Update(ctx context.Context, db *gorm.DB, serviceType *ServiceType) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	CountServices(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
}

type repo struct{}

func ProvideRepository() Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, serviceType *ServiceType) error {
	return db.WithContext(ctx).Create(serviceType).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ServiceType, error) {
	var serviceType ServiceType
	err := db.WithContext(ctx).First(&serviceType, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &serviceType, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter ListServiceTypeRequest) ([]ServiceType, int64, error) {
	stmt := db.WithContext(ctx).Model(&ServiceType{})
	if filter.Name != "" {
		stmt = stmt.Where("name = ?", filter.Name)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var serviceTypes []ServiceType
	err := filter.Page.Apply(stmt).Order("name").Find(&serviceTypes).Error
	return serviceTypes, total, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, serviceType *ServiceType) error {
	return db.WithContext(ctx).Save(serviceType).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&ServiceType{}, "id = ?", id).Error
}

func (r *repo) CountServices(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Table("services").Where("service_type_id = ?", id).Count(&count).Error
	return count, err
}
