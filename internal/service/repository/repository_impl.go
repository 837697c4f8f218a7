package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/internal/service/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, svc *domain.Service) error {
	return db.WithContext(ctx).Create(svc).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Service, error) {
	var svc domain.Service
	err := db.WithContext(ctx).First(&svc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &svc, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListServiceRequest) ([]domain.Service, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Service{})
	if filter.ClientID != 0 {
		stmt = stmt.Where("client_id = ?", filter.ClientID)
	}
	if filter.ServiceTypeID != 0 {
		stmt = stmt.Where("service_type_id = ?", filter.ServiceTypeID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("payment_status = ?", filter.Status)
	}

	var services []domain.Service
	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := filter.Page.Apply(stmt).Order("created_at DESC").Find(&services).Error
	return services, total, err
}

// Update never touches payment_status; only the reconciler writes it.
func (r *repo) Update(ctx context.Context, db *gorm.DB, svc *domain.Service) error {
	return db.WithContext(ctx).Omit("PaymentStatus").Save(svc).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM service_payments WHERE service_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Service{}, "id = ?", id).Error
	})
}

func (r *repo) ClientExists(ctx context.Context, db *gorm.DB, clientID snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Table("clients").Where("id = ?", clientID).Count(&count).Error
	return count > 0, err
}

func (r *repo) ServiceTypeExists(ctx context.Context, db *gorm.DB, serviceTypeID snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Table("service_types").Where("id = ?", serviceTypeID).Count(&count).Error
	return count > 0, err
}
