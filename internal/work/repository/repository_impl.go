package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/internal/work/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, work *domain.Work) error {
	return db.WithContext(ctx).Create(work).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Work, error) {
	var work domain.Work
	err := db.WithContext(ctx).First(&work, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &work, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListWorkRequest) ([]domain.Work, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Work{})
	if filter.ClientID != 0 {
		stmt = stmt.Where("client_id = ?", filter.ClientID)
	}
	if filter.PropertyID != 0 {
		stmt = stmt.Where("property_id = ?", filter.PropertyID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("payment_status = ?", filter.Status)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var works []domain.Work
	err := filter.Page.Apply(stmt).Order("created_at DESC").Find(&works).Error
	return works, total, err
}

// Update never touches payment_status; only the reconciler writes it.
func (r *repo) Update(ctx context.Context, db *gorm.DB, work *domain.Work) error {
	return db.WithContext(ctx).Omit("PaymentStatus").Save(work).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM work_payments WHERE work_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Work{}, "id = ?", id).Error
	})
}

func (r *repo) ClientExists(ctx context.Context, db *gorm.DB, clientID snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Table("clients").Where("id = ?", clientID).Count(&count).Error
	return count > 0, err
}

func (r *repo) PropertyExists(ctx context.Context, db *gorm.DB, propertyID snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Table("properties").Where("id = ?", propertyID).Count(&count).Error
	return count > 0, err
}
