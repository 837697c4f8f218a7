package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/internal/payment/domain"
	"github.com/energoledger/energoledger/internal/reconcile"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, payment *domain.Payment) error {
	return db.WithContext(ctx).Create(payment).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Payment, error) {
	var payment domain.Payment
	err := db.WithContext(ctx).First(&payment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListPaymentRequest) ([]domain.Payment, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Payment{})
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.IsRefund != nil {
		stmt = stmt.Where("is_refund = ?", *filter.IsRefund)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []domain.Payment
	err := filter.Page.Apply(stmt).Order("created_at DESC").Find(&payments).Error
	return payments, total, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, payment *domain.Payment) error {
	return db.WithContext(ctx).Save(payment).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM work_payments WHERE payment_id = ?`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM service_payments WHERE payment_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Payment{}, "id = ?", id).Error
	})
}

func (r *repo) InsertLinks(ctx context.Context, db *gorm.DB, paymentID snowflake.ID, targets []reconcile.Target) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, target := range targets {
			switch target.Kind {
			case reconcile.KindWork:
				link := domain.WorkPayment{WorkID: target.ID, PaymentID: paymentID}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			case reconcile.KindService:
				link := domain.ServicePayment{ServiceID: target.ID, PaymentID: paymentID}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			default:
				return domain.ErrInvalidTarget
			}
		}
		return nil
	})
}

func (r *repo) Links(ctx context.Context, db *gorm.DB, paymentID snowflake.ID) ([]reconcile.Target, error) {
	var workIDs []snowflake.ID
	err := db.WithContext(ctx).
		Table("work_payments").
		Where("payment_id = ?", paymentID).
		Pluck("work_id", &workIDs).Error
	if err != nil {
		return nil, err
	}

	var serviceIDs []snowflake.ID
	err = db.WithContext(ctx).
		Table("service_payments").
		Where("payment_id = ?", paymentID).
		Pluck("service_id", &serviceIDs).Error
	if err != nil {
		return nil, err
	}

	targets := make([]reconcile.Target, 0, len(workIDs)+len(serviceIDs))
	for _, id := range workIDs {
		targets = append(targets, reconcile.WorkTarget(id))
	}
	for _, id := range serviceIDs {
		targets = append(targets, reconcile.ServiceTarget(id))
	}
	return targets, nil
}

func (r *repo) TargetExists(ctx context.Context, db *gorm.DB, target reconcile.Target) (bool, error) {
	var table string
	switch target.Kind {
	case reconcile.KindWork:
		table = "works"
	case reconcile.KindService:
		table = "services"
	default:
		return false, domain.ErrInvalidTarget
	}

	var count int64
	err := db.WithContext(ctx).Table(table).Where("id = ?", target.ID).Count(&count).Error
	return count > 0, err
}
