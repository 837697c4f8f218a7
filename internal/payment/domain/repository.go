package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/internal/reconcile"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *Payment) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Payment, error)
	List(ctx context.Context, db *gorm.DB, filter ListPaymentRequest) ([]Payment, int64, error)
	Update(ctx context.Context, db *gorm.DB, payment *Payment) error
	// Delete removes the payment and all of its link rows.
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	InsertLinks(ctx context.Context, db *gorm.DB, paymentID snowflake.ID, targets []reconcile.Target) error
	Links(ctx context.Context, db *gorm.DB, paymentID snowflake.ID) ([]reconcile.Target, error)
	TargetExists(ctx context.Context, db *gorm.DB, target reconcile.Target) (bool, error)
}
