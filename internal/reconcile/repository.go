package reconcile

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// TargetState is the persisted slice of a target the recompute needs.
type TargetState struct {
	Amount *int64
	Status Status
}

type Repository interface {
	FindTarget(ctx context.Context, db *gorm.DB, target Target) (*TargetState, error)
	LinkedPayments(ctx context.Context, db *gorm.DB, target Target) ([]LinkedPayment, error)
	PaymentIDs(ctx context.Context, db *gorm.DB, target Target) ([]snowflake.ID, error)
	TargetsForPayment(ctx context.Context, db *gorm.DB, paymentID snowflake.ID) ([]Target, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, target Target, status Status) error
	DeleteLinks(ctx context.Context, db *gorm.DB, paymentID snowflake.ID, targets []Target) error
}

type repo struct{}

func ProvideRepository() Repository {
	return &repo{}
}

func (r *repo) FindTarget(ctx context.Context, db *gorm.DB, target Target) (*TargetState, error) {
	table, _, _, err := target.Kind.tables()
	if err != nil {
		return nil, err
	}

	var row struct {
		ID            snowflake.ID
		Amount        *int64
		PaymentStatus Status
	}
	if err := db.WithContext(ctx).Raw(
		`SELECT id, amount, payment_status FROM `+table+` WHERE id = ?`, target.ID,
	).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &TargetState{Amount: row.Amount, Status: row.PaymentStatus}, nil
}

func (r *repo) LinkedPayments(ctx context.Context, db *gorm.DB, target Target) ([]LinkedPayment, error) {
	_, joinTable, joinColumn, err := target.Kind.tables()
	if err != nil {
		return nil, err
	}

	var rows []LinkedPayment
	if err := db.WithContext(ctx).Raw(
		`SELECT p.amount, p.is_refund, p.status
		 FROM payments p
		 JOIN `+joinTable+` l ON l.payment_id = p.id
		 WHERE l.`+joinColumn+` = ?`, target.ID,
	).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) PaymentIDs(ctx context.Context, db *gorm.DB, target Target) ([]snowflake.ID, error) {
	_, joinTable, joinColumn, err := target.Kind.tables()
	if err != nil {
		return nil, err
	}

	var ids []snowflake.ID
	if err := db.WithContext(ctx).Raw(
		`SELECT payment_id FROM `+joinTable+` WHERE `+joinColumn+` = ?`, target.ID,
	).Scan(&ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repo) TargetsForPayment(ctx context.Context, db *gorm.DB, paymentID snowflake.ID) ([]Target, error) {
	var targets []Target
	for _, kind := range []Kind{KindWork, KindService} {
		_, joinTable, joinColumn, err := kind.tables()
		if err != nil {
			return nil, err
		}

		var ids []snowflake.ID
		if err := db.WithContext(ctx).Raw(
			`SELECT `+joinColumn+` FROM `+joinTable+` WHERE payment_id = ?`, paymentID,
		).Scan(&ids).Error; err != nil {
			return nil, err
		}
		for _, id := range ids {
			targets = append(targets, Target{Kind: kind, ID: id})
		}
	}
	return targets, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, target Target, status Status) error {
	table, _, _, err := target.Kind.tables()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Exec(
		`UPDATE `+table+` SET payment_status = ? WHERE id = ?`, status, target.ID,
	).Error
}

func (r *repo) DeleteLinks(ctx context.Context, db *gorm.DB, paymentID snowflake.ID, targets []Target) error {
	for _, target := range targets {
		_, joinTable, joinColumn, err := target.Kind.tables()
		if err != nil {
			return err
		}
		if err := db.WithContext(ctx).Exec(
			`DELETE FROM `+joinTable+` WHERE payment_id = ? AND `+joinColumn+` = ?`,
			paymentID, target.ID,
		).Error; err != nil {
			return err
		}
	}
	return nil
}
