package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/internal/permission/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, permission *domain.Permission) error {
	return db.WithContext(ctx).Create(permission).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Permission, error) {
	var permission domain.Permission
	err := db.WithContext(ctx).First(&permission, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &permission, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]domain.Permission, error) {
	var permissions []domain.Permission
	if len(ids) == 0 {
		return permissions, nil
	}
	err := db.WithContext(ctx).Where("id IN ?", ids).Find(&permissions).Error
	return permissions, err
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListPermissionRequest) ([]domain.Permission, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Permission{})
	if filter.Action != "" {
		stmt = stmt.Where("action = ?", filter.Action)
	}
	if filter.Resource != "" {
		stmt = stmt.Where("resource = ?", filter.Resource)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var permissions []domain.Permission
	err := filter.Page.Apply(stmt).
		Order("action, resource").
		Find(&permissions).Error
	return permissions, total, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, permission *domain.Permission) error {
	return db.WithContext(ctx).Save(permission).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM role_permissions WHERE permission_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Permission{}, "id = ?", id).Error
	})
}
