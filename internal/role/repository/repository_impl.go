package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/internal/role/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, role *domain.Role) error {
	return db.WithContext(ctx).Create(role).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Role, error) {
	var role domain.Role
	err := db.WithContext(ctx).Preload("Permissions").First(&role, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) (*domain.Role, error) {
	var role domain.Role
	err := db.WithContext(ctx).Preload("Permissions").First(&role, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListRoleRequest) ([]domain.Role, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Role{})
	if filter.Name != "" {
		stmt = stmt.Where("name = ?", filter.Name)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var roles []domain.Role
	err := filter.Page.Apply(stmt).
		Preload("Permissions").
		Order("name").
		Find(&roles).Error
	return roles, total, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, role *domain.Role) error {
	return db.WithContext(ctx).Omit("Permissions").Save(role).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM role_permissions WHERE role_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Role{}, "id = ?", id).Error
	})
}

func (r *repo) ReplacePermissions(ctx context.Context, db *gorm.DB, role *domain.Role, permissionIDs []snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM role_permissions WHERE role_id = ?`, role.ID).Error; err != nil {
			return err
		}
		for _, permissionID := range permissionIDs {
			if err := tx.Exec(
				`INSERT INTO role_permissions (role_id, permission_id) VALUES (?, ?)`,
				role.ID, permissionID,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repo) CountUsers(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Table("users").Where("role_id = ?", id).Count(&count).Error
	return count, err
}
