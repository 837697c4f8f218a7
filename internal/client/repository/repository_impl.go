package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/internal/client/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, client *domain.Client) error {
	return db.WithContext(ctx).Omit("Subjects").Create(client).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Client, error) {
	var client domain.Client
	err := db.WithContext(ctx).Preload("Subjects").First(&client, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListClientRequest) ([]domain.Client, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Client{})
	if filter.Name != "" {
		stmt = stmt.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Email != "" {
		stmt = stmt.Where("email = ?", filter.Email)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []domain.Client
	err := filter.Page.Apply(stmt).
		Preload("Subjects").
		Order("name").
		Find(&clients).Error
	return clients, total, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, client *domain.Client) error {
	return db.WithContext(ctx).Omit("Subjects").Save(client).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM client_subjects WHERE client_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Client{}, "id = ?", id).Error
	})
}

func (r *repo) ReplaceSubjects(ctx context.Context, db *gorm.DB, client *domain.Client, subjectIDs []snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM client_subjects WHERE client_id = ?`, client.ID).Error; err != nil {
			return err
		}
		for _, subjectID := range subjectIDs {
			if err := tx.Exec(
				`INSERT INTO client_subjects (client_id, subject_id) VALUES (?, ?)`,
				client.ID, subjectID,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repo) CountLedgerEntries(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	var works int64
	if err := db.WithContext(ctx).Table("works").Where("client_id = ?", id).Count(&works).Error; err != nil {
		return 0, err
	}
	var services int64
	if err := db.WithContext(ctx).Table("services").Where("client_id = ?", id).Count(&services).Error; err != nil {
		return 0, err
	}
	return works + services, nil
}
