package subject

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, subject *Subject) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Subject, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]Subject, error)
	List(ctx context.Context, db *gorm.DB, filter ListSubjectRequest) ([]Subject, int64, error)
	Update(ctx context.Context, db *gorm.DB, subject *Subject) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}

type repo struct{}

func ProvideRepository() Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, subject *Subject) error {
	return db.WithContext(ctx).Create(subject).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Subject, error) {
	var subject Subject
	err := db.WithContext(ctx).First(&subject, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subject, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]Subject, error) {
	var subjects []Subject
	err := db.WithContext(ctx).Where("id IN ?", ids).Find(&subjects).Error
	return subjects, err
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter ListSubjectRequest) ([]Subject, int64, error) {
	stmt := db.WithContext(ctx).Model(&Subject{})
	if filter.Name != "" {
		stmt = stmt.Where("name = ?", filter.Name)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subjects []Subject
	err := filter.Page.Apply(stmt).Order("name").Find(&subjects).Error
	return subjects, total, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, subject *Subject) error {
	return db.WithContext(ctx).Save(subject).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM client_subjects WHERE subject_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Delete(&Subject{}, "id = ?", id).Error
	})
}
