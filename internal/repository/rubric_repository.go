package repository

import (
	"context"
	"schoolscan_backend/internal/model"

	"gorm.io/gorm"
)

type RubricRepository struct {
	DB *gorm.DB
}

func NewRubricRepository(db *gorm.DB) *RubricRepository {
	return &RubricRepository{DB: db}
}

func (r *RubricRepository) Create(ctx context.Context, rubric *model.Rubric) error {
	return r.DB.WithContext(ctx).Create(rubric).Error
}

func (r *RubricRepository) FindByID(ctx context.Context, id uint) (*model.Rubric, error) {
	var rubric model.Rubric
	err := r.DB.WithContext(ctx).
		Preload("Criteria", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Preload("Criteria.Levels", func(db *gorm.DB) *gorm.DB { return db.Order("level") }).
		First(&rubric, id).Error
	return &rubric, err
}

func (r *RubricRepository) FindAll(ctx context.Context) ([]model.Rubric, error) {
	var rubrics []model.Rubric
	err := r.DB.WithContext(ctx).Order("name").Find(&rubrics).Error
	return rubrics, err
}

func (r *RubricRepository) Update(ctx context.Context, rubric *model.Rubric) error {
	return r.DB.WithContext(ctx).Save(rubric).Error
}

func (r *RubricRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var criteria []model.RubricCriterion
		if err := tx.Where("rubric_id = ?", id).Find(&criteria).Error; err != nil {
			return err
		}
		for _, c := range criteria {
			if err := tx.Where("criterion_id = ?", c.ID).Delete(&model.RubricLevel{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("rubric_id = ?", id).Delete(&model.RubricCriterion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Rubric{}, id).Error
	})
}
