package repository

import (
	"context"
	"schoolscan_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

// Create stores the assessment and its per-criterion scores atomically.
func (r *AssessmentRepository) Create(ctx context.Context, assessment *model.ProjectAssessment) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scores := assessment.Scores
		assessment.Scores = nil
		if err := tx.Create(assessment).Error; err != nil {
			return err
		}
		for i := range scores {
			scores[i].AssessmentID = assessment.ID
		}
		if len(scores) > 0 {
			if err := tx.Create(&scores).Error; err != nil {
				return err
			}
		}
		assessment.Scores = scores
		return nil
	})
}

func (r *AssessmentRepository) FindByID(ctx context.Context, id uint) (*model.ProjectAssessment, error) {
	var assessment model.ProjectAssessment
	err := r.DB.WithContext(ctx).
		Preload("Scores").
		First(&assessment, id).Error
	return &assessment, err
}

func (r *AssessmentRepository) FindByProject(ctx context.Context, projectID uint) ([]model.ProjectAssessment, error) {
	var assessments []model.ProjectAssessment
	err := r.DB.WithContext(ctx).
		Preload("Scores").
		Where("project_id = ?", projectID).
		Order("submitted_at").
		Find(&assessments).Error
	return assessments, err
}

func (r *AssessmentRepository) FindByStudent(ctx context.Context, studentID uint) ([]model.ProjectAssessment, error) {
	var assessments []model.ProjectAssessment
	err := r.DB.WithContext(ctx).
		Preload("Scores").
		Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&assessments).Error
	return assessments, err
}
