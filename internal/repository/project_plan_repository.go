package repository

import (
	"context"
	"schoolscan_backend/internal/model"

	"gorm.io/gorm"
)

type ProjectPlanRepository struct {
	DB *gorm.DB
}

func NewProjectPlanRepository(db *gorm.DB) *ProjectPlanRepository {
	return &ProjectPlanRepository{DB: db}
}

func (r *ProjectPlanRepository) Create(ctx context.Context, plan *model.ProjectPlan) error {
	return r.DB.WithContext(ctx).Create(plan).Error
}

func (r *ProjectPlanRepository) Update(ctx context.Context, plan *model.ProjectPlan) error {
	return r.DB.WithContext(ctx).Save(plan).Error
}

func (r *ProjectPlanRepository) FindByID(ctx context.Context, id uint) (*model.ProjectPlan, error) {
	var plan model.ProjectPlan
	err := r.DB.WithContext(ctx).
		Preload("Feedback").
		Preload("Student").
		First(&plan, id).Error
	return &plan, err
}

func (r *ProjectPlanRepository) FindByProjectAndStudent(ctx context.Context, projectID, studentID uint) (*model.ProjectPlan, error) {
	var plan model.ProjectPlan
	err := r.DB.WithContext(ctx).
		Preload("Feedback").
		Where("project_id = ? AND student_id = ?", projectID, studentID).
		Order("created_at DESC").
		First(&plan).Error
	return &plan, err
}

// FindAwaitingReview lists a group's plans still in the submitted or
// in_review state.
func (r *ProjectPlanRepository) FindAwaitingReview(ctx context.Context, groupID uint) ([]model.ProjectPlan, error) {
	var plans []model.ProjectPlan
	err := r.DB.WithContext(ctx).
		Preload("Student").
		Joins("JOIN projects ON projects.id = project_plans.project_id").
		Where("projects.class_group_id = ? AND project_plans.status IN ?",
			groupID, []model.PlanStatus{model.PlanSubmitted, model.PlanInReview}).
		Order("project_plans.created_at").
		Find(&plans).Error
	return plans, err
}

func (r *ProjectPlanRepository) CountAwaitingReview(ctx context.Context, groupID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.ProjectPlan{}).
		Joins("JOIN projects ON projects.id = project_plans.project_id").
		Where("projects.class_group_id = ? AND project_plans.status IN ?",
			groupID, []model.PlanStatus{model.PlanSubmitted, model.PlanInReview}).
		Count(&count).Error
	return count, err
}

func (r *ProjectPlanRepository) AddFeedback(ctx context.Context, feedback *model.PlanFeedback) error {
	return r.DB.WithContext(ctx).Create(feedback).Error
}

// FindRecentFeedbackForStudent returns the latest feedback items across all of
// a student's plans, newest first.
func (r *ProjectPlanRepository) FindRecentFeedbackForStudent(ctx context.Context, studentID uint, limit int) ([]model.PlanFeedback, error) {
	var items []model.PlanFeedback
	err := r.DB.WithContext(ctx).
		Joins("JOIN project_plans ON project_plans.id = plan_feedback.plan_id").
		Where("project_plans.student_id = ?", studentID).
		Order("plan_feedback.created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}
