package repository

import (
	"context"
	"schoolscan_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type PeerEvaluationRepository struct {
	DB *gorm.DB
}

func NewPeerEvaluationRepository(db *gorm.DB) *PeerEvaluationRepository {
	return &PeerEvaluationRepository{DB: db}
}

func (r *PeerEvaluationRepository) Create(ctx context.Context, eval *model.PeerEvaluation) error {
	return r.DB.WithContext(ctx).Create(eval).Error
}

func (r *PeerEvaluationRepository) Update(ctx context.Context, eval *model.PeerEvaluation) error {
	return r.DB.WithContext(ctx).Save(eval).Error
}

func (r *PeerEvaluationRepository) FindByID(ctx context.Context, id uint) (*model.PeerEvaluation, error) {
	var eval model.PeerEvaluation
	err := r.DB.WithContext(ctx).First(&eval, id).Error
	return &eval, err
}

func (r *PeerEvaluationRepository) FindByProject(ctx context.Context, projectID uint) ([]model.PeerEvaluation, error) {
	var evals []model.PeerEvaluation
	err := r.DB.WithContext(ctx).
		Preload("Evaluator").
		Preload("Subject").
		Where("project_id = ?", projectID).
		Order("created_at").
		Find(&evals).Error
	return evals, err
}

func (r *PeerEvaluationRepository) FindExisting(ctx context.Context, projectID, evaluatorID, subjectID uint) (*model.PeerEvaluation, error) {
	var eval model.PeerEvaluation
	err := r.DB.WithContext(ctx).
		Where("project_id = ? AND evaluator_id = ? AND subject_id = ?", projectID, evaluatorID, subjectID).
		First(&eval).Error
	return &eval, err
}

// FindSubmittedForSubject returns submitted evaluations about a student whose
// submission falls inside [from, to).
func (r *PeerEvaluationRepository) FindSubmittedForSubject(ctx context.Context, subjectID uint, from, to time.Time) ([]model.PeerEvaluation, error) {
	var evals []model.PeerEvaluation
	err := r.DB.WithContext(ctx).
		Where("subject_id = ? AND status = ? AND submitted_at >= ? AND submitted_at < ?",
			subjectID, model.EvaluationSubmitted, from, to).
		Order("submitted_at").
		Find(&evals).Error
	return evals, err
}

func (r *PeerEvaluationRepository) CountPendingForEvaluator(ctx context.Context, evaluatorID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.PeerEvaluation{}).
		Where("evaluator_id = ? AND status = ?", evaluatorID, model.EvaluationPending).
		Count(&count).Error
	return count, err
}

// FindSubmittedByGroup joins through projects so teacher views and exports can
// fetch a whole group's submitted evaluations in one query.
func (r *PeerEvaluationRepository) FindSubmittedByGroup(ctx context.Context, groupID uint) ([]model.PeerEvaluation, error) {
	var evals []model.PeerEvaluation
	err := r.DB.WithContext(ctx).
		Preload("Evaluator").
		Preload("Subject").
		Joins("JOIN projects ON projects.id = peer_evaluations.project_id").
		Where("projects.class_group_id = ? AND peer_evaluations.status = ?", groupID, model.EvaluationSubmitted).
		Order("peer_evaluations.submitted_at").
		Find(&evals).Error
	return evals, err
}
