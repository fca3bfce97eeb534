package repository

import (
	"context"
	"schoolscan_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type CompetencyRepository struct {
	DB *gorm.DB
}

func NewCompetencyRepository(db *gorm.DB) *CompetencyRepository {
	return &CompetencyRepository{DB: db}
}

func (r *CompetencyRepository) CreateWindow(ctx context.Context, window *model.CompetencyWindow) error {
	return r.DB.WithContext(ctx).Create(window).Error
}

func (r *CompetencyRepository) UpdateWindow(ctx context.Context, window *model.CompetencyWindow) error {
	return r.DB.WithContext(ctx).Save(window).Error
}

func (r *CompetencyRepository) FindWindowByID(ctx context.Context, id uint) (*model.CompetencyWindow, error) {
	var window model.CompetencyWindow
	err := r.DB.WithContext(ctx).First(&window, id).Error
	return &window, err
}

func (r *CompetencyRepository) FindWindowsByGroup(ctx context.Context, groupID uint) ([]model.CompetencyWindow, error) {
	var windows []model.CompetencyWindow
	err := r.DB.WithContext(ctx).
		Where("class_group_id = ?", groupID).
		Order("start_date").
		Find(&windows).Error
	return windows, err
}

// FindOpenWindow returns the window currently accepting scores for a group.
func (r *CompetencyRepository) FindOpenWindow(ctx context.Context, groupID uint, now time.Time) (*model.CompetencyWindow, error) {
	var window model.CompetencyWindow
	err := r.DB.WithContext(ctx).
		Where("class_group_id = ? AND closed = false AND start_date <= ? AND end_date >= ?", groupID, now, now).
		First(&window).Error
	return &window, err
}

// CloseExpired marks every unclosed window whose end date has passed. Used by
// the background sweeper; returns the number of windows closed.
func (r *CompetencyRepository) CloseExpired(now time.Time) (int64, error) {
	res := r.DB.Model(&model.CompetencyWindow{}).
		Where("closed = false AND end_date < ?", now).
		Update("closed", true)
	return res.RowsAffected, res.Error
}

// UpsertScore writes one observation, replacing an earlier score by the same
// rater for the same (window, student, category, kind).
func (r *CompetencyRepository) UpsertScore(ctx context.Context, score *model.CompetencyScore) error {
	var existing model.CompetencyScore
	err := r.DB.WithContext(ctx).
		Where("window_id = ? AND student_id = ? AND rater_id = ? AND category = ? AND kind = ?",
			score.WindowID, score.StudentID, score.RaterID, score.Category, score.Kind).
		First(&existing).Error
	if err == nil {
		existing.Score = score.Score
		existing.Note = score.Note
		return r.DB.WithContext(ctx).Save(&existing).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.DB.WithContext(ctx).Create(score).Error
}

func (r *CompetencyRepository) FindScores(ctx context.Context, windowID, studentID uint) ([]model.CompetencyScore, error) {
	var scores []model.CompetencyScore
	err := r.DB.WithContext(ctx).
		Where("window_id = ? AND student_id = ?", windowID, studentID).
		Find(&scores).Error
	return scores, err
}

func (r *CompetencyRepository) FindScoresByWindow(ctx context.Context, windowID uint) ([]model.CompetencyScore, error) {
	var scores []model.CompetencyScore
	err := r.DB.WithContext(ctx).
		Where("window_id = ?", windowID).
		Find(&scores).Error
	return scores, err
}

// CategoryAverages aggregates a window's scores per (category, kind) in SQL;
// the dashboard reshapes the rows for display.
func (r *CompetencyRepository) CategoryAverages(ctx context.Context, windowID uint) ([]model.CategoryAverage, error) {
	var rows []model.CategoryAverage
	err := r.DB.WithContext(ctx).Model(&model.CompetencyScore{}).
		Select("category, kind, AVG(score) AS average, COUNT(*) AS count").
		Where("window_id = ?", windowID).
		Group("category, kind").
		Scan(&rows).Error
	return rows, err
}

// ScoreDistribution counts scores per 1–5 value for a window.
func (r *CompetencyRepository) ScoreDistribution(ctx context.Context, windowID uint) ([]model.ScoreDistribution, error) {
	var rows []model.ScoreDistribution
	err := r.DB.WithContext(ctx).Model(&model.CompetencyScore{}).
		Select("score, COUNT(*) AS count").
		Where("window_id = ?", windowID).
		Group("score").
		Order("score").
		Scan(&rows).Error
	return rows, err
}
