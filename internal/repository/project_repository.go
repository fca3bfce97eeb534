package repository

import (
	"context"
	"schoolscan_backend/internal/model"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	DB *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.DB.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	err := r.DB.WithContext(ctx).First(&project, id).Error
	return &project, err
}

// FindByGroup returns the full collection for a group ordered by start date;
// view-level filtering happens in memory on the fetched collection.
func (r *ProjectRepository) FindByGroup(ctx context.Context, groupID uint) ([]model.Project, error) {
	var projects []model.Project
	err := r.DB.WithContext(ctx).
		Where("class_group_id = ?", groupID).
		Order("start_date DESC").
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.DB.WithContext(ctx).Save(project).Error
}

func (r *ProjectRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.Project{}, id).Error
}
