package repository

import (
	"context"
	"schoolscan_backend/internal/model"

	"gorm.io/gorm"
)

type GroupRepository struct {
	DB *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{DB: db}
}

func (r *GroupRepository) Create(ctx context.Context, group *model.ClassGroup) error {
	return r.DB.WithContext(ctx).Create(group).Error
}

func (r *GroupRepository) FindByID(ctx context.Context, id uint) (*model.ClassGroup, error) {
	var group model.ClassGroup
	err := r.DB.WithContext(ctx).First(&group, id).Error
	return &group, err
}

func (r *GroupRepository) FindAll(ctx context.Context) ([]model.ClassGroup, error) {
	var groups []model.ClassGroup
	err := r.DB.WithContext(ctx).Order("name").Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) FindByMentor(ctx context.Context, mentorID uint) ([]model.ClassGroup, error) {
	var groups []model.ClassGroup
	err := r.DB.WithContext(ctx).Where("mentor_id = ?", mentorID).Order("name").Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) Update(ctx context.Context, group *model.ClassGroup) error {
	return r.DB.WithContext(ctx).Save(group).Error
}
