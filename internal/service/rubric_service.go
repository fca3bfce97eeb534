package service

import (
	"context"
	"schoolscan_backend/internal/model"
	"schoolscan_backend/internal/repository"
)

type RubricService struct {
	RubricRepo *repository.RubricRepository
}

func NewRubricService(rubricRepo *repository.RubricRepository) *RubricService {
	return &RubricService{RubricRepo: rubricRepo}
}

func (s *RubricService) List(ctx context.Context) ([]model.Rubric, error) {
	return s.RubricRepo.FindAll(ctx)
}

func (s *RubricService) Get(ctx context.Context, id uint) (*model.Rubric, error) {
	return s.RubricRepo.FindByID(ctx, id)
}

func (s *RubricService) Create(ctx context.Context, rubric *model.Rubric) error {
	return s.RubricRepo.Create(ctx, rubric)
}

func (s *RubricService) Update(ctx context.Context, rubric *model.Rubric) error {
	return s.RubricRepo.Update(ctx, rubric)
}

func (s *RubricService) Delete(ctx context.Context, id uint) error {
	return s.RubricRepo.Delete(ctx, id)
}
