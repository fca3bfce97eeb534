package service

import (
	"context"
	"schoolscan_backend/internal/dataset"
	"schoolscan_backend/internal/model"
	"schoolscan_backend/internal/repository"
)

type ProjectService struct {
	ProjectRepo *repository.ProjectRepository
}

func NewProjectService(projectRepo *repository.ProjectRepository) *ProjectService {
	return &ProjectService{ProjectRepo: projectRepo}
}

// List fetches the group's projects and applies the view filter in memory,
// preserving the repository ordering.
func (s *ProjectService) List(ctx context.Context, groupID uint, filter dataset.Filter) ([]model.Project, error) {
	projects, err := s.ProjectRepo.FindByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return dataset.Apply(projects, filter), nil
}

func (s *ProjectService) Get(ctx context.Context, id uint) (*model.Project, error) {
	return s.ProjectRepo.FindByID(ctx, id)
}

func (s *ProjectService) Create(ctx context.Context, project *model.Project) error {
	if project.Status == "" {
		project.Status = model.ProjectDraft
	}
	return s.ProjectRepo.Create(ctx, project)
}

func (s *ProjectService) Update(ctx context.Context, project *model.Project) error {
	return s.ProjectRepo.Update(ctx, project)
}

func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	return s.ProjectRepo.Delete(ctx, id)
}
