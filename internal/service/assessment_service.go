package service

import (
	"context"
	"schoolscan_backend/internal/dataset"
	"schoolscan_backend/internal/model"
	"schoolscan_backend/internal/repository"
	"schoolscan_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type AssessmentService struct {
	AssessmentRepo *repository.AssessmentRepository
	RubricRepo     *repository.RubricRepository
}

func NewAssessmentService(assessmentRepo *repository.AssessmentRepository, rubricRepo *repository.RubricRepository) *AssessmentService {
	return &AssessmentService{
		AssessmentRepo: assessmentRepo,
		RubricRepo:     rubricRepo,
	}
}

type CriterionScoreInput struct {
	CriterionID uint `json:"criterionId" binding:"required"`
	Level       int  `json:"level" binding:"required"`
}

type AssessmentInput struct {
	StudentID    uint                  `json:"studentId" binding:"required"`
	RubricID     uint                  `json:"rubricId" binding:"required"`
	Kind         model.AssessmentKind  `json:"kind" binding:"required,oneof=self teacher external"`
	AssessorName string                `json:"assessorName"`
	Comment      string                `json:"comment"`
	Scores       []CriterionScoreInput `json:"scores" binding:"required,min=1"`
}

// Create validates every chosen level against the rubric definition before
// persisting. Levels must belong to a criterion of the chosen rubric and not
// exceed that criterion's defined maximum.
func (s *AssessmentService) Create(ctx context.Context, projectID uint, assessorID *uint, input AssessmentInput) (*model.ProjectAssessment, error) {
	rubric, err := s.RubricRepo.FindByID(ctx, input.RubricID)
	if err != nil {
		return nil, err
	}

	criteria := make(map[uint]*model.RubricCriterion, len(rubric.Criteria))
	for i := range rubric.Criteria {
		criteria[rubric.Criteria[i].ID] = &rubric.Criteria[i]
	}

	scores := make([]model.AssessmentScore, len(input.Scores))
	for i, in := range input.Scores {
		criterion, ok := criteria[in.CriterionID]
		if !ok {
			return nil, util.ErrUnknownCriterion
		}
		if in.Level < 1 || in.Level > criterion.MaxLevel() {
			return nil, util.ErrLevelOutOfRange
		}
		scores[i] = model.AssessmentScore{CriterionID: in.CriterionID, Level: in.Level}
	}

	assessment := &model.ProjectAssessment{
		ProjectID:    projectID,
		StudentID:    input.StudentID,
		RubricID:     input.RubricID,
		Kind:         input.Kind,
		AssessorID:   assessorID,
		AssessorName: input.AssessorName,
		Comment:      input.Comment,
		SubmittedAt:  time.Now(),
		Scores:       scores,
	}

	if err := s.AssessmentRepo.Create(ctx, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *AssessmentService) ListByProject(ctx context.Context, projectID uint) ([]model.ProjectAssessment, error) {
	return s.AssessmentRepo.FindByProject(ctx, projectID)
}

func (s *AssessmentService) Get(ctx context.Context, id uint) (*model.ProjectAssessment, error) {
	assessment, err := s.AssessmentRepo.FindByID(ctx, id)
	if err == gorm.ErrRecordNotFound {
		return nil, err
	}
	return assessment, err
}

// StudentOverview summarizes a student's assessments: mean and median level
// per assessment kind, so self-image can be compared against teacher and
// external scoring side by side.
type StudentOverview struct {
	ByKind map[model.AssessmentKind]KindSummary `json:"byKind"`
	Count  int                                  `json:"count"`
}

type KindSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Count  int     `json:"count"`
}

func (s *AssessmentService) OverviewForStudent(ctx context.Context, studentID uint) (*StudentOverview, error) {
	assessments, err := s.AssessmentRepo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	byKind := make(map[model.AssessmentKind][]float64)
	for _, a := range assessments {
		byKind[a.Kind] = append(byKind[a.Kind], a.AverageLevel())
	}

	overview := &StudentOverview{
		ByKind: make(map[model.AssessmentKind]KindSummary, len(byKind)),
		Count:  len(assessments),
	}
	for kind, values := range byKind {
		overview.ByKind[kind] = KindSummary{
			Mean:   dataset.Mean(values),
			Median: dataset.Median(values),
			Count:  len(values),
		}
	}
	return overview, nil
}
