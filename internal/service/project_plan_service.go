package service

import (
	"context"
	"io"
	"path/filepath"
	"schoolscan_backend/internal/model"
	"schoolscan_backend/internal/repository"
	"schoolscan_backend/internal/util"
	"strings"
	"time"

	"gorm.io/gorm"
)

type ProjectPlanService struct {
	PlanRepo *repository.ProjectPlanRepository
	Storage  *StorageService
}

func NewProjectPlanService(planRepo *repository.ProjectPlanRepository, storage *StorageService) *ProjectPlanService {
	return &ProjectPlanService{
		PlanRepo: planRepo,
		Storage:  storage,
	}
}

type PlanInput struct {
	Title   string `json:"title" binding:"required"`
	Summary string `json:"summary"`
}

// Submit creates a new plan for a project. A rejected plan can be superseded
// by a fresh submission; an approved or pending plan cannot.
func (s *ProjectPlanService) Submit(ctx context.Context, projectID, studentID uint, input PlanInput) (*model.ProjectPlan, error) {
	existing, err := s.PlanRepo.FindByProjectAndStudent(ctx, projectID, studentID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if err == nil && existing.Status != model.PlanRejected {
		return nil, util.ErrPlanExists
	}

	plan := &model.ProjectPlan{
		ProjectID: projectID,
		StudentID: studentID,
		Title:     input.Title,
		Summary:   input.Summary,
		Status:    model.PlanSubmitted,
	}
	if err := s.PlanRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// AttachFile uploads a plan document and stores its URL on the plan.
func (s *ProjectPlanService) AttachFile(ctx context.Context, planID, studentID uint, filename string, reader io.Reader, size int64, contentType string) (*model.ProjectPlan, error) {
	plan, err := s.PlanRepo.FindByID(ctx, planID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrPlanNotFound
		}
		return nil, err
	}
	if plan.StudentID != studentID {
		return nil, util.ErrPermissionDenied
	}

	ext := strings.ToLower(filepath.Ext(filename))
	allowed := false
	for _, e := range util.AllowedPlanExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, util.ErrUnsupportedFileType
	}

	if contentType == "" {
		contentType = util.MimeOctetStream
	}

	stored := "plans/" + model.GenerateUUID() + ext
	url, err := s.Storage.Upload(ctx, stored, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	plan.AttachmentURL = url
	if err := s.PlanRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Get fetches a plan by id; the review handler checks the plan's group
// against the caller before finalizing.
func (s *ProjectPlanService) Get(ctx context.Context, planID uint) (*model.ProjectPlan, error) {
	plan, err := s.PlanRepo.FindByID(ctx, planID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrPlanNotFound
	}
	return plan, err
}

func (s *ProjectPlanService) GetForStudent(ctx context.Context, projectID, studentID uint) (*model.ProjectPlan, error) {
	plan, err := s.PlanRepo.FindByProjectAndStudent(ctx, projectID, studentID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrPlanNotFound
	}
	return plan, err
}

type ReviewInput struct {
	Approve  bool   `json:"approve"`
	Feedback string `json:"feedback"`
}

// Review finalizes a plan. Finalized plans (approved or rejected) cannot be
// re-reviewed.
func (s *ProjectPlanService) Review(ctx context.Context, planID, reviewerID uint, input ReviewInput) (*model.ProjectPlan, error) {
	plan, err := s.PlanRepo.FindByID(ctx, planID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrPlanNotFound
		}
		return nil, err
	}

	if plan.Status == model.PlanApproved || plan.Status == model.PlanRejected {
		return nil, util.ErrPlanAlreadyReviewed
	}

	now := time.Now()
	if input.Approve {
		plan.Status = model.PlanApproved
	} else {
		plan.Status = model.PlanRejected
	}
	plan.ReviewedBy = &reviewerID
	plan.ReviewedAt = &now

	if input.Feedback != "" {
		feedback := &model.PlanFeedback{
			PlanID:   plan.ID,
			AuthorID: reviewerID,
			Message:  input.Feedback,
		}
		if err := s.PlanRepo.AddFeedback(ctx, feedback); err != nil {
			return nil, err
		}
	}

	if err := s.PlanRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *ProjectPlanService) AwaitingReview(ctx context.Context, groupID uint) ([]model.ProjectPlan, error) {
	return s.PlanRepo.FindAwaitingReview(ctx, groupID)
}

func (s *ProjectPlanService) RecentFeedback(ctx context.Context, studentID uint, limit int) ([]model.PlanFeedback, error) {
	return s.PlanRepo.FindRecentFeedbackForStudent(ctx, studentID, limit)
}
