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

// peerPeriod is the window used when comparing the current peer-score mean
// against the previous period for the dashboard delta.
const peerPeriod = 30 * 24 * time.Hour

type PeerEvaluationService struct {
	EvalRepo    *repository.PeerEvaluationRepository
	ProjectRepo *repository.ProjectRepository
}

func NewPeerEvaluationService(evalRepo *repository.PeerEvaluationRepository, projectRepo *repository.ProjectRepository) *PeerEvaluationService {
	return &PeerEvaluationService{
		EvalRepo:    evalRepo,
		ProjectRepo: projectRepo,
	}
}

type EvaluationInput struct {
	SubjectID      uint   `json:"subjectId" binding:"required"`
	Organiseren    int    `json:"organiseren" binding:"min=0,max=100"`
	Meedoen        int    `json:"meedoen" binding:"min=0,max=100"`
	Zelfvertrouwen int    `json:"zelfvertrouwen" binding:"min=0,max=100"`
	Autonomie      int    `json:"autonomie" binding:"min=0,max=100"`
	Feedback       string `json:"feedback"`
}

// Submit records one evaluator's OMZA scores for a subject. Re-submitting a
// pending evaluation overwrites it; a submitted one is final.
func (s *PeerEvaluationService) Submit(ctx context.Context, projectID, evaluatorID uint, input EvaluationInput) (*model.PeerEvaluation, error) {
	if input.SubjectID == evaluatorID {
		return nil, util.ErrSelfEvaluation
	}
	for _, raw := range []int{input.Organiseren, input.Meedoen, input.Zelfvertrouwen, input.Autonomie} {
		if raw < 0 || raw > 100 {
			return nil, util.ErrRawScoreOutOfRange
		}
	}

	if _, err := s.ProjectRepo.FindByID(ctx, projectID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrProjectNotFound
		}
		return nil, err
	}

	now := time.Now()
	eval, err := s.EvalRepo.FindExisting(ctx, projectID, evaluatorID, input.SubjectID)
	if err == gorm.ErrRecordNotFound {
		eval = &model.PeerEvaluation{
			ProjectID:   projectID,
			EvaluatorID: evaluatorID,
			SubjectID:   input.SubjectID,
		}
	} else if err != nil {
		return nil, err
	} else if eval.Status == model.EvaluationSubmitted {
		return nil, util.ErrAlreadySubmitted
	}

	eval.Organiseren = input.Organiseren
	eval.Meedoen = input.Meedoen
	eval.Zelfvertrouwen = input.Zelfvertrouwen
	eval.Autonomie = input.Autonomie
	eval.Feedback = input.Feedback
	eval.Status = model.EvaluationSubmitted
	eval.SubmittedAt = &now

	if eval.ID == 0 {
		err = s.EvalRepo.Create(ctx, eval)
	} else {
		err = s.EvalRepo.Update(ctx, eval)
	}
	if err != nil {
		return nil, err
	}
	return eval, nil
}

// EvaluationRow is the display shape of one evaluation: names resolved and
// raw scores rescaled to the 0–10 scale.
type EvaluationRow struct {
	ID             uint      `json:"id"`
	EvaluatorName  string    `json:"evaluatorName"`
	SubjectName    string    `json:"subjectName"`
	Organiseren    float64   `json:"organiseren"`
	Meedoen        float64   `json:"meedoen"`
	Zelfvertrouwen float64   `json:"zelfvertrouwen"`
	Autonomie      float64   `json:"autonomie"`
	Average        float64   `json:"average"`
	Feedback       string    `json:"feedback"`
	Status         string    `json:"status"`
	Date           time.Time `json:"date"`
}

// Filter accessors: rows search on both names and the feedback text, filter
// on their (submission) date.

func (r EvaluationRow) SearchText() string     { return r.EvaluatorName + " " + r.SubjectName + " " + r.Feedback }
func (r EvaluationRow) FilterStatus() string   { return r.Status }
func (r EvaluationRow) FilterCategory() string { return "" }
func (r EvaluationRow) FilterDate() time.Time  { return r.Date }

func toRow(eval model.PeerEvaluation) EvaluationRow {
	row := EvaluationRow{
		ID:             eval.ID,
		Organiseren:    dataset.Rescale(float64(eval.Organiseren)),
		Meedoen:        dataset.Rescale(float64(eval.Meedoen)),
		Zelfvertrouwen: dataset.Rescale(float64(eval.Zelfvertrouwen)),
		Autonomie:      dataset.Rescale(float64(eval.Autonomie)),
		Average:        dataset.Rescale(eval.AverageRaw()),
		Feedback:       eval.Feedback,
		Status:         string(eval.Status),
		Date:           eval.CreatedAt,
	}
	if eval.SubmittedAt != nil {
		row.Date = *eval.SubmittedAt
	}
	if eval.Evaluator != nil {
		row.EvaluatorName = eval.Evaluator.Name
	}
	if eval.Subject != nil {
		row.SubjectName = eval.Subject.Name
	}
	return row
}

// ListForProject returns a project's evaluations as display rows, filtered in
// memory.
func (s *PeerEvaluationService) ListForProject(ctx context.Context, projectID uint, filter dataset.Filter) ([]EvaluationRow, error) {
	evals, err := s.EvalRepo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	rows := make([]EvaluationRow, len(evals))
	for i, e := range evals {
		rows[i] = toRow(e)
	}
	return dataset.Apply(rows, filter), nil
}

// ListForGroup flattens every submitted evaluation in a group into display
// rows; the export endpoints reuse this.
func (s *PeerEvaluationService) ListForGroup(ctx context.Context, groupID uint, filter dataset.Filter) ([]EvaluationRow, error) {
	evals, err := s.EvalRepo.FindSubmittedByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	rows := make([]EvaluationRow, len(evals))
	for i, e := range evals {
		rows[i] = toRow(e)
	}
	return dataset.Apply(rows, filter), nil
}

// SubjectSummary compares the current 30-day mean display score against the
// previous 30 days.
type SubjectSummary struct {
	Mean         float64 `json:"mean"`
	PreviousMean float64 `json:"previousMean"`
	Delta        string  `json:"delta"`
	Count        int     `json:"count"`
}

func (s *PeerEvaluationService) SummaryForSubject(ctx context.Context, subjectID uint, now time.Time) (*SubjectSummary, error) {
	current, err := s.EvalRepo.FindSubmittedForSubject(ctx, subjectID, now.Add(-peerPeriod), now)
	if err != nil {
		return nil, err
	}
	previous, err := s.EvalRepo.FindSubmittedForSubject(ctx, subjectID, now.Add(-2*peerPeriod), now.Add(-peerPeriod))
	if err != nil {
		return nil, err
	}

	mean := dataset.Rescale(meanRaw(current))
	prevMean := dataset.Rescale(meanRaw(previous))

	return &SubjectSummary{
		Mean:         mean,
		PreviousMean: prevMean,
		Delta:        dataset.FormatDelta(dataset.Delta(mean, prevMean)),
		Count:        len(current),
	}, nil
}

func meanRaw(evals []model.PeerEvaluation) float64 {
	values := make([]float64, len(evals))
	for i, e := range evals {
		values[i] = e.AverageRaw()
	}
	return dataset.Mean(values)
}
