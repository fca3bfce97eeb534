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

// Competency charts render on a fixed 1–5 domain regardless of the scores
// actually present; values are clamped before mapping.
const (
	CompetencyDomainMin = 1
	CompetencyDomainMax = 5
)

var trendChartDims = dataset.Dims{
	Width:   320,
	Height:  120,
	Padding: dataset.Padding{Top: 10, Right: 20, Bottom: 10, Left: 20},
}

type CompetencyService struct {
	CompetencyRepo *repository.CompetencyRepository
	UserRepo       *repository.UserRepository
}

func NewCompetencyService(competencyRepo *repository.CompetencyRepository, userRepo *repository.UserRepository) *CompetencyService {
	return &CompetencyService{
		CompetencyRepo: competencyRepo,
		UserRepo:       userRepo,
	}
}

type WindowView struct {
	model.CompetencyWindow
	State model.WindowState `json:"state"`
}

func (s *CompetencyService) CreateWindow(ctx context.Context, window *model.CompetencyWindow) error {
	existing, err := s.CompetencyRepo.FindWindowsByGroup(ctx, window.ClassGroupID)
	if err != nil {
		return err
	}
	for _, w := range existing {
		if w.Closed {
			continue
		}
		if window.StartDate.Before(w.EndDate) && w.StartDate.Before(window.EndDate) {
			return util.ErrWindowOverlap
		}
	}
	return s.CompetencyRepo.CreateWindow(ctx, window)
}

func (s *CompetencyService) ListWindows(ctx context.Context, groupID uint, now time.Time) ([]WindowView, error) {
	windows, err := s.CompetencyRepo.FindWindowsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	views := make([]WindowView, len(windows))
	for i, w := range windows {
		views[i] = WindowView{CompetencyWindow: w, State: w.State(now)}
	}
	return views, nil
}

// Window fetches a single scan window; the controllers check its group
// against the caller before reading or writing scores.
func (s *CompetencyService) Window(ctx context.Context, windowID uint) (*model.CompetencyWindow, error) {
	window, err := s.CompetencyRepo.FindWindowByID(ctx, windowID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrWindowNotFound
		}
		return nil, err
	}
	return window, nil
}

func (s *CompetencyService) CloseWindow(ctx context.Context, windowID uint) error {
	window, err := s.CompetencyRepo.FindWindowByID(ctx, windowID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrWindowNotFound
		}
		return err
	}
	window.Closed = true
	return s.CompetencyRepo.UpdateWindow(ctx, window)
}

type ScoreInput struct {
	Category model.CompetencyCategory `json:"category" binding:"required"`
	Score    int                      `json:"score" binding:"required"`
	Note     string                   `json:"note"`
}

// SubmitScores records observations in a window. Self-scores are only
// accepted while the window is open; teacher observations may land until the
// window is explicitly closed.
func (s *CompetencyService) SubmitScores(ctx context.Context, windowID, studentID, raterID uint, kind model.ScoreKind, inputs []ScoreInput, now time.Time) error {
	window, err := s.CompetencyRepo.FindWindowByID(ctx, windowID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrWindowNotFound
		}
		return err
	}

	state := window.State(now)
	if kind == model.ScoreSelf && state != model.WindowOpen {
		return util.ErrWindowNotOpen
	}
	if state == model.WindowClosed {
		return util.ErrWindowNotOpen
	}

	for _, in := range inputs {
		if in.Score < CompetencyDomainMin || in.Score > CompetencyDomainMax {
			return util.ErrScoreOutOfRange
		}
	}

	for _, in := range inputs {
		score := &model.CompetencyScore{
			WindowID:  windowID,
			StudentID: studentID,
			RaterID:   raterID,
			Category:  in.Category,
			Kind:      kind,
			Score:     in.Score,
			Note:      in.Note,
		}
		if err := s.CompetencyRepo.UpsertScore(ctx, score); err != nil {
			return err
		}
	}
	return nil
}

// CategoryBreakdown is one category's scores for a student, split by who
// scored them, with the overall mean.
type CategoryBreakdown struct {
	Category model.CompetencyCategory    `json:"category"`
	ByKind   map[model.ScoreKind]float64 `json:"byKind"`
	Mean     float64                     `json:"mean"`
}

func (s *CompetencyService) StudentWindowScores(ctx context.Context, windowID, studentID uint) ([]CategoryBreakdown, error) {
	scores, err := s.CompetencyRepo.FindScores(ctx, windowID, studentID)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[model.CompetencyCategory]map[model.ScoreKind][]float64)
	for _, sc := range scores {
		if byCategory[sc.Category] == nil {
			byCategory[sc.Category] = make(map[model.ScoreKind][]float64)
		}
		byCategory[sc.Category][sc.Kind] = append(byCategory[sc.Category][sc.Kind], float64(sc.Score))
	}

	breakdowns := make([]CategoryBreakdown, 0, len(model.Categories))
	for _, cat := range model.Categories {
		kinds, ok := byCategory[cat]
		if !ok {
			continue
		}
		breakdown := CategoryBreakdown{
			Category: cat,
			ByKind:   make(map[model.ScoreKind]float64, len(kinds)),
		}
		var all []float64
		for kind, values := range kinds {
			breakdown.ByKind[kind] = dataset.Mean(values)
			all = append(all, values...)
		}
		breakdown.Mean = dataset.Mean(all)
		breakdowns = append(breakdowns, breakdown)
	}
	return breakdowns, nil
}

// TrendChart is the per-window mean score series for a student, mapped onto
// chart pixels.
type TrendChart struct {
	Labels   []string        `json:"labels"`
	Values   []float64       `json:"values"`
	Points   []dataset.Point `json:"points"`
	Polyline string          `json:"polyline"`
	Dims     dataset.Dims    `json:"dims"`
}

// StudentTrend builds the competency trend across the group's windows. Values
// are clamped to the fixed 1–5 domain before coordinate mapping, as the
// mapper itself does not clamp.
func (s *CompetencyService) StudentTrend(ctx context.Context, groupID, studentID uint) (*TrendChart, error) {
	windows, err := s.CompetencyRepo.FindWindowsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	chart := &TrendChart{Dims: trendChartDims}
	for _, w := range windows {
		scores, err := s.CompetencyRepo.FindScores(ctx, w.ID, studentID)
		if err != nil {
			return nil, err
		}
		if len(scores) == 0 {
			continue
		}
		values := make([]float64, len(scores))
		for i, sc := range scores {
			values[i] = float64(sc.Score)
		}
		chart.Labels = append(chart.Labels, w.Name)
		chart.Values = append(chart.Values, dataset.Mean(values))
	}

	clamped := make([]float64, len(chart.Values))
	for i, v := range chart.Values {
		clamped[i] = dataset.Clamp(v, CompetencyDomainMin, CompetencyDomainMax)
	}
	chart.Points = dataset.MapPoints(clamped, CompetencyDomainMin, CompetencyDomainMax, chart.Dims)
	chart.Polyline = dataset.Polyline(chart.Points)
	return chart, nil
}

// CloseExpiredWindows is invoked by the background sweeper.
func (s *CompetencyService) CloseExpiredWindows(now time.Time) (int64, error) {
	return s.CompetencyRepo.CloseExpired(now)
}
