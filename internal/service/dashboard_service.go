package service

import (
	"context"
	"encoding/json"
	"fmt"
	"schoolscan_backend/internal/config"
	"schoolscan_backend/internal/dataset"
	"schoolscan_backend/internal/model"
	"schoolscan_backend/internal/repository"
	"schoolscan_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Peer-score trend charts use the 0–10 display domain.
const (
	PeerDomainMin = 0
	PeerDomainMax = 10
)

type DashboardService struct {
	UserRepo       *repository.UserRepository
	GroupRepo      *repository.GroupRepository
	EvalRepo       *repository.PeerEvaluationRepository
	CompetencyRepo *repository.CompetencyRepository
	PlanRepo       *repository.ProjectPlanRepository

	Evaluations *PeerEvaluationService
	Competency  *CompetencyService
	Attendance  *AttendanceService
	Plans       *ProjectPlanService

	Redis *redis.Client
	Cfg   *config.Config
}

// cacheTTL reads the configured TTL on each call so config reloads take
// effect without a restart.
func (s *DashboardService) cacheTTL() time.Duration {
	ttl := time.Duration(s.Cfg.Dashboard.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return ttl
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	groupRepo *repository.GroupRepository,
	evalRepo *repository.PeerEvaluationRepository,
	competencyRepo *repository.CompetencyRepository,
	planRepo *repository.ProjectPlanRepository,
	evaluations *PeerEvaluationService,
	competency *CompetencyService,
	attendance *AttendanceService,
	plans *ProjectPlanService,
	rdb *redis.Client,
	cfg *config.Config,
) *DashboardService {
	return &DashboardService{
		UserRepo:       userRepo,
		GroupRepo:      groupRepo,
		EvalRepo:       evalRepo,
		CompetencyRepo: competencyRepo,
		PlanRepo:       planRepo,
		Evaluations:    evaluations,
		Competency:     competency,
		Attendance:     attendance,
		Plans:          plans,
		Redis:          rdb,
		Cfg:            cfg,
	}
}

// KPITile is one numeric dashboard tile with an optional delta against the
// previous period, formatted with an explicit sign.
type KPITile struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Delta string  `json:"delta,omitempty"`
}

type StudentDashboard struct {
	Tiles           []KPITile            `json:"tiles"`
	CompetencyTrend *TrendChart          `json:"competencyTrend"`
	RecentFeedback  []model.PlanFeedback `json:"recentFeedback"`
}

func (s *DashboardService) StudentDashboard(ctx context.Context, userID uint) (*StudentDashboard, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	peerSummary, err := s.Evaluations.SummaryForSubject(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	attendance, err := s.Attendance.SummaryForStudent(ctx, userID, now.Add(-peerPeriod), now)
	if err != nil {
		return nil, err
	}

	pending, err := s.EvalRepo.CountPendingForEvaluator(ctx, userID)
	if err != nil {
		return nil, err
	}

	dash := &StudentDashboard{
		Tiles: []KPITile{
			{Label: "attendanceRate", Value: attendance.Rate},
			{Label: "peerScore", Value: peerSummary.Mean, Delta: peerSummary.Delta},
			{Label: "openEvaluations", Value: float64(pending)},
		},
	}

	if user.ClassGroupID != nil {
		trend, err := s.Competency.StudentTrend(ctx, *user.ClassGroupID, userID)
		if err != nil {
			return nil, err
		}
		dash.CompetencyTrend = trend
	}

	feedback, err := s.Plans.RecentFeedback(ctx, userID, 5)
	if err != nil {
		return nil, err
	}
	dash.RecentFeedback = feedback

	return dash, nil
}

type TeacherDashboard struct {
	GroupID          uint                      `json:"groupId"`
	AttendanceRate   float64                   `json:"attendanceRate"`
	PlansAwaiting    int64                     `json:"plansAwaitingReview"`
	CategoryAverages []model.CategoryAverage   `json:"categoryAverages"`
	Distribution     []model.ScoreDistribution `json:"scoreDistribution"`
	PeerScoreMedian  float64                   `json:"peerScoreMedian"`
	PeerScoreP75     float64                   `json:"peerScoreP75"`
	PeerScoreTrend   *TrendChart               `json:"peerScoreTrend"`
	GeneratedAt      time.Time                 `json:"generatedAt"`
}

func (s *DashboardService) cacheKey(groupID uint) string {
	return fmt.Sprintf("dashboard:teacher:%d", groupID)
}

// TeacherDashboard aggregates a whole group. The result is cached briefly in
// redis; writes that change the underlying collections invalidate it.
func (s *DashboardService) TeacherDashboard(ctx context.Context, groupID uint) (*TeacherDashboard, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, s.cacheKey(groupID)).Result()
		if err == nil {
			var dash TeacherDashboard
			if json.Unmarshal([]byte(cached), &dash) == nil {
				return &dash, nil
			}
		}
	}

	dash, err := s.buildTeacherDashboard(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		payload, err := json.Marshal(dash)
		if err == nil {
			if err := s.Redis.Set(ctx, s.cacheKey(groupID), payload, s.cacheTTL()).Err(); err != nil {
				logger.Log.Warn("dashboard cache write failed", zap.Error(err))
			}
		}
	}
	return dash, nil
}

// InvalidateTeacherDashboard drops the cached aggregate after a write to the
// group's collections.
func (s *DashboardService) InvalidateTeacherDashboard(ctx context.Context, groupID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, s.cacheKey(groupID)).Err(); err != nil {
		logger.Log.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

func (s *DashboardService) buildTeacherDashboard(ctx context.Context, groupID uint) (*TeacherDashboard, error) {
	now := time.Now()

	dash := &TeacherDashboard{
		GroupID:     groupID,
		GeneratedAt: now,
	}

	attendance, err := s.Attendance.SummaryForGroup(ctx, groupID, now.Add(-peerPeriod), now)
	if err != nil {
		return nil, err
	}
	dash.AttendanceRate = attendance.Rate

	awaiting, err := s.PlanRepo.CountAwaitingReview(ctx, groupID)
	if err != nil {
		return nil, err
	}
	dash.PlansAwaiting = awaiting

	// The latest window carries the current competency picture.
	windows, err := s.CompetencyRepo.FindWindowsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(windows) > 0 {
		latest := windows[len(windows)-1]
		averages, err := s.CompetencyRepo.CategoryAverages(ctx, latest.ID)
		if err != nil {
			return nil, err
		}
		dash.CategoryAverages = averages

		distribution, err := s.CompetencyRepo.ScoreDistribution(ctx, latest.ID)
		if err != nil {
			return nil, err
		}
		dash.Distribution = distribution
	}

	evals, err := s.EvalRepo.FindSubmittedByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	displayScores := make([]float64, len(evals))
	for i, e := range evals {
		displayScores[i] = dataset.Rescale(e.AverageRaw())
	}
	dash.PeerScoreMedian = dataset.Median(displayScores)
	dash.PeerScoreP75 = dataset.Percentile(displayScores, 75)

	trend, err := s.groupPeerTrend(ctx, groupID, now)
	if err != nil {
		return nil, err
	}
	dash.PeerScoreTrend = trend

	return dash, nil
}

// groupPeerTrend buckets the group's submitted evaluations per week (last 6
// weeks) and maps mean display scores onto the fixed 0–10 chart domain.
func (s *DashboardService) groupPeerTrend(ctx context.Context, groupID uint, now time.Time) (*TrendChart, error) {
	evals, err := s.EvalRepo.FindSubmittedByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	const weeks = 6
	chart := &TrendChart{Dims: trendChartDims}
	for i := weeks - 1; i >= 0; i-- {
		weekStart := now.AddDate(0, 0, -7*(i+1))
		weekEnd := now.AddDate(0, 0, -7*i)

		var values []float64
		for _, e := range evals {
			if e.SubmittedAt == nil {
				continue
			}
			if !e.SubmittedAt.Before(weekStart) && e.SubmittedAt.Before(weekEnd) {
				values = append(values, dataset.Rescale(e.AverageRaw()))
			}
		}

		year, week := weekEnd.ISOWeek()
		chart.Labels = append(chart.Labels, fmt.Sprintf("%d-%02d", year, week))
		chart.Values = append(chart.Values, dataset.Mean(values))
	}

	clamped := make([]float64, len(chart.Values))
	for i, v := range chart.Values {
		clamped[i] = dataset.Clamp(v, PeerDomainMin, PeerDomainMax)
	}
	chart.Points = dataset.MapPoints(clamped, PeerDomainMin, PeerDomainMax, chart.Dims)
	chart.Polyline = dataset.Polyline(chart.Points)
	return chart, nil
}
