package service

import (
	"context"
	"fmt"
	"schoolscan_backend/internal/dataset"
	"schoolscan_backend/internal/repository"
	"schoolscan_backend/internal/util"
)

// ExportService renders already-filtered collections as RFC 4180 CSV
// documents. Names and feedback routinely contain commas, so rows always go
// through the escaping writer.
type ExportService struct {
	Evaluations    *PeerEvaluationService
	Attendance     *AttendanceService
	CompetencyRepo *repository.CompetencyRepository
	UserRepo       *repository.UserRepository
}

func NewExportService(
	evaluations *PeerEvaluationService,
	attendance *AttendanceService,
	competencyRepo *repository.CompetencyRepository,
	userRepo *repository.UserRepository,
) *ExportService {
	return &ExportService{
		Evaluations:    evaluations,
		Attendance:     attendance,
		CompetencyRepo: competencyRepo,
		UserRepo:       userRepo,
	}
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// EvaluationsCSV exports a group's submitted peer evaluations, honoring the
// same filter grammar as the list endpoints.
func (s *ExportService) EvaluationsCSV(ctx context.Context, groupID uint, filter dataset.Filter) (string, error) {
	rows, err := s.Evaluations.ListForGroup(ctx, groupID, filter)
	if err != nil {
		return "", err
	}

	header := []string{"evaluator", "subject", "organiseren", "meedoen", "zelfvertrouwen", "autonomie", "average", "feedback", "date"}
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			r.EvaluatorName,
			r.SubjectName,
			formatScore(r.Organiseren),
			formatScore(r.Meedoen),
			formatScore(r.Zelfvertrouwen),
			formatScore(r.Autonomie),
			formatScore(r.Average),
			r.Feedback,
			r.Date.Format(util.DateFormat),
		}
	}
	return dataset.Document(header, records), nil
}

// AttendanceCSV exports a group's attendance events.
func (s *ExportService) AttendanceCSV(ctx context.Context, groupID uint, filter dataset.Filter) (string, error) {
	events, err := s.Attendance.AttendanceRepo.FindByGroup(ctx, groupID)
	if err != nil {
		return "", err
	}
	events = dataset.Apply(events, filter)

	header := []string{"student", "date", "block", "status", "note"}
	records := make([][]string, len(events))
	for i, e := range events {
		name := ""
		if e.Student != nil {
			name = e.Student.Name
		}
		records[i] = []string{
			name,
			e.Date.Format(util.DateFormat),
			e.Block,
			string(e.Status),
			e.Note,
		}
	}
	return dataset.Document(header, records), nil
}

// CompetencyCSV exports one window's scores with student names resolved.
func (s *ExportService) CompetencyCSV(ctx context.Context, windowID uint) (string, error) {
	scores, err := s.CompetencyRepo.FindScoresByWindow(ctx, windowID)
	if err != nil {
		return "", err
	}

	names := make(map[uint]string)
	header := []string{"student", "category", "kind", "score", "note"}
	records := make([][]string, len(scores))
	for i, sc := range scores {
		name, ok := names[sc.StudentID]
		if !ok {
			if student, err := s.UserRepo.FindByID(ctx, sc.StudentID); err == nil {
				name = student.Name
			}
			names[sc.StudentID] = name
		}
		records[i] = []string{
			name,
			string(sc.Category),
			string(sc.Kind),
			fmt.Sprintf("%d", sc.Score),
			sc.Note,
		}
	}
	return dataset.Document(header, records), nil
}
