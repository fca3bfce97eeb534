package service

import (
	"context"
	"schoolscan_backend/internal/dataset"
	"schoolscan_backend/internal/model"
	"schoolscan_backend/internal/repository"
	"time"
)

type AttendanceService struct {
	AttendanceRepo *repository.AttendanceRepository
}

func NewAttendanceService(attendanceRepo *repository.AttendanceRepository) *AttendanceService {
	return &AttendanceService{AttendanceRepo: attendanceRepo}
}

type AttendanceInput struct {
	StudentID uint   `json:"studentId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Block     string `json:"block" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=present late absent excused"`
	Note      string `json:"note"`
}

func (s *AttendanceService) Record(ctx context.Context, recordedBy uint, input AttendanceInput) (*model.AttendanceEvent, error) {
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, err
	}

	event := &model.AttendanceEvent{
		StudentID:  input.StudentID,
		Date:       date,
		Block:      input.Block,
		Status:     model.AttendanceStatus(input.Status),
		Note:       input.Note,
		RecordedBy: recordedBy,
	}
	if err := s.AttendanceRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// BulkRecord stores one block's worth of records for a class in a single
// transaction.
func (s *AttendanceService) BulkRecord(ctx context.Context, recordedBy uint, inputs []AttendanceInput) (int, error) {
	events := make([]model.AttendanceEvent, 0, len(inputs))
	for _, in := range inputs {
		date, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return 0, err
		}
		events = append(events, model.AttendanceEvent{
			StudentID:  in.StudentID,
			Date:       date,
			Block:      in.Block,
			Status:     model.AttendanceStatus(in.Status),
			Note:       in.Note,
			RecordedBy: recordedBy,
		})
	}
	if err := s.AttendanceRepo.BulkCreate(ctx, events); err != nil {
		return 0, err
	}
	return len(events), nil
}

// ListForStudent fetches the student's attendance collection and filters it
// in memory (status, block via category, date range).
func (s *AttendanceService) ListForStudent(ctx context.Context, studentID uint, filter dataset.Filter) ([]model.AttendanceEvent, error) {
	events, err := s.AttendanceRepo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return dataset.Apply(events, filter), nil
}

func (s *AttendanceService) ListForGroupDay(ctx context.Context, groupID uint, date time.Time) ([]model.AttendanceEvent, error) {
	return s.AttendanceRepo.FindByGroupAndDate(ctx, groupID, date)
}

// Summary is the attendance-rate KPI: attended/total within a period, where
// late still counts as attended.
type AttendanceSummary struct {
	Total    int64   `json:"total"`
	Attended int64   `json:"attended"`
	Rate     float64 `json:"rate"`
}

func summarize(counts model.AttendanceCounts) AttendanceSummary {
	summary := AttendanceSummary{Total: counts.Total, Attended: counts.Attended}
	if counts.Total > 0 {
		summary.Rate = float64(counts.Attended) / float64(counts.Total) * 100
	}
	return summary
}

func (s *AttendanceService) SummaryForStudent(ctx context.Context, studentID uint, from, to time.Time) (AttendanceSummary, error) {
	counts, err := s.AttendanceRepo.CountsForStudent(ctx, studentID, from, to)
	if err != nil {
		return AttendanceSummary{}, err
	}
	return summarize(counts), nil
}

func (s *AttendanceService) SummaryForGroup(ctx context.Context, groupID uint, from, to time.Time) (AttendanceSummary, error) {
	counts, err := s.AttendanceRepo.CountsForGroup(ctx, groupID, from, to)
	if err != nil {
		return AttendanceSummary{}, err
	}
	return summarize(counts), nil
}
