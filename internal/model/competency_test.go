package model_test

import (
	"schoolscan_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowState(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 14, 23, 59, 59, 0, time.UTC)
	window := model.CompetencyWindow{StartDate: start, EndDate: end}

	tests := []struct {
		name string
		now  time.Time
		want model.WindowState
	}{
		{"before start", start.AddDate(0, 0, -1), model.WindowScheduled},
		{"at start", start, model.WindowOpen},
		{"mid window", start.AddDate(0, 0, 7), model.WindowOpen},
		{"after end", end.Add(time.Second), model.WindowClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, window.State(tt.now))
		})
	}
}

func TestWindowStateExplicitClose(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	window := model.CompetencyWindow{
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 14),
		Closed:    true,
	}

	// closed wins even while inside the date range
	assert.Equal(t, model.WindowClosed, window.State(start.AddDate(0, 0, 3)))
}

func TestPeerEvaluationAverageRaw(t *testing.T) {
	eval := model.PeerEvaluation{
		Organiseren:    80,
		Meedoen:        70,
		Zelfvertrouwen: 60,
		Autonomie:      90,
	}
	assert.Equal(t, 75.0, eval.AverageRaw())

	scores := eval.CategoryScores()
	assert.Equal(t, 80, scores[model.Organiseren])
	assert.Equal(t, 90, scores[model.Autonomie])
	assert.Len(t, scores, 4)
}

func TestAttendanceAttended(t *testing.T) {
	for status, want := range map[model.AttendanceStatus]bool{
		model.AttendancePresent: true,
		model.AttendanceLate:    true,
		model.AttendanceAbsent:  false,
		model.AttendanceExcused: false,
	} {
		event := model.AttendanceEvent{Status: status}
		assert.Equal(t, want, event.Attended(), "status %s", status)
	}
}
