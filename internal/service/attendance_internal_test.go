package service

import (
	"schoolscan_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	summary := summarize(model.AttendanceCounts{Total: 20, Attended: 17})
	assert.Equal(t, int64(20), summary.Total)
	assert.Equal(t, int64(17), summary.Attended)
	assert.InDelta(t, 85.0, summary.Rate, 0.001)
}

func TestSummarizeNoEvents(t *testing.T) {
	summary := summarize(model.AttendanceCounts{})
	assert.Equal(t, 0.0, summary.Rate)
}
