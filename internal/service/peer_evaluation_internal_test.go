package service

import (
	"schoolscan_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToRowRescalesScores(t *testing.T) {
	eval := model.PeerEvaluation{
		Organiseren:    73,
		Meedoen:        100,
		Zelfvertrouwen: 0,
		Autonomie:      55,
		Status:         model.EvaluationSubmitted,
	}

	row := toRow(eval)

	assert.Equal(t, 7.3, row.Organiseren)
	assert.Equal(t, 10.0, row.Meedoen)
	assert.Equal(t, 0.0, row.Zelfvertrouwen)
	assert.Equal(t, 5.5, row.Autonomie)
	assert.Equal(t, 5.7, row.Average) // mean 57 rescaled
	assert.Equal(t, "submitted", row.Status)
}

func TestToRowPrefersSubmissionDate(t *testing.T) {
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	submitted := time.Date(2026, 2, 3, 15, 30, 0, 0, time.UTC)

	eval := model.PeerEvaluation{SubmittedAt: &submitted}
	eval.CreatedAt = created

	assert.Equal(t, submitted, toRow(eval).Date)

	pending := model.PeerEvaluation{}
	pending.CreatedAt = created
	assert.Equal(t, created, toRow(pending).Date)
}

func TestToRowCarriesNames(t *testing.T) {
	eval := model.PeerEvaluation{
		Evaluator: &model.User{Name: "Jan de Boer"},
		Subject:   &model.User{Name: "Fatima el Idrissi"},
	}
	row := toRow(eval)
	assert.Equal(t, "Jan de Boer", row.EvaluatorName)
	assert.Equal(t, "Fatima el Idrissi", row.SubjectName)
}

func TestMeanRaw(t *testing.T) {
	evals := []model.PeerEvaluation{
		{Organiseren: 80, Meedoen: 80, Zelfvertrouwen: 80, Autonomie: 80},
		{Organiseren: 60, Meedoen: 60, Zelfvertrouwen: 60, Autonomie: 60},
	}
	assert.Equal(t, 70.0, meanRaw(evals))
	assert.Equal(t, 0.0, meanRaw(nil))
}
