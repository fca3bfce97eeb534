package model_test

import (
	"schoolscan_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCriterionMaxLevel(t *testing.T) {
	criterion := model.RubricCriterion{
		Levels: []model.RubricLevel{
			{Level: 1}, {Level: 3}, {Level: 5}, {Level: 2},
		},
	}
	assert.Equal(t, 5, criterion.MaxLevel())

	empty := model.RubricCriterion{}
	assert.Equal(t, 0, empty.MaxLevel())
}

func TestAssessmentAverageLevel(t *testing.T) {
	assessment := model.ProjectAssessment{
		Scores: []model.AssessmentScore{
			{Level: 3}, {Level: 4}, {Level: 5},
		},
	}
	assert.Equal(t, 4.0, assessment.AverageLevel())

	empty := model.ProjectAssessment{}
	assert.Equal(t, 0.0, empty.AverageLevel())
}
