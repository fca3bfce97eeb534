package dataset_test

import (
	"testing"

	"schoolscan_backend/internal/dataset"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, dataset.Mean(nil))
	assert.Equal(t, 7.5, dataset.Mean([]float64{7.5}))
	assert.Equal(t, 3.0, dataset.Mean([]float64{1, 3, 5}))
	// Order invariance.
	assert.Equal(t, dataset.Mean([]float64{5, 1, 3}), dataset.Mean([]float64{1, 3, 5}))
}

func TestMedian(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"odd length", []float64{9, 1, 5}, 5},
		{"even length averages central pair", []float64{4, 1, 2, 3}, 2.5},
		{"single", []float64{8}, 8},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, dataset.Median(tc.values))
		})
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	dataset.Median(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestPercentile(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	assert.Equal(t, 0.0, dataset.Percentile(nil, 50))
	assert.Equal(t, 1.0, dataset.Percentile(values, 0))
	assert.Equal(t, 5.0, dataset.Percentile(values, 100))
	assert.Equal(t, 3.0, dataset.Percentile(values, 50))
	// Linear interpolation between order statistics.
	assert.InDelta(t, 1.4, dataset.Percentile(values, 10), 1e-9)
	assert.InDelta(t, 4.6, dataset.Percentile(values, 90), 1e-9)
}

func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "+0.4", dataset.FormatDelta(0.4))
	assert.Equal(t, "+0.0", dataset.FormatDelta(0))
	assert.Equal(t, "-1.2", dataset.FormatDelta(-1.2))
}

func TestRescale(t *testing.T) {
	// Raw peer scores are 0–100, display scale is 0–10 with one decimal.
	assert.Equal(t, 7.3, dataset.Rescale(73))
	assert.Equal(t, 0.0, dataset.Rescale(0))
	assert.Equal(t, 10.0, dataset.Rescale(100))
	assert.Equal(t, 7.3, dataset.Rescale(73.4))
	assert.Equal(t, 7.4, dataset.Rescale(73.6))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, dataset.Clamp(0.2, 1, 5))
	assert.Equal(t, 5.0, dataset.Clamp(7, 1, 5))
	assert.Equal(t, 3.0, dataset.Clamp(3, 1, 5))
}
