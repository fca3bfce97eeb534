package dataset_test

import (
	"testing"

	"schoolscan_backend/internal/dataset"

	"github.com/stretchr/testify/assert"
)

var dims = dataset.Dims{
	Width:   320,
	Height:  120,
	Padding: dataset.Padding{Top: 10, Right: 20, Bottom: 10, Left: 20},
}

func TestMapPointsEmpty(t *testing.T) {
	assert.Nil(t, dataset.MapPoints(nil, 1, 5, dims))
}

func TestMapPointsSingleItemAtMidpoint(t *testing.T) {
	points := dataset.MapPoints([]float64{3}, 1, 5, dims)
	assert.Len(t, points, 1)
	// Midpoint of the 280px chart area starting at x=20.
	assert.Equal(t, 160.0, points[0].X)
}

func TestMapPointsXSpansChartArea(t *testing.T) {
	points := dataset.MapPoints([]float64{1, 2, 3, 4, 5}, 1, 5, dims)
	assert.Equal(t, 20.0, points[0].X)
	assert.Equal(t, 300.0, points[len(points)-1].X)
}

func TestMapPointsYDomainEdges(t *testing.T) {
	// Chart height is 100: yMax renders at the top padding, yMin at its bottom.
	points := dataset.MapPoints([]float64{5, 1}, 1, 5, dims)
	assert.Equal(t, 10.0, points[0].Y)
	assert.Equal(t, 110.0, points[1].Y)
}

func TestMapPointsLargerValuesRenderHigher(t *testing.T) {
	points := dataset.MapPoints([]float64{2, 4}, 1, 5, dims)
	assert.Less(t, points[1].Y, points[0].Y)
}

func TestPolyline(t *testing.T) {
	line := dataset.Polyline([]dataset.Point{{X: 20, Y: 10}, {X: 300, Y: 110}})
	assert.Equal(t, "20,10 300,110", line)
}
