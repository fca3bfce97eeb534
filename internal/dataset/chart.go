package dataset

import (
	"fmt"
	"strings"
)

// Padding is the inner margin of a chart area, in pixels.
type Padding struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Dims describes the pixel box an inline chart is rendered into.
type Dims struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding Padding `json:"padding"`
}

// Point is a mapped pixel coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MapPoints maps an ordered value sequence onto pixel coordinates. X is evenly
// distributed by index with the first item at the left edge and the last at
// the right edge; a single item sits at the horizontal midpoint. Y is a linear
// inverse map of the fixed [yMin, yMax] domain onto the chart height, so
// larger values render higher. Values outside the domain are NOT clamped here;
// callers clamp first (see Clamp).
func MapPoints(values []float64, yMin, yMax float64, d Dims) []Point {
	n := len(values)
	if n == 0 {
		return nil
	}

	chartWidth := d.Width - d.Padding.Left - d.Padding.Right
	chartHeight := d.Height - d.Padding.Top - d.Padding.Bottom
	span := yMax - yMin

	points := make([]Point, n)
	for i, v := range values {
		var x float64
		if n == 1 {
			x = d.Padding.Left + chartWidth/2
		} else {
			x = d.Padding.Left + float64(i)*chartWidth/float64(n-1)
		}

		y := d.Padding.Top + chartHeight/2
		if span != 0 {
			y = d.Padding.Top + (yMax-v)/span*chartHeight
		}
		points[i] = Point{X: x, Y: y}
	}
	return points
}

// Polyline renders points as an SVG polyline "points" attribute value.
func Polyline(points []Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("%g,%g", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}
