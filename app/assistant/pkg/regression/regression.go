// Package regression fits a straight trend line through yearly observations.
package regression

import (
	"math"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/dataset"
)

// MinPoints smallest series a model can be fitted to
const MinPoints = 3

// Model y = Slope*year + Intercept
type Model struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// Fit ordinary least squares over (year, value). ok is false when there are
// fewer than MinPoints points or every year is the same.
func Fit(points []dataset.Point) (Model, bool) {
	n := float64(len(points))
	if len(points) < MinPoints {
		return Model{}, false
	}

	var sumX, sumY, sumXY, sumX2 float64
	for _, p := range points {
		x := float64(p.Year)
		sumX += x
		sumY += p.Value
		sumXY += x * p.Value
		sumX2 += x * x
	}

	den := n*sumX2 - sumX*sumX
	if den == 0 {
		return Model{}, false
	}

	slope := (n*sumXY - sumX*sumY) / den
	return Model{
		Slope:     slope,
		Intercept: (sumY - slope*sumX) / n,
	}, true
}

// Predict rounded to the nearest integer, halves away from zero
func (m Model) Predict(year int) int {
	return int(math.Round(m.Raw(year)))
}

// Raw unrounded estimate
func (m Model) Raw(year int) float64 {
	return m.Slope*float64(year) + m.Intercept
}
