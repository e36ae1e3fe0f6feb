package regression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/dataset"
)

func TestFit_Line(t *testing.T) {
	m, ok := Fit([]dataset.Point{{Year: 2560, Value: 100}, {Year: 2561, Value: 110}, {Year: 2562, Value: 120}})
	require.True(t, ok)

	assert.InDelta(t, 10, m.Slope, 1e-6)
	assert.InDelta(t, -25500, m.Intercept, 1e-3)
	assert.Equal(t, 130, m.Predict(2563))
}

func TestFit_TooFewPoints(t *testing.T) {
	for _, pts := range [][]dataset.Point{
		nil,
		{{Year: 2560, Value: 1}},
		{{Year: 2560, Value: 1}, {Year: 2561, Value: 2}},
	} {
		_, ok := Fit(pts)
		assert.False(t, ok, "Fit(%v)", pts)
	}
}

func TestFit_SameYear(t *testing.T) {
	_, ok := Fit([]dataset.Point{{Year: 2565, Value: 1}, {Year: 2565, Value: 2}, {Year: 2565, Value: 3}})
	assert.False(t, ok)
}

func TestFit_Deterministic(t *testing.T) {
	reg := dataset.NewDefaultRegistry(dataset.DefaultTables())
	for _, d := range reg.All() {
		a, okA := Fit(d.Points())
		b, okB := Fit(d.Points())
		require.Equal(t, okA, okB, d.Key)
		assert.Equal(t, a, b, d.Key)
	}
}

func TestFit_ScienceStudents(t *testing.T) {
	reg := dataset.NewDefaultRegistry(dataset.DefaultTables())
	d, _ := reg.Lookup(dataset.KeyScienceStudents)

	m, ok := Fit(d.Points())
	require.True(t, ok)
	// 371, 389, 402, 429 over 2565..2568: slope 18.7
	assert.InDelta(t, 18.7, m.Slope, 1e-6)
	assert.Equal(t, 463, m.Predict(2570))
	assert.Equal(t, 482, m.Predict(2571))
}
