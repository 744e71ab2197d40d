package ranking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/recruiting-analytics/internal/model"
)

func TestPercentile(t *testing.T) {
	pop := []float64{10, 20, 30, 40, 50}

	tests := []struct {
		name     string
		value    float64
		inverted bool
		want     float64
	}{
		{"min snaps to 0", 10, false, 0},
		{"max snaps to 100", 50, false, 100},
		{"below min snaps to 0", 5, false, 0},
		{"above max snaps to 100", 60, false, 100},
		{"midpoint", 30, false, 50},
		{"between rungs rounds up to next index", 25, false, 50},
		{"inverted min snaps to 100", 10, true, 100},
		{"inverted max snaps to 0", 50, true, 0},
		{"inverted midpoint", 30, true, 50},
		{"nan scores 0", math.NaN(), false, 0},
		{"infinity scores 0", math.Inf(1), false, 0},
		{"infinity scores 0 inverted too", math.Inf(1), true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.value, pop, tt.inverted)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestPercentileDegeneratePopulations(t *testing.T) {
	t.Run("empty population scores 100", func(t *testing.T) {
		assert.InDelta(t, 100, Percentile(5, nil, false), 0.001)
	})

	t.Run("single finite value scores 100", func(t *testing.T) {
		assert.InDelta(t, 100, Percentile(5, []float64{7}, false), 0.001)
	})

	t.Run("no spread scores 100 regardless of inversion", func(t *testing.T) {
		pop := []float64{3, 3, 3}
		assert.InDelta(t, 100, Percentile(1, pop, false), 0.001)
		assert.InDelta(t, 100, Percentile(1, pop, true), 0.001)
	})

	t.Run("non-finite population entries are dropped", func(t *testing.T) {
		pop := []float64{math.Inf(1), 10, math.NaN(), 20}
		assert.InDelta(t, 100, Percentile(20, pop, false), 0.001)
		assert.InDelta(t, 0, Percentile(10, pop, false), 0.001)
	})
}

func TestPercentileBoundaryProperty(t *testing.T) {
	// For any finite ascending population with spread, the smallest element
	// scores 0 and the largest scores 100.
	populations := [][]float64{
		{1, 2},
		{1, 2, 3, 4, 5},
		{0, 0, 0, 10},
		{-5, -1, 0, 7, 7, 12},
	}
	for _, pop := range populations {
		assert.InDelta(t, 0, Percentile(pop[0], pop, false), 0.001)
		assert.InDelta(t, 100, Percentile(pop[len(pop)-1], pop, false), 0.001)
	}
}

func TestPercentileInversionProperty(t *testing.T) {
	// Away from the degenerate cases, inverted is exactly 100 - normal.
	pop := []float64{1, 3, 5, 9, 11, 20}
	for _, v := range []float64{1, 2, 3, 5, 9, 10, 11, 19, 20} {
		normal := Percentile(v, pop, false)
		inverted := Percentile(v, pop, true)
		assert.InDelta(t, 100-normal, inverted, 0.001, "value %v", v)
	}
}

func TestPercentileSample(t *testing.T) {
	pop := []float64{100, 200, 300}

	assert.InDelta(t, 0, PercentileSample(model.NoSample(), pop, false), 0.001)
	assert.InDelta(t, 0, PercentileSample(model.Never(), pop, true), 0.001)
	assert.InDelta(t, 100, PercentileSample(model.SampleOf(100), pop, true), 0.001)
	assert.InDelta(t, 0, PercentileSample(model.SampleOf(300), pop, true), 0.001)
}
