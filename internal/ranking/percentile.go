// Package ranking implements the composite performance-ranking engine:
// per-entity aggregation of raw activity records, derived metrics, exclusion
// rules, percentile conversion, and weighted scoring into a total order.
package ranking

import (
	"math"
	"sort"

	"github.com/sells-group/recruiting-analytics/internal/model"
)

// Percentile converts a raw value into a 0-100 rank-based percentile within
// the given ascending-sorted reference population.
//
// This is percentile-of-rank, not a CDF percentile: the value's position in
// the sorted population determines the result, which keeps "higher raw value
// means higher or equal percentile" true under duplicates.
//
// Degenerate populations (fewer than two finite values, or no spread between
// min and max) cannot discriminate and score 100 regardless of inversion.
// Non-finite values score 0.
func Percentile(value float64, population []float64, inverted bool) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}

	finite := population[:0:0]
	for _, v := range population {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) < 2 {
		return 100
	}
	sort.Float64s(finite)

	min, max := finite[0], finite[len(finite)-1]
	if min == max {
		return 100
	}

	// Boundary snapping before the rank scan; inverted mode swaps the ends.
	if value >= max {
		if inverted {
			return 0
		}
		return 100
	}
	if value <= min {
		if inverted {
			return 100
		}
		return 0
	}

	idx := sort.SearchFloat64s(finite, value)
	p := float64(idx) / float64(len(finite)-1) * 100
	if inverted {
		return 100 - p
	}
	return p
}

// PercentileSample is Percentile over the three-valued domain. NoData scores
// 0, and NeverReached maps to +Inf which also scores 0 (for inverted metrics
// like time-to-engage that is the worst possible position, which is the
// intended reading of "never engaged").
func PercentileSample(s model.Sample, population []float64, inverted bool) float64 {
	return Percentile(s.Float(), population, inverted)
}
