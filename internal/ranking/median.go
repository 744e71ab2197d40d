package ranking

import (
	"sort"

	"github.com/sells-group/recruiting-analytics/internal/model"
)

// MedianSamples computes the median of a three-valued sample list.
//
// NoData entries are dropped first. NeverReached sorts above every finite
// value. For an even-length list the median is the average of the two middle
// elements when both are finite; if either middle is NeverReached the whole
// median is NeverReached. An empty (or all-NoData) input yields NoData.
func MedianSamples(samples []model.Sample) model.Sample {
	kept := samples[:0:0]
	for _, s := range samples {
		if s.Kind != model.NoData {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return model.NoSample()
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Float() < kept[j].Float()
	})

	mid := len(kept) / 2
	if len(kept)%2 == 1 {
		return kept[mid]
	}

	lo, hi := kept[mid-1], kept[mid]
	if lo.Finite() && hi.Finite() {
		return model.SampleOf((lo.Val + hi.Val) / 2)
	}
	return model.Never()
}

// MedianFloats is the plain numeric median: average of the two middle
// elements for even lengths, 0 for an empty input. Used for the leads-reached
// rung medians, which are always finite.
func MedianFloats(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
