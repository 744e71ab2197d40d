package model

import (
	"math"
	"strconv"
	"strings"
)

// SampleKind discriminates the three-valued numeric domain used by
// time-to-engage, time-to-profile, and tenure metrics.
type SampleKind int

const (
	// NoData means the metric was never observed for the row or entity.
	NoData SampleKind = iota
	// NeverReached means a lead was assigned but never engaged. It sorts
	// greater than every finite value.
	NeverReached
	// HasValue means a finite observation exists.
	HasValue
)

// Sample is a single three-valued metric observation. The zero value is
// NoData.
type Sample struct {
	Kind SampleKind
	Val  float64
}

// SampleOf wraps a finite value. Non-finite inputs collapse to NoData so a
// Sample with Kind == HasValue always carries a usable number.
func SampleOf(v float64) Sample {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Sample{Kind: NoData}
	}
	return Sample{Kind: HasValue, Val: v}
}

// NoSample is the "no data" sentinel.
func NoSample() Sample { return Sample{Kind: NoData} }

// Never is the "assigned, never engaged" sentinel.
func Never() Sample { return Sample{Kind: NeverReached} }

// Finite reports whether the sample carries a finite observation.
func (s Sample) Finite() bool { return s.Kind == HasValue }

// Float maps the sample onto the extended real line: NeverReached becomes
// +Inf and NoData becomes NaN. Percentile and sorting code treats both as
// non-finite.
func (s Sample) Float() float64 {
	switch s.Kind {
	case HasValue:
		return s.Val
	case NeverReached:
		return math.Inf(1)
	default:
		return math.NaN()
	}
}

// ParseSample parses a raw cell from an engagement or tenure column.
// "N/A" and the empty string mean no data; "-" means assigned but never
// engaged; anything else is parsed as a number (unparseable text degrades to
// no data rather than an error).
func ParseSample(raw string) Sample {
	v := strings.TrimSpace(raw)
	switch {
	case v == "" || strings.EqualFold(v, "N/A"):
		return Sample{Kind: NoData}
	case v == "-":
		return Sample{Kind: NeverReached}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Sample{Kind: NoData}
	}
	return SampleOf(f)
}
