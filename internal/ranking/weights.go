package ranking

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/recruiting-analytics/internal/model"
)

// Score category keys. Leaf children of a category are percentile names;
// non-leaf children reference another category's score.
const (
	FinalScore      = "final_score"
	EffortScore     = "effort_score"
	ComplianceScore = "compliance_score"
	ArrivalsScore   = "arrivals_score"
	CallsScore      = "calls_score"
	SMSScore        = "sms_score"
	ProfilesScore   = "profiles_score"
	DocumentsScore  = "documents_score"
)

// scoreOrder is the bottom-up evaluation order for composite scores: leaf
// categories first, then the categories that reference them.
var scoreOrder = [...]string{
	CallsScore, SMSScore, DocumentsScore, ProfilesScore,
	EffortScore, ComplianceScore, ArrivalsScore,
	FinalScore,
}

// WeightTree maps each score category to its child weights. Weights within a
// group are expected to sum to exactly 100; Validate enforces that on every
// load path, the scorer itself trusts its input.
type WeightTree map[string]map[string]int

// DefaultWeights returns the stock weight tree for a mode. Profiler mode
// scores profiling throughput inside compliance and carries no past-due or
// tenure component; recruiter and team modes are the inverse.
func DefaultWeights(mode model.Mode) WeightTree {
	w := WeightTree{
		FinalScore: {
			EffortScore:     50,
			ComplianceScore: 30,
			ArrivalsScore:   20,
		},
		EffortScore: {
			CallsScore:                 30,
			SMSScore:                   20,
			"active_days_percentile":   20,
			"tte_percentile":           15,
			"leads_reached_percentile": 15,
		},
		CallsScore: {
			"outbound_calls_percentile": 50,
			"unique_calls_percentile":   30,
			"call_duration_percentile":  20,
		},
		SMSScore: {
			"outbound_sms_percentile": 60,
			"unique_sms_percentile":   40,
		},
		DocumentsScore: {
			"mvr_percentile": 40,
			"psp_percentile": 30,
			"cdl_percentile": 30,
		},
		ArrivalsScore: {
			"onboarded_percentile": 100,
		},
	}

	if mode == model.ModeProfiler {
		w[ProfilesScore] = map[string]int{
			"profiles_profiled_percentile":  40,
			"profiles_completed_percentile": 40,
			"time_to_profile_percentile":    20,
		}
		w[ComplianceScore] = map[string]int{
			DocumentsScore:          30,
			"drug_tests_percentile": 20,
			ProfilesScore:           50,
		}
	} else {
		w[ComplianceScore] = map[string]int{
			DocumentsScore:              40,
			"drug_tests_percentile":     20,
			"past_due_ratio_percentile": 25,
			"tenure_percentile":         15,
		}
	}
	return w
}

// Validate checks that every group's weights are in [0, 100] and sum to
// exactly 100. Out-of-balance trees would silently under- or over-scale the
// composite scores, so they are rejected at the boundary instead.
func (w WeightTree) Validate() error {
	var errs []string

	categories := make([]string, 0, len(w))
	for cat := range w {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		sum := 0
		for child, weight := range w[cat] {
			if weight < 0 || weight > 100 {
				errs = append(errs, fmt.Sprintf("%s.%s must be between 0 and 100, got %d", cat, child, weight))
			}
			sum += weight
		}
		if sum != 100 {
			errs = append(errs, fmt.Sprintf("%s weights must sum to 100, got %d", cat, sum))
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("weights: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// LoadWeights reads a weight tree from a YAML file and validates it.
func LoadWeights(path string, mode model.Mode) (WeightTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "weights: read %s", path)
	}
	var w WeightTree
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, eris.Wrapf(err, "weights: parse %s", path)
	}
	// Unspecified categories fall back to the mode defaults.
	defaults := DefaultWeights(mode)
	for cat, children := range defaults {
		if _, ok := w[cat]; !ok {
			w[cat] = children
		}
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// SaveWeights writes a weight tree to a YAML file after validating it.
func SaveWeights(path string, w WeightTree) error {
	if err := w.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(w)
	if err != nil {
		return eris.Wrap(err, "weights: marshal")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "weights: write %s", path)
	}
	return nil
}
