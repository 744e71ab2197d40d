package ranking

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/recruiting-analytics/internal/model"
)

// Data-source switch values for the call/SMS sums.
const (
	SourceAll            = "all"
	SourceAssignedOnDate = "assigned_on_date"
)

// Engagement ladder source switch values.
const (
	TTEStandard = "standard"
	TTEHot      = "hot"
	TTEFresh    = "fresh"
)

// ActiveDayRule is the activity quorum for one kind of day. A day is active
// when at least ConditionsToMeet of the three thresholds are met.
type ActiveDayRule struct {
	Calls            float64 `yaml:"calls"`
	DurationMinutes  float64 `yaml:"duration_minutes"`
	SMS              float64 `yaml:"sms"`
	ConditionsToMeet int     `yaml:"conditions_to_meet"`
}

// ActiveDayRules holds distinct quorums for workdays and weekends.
type ActiveDayRules struct {
	Workdays ActiveDayRule `yaml:"workdays"`
	Weekends ActiveDayRule `yaml:"weekends"`
}

// Settings is the per-mode engine configuration. It mirrors what the
// dashboard persists per view; the engine only ever consumes the in-memory
// shape.
type Settings struct {
	ActiveDays        ActiveDayRules  `yaml:"active_days"`
	CallSmsDataSource string          `yaml:"call_sms_data_source"`
	TTESource         string          `yaml:"tte_source"`
	LeadType          string          `yaml:"lead_type"` // suffix for the standard ladder: "", "hot", "fresh"
	PerLead           map[string]bool `yaml:"per_lead,omitempty"`
	DrugTestType      string          `yaml:"drug_test_type,omitempty"`
	Exclusions        ExclusionConfig `yaml:"exclusions"`

	// Tenure lookback window, in days before the filter end date.
	TenureLookbackDays int `yaml:"tenure_lookback_days"`
	TenureExcludeDays  int `yaml:"tenure_exclude_days"`
}

// DefaultSettings returns the stock configuration for a mode. The exclusion
// rule set starts empty, which the evaluator treats as a no-op.
func DefaultSettings(mode model.Mode) Settings {
	s := Settings{
		ActiveDays: ActiveDayRules{
			Workdays: ActiveDayRule{Calls: 30, DurationMinutes: 45, SMS: 30, ConditionsToMeet: 2},
			Weekends: ActiveDayRule{Calls: 10, DurationMinutes: 15, SMS: 10, ConditionsToMeet: 1},
		},
		CallSmsDataSource:  SourceAll,
		TTESource:          TTEStandard,
		TenureLookbackDays: 90,
		TenureExcludeDays:  7,
	}
	if mode == model.ModeProfiler {
		// Profilers are scored on profiling throughput; engagement depth
		// follows fresh leads only.
		s.TTESource = TTEFresh
	}
	return s
}

// LoadSettings reads a Settings YAML file, filling unset fields from the mode
// defaults.
func LoadSettings(path string, mode model.Mode) (Settings, error) {
	s := DefaultSettings(mode)
	data, err := os.ReadFile(path)
	if err != nil {
		return s, eris.Wrapf(err, "settings: read %s", path)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, eris.Wrapf(err, "settings: parse %s", path)
	}
	return s, nil
}

// SaveSettings writes a Settings YAML file.
func SaveSettings(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return eris.Wrap(err, "settings: marshal")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "settings: write %s", path)
	}
	return nil
}
