package ranking

import (
	"github.com/sells-group/recruiting-analytics/internal/model"
)

// Entity is the per-name accumulator for one ranked recruiter, team, or
// profiler. Sum fields are accumulated monotonically from matching raw rows;
// derived fields (TTE, LeadsReached, PastDueRatio, NoteAvg, medians) are only
// valid after finalize has run. Entities live for a single ranking run and
// are never persisted.
type Entity struct {
	Name string `json:"name"`
	Team string `json:"team,omitempty"`

	// Effort sums under the configured call/SMS data source.
	Calls        float64 `json:"outbound_calls"`
	UniqueCalls  float64 `json:"unique_calls"`
	DurationSecs float64 `json:"call_duration_seconds"`
	SMS          float64 `json:"outbound_sms"`
	UniqueSMS    float64 `json:"unique_sms"`

	// All-time originals, accumulated unconditionally in parallel. Exclusion
	// rules and per-lead ratios always read these, never the switched sums.
	AllCalls        float64 `json:"all_outbound_calls"`
	AllUniqueCalls  float64 `json:"all_unique_calls"`
	AllDurationSecs float64 `json:"all_call_duration_seconds"`
	AllSMS          float64 `json:"all_outbound_sms"`
	AllUniqueSMS    float64 `json:"all_unique_sms"`

	NewLeads      float64 `json:"new_leads"`
	OldLeads      float64 `json:"old_leads"`
	HotLeads      float64 `json:"hot_leads"`
	FreshLeads    float64 `json:"fresh_leads"`
	RecycledLeads float64 `json:"recycled_leads"`

	MVR       float64 `json:"mvr_collected"`
	PSP       float64 `json:"psp_collected"`
	CDL       float64 `json:"cdl_collected"`
	DrugTests float64 `json:"drug_tests"`
	Onboarded float64 `json:"onboarded"`

	ProfilesProfiled  float64 `json:"profiles_profiled"`
	ProfilesCompleted float64 `json:"profiles_completed"`

	// Collected per-row value lists, consumed by finalize.
	tteSamples   []model.Sample
	dailyReached []float64
	ttpSamples   []model.Sample
	mcdSamples   []model.Sample
	noteTotal    float64
	noteDays     int

	// Derived fields.
	TTE             model.Sample `json:"-"`
	LeadsReached    float64      `json:"leads_reached"`
	TimeToProfile   model.Sample `json:"-"`
	CallDurationMed model.Sample `json:"-"`
	NoteAvg         float64      `json:"note_avg"`

	PastDue      float64 `json:"past_due"`
	Contacted    float64 `json:"contacted"`
	NotDueYet    float64 `json:"not_due_yet"`
	PastDueRatio float64 `json:"past_due_ratio"`

	ActiveDays    int          `json:"active_days"`
	NumRecruiters int          `json:"num_recruiters,omitempty"`
	Tenure        model.Sample `json:"-"`
}

// TotalLeads is new plus old lead assignments, the denominator for per-lead
// normalization and the "total_leads" exclusion metric.
func (e *Entity) TotalLeads() float64 {
	return e.NewLeads + e.OldLeads
}

// metricValue resolves an exclusion-rule metric name against the entity.
// Unknown names resolve to 0 rather than erroring, matching the engine's
// degrade-to-zero contract. Call and SMS metrics read the unconditioned
// all-time sums.
func (e *Entity) metricValue(name string) float64 {
	switch name {
	case "total_leads":
		return e.TotalLeads()
	case "outbound_calls":
		return e.AllCalls
	case "unique_calls":
		return e.AllUniqueCalls
	case "call_duration":
		return e.AllDurationSecs
	case "outbound_sms":
		return e.AllSMS
	case "unique_sms":
		return e.AllUniqueSMS
	case "new_leads":
		return e.NewLeads
	case "old_leads":
		return e.OldLeads
	case "hot_leads":
		return e.HotLeads
	case "fresh_leads":
		return e.FreshLeads
	case "recycled_leads":
		return e.RecycledLeads
	case "active_days":
		return float64(e.ActiveDays)
	case "leads_reached":
		return e.LeadsReached
	case "tte":
		return e.TTE.Float()
	case "mvr_collected":
		return e.MVR
	case "psp_collected":
		return e.PSP
	case "cdl_collected":
		return e.CDL
	case "drug_tests":
		return e.DrugTests
	case "onboarded":
		return e.Onboarded
	case "profiles_profiled":
		return e.ProfilesProfiled
	case "profiles_completed":
		return e.ProfilesCompleted
	case "past_due_ratio":
		return e.PastDueRatio
	case "note_avg":
		return e.NoteAvg
	case "num_recruiters":
		return float64(e.NumRecruiters)
	default:
		return 0
	}
}
