// Package model defines the raw record shapes and value objects shared by the
// loaders, the store, and the ranking engine.
package model

import "time"

// Mode selects which kind of entity a ranking run scores.
type Mode string

const (
	ModeRecruiter Mode = "recruiter"
	ModeTeam      Mode = "team"
	ModeProfiler  Mode = "profiler"
)

// Valid reports whether m is one of the three supported modes.
func (m Mode) Valid() bool {
	return m == ModeRecruiter || m == ModeTeam || m == ModeProfiler
}

// RecordLevel tags a raw row with its aggregation granularity.
type RecordLevel string

const (
	LevelRecruiter RecordLevel = "RECRUITER"
	LevelTeam      RecordLevel = "TEAM"
)

// ProfilersTeam is the literal team name that marks a recruiter as a
// profiler.
const ProfilersTeam = "Profilers"

// ActivityRecord is one raw daily performance row. It is a union of several
// source shapes (effort, documents, drug tests, arrivals, past-due, profiler
// notes); fields not present in a given source are simply zero. Records are
// immutable once loaded.
type ActivityRecord struct {
	RecruiterName string      `json:"recruiter_name,omitempty"`
	TeamName      string      `json:"team_name,omitempty"`
	CompanyName   string      `json:"company_name,omitempty"`
	ContractType  string      `json:"contract_type,omitempty"`
	Date          time.Time   `json:"date"`
	Level         RecordLevel `json:"level,omitempty"`

	// Effort metrics, all-time and assigned-on-date variants. The all-time
	// values are always accumulated regardless of the data-source switch.
	OutboundCalls            float64 `json:"outbound_calls,omitempty"`
	UniqueCalls              float64 `json:"unique_calls,omitempty"`
	CallDurationSecs         float64 `json:"call_duration_seconds,omitempty"`
	OutboundSMS              float64 `json:"outbound_sms,omitempty"`
	UniqueSMS                float64 `json:"unique_sms,omitempty"`
	OutboundCallsAssigned    float64 `json:"outbound_calls_assigned_on_date,omitempty"`
	UniqueCallsAssigned      float64 `json:"unique_calls_assigned_on_date,omitempty"`
	CallDurationSecsAssigned float64 `json:"call_duration_seconds_assigned_on_date,omitempty"`
	OutboundSMSAssigned      float64 `json:"outbound_sms_assigned_on_date,omitempty"`
	UniqueSMSAssigned        float64 `json:"unique_sms_assigned_on_date,omitempty"`

	// Lead assignment counts.
	NewLeads      float64 `json:"new_leads_assigned,omitempty"`
	OldLeads      float64 `json:"old_leads_assigned,omitempty"`
	HotLeads      float64 `json:"hot_leads_assigned,omitempty"`
	FreshLeads    float64 `json:"fresh_leads_assigned,omitempty"`
	RecycledLeads float64 `json:"recycled_leads,omitempty"`

	// Engagement percentile ladder. Keys are "p<rung>_engage" plus an
	// optional lead-type suffix ("_hot", "_fresh"), values are raw cells in
	// the three-valued domain (number / "-" / "N/A").
	Engage map[string]string `json:"engage,omitempty"`

	// Profiling metrics.
	ProfilesProfiled    float64 `json:"profiles_profiled,omitempty"`
	ProfilesCompleted   float64 `json:"profiles_completed,omitempty"`
	MedianTimeToProfile string  `json:"median_time_to_profile,omitempty"`
	MedianCallDuration  string  `json:"median_call_duration,omitempty"`
	ProfilerNoteLength  float64 `json:"profiler_note_length,omitempty"`

	// Document collection.
	MVRCollected float64 `json:"mvr_collected,omitempty"`
	PSPCollected float64 `json:"psp_collected,omitempty"`
	CDLCollected float64 `json:"cdl_collected,omitempty"`

	// Drug tests.
	DrugTestCount float64 `json:"drug_test_count,omitempty"`
	DrugTestType  string  `json:"drug_test_type,omitempty"`

	// Arrivals.
	Onboarded float64  `json:"onboarded,omitempty"`
	Tenure    *float64 `json:"tenure,omitempty"`

	// Past-due buckets, keyed "<bucket>_<contract>_<company>" where bucket is
	// one of past_due, contacted, not_due_yet.
	PastDue map[string]float64 `json:"past_due,omitempty"`
}

// EntityName returns the aggregation key for the given mode: team name for
// team mode, recruiter name otherwise.
func (r *ActivityRecord) EntityName(mode Mode) string {
	if mode == ModeTeam {
		return r.TeamName
	}
	return r.RecruiterName
}

// FilterSelection is the externally assembled filter scope passed into the
// engine. The engine never reads UI or environment state directly; callers
// resolve dates, companies, and contracts up front and hand them over here.
type FilterSelection struct {
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
	Companies []string  `json:"companies,omitempty"`
	Contracts []string  `json:"contracts,omitempty"`
	Teams     []string  `json:"teams,omitempty"`
}
