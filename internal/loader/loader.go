// Package loader parses raw activity records from CSV and XLSX exports. The
// loaders are deliberately forgiving: unknown columns are ignored and
// malformed numeric cells coerce to 0, while engagement and tenure cells keep
// their three-valued semantics for the engine to interpret.
package loader

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sells-group/recruiting-analytics/internal/model"
)

var engageColumn = regexp.MustCompile(`^p\d+_engage(_hot|_fresh)?$`)

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	time.RFC3339,
}

// normalizeHeader lowercases and snake_cases a header row.
func normalizeHeader(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		c = strings.ToLower(strings.TrimSpace(c))
		out[i] = strings.ReplaceAll(c, " ", "_")
	}
	return out
}

// num coerces a raw cell to a number; malformed cells degrade to 0.
func num(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// rowToRecord maps one data row onto an ActivityRecord using the normalized
// header. Unrecognized columns are skipped.
func rowToRecord(header, cells []string) model.ActivityRecord {
	var rec model.ActivityRecord
	for i, col := range header {
		if i >= len(cells) {
			break
		}
		raw := strings.TrimSpace(cells[i])
		if raw == "" {
			continue
		}

		switch col {
		case "recruiter", "recruiter_name":
			rec.RecruiterName = raw
		case "team", "team_name":
			rec.TeamName = raw
		case "company", "company_name":
			rec.CompanyName = raw
		case "contract", "contract_type":
			rec.ContractType = raw
		case "date":
			rec.Date = parseDate(raw)
		case "level":
			rec.Level = model.RecordLevel(strings.ToUpper(raw))
		case "outbound_calls":
			rec.OutboundCalls = num(raw)
		case "unique_calls":
			rec.UniqueCalls = num(raw)
		case "call_duration", "call_duration_seconds":
			rec.CallDurationSecs = num(raw)
		case "outbound_sms":
			rec.OutboundSMS = num(raw)
		case "unique_sms":
			rec.UniqueSMS = num(raw)
		case "outbound_calls_assigned_on_date":
			rec.OutboundCallsAssigned = num(raw)
		case "unique_calls_assigned_on_date":
			rec.UniqueCallsAssigned = num(raw)
		case "call_duration_seconds_assigned_on_date":
			rec.CallDurationSecsAssigned = num(raw)
		case "outbound_sms_assigned_on_date":
			rec.OutboundSMSAssigned = num(raw)
		case "unique_sms_assigned_on_date":
			rec.UniqueSMSAssigned = num(raw)
		case "new_leads", "new_leads_assigned":
			rec.NewLeads = num(raw)
		case "old_leads", "old_leads_assigned":
			rec.OldLeads = num(raw)
		case "hot_leads", "hot_leads_assigned":
			rec.HotLeads = num(raw)
		case "fresh_leads", "fresh_leads_assigned":
			rec.FreshLeads = num(raw)
		case "recycled_leads":
			rec.RecycledLeads = num(raw)
		case "profiles_profiled":
			rec.ProfilesProfiled = num(raw)
		case "profiles_completed":
			rec.ProfilesCompleted = num(raw)
		case "median_time_to_profile":
			rec.MedianTimeToProfile = raw
		case "median_call_duration":
			rec.MedianCallDuration = raw
		case "profiler_note_length":
			rec.ProfilerNoteLength = num(raw)
		case "mvr_collected":
			rec.MVRCollected = num(raw)
		case "psp_collected":
			rec.PSPCollected = num(raw)
		case "cdl_collected":
			rec.CDLCollected = num(raw)
		case "drug_test_count":
			rec.DrugTestCount = num(raw)
		case "drug_test_type":
			rec.DrugTestType = raw
		case "onboarded":
			rec.Onboarded = num(raw)
		case "tenure":
			v := num(raw)
			rec.Tenure = &v
		default:
			switch {
			case engageColumn.MatchString(col):
				if rec.Engage == nil {
					rec.Engage = make(map[string]string)
				}
				rec.Engage[col] = raw
			case strings.HasPrefix(col, "past_due_"),
				strings.HasPrefix(col, "contacted_"),
				strings.HasPrefix(col, "not_due_yet_"):
				if rec.PastDue == nil {
					rec.PastDue = make(map[string]float64)
				}
				rec.PastDue[col] = num(raw)
			}
		}
	}
	return rec
}
