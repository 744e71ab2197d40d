package ranking

import (
	"fmt"
	"strings"

	"github.com/sells-group/recruiting-analytics/internal/model"
)

// engagement ladder rungs, walked top-down.
const (
	ladderTop  = 100
	ladderStep = 10
)

// Aggregate folds raw activity records into one Entity per name for the given
// mode. The entity key is the recruiter name in recruiter and profiler modes
// and the team name in team mode; profiler mode is the recruiter fold
// restricted to the Profilers team. Team mode consumes TEAM-level rows only
// (team active days come separately from recruiter-level rows, see
// TeamActiveDays).
//
// Derived per-entity fields are computed once every matching row has been
// accumulated.
func Aggregate(records []model.ActivityRecord, mode model.Mode, s Settings, filter model.FilterSelection) map[string]*Entity {
	entities := make(map[string]*Entity)

	for i := range records {
		rec := &records[i]
		if !rowMatchesMode(rec, mode) {
			continue
		}
		name := rec.EntityName(mode)
		if name == "" {
			continue
		}

		e := entities[name]
		if e == nil {
			e = &Entity{Name: name, Team: rec.TeamName}
			if mode == model.ModeTeam {
				e.Team = name
			}
			entities[name] = e
		}

		accumulate(e, rec, mode, s, filter)
	}

	for _, e := range entities {
		finalize(e, s)
	}
	return entities
}

// rowMatchesMode applies the level and team gating for a mode. Rows without a
// level tag count as recruiter-level.
func rowMatchesMode(rec *model.ActivityRecord, mode model.Mode) bool {
	switch mode {
	case model.ModeTeam:
		return rec.Level == model.LevelTeam
	case model.ModeProfiler:
		return rec.Level != model.LevelTeam && rec.TeamName == model.ProfilersTeam
	default:
		return rec.Level != model.LevelTeam
	}
}

func accumulate(e *Entity, rec *model.ActivityRecord, mode model.Mode, s Settings, filter model.FilterSelection) {
	// All-time originals are accumulated regardless of the source switch.
	e.AllCalls += rec.OutboundCalls
	e.AllUniqueCalls += rec.UniqueCalls
	e.AllDurationSecs += rec.CallDurationSecs
	e.AllSMS += rec.OutboundSMS
	e.AllUniqueSMS += rec.UniqueSMS

	if s.CallSmsDataSource == SourceAssignedOnDate {
		e.Calls += rec.OutboundCallsAssigned
		e.UniqueCalls += rec.UniqueCallsAssigned
		e.DurationSecs += rec.CallDurationSecsAssigned
		e.SMS += rec.OutboundSMSAssigned
		e.UniqueSMS += rec.UniqueSMSAssigned
	} else {
		e.Calls += rec.OutboundCalls
		e.UniqueCalls += rec.UniqueCalls
		e.DurationSecs += rec.CallDurationSecs
		e.SMS += rec.OutboundSMS
		e.UniqueSMS += rec.UniqueSMS
	}

	e.NewLeads += rec.NewLeads
	e.OldLeads += rec.OldLeads
	e.HotLeads += rec.HotLeads
	e.FreshLeads += rec.FreshLeads
	e.RecycledLeads += rec.RecycledLeads

	e.MVR += rec.MVRCollected
	e.PSP += rec.PSPCollected
	e.CDL += rec.CDLCollected
	e.Onboarded += rec.Onboarded

	if s.DrugTestType == "" || rec.DrugTestType == "" || strings.EqualFold(rec.DrugTestType, s.DrugTestType) {
		e.DrugTests += rec.DrugTestCount
	}

	e.ProfilesProfiled += rec.ProfilesProfiled
	e.ProfilesCompleted += rec.ProfilesCompleted
	if ttp := model.ParseSample(rec.MedianTimeToProfile); ttp.Kind != model.NoData {
		e.ttpSamples = append(e.ttpSamples, ttp)
	}
	if mcd := model.ParseSample(rec.MedianCallDuration); mcd.Kind != model.NoData {
		e.mcdSamples = append(e.mcdSamples, mcd)
	}

	// Only days with a recorded note count toward the average's denominator.
	if rec.ProfilerNoteLength > 0 {
		e.noteTotal += rec.ProfilerNoteLength
		e.noteDays++
	}

	accumulateEngagement(e, rec, s)
	accumulatePastDue(e, rec, filter)
}

// accumulateEngagement walks the engagement percentile ladder for one row.
// The first rung (top-down) with a finite engage value is the row's daily
// leads-reached rung; rows where every parseable value is "never engaged"
// contribute 0; rows with nothing parseable contribute nothing. The row's
// time-to-engage sample is the parsed p50 rung.
func accumulateEngagement(e *Entity, rec *model.ActivityRecord, s Settings) {
	if len(rec.Engage) == 0 {
		return
	}
	suffix := ladderSuffix(s)

	anyParsed := false
	reached := -1
	for rung := ladderTop; rung >= ladderStep; rung -= ladderStep {
		sample := model.ParseSample(rec.Engage[ladderKey(rung, suffix)])
		if sample.Kind == model.NoData {
			continue
		}
		anyParsed = true
		if sample.Finite() {
			reached = rung
			break
		}
	}
	switch {
	case reached >= 0:
		e.dailyReached = append(e.dailyReached, float64(reached))
	case anyParsed:
		e.dailyReached = append(e.dailyReached, 0)
	}

	if tte := model.ParseSample(rec.Engage[ladderKey(50, suffix)]); tte.Kind != model.NoData {
		e.tteSamples = append(e.tteSamples, tte)
	}
}

// ladderSuffix picks the engagement key family: the hot and fresh sources
// force their suffix, the standard source follows the configured lead type.
func ladderSuffix(s Settings) string {
	switch s.TTESource {
	case TTEHot:
		return "_hot"
	case TTEFresh:
		return "_fresh"
	}
	switch s.LeadType {
	case "hot":
		return "_hot"
	case "fresh":
		return "_fresh"
	default:
		return ""
	}
}

func ladderKey(rung int, suffix string) string {
	return fmt.Sprintf("p%d_engage%s", rung, suffix)
}

// pastDueBuckets are the three scalar totals a past-due-shaped row feeds.
var pastDueBuckets = [...]string{"past_due", "contacted", "not_due_yet"}

// accumulatePastDue sums the company/contract-suffixed past-due counters over
// the selected contracts x companies cross-product. With no selection, every
// key under a bucket prefix is summed.
func accumulatePastDue(e *Entity, rec *model.ActivityRecord, filter model.FilterSelection) {
	if len(rec.PastDue) == 0 {
		return
	}

	sumBucket := func(bucket string) float64 {
		if len(filter.Contracts) == 0 && len(filter.Companies) == 0 {
			var total float64
			for key, v := range rec.PastDue {
				if strings.HasPrefix(key, bucket+"_") {
					total += v
				}
			}
			return total
		}
		contracts := filter.Contracts
		if len(contracts) == 0 {
			contracts = []string{""}
		}
		companies := filter.Companies
		if len(companies) == 0 {
			companies = []string{""}
		}
		var total float64
		for _, contract := range contracts {
			for _, company := range companies {
				total += rec.PastDue[pastDueKey(bucket, contract, company)]
			}
		}
		return total
	}

	e.PastDue += sumBucket(pastDueBuckets[0])
	e.Contacted += sumBucket(pastDueBuckets[1])
	e.NotDueYet += sumBucket(pastDueBuckets[2])
}

func pastDueKey(bucket, contract, company string) string {
	return bucket + "_" + keySuffix(contract) + "_" + keySuffix(company)
}

// keySuffix normalizes a contract or company name into its counter-key form.
func keySuffix(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
}

// finalize computes every derived field once accumulation is complete.
func finalize(e *Entity, s Settings) {
	e.TTE = MedianSamples(e.tteSamples)
	e.LeadsReached = MedianFloats(e.dailyReached)
	e.TimeToProfile = MedianSamples(e.ttpSamples)
	e.CallDurationMed = MedianSamples(e.mcdSamples)

	if e.noteDays > 0 {
		e.NoteAvg = e.noteTotal / float64(e.noteDays)
	}

	if total := e.PastDue + e.Contacted + e.NotDueYet; total > 0 {
		e.PastDueRatio = e.PastDue / total
	}

	applyPerLead(e, s.PerLead)
}

// applyPerLead divides flagged metric sums by the entity's total lead
// assignments. Entities with no leads keep their raw sums.
func applyPerLead(e *Entity, flags map[string]bool) {
	total := e.TotalLeads()
	if total == 0 || len(flags) == 0 {
		return
	}
	fields := map[string]*float64{
		"outbound_calls":     &e.Calls,
		"unique_calls":       &e.UniqueCalls,
		"call_duration":      &e.DurationSecs,
		"outbound_sms":       &e.SMS,
		"unique_sms":         &e.UniqueSMS,
		"mvr_collected":      &e.MVR,
		"psp_collected":      &e.PSP,
		"cdl_collected":      &e.CDL,
		"drug_tests":         &e.DrugTests,
		"profiles_profiled":  &e.ProfilesProfiled,
		"profiles_completed": &e.ProfilesCompleted,
	}
	for name, on := range flags {
		if !on {
			continue
		}
		if field, ok := fields[name]; ok {
			*field /= total
		}
	}
}
