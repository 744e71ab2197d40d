package ranking

import (
	"time"

	"github.com/sells-group/recruiting-analytics/internal/model"
)

// teamParticipationPct is the quorum a team must hit for a day to count as a
// team-active day: at least this share of the team's recruiters must be
// individually active. The comparison is >=, so exactly 35% counts.
const teamParticipationPct = 35.0

// dayActivity is the per-(entity, calendar day) sum of effort counters.
// Multiple raw rows for the same entity and day (different sources) are
// folded together before the thresholds apply.
type dayActivity struct {
	calls        float64
	durationSecs float64
	sms          float64
	date         time.Time
}

type dayKey struct {
	name string
	day  string
}

// ActiveDays counts, per entity, the days on which the activity quorum was
// met. Weekends and workdays use distinct rule sets; a day is active when at
// least ConditionsToMeet of the calls / duration / SMS thresholds hold.
func ActiveDays(rows []model.ActivityRecord, mode model.Mode, rules ActiveDayRules) map[string]int {
	grouped := groupByDay(rows, mode)

	counts := make(map[string]int)
	for key, day := range grouped {
		if dayIsActive(day, rules) {
			counts[key.name]++
		}
	}
	return counts
}

// TeamActiveDays derives team active days from recruiter-level rows. For each
// calendar day the individually-active recruiters are computed first; a team
// counts the day as active when its participation rate meets the quorum,
// measured against every recruiter ever seen in that team during the period.
// The second return value is that total member count per team.
//
// A team's activity is a participation quorum, not a sum: one hyperactive
// recruiter cannot make an otherwise idle team look active.
func TeamActiveDays(recruiterRows []model.ActivityRecord, rules ActiveDayRules) (map[string]int, map[string]int) {
	grouped := groupByDay(recruiterRows, model.ModeRecruiter)

	// Team membership over the whole period, plus recruiter -> team mapping.
	members := make(map[string]map[string]struct{})
	recruiterTeam := make(map[string]string)
	for i := range recruiterRows {
		r := &recruiterRows[i]
		if r.Level == model.LevelTeam || r.RecruiterName == "" || r.TeamName == "" {
			continue
		}
		if members[r.TeamName] == nil {
			members[r.TeamName] = make(map[string]struct{})
		}
		members[r.TeamName][r.RecruiterName] = struct{}{}
		recruiterTeam[r.RecruiterName] = r.TeamName
	}

	// Per day, per team: how many members were individually active.
	activePerTeamDay := make(map[string]map[string]int) // day -> team -> active count
	daysWithData := make(map[string]map[string]struct{})
	for key, day := range grouped {
		team := recruiterTeam[key.name]
		if team == "" {
			continue
		}
		if daysWithData[team] == nil {
			daysWithData[team] = make(map[string]struct{})
		}
		daysWithData[team][key.day] = struct{}{}
		if !dayIsActive(day, rules) {
			continue
		}
		if activePerTeamDay[key.day] == nil {
			activePerTeamDay[key.day] = make(map[string]int)
		}
		activePerTeamDay[key.day][team]++
	}

	counts := make(map[string]int)
	numRecruiters := make(map[string]int)
	for team, set := range members {
		numRecruiters[team] = len(set)
	}
	for team, days := range daysWithData {
		total := numRecruiters[team]
		if total == 0 {
			continue
		}
		for day := range days {
			active := activePerTeamDay[day][team]
			participation := float64(active) / float64(total) * 100
			if participation >= teamParticipationPct {
				counts[team]++
			}
		}
	}
	return counts, numRecruiters
}

func groupByDay(rows []model.ActivityRecord, mode model.Mode) map[dayKey]*dayActivity {
	grouped := make(map[dayKey]*dayActivity)
	for i := range rows {
		r := &rows[i]
		if !rowMatchesMode(r, mode) {
			continue
		}
		name := r.EntityName(mode)
		if name == "" || r.Date.IsZero() {
			continue
		}
		key := dayKey{name: name, day: r.Date.Format("2006-01-02")}
		day := grouped[key]
		if day == nil {
			day = &dayActivity{date: r.Date}
			grouped[key] = day
		}
		day.calls += r.OutboundCalls
		day.durationSecs += r.CallDurationSecs
		day.sms += r.OutboundSMS
	}
	return grouped
}

func dayIsActive(day *dayActivity, rules ActiveDayRules) bool {
	rule := rules.Workdays
	if wd := day.date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		rule = rules.Weekends
	}

	met := 0
	if day.calls >= rule.Calls {
		met++
	}
	if day.durationSecs >= rule.DurationMinutes*60 {
		met++
	}
	if day.sms >= rule.SMS {
		met++
	}
	return met >= rule.ConditionsToMeet
}
