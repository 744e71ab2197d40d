package ranking

import (
	"math"
	"sort"

	"github.com/sells-group/recruiting-analytics/internal/model"
)

// Ranked is an aggregated entity extended with its percentiles, composite
// scores, final score, dense 1-based rank, and delegation share.
type Ranked struct {
	Entity
	Percentiles       map[string]float64 `json:"percentiles"`
	Scores            map[string]float64 `json:"scores"`
	FinalScore        float64            `json:"final_score"`
	Rank              int                `json:"rank"`
	DelegationPercent float64            `json:"delegation_percent"`
}

// percentileDef declares one percentile metric: how to read the raw value
// from an entity and whether lower raw values are better.
type percentileDef struct {
	name     string
	inverted bool
	value    func(*Entity) float64
}

// percentileDefs is the full percentile surface. Populations are built from
// the surviving entities only; excluded entities never enter the reference
// arrays. Sample-backed metrics map NoData to NaN, which Percentile both
// drops from populations and scores 0.
var percentileDefs = []percentileDef{
	{"outbound_calls", false, func(e *Entity) float64 { return e.Calls }},
	{"unique_calls", false, func(e *Entity) float64 { return e.UniqueCalls }},
	{"call_duration", false, func(e *Entity) float64 { return e.DurationSecs }},
	{"outbound_sms", false, func(e *Entity) float64 { return e.SMS }},
	{"unique_sms", false, func(e *Entity) float64 { return e.UniqueSMS }},
	{"active_days", false, func(e *Entity) float64 { return float64(e.ActiveDays) }},
	{"tte", true, func(e *Entity) float64 { return e.TTE.Float() }},
	{"leads_reached", false, func(e *Entity) float64 { return e.LeadsReached }},
	{"mvr", false, func(e *Entity) float64 { return e.MVR }},
	{"psp", false, func(e *Entity) float64 { return e.PSP }},
	{"cdl", false, func(e *Entity) float64 { return e.CDL }},
	{"drug_tests", false, func(e *Entity) float64 { return e.DrugTests }},
	{"onboarded", false, func(e *Entity) float64 { return e.Onboarded }},
	{"profiles_profiled", false, func(e *Entity) float64 { return e.ProfilesProfiled }},
	{"profiles_completed", false, func(e *Entity) float64 { return e.ProfilesCompleted }},
	{"time_to_profile", true, func(e *Entity) float64 { return e.TimeToProfile.Float() }},
	{"note_avg", false, func(e *Entity) float64 { return e.NoteAvg }},
	{"past_due_ratio", true, func(e *Entity) float64 { return e.PastDueRatio }},
	{"tenure", false, func(e *Entity) float64 { return e.Tenure.Float() }},
}

// Score converts surviving entities into a ranked, totally ordered list.
//
// Each entity's raw metrics become rank percentiles against the surviving
// population, the weight tree folds those into nested composite scores, and
// the result is sorted by final score descending with ties broken
// alphabetically by name (an explicit, documented tie-break rather than
// incidental map iteration order). Delegation percent is the entity's share
// of the summed final scores, 0 when every score is 0.
func Score(entities []*Entity, weights WeightTree, mode model.Mode) []Ranked {
	if len(entities) == 0 {
		return []Ranked{}
	}

	// Reference populations, one per percentile metric.
	populations := make(map[string][]float64, len(percentileDefs))
	for _, def := range percentileDefs {
		pop := make([]float64, 0, len(entities))
		for _, e := range entities {
			if v := def.value(e); !math.IsNaN(v) && !math.IsInf(v, 0) {
				pop = append(pop, v)
			}
		}
		sort.Float64s(pop)
		populations[def.name] = pop
	}

	ranked := make([]Ranked, 0, len(entities))
	for _, e := range entities {
		r := Ranked{
			Entity:      *e,
			Percentiles: make(map[string]float64, len(percentileDefs)),
			Scores:      make(map[string]float64, len(scoreOrder)),
		}
		for _, def := range percentileDefs {
			r.Percentiles[def.name+"_percentile"] = Percentile(def.value(e), populations[def.name], def.inverted)
		}
		for _, cat := range scoreOrder {
			r.Scores[cat] = composite(&r, weights[cat])
		}
		r.FinalScore = r.Scores[FinalScore]
		ranked = append(ranked, r)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].FinalScore != ranked[j].FinalScore {
			return ranked[i].FinalScore > ranked[j].FinalScore
		}
		return ranked[i].Name < ranked[j].Name
	})

	var scoreSum float64
	for i := range ranked {
		ranked[i].Rank = i + 1
		scoreSum += ranked[i].FinalScore
	}
	if scoreSum > 0 {
		for i := range ranked {
			ranked[i].DelegationPercent = ranked[i].FinalScore / scoreSum * 100
		}
	}
	return ranked
}

// composite folds a weight group into one score. Child keys resolve against
// already-computed category scores first, then percentiles; unknown keys
// contribute 0. Weights are trusted to sum to 100 here; Validate guards every
// load path.
func composite(r *Ranked, group map[string]int) float64 {
	if len(group) == 0 {
		return 0
	}
	var total float64
	for child, weight := range group {
		var v float64
		if s, ok := r.Scores[child]; ok {
			v = s
		} else {
			v = r.Percentiles[child]
		}
		total += v * float64(weight)
	}
	return total / 100
}
