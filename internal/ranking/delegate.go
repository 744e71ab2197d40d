package ranking

import (
	"math"
	"sort"
)

// DistributeLeads splits a lead volume across ranked entities in proportion
// to their delegation percent, using largest-remainder rounding so the parts
// always sum to the input volume. Entities with a zero share get nothing;
// when every share is zero the volume stays unassigned.
func DistributeLeads(ranked []Ranked, totalLeads int) map[string]int {
	out := make(map[string]int, len(ranked))
	if totalLeads <= 0 || len(ranked) == 0 {
		return out
	}

	type part struct {
		name      string
		remainder float64
		rank      int
	}

	assigned := 0
	parts := make([]part, 0, len(ranked))
	for _, r := range ranked {
		if r.DelegationPercent <= 0 {
			continue
		}
		exact := float64(totalLeads) * r.DelegationPercent / 100
		whole := int(math.Floor(exact))
		out[r.Name] = whole
		assigned += whole
		parts = append(parts, part{name: r.Name, remainder: exact - float64(whole), rank: r.Rank})
	}

	// Hand leftover leads to the largest remainders, best rank first on ties.
	sort.Slice(parts, func(i, j int) bool {
		if parts[i].remainder != parts[j].remainder {
			return parts[i].remainder > parts[j].remainder
		}
		return parts[i].rank < parts[j].rank
	})
	for i := 0; assigned < totalLeads && i < len(parts); i++ {
		out[parts[i].name]++
		assigned++
	}
	return out
}
