package ranking

import (
	"go.uber.org/zap"

	"github.com/sells-group/recruiting-analytics/internal/model"
)

// Context carries everything a ranking run depends on: settings, weights, and
// the resolved filter scope. There is no ambient state; callers assemble a
// Context and pass it in, which keeps the engine a pure function of its
// inputs.
type Context struct {
	Settings Settings
	Weights  WeightTree
	Filter   model.FilterSelection
}

// Ranker runs the full ranking pipeline: aggregate, derive, exclude,
// percentile, score, rank. Every invocation recomputes from the raw records;
// no state is carried between runs.
type Ranker struct {
	ctx Context
}

// New creates a Ranker for the given context.
func New(ctx Context) *Ranker {
	return &Ranker{ctx: ctx}
}

// Rank computes the full ranked list for the context's filter scope. Records
// are expected to be pre-filtered by date, company, and contract by the
// caller (typically a store query); the engine only applies the
// company/contract cross-product inside past-due aggregation.
func (r *Ranker) Rank(records []model.ActivityRecord, mode model.Mode) []Ranked {
	return r.rank(records, mode, r.ctx.Filter.Companies, r.ctx.Filter.Contracts)
}

// RankScoped recomputes rankings scoped to an explicit company/contract
// selection, overriding the context's filter. The delegation flow uses this
// to obtain per-contract scores distinct from the globally filtered ones.
func (r *Ranker) RankScoped(records []model.ActivityRecord, mode model.Mode, companies, contracts []string) []Ranked {
	return r.rank(records, mode, companies, contracts)
}

func (r *Ranker) rank(records []model.ActivityRecord, mode model.Mode, companies, contracts []string) []Ranked {
	scope := r.ctx.Filter
	scope.Companies = companies
	scope.Contracts = contracts

	entities := Aggregate(records, mode, r.ctx.Settings, scope)

	// Active days. Team mode derives them from recruiter-level rows via the
	// participation quorum; the aggregation above only saw TEAM-level rows.
	if mode == model.ModeTeam {
		counts, members := TeamActiveDays(records, r.ctx.Settings.ActiveDays)
		for name, e := range entities {
			e.ActiveDays = counts[name]
			e.NumRecruiters = members[name]
		}
	} else {
		counts := ActiveDays(records, mode, r.ctx.Settings.ActiveDays)
		for name, e := range entities {
			e.ActiveDays = counts[name]
		}
	}

	ResolveTenure(entities, records, mode, r.ctx.Settings, scope)

	list := make([]*Entity, 0, len(entities))
	for _, e := range entities {
		list = append(list, e)
	}

	surviving := ApplyExclusions(list, r.ctx.Settings.Exclusions, companies, contracts)

	weights := r.ctx.Weights
	if weights == nil {
		weights = DefaultWeights(mode)
	}
	ranked := Score(surviving, weights, mode)

	zap.L().Info("ranking: run complete",
		zap.String("mode", string(mode)),
		zap.Int("records", len(records)),
		zap.Int("entities", len(list)),
		zap.Int("surviving", len(surviving)),
	)
	return ranked
}
