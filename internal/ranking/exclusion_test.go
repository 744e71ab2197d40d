package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func leafRule(metric, operator, value string) RuleNode {
	return RuleNode{Metric: metric, Operator: operator, Value: value}
}

func names(entities []*Entity) []string {
	out := make([]string, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.Name)
	}
	return out
}

func TestApplyExclusions(t *testing.T) {
	entities := func() []*Entity {
		return []*Entity{
			{Name: "Ann", Team: "Alpha", AllCalls: 120, NewLeads: 10},
			{Name: "Bob", Team: "Alpha", AllCalls: 20, NewLeads: 2},
			{Name: "Cal", Team: "Beta", AllCalls: 60, NewLeads: 0},
		}
	}

	tests := []struct {
		name string
		root RuleNode
		want []string
	}{
		{
			name: "empty rule set keeps everyone",
			root: RuleNode{},
			want: []string{"Ann", "Bob", "Cal"},
		},
		{
			name: "numeric leaf excludes low callers",
			root: RuleNode{Rules: []RuleNode{leafRule("outbound_calls", "<=", "50")}},
			want: []string{"Ann", "Cal"},
		},
		{
			name: "identity leaf matches case insensitively",
			root: RuleNode{Rules: []RuleNode{leafRule("team", "", "beta")}},
			want: []string{"Ann", "Bob"},
		},
		{
			name: "recruiter identity",
			root: RuleNode{Rules: []RuleNode{leafRule("recruiter", "", "ann")}},
			want: []string{"Bob", "Cal"},
		},
		{
			name: "and group needs every condition",
			root: RuleNode{Logic: LogicAnd, Rules: []RuleNode{
				leafRule("outbound_calls", "<=", "60"),
				leafRule("total_leads", "=", "0"),
			}},
			want: []string{"Ann", "Bob"},
		},
		{
			name: "or group needs any condition",
			root: RuleNode{Logic: LogicOr, Rules: []RuleNode{
				leafRule("outbound_calls", "<=", "20"),
				leafRule("total_leads", "=", "0"),
			}},
			want: []string{"Ann"},
		},
		{
			name: "nested groups recurse",
			root: RuleNode{Logic: LogicOr, Rules: []RuleNode{
				{Logic: LogicAnd, Rules: []RuleNode{
					leafRule("team", "", "Alpha"),
					leafRule("outbound_calls", "<=", "50"),
				}},
				leafRule("recruiter", "", "Cal"),
			}},
			want: []string{"Ann"},
		},
		{
			name: "unknown metric reads zero",
			root: RuleNode{Rules: []RuleNode{leafRule("no_such_metric", "=", "0")}},
			want: []string{},
		},
		{
			name: "unknown operator never matches",
			root: RuleNode{Rules: []RuleNode{leafRule("outbound_calls", "!=", "0")}},
			want: []string{"Ann", "Bob", "Cal"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ExclusionConfig{Default: tt.root}
			kept := ApplyExclusions(entities(), cfg, nil, nil)
			assert.ElementsMatch(t, tt.want, names(kept))
		})
	}
}

func TestSelectRuleSet(t *testing.T) {
	cfg := ExclusionConfig{
		Default: RuleNode{Rules: []RuleNode{leafRule("outbound_calls", "<=", "10")}},
		Specific: []SpecificRules{{
			Targets: []RuleTarget{{Company: "Acme", Contract: "OTR"}},
			Rules:   RuleNode{Rules: []RuleNode{leafRule("outbound_calls", "<=", "500")}},
		}},
	}

	tests := []struct {
		name      string
		companies []string
		contracts []string
		wantValue string
	}{
		{"exact single pair hits the override", []string{"acme"}, []string{"otr"}, "500"},
		{"no selection falls back to default", nil, nil, "10"},
		{"multi company falls back to default", []string{"Acme", "Other"}, []string{"OTR"}, "10"},
		{"missing contract falls back to default", []string{"Acme"}, nil, "10"},
		{"unmatched pair falls back to default", []string{"Acme"}, []string{"Local"}, "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := cfg.selectRuleSet(tt.companies, tt.contracts)
			assert.Equal(t, tt.wantValue, root.Rules[0].Value)
		})
	}
}
