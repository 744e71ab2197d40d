package ranking

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// RuleLogic combines the children of a rule group.
type RuleLogic string

const (
	LogicAnd RuleLogic = "AND"
	LogicOr  RuleLogic = "OR"
)

// Identity metric names. A leaf whose metric is one of these compares entity
// identity instead of a numeric field.
const (
	identityTeam      = "team"
	identityRecruiter = "recruiter"
	identityProfiler  = "profiler"
)

// RuleNode is one node of the exclusion rule tree. It is a tagged variant
// flattened into a single struct for configuration ergonomics:
//
//   - a node with children is a Group combined by Logic
//   - a node whose Metric is team/recruiter/profiler is an Identity predicate
//   - any other node is a numeric Leaf comparison (Metric Operator Value)
//
// An entity is excluded when the root evaluates to true: rules describe
// exclusion conditions, not inclusion conditions.
type RuleNode struct {
	Logic    RuleLogic  `yaml:"logic,omitempty" json:"logic,omitempty"`
	Rules    []RuleNode `yaml:"rules,omitempty" json:"rules,omitempty"`
	Metric   string     `yaml:"metric,omitempty" json:"metric,omitempty"`
	Operator string     `yaml:"operator,omitempty" json:"operator,omitempty"`
	Value    string     `yaml:"value,omitempty" json:"value,omitempty"`
}

// IsGroup reports whether the node is a rule group.
func (n *RuleNode) IsGroup() bool { return len(n.Rules) > 0 || n.Metric == "" }

// RuleTarget scopes a specific rule set to one company/contract pair.
type RuleTarget struct {
	Company  string `yaml:"company" json:"company"`
	Contract string `yaml:"contract" json:"contract"`
}

// SpecificRules is a rule set that fully overrides the default for its
// targets.
type SpecificRules struct {
	Targets []RuleTarget `yaml:"targets" json:"targets"`
	Rules   RuleNode     `yaml:"rules" json:"rules"`
}

// ExclusionConfig holds the default rule set plus company/contract-specific
// overrides.
type ExclusionConfig struct {
	Default  RuleNode        `yaml:"default" json:"default"`
	Specific []SpecificRules `yaml:"specific,omitempty" json:"specific,omitempty"`
}

// selectRuleSet picks the rule set for the current filter scope. A specific
// set applies only when exactly one company and one contract are selected and
// a target matches that exact pair; every multi-select combination falls back
// to the default, even if each selected pair individually has a matching
// target.
func (c *ExclusionConfig) selectRuleSet(companies, contracts []string) RuleNode {
	if len(companies) != 1 || len(contracts) != 1 {
		return c.Default
	}
	for _, spec := range c.Specific {
		for _, t := range spec.Targets {
			if strings.EqualFold(t.Company, companies[0]) && strings.EqualFold(t.Contract, contracts[0]) {
				return spec.Rules
			}
		}
	}
	return c.Default
}

// ApplyExclusions drops every entity for which the selected rule set
// evaluates to true. An empty rule set keeps all entities.
func ApplyExclusions(entities []*Entity, cfg ExclusionConfig, companies, contracts []string) []*Entity {
	root := cfg.selectRuleSet(companies, contracts)
	if len(root.Rules) == 0 {
		return entities
	}

	kept := entities[:0:0]
	excluded := 0
	for _, e := range entities {
		if evalNode(&root, e) {
			excluded++
			continue
		}
		kept = append(kept, e)
	}
	if excluded > 0 {
		zap.L().Debug("ranking: exclusion rules applied",
			zap.Int("excluded", excluded),
			zap.Int("kept", len(kept)),
		)
	}
	return kept
}

// evalNode evaluates one rule node against an entity by structural recursion.
func evalNode(n *RuleNode, e *Entity) bool {
	if n.IsGroup() {
		return evalGroup(n, e)
	}

	switch n.Metric {
	case identityTeam:
		return strings.EqualFold(e.Team, n.Value)
	case identityRecruiter, identityProfiler:
		return strings.EqualFold(e.Name, n.Value)
	}

	// Numeric leaf. Unparseable values compare against 0, matching the
	// unknown-metric fallthrough.
	threshold, err := strconv.ParseFloat(strings.TrimSpace(n.Value), 64)
	if err != nil {
		threshold = 0
	}
	actual := e.metricValue(n.Metric)

	switch n.Operator {
	case ">=":
		return actual >= threshold
	case "<=":
		return actual <= threshold
	case "=":
		return actual == threshold
	default:
		return false
	}
}

func evalGroup(n *RuleNode, e *Entity) bool {
	if len(n.Rules) == 0 {
		return false
	}
	if n.Logic == LogicOr {
		for i := range n.Rules {
			if evalNode(&n.Rules[i], e) {
				return true
			}
		}
		return false
	}
	// AND is the default logic.
	for i := range n.Rules {
		if !evalNode(&n.Rules[i], e) {
			return false
		}
	}
	return true
}
