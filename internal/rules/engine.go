package rules

import (
	"fmt"
	"strings"

	"methanewatch/internal/coerce"
)

// Check evaluates one rule against a facility fact map. Missing required
// facts short-circuit before the logic tree runs: the verdict carries the
// rule's configured missing-data status and names the first absent key.
func Check(rule Rule, facts map[string]any) Verdict {
	v := Verdict{
		RuleID:     rule.RuleID,
		Component:  orNA(rule.Component),
		Regulation: orNA(rule.Regulation),
		Scope:      orNA(rule.AutomatedCheckScope),
	}

	for _, key := range rule.DataRequirements {
		if _, ok := facts[key]; !ok {
			v.Status = rule.StatusIfDataMissing
			v.Details = fmt.Sprintf("Cannot check rule. Missing data for: '%s'", key)
			return v
		}
	}

	switch evalNode(rule.Logic, facts) {
	case True:
		v.Status = StatusInCompliance
		v.Details = rule.OutputIfCompliant
	case False:
		v.Status = StatusOutOfCompliance
		v.Details = rule.OutputIfNoncompliant
	default:
		// A fact referenced by the tree but not listed in the requirements
		// was absent.
		v.Status = rule.StatusIfDataMissing
		v.Details = "Could not determine compliance due to missing data during logic evaluation."
	}
	return v
}

// evalNode walks the logic tree. Any Unknown child poisons the whole block
// regardless of sibling values; this is deliberately stricter than standard
// three-valued AND/OR and rule authors depend on it.
func evalNode(n Node, facts map[string]any) Tri {
	if n.Cond != nil {
		return evalCondition(*n.Cond, facts)
	}
	if n.Logic == nil {
		return False
	}

	results := make([]Tri, 0, len(n.Logic.Conditions))
	for _, child := range n.Logic.Conditions {
		r := evalNode(child, facts)
		if r == Unknown {
			return Unknown
		}
		results = append(results, r)
	}
	if len(results) == 0 {
		return False
	}

	switch n.Logic.Type {
	case LogicAll, LogicSingle:
		for _, r := range results {
			if r != True {
				return False
			}
		}
		return True
	case LogicAny:
		for _, r := range results {
			if r == True {
				return True
			}
		}
		return False
	}
	return False
}

// evalCondition applies one operator to one fact. An absent or nil fact is
// Unknown; an unsupported operator is conservatively False.
func evalCondition(c Condition, facts map[string]any) Tri {
	actual, ok := facts[c.DataPoint]
	if !ok || actual == nil {
		return Unknown
	}

	switch c.Operator {
	case "==":
		return tri(valuesEqual(actual, c.Value))
	case "!=":
		return tri(!valuesEqual(actual, c.Value))
	case ">", "<", ">=", "<=":
		cmp, ok := compareValues(actual, c.Value)
		if !ok {
			return False
		}
		switch c.Operator {
		case ">":
			return tri(cmp > 0)
		case "<":
			return tri(cmp < 0)
		case ">=":
			return tri(cmp >= 0)
		default:
			return tri(cmp <= 0)
		}
	case "IN":
		// Fails closed when the rule value is not a list.
		list, ok := c.Value.([]any)
		if !ok {
			return False
		}
		return tri(containsValue(actual, list))
	}
	return False
}

func tri(b bool) Tri {
	if b {
		return True
	}
	return False
}

// valuesEqual compares numerically when both sides coerce to numbers, then
// as booleans, then as trimmed strings.
func valuesEqual(a, b any) bool {
	if fa, okA := coerce.Float(a); okA {
		if fb, okB := coerce.Float(b); okB {
			return fa == fb
		}
	}
	if ba, okA := coerce.Bool(a); okA {
		if bb, okB := coerce.Bool(b); okB {
			return ba == bb
		}
	}
	sa, okA := coerce.String(a)
	sb, okB := coerce.String(b)
	return okA && okB && sa == sb
}

// compareValues orders numerically when possible, lexicographically as a
// fallback. Incomparable pairs report not ok.
func compareValues(a, b any) (int, bool) {
	if fa, okA := coerce.Float(a); okA {
		if fb, okB := coerce.Float(b); okB {
			switch {
			case fa < fb:
				return -1, true
			case fa > fb:
				return 1, true
			}
			return 0, true
		}
	}
	sa, okA := coerce.String(a)
	sb, okB := coerce.String(b)
	if okA && okB {
		return strings.Compare(sa, sb), true
	}
	return 0, false
}

// containsValue tests membership of actual in list. []string facts widen to
// element-wise comparison so membership lists from the flattener work on
// either side.
func containsValue(actual any, list []any) bool {
	if members, ok := actual.([]string); ok {
		// Any overlap between the fact's list and the rule value counts.
		for _, want := range list {
			for _, have := range members {
				if valuesEqual(have, want) {
					return true
				}
			}
		}
		return false
	}
	for _, candidate := range list {
		if valuesEqual(actual, candidate) {
			return true
		}
	}
	return false
}
