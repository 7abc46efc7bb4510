package rules

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

type EngineSuite struct {
	suite.Suite
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) node(raw string) Node {
	var n Node
	s.Require().NoError(json.Unmarshal([]byte(raw), &n))
	return n
}

func (s *EngineSuite) leaf(dataPoint, op string, value any) Node {
	return Node{Cond: &Condition{DataPoint: dataPoint, Operator: op, Value: value}}
}

// TestConditionOperators covers the full operator set against present facts.
func (s *EngineSuite) TestConditionOperators() {
	facts := map[string]any{
		"operating_hours": 30000.0,
		"site_type":       "well site",
		"has_vru":         true,
	}

	tests := []struct {
		name string
		cond Condition
		want Tri
	}{
		{"numeric greater", Condition{DataPoint: "operating_hours", Operator: ">", Value: 26000.0}, True},
		{"numeric lte fails", Condition{DataPoint: "operating_hours", Operator: "<=", Value: 26000.0}, False},
		{"numeric gte boundary", Condition{DataPoint: "operating_hours", Operator: ">=", Value: 30000.0}, True},
		{"numeric equality", Condition{DataPoint: "operating_hours", Operator: "==", Value: 30000.0}, True},
		{"numeric inequality", Condition{DataPoint: "operating_hours", Operator: "!=", Value: 0.0}, True},
		{"string equality", Condition{DataPoint: "site_type", Operator: "==", Value: "well site"}, True},
		{"string ordering", Condition{DataPoint: "site_type", Operator: "<", Value: "zzz"}, True},
		{"bool equality", Condition{DataPoint: "has_vru", Operator: "==", Value: true}, True},
		{"membership hit", Condition{DataPoint: "site_type", Operator: "IN", Value: []any{"well site", "gathering_boosting"}}, True},
		{"membership miss", Condition{DataPoint: "site_type", Operator: "IN", Value: []any{"processing"}}, False},
		{"IN fails closed on non-list value", Condition{DataPoint: "site_type", Operator: "IN", Value: "well site"}, False},
		{"unsupported operator is false", Condition{DataPoint: "operating_hours", Operator: "~=", Value: 1.0}, False},
		{"absent fact is unknown", Condition{DataPoint: "missing", Operator: "==", Value: 1.0}, Unknown},
	}
	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.Equal(tc.want, evalCondition(tc.cond, facts))
		})
	}
}

// TestUnknownPoisonsBlocks verifies any unknown child yields an unknown
// parent regardless of sibling values, for both AND and OR blocks.
func (s *EngineSuite) TestUnknownPoisonsBlocks() {
	facts := map[string]any{"a": 1.0}

	anyBlock := Node{Logic: &Logic{Type: LogicAny, Conditions: []Node{
		s.leaf("a", "==", 1.0),
		s.leaf("missing", "==", 1.0),
	}}}
	s.Equal(Unknown, evalNode(anyBlock, facts))

	allBlock := Node{Logic: &Logic{Type: LogicAll, Conditions: []Node{
		s.leaf("a", "!=", 1.0),
		s.leaf("missing", "==", 1.0),
	}}}
	s.Equal(Unknown, evalNode(allBlock, facts))
}

// TestLogicBlocks covers block type semantics over known children.
func (s *EngineSuite) TestLogicBlocks() {
	facts := map[string]any{"a": 1.0, "b": 2.0}
	tTrue := s.leaf("a", "==", 1.0)
	tFalse := s.leaf("b", "==", 99.0)

	tests := []struct {
		name     string
		typ      string
		children []Node
		want     Tri
	}{
		{"ALL with all true", LogicAll, []Node{tTrue, tTrue}, True},
		{"ALL with one false", LogicAll, []Node{tTrue, tFalse}, False},
		{"SINGLE behaves as AND", LogicSingle, []Node{tTrue}, True},
		{"ANY with one true", LogicAny, []Node{tFalse, tTrue}, True},
		{"ANY with all false", LogicAny, []Node{tFalse, tFalse}, False},
		{"empty conditions is false", LogicAll, nil, False},
		{"unrecognized type is false", "MAJORITY", []Node{tTrue, tTrue}, False},
	}
	for _, tc := range tests {
		s.Run(tc.name, func() {
			n := Node{Logic: &Logic{Type: tc.typ, Conditions: tc.children}}
			s.Equal(tc.want, evalNode(n, facts))
		})
	}
}

// TestNestedTrees verifies recursion through mixed blocks parsed from JSON.
func (s *EngineSuite) TestNestedTrees() {
	n := s.node(`{
		"type": "ALL",
		"conditions": [
			{"data_point": "operating_hours", "operator": "<=", "value": 26000},
			{
				"type": "ANY",
				"conditions": [
					{"data_point": "site_type", "operator": "==", "value": "well site"},
					{"data_point": "tank_count_vented", "operator": "==", "value": 0}
				]
			}
		]
	}`)

	s.Equal(True, evalNode(n, map[string]any{
		"operating_hours":   20000.0,
		"site_type":         "processing",
		"tank_count_vented": 0.0,
	}))
	s.Equal(False, evalNode(n, map[string]any{
		"operating_hours":   20000.0,
		"site_type":         "processing",
		"tank_count_vented": 2.0,
	}))
	s.Equal(Unknown, evalNode(n, map[string]any{
		"operating_hours": 20000.0,
		"site_type":       "processing",
	}))
}

// TestNodeUnmarshal verifies the operator key picks the leaf branch of the
// tagged union.
func (s *EngineSuite) TestNodeUnmarshal() {
	leaf := s.node(`{"data_point": "x", "operator": ">", "value": 5}`)
	s.Require().NotNil(leaf.Cond)
	s.Nil(leaf.Logic)
	s.Equal("x", leaf.Cond.DataPoint)

	branch := s.node(`{"type": "ANY", "conditions": []}`)
	s.Require().NotNil(branch.Logic)
	s.Nil(branch.Cond)
	s.Equal(LogicAny, branch.Logic.Type)
}

func (s *EngineSuite) complianceRule() Rule {
	return Rule{
		RuleID:               "epa_compressor_hours",
		Component:            "Reciprocating Compressor",
		Regulation:           "OOOOb",
		DataRequirements:     []string{"operating_hours"},
		Logic:                s.leaf("operating_hours", "<=", 26000.0),
		OutputIfCompliant:    "Within hour limit.",
		OutputIfNoncompliant: "Exceeds hour limit; rod packing replacement due.",
		StatusIfDataMissing:  "Data Insufficient",
		AutomatedCheckScope:  "partial",
	}
}

// TestCheck covers the full verdict contract: compliant, non-compliant,
// missing requirement short-circuit, and metadata defaults.
func (s *EngineSuite) TestCheck() {
	rule := s.complianceRule()

	s.Run("over the limit is out of compliance", func() {
		v := Check(rule, map[string]any{"operating_hours": 30000.0})
		s.Equal(StatusOutOfCompliance, v.Status)
		s.Equal(rule.OutputIfNoncompliant, v.Details)
		s.True(v.Checked())
	})

	s.Run("under the limit is in compliance", func() {
		v := Check(rule, map[string]any{"operating_hours": 15000.0})
		s.Equal(StatusInCompliance, v.Status)
		s.Equal(rule.OutputIfCompliant, v.Details)
	})

	s.Run("missing requirement short-circuits with the configured status", func() {
		v := Check(rule, map[string]any{"tank_count": 4.0})
		s.Equal("Data Insufficient", v.Status)
		s.Equal("Cannot check rule. Missing data for: 'operating_hours'", v.Details)
		s.False(v.Checked())
	})

	s.Run("missing requirement wins regardless of logic", func() {
		r := rule
		r.Logic = s.leaf("tank_count", "==", 4.0)
		v := Check(r, map[string]any{"tank_count": 4.0})
		s.Equal("Data Insufficient", v.Status)
	})

	s.Run("unknown during evaluation falls back to the missing status", func() {
		r := rule
		r.DataRequirements = nil
		v := Check(r, map[string]any{})
		s.Equal("Data Insufficient", v.Status)
		s.Contains(v.Details, "missing data during logic evaluation")
	})

	s.Run("empty metadata defaults to N/A", func() {
		r := Rule{RuleID: "bare", Logic: s.leaf("x", "==", 1.0), StatusIfDataMissing: "N/A"}
		v := Check(r, map[string]any{"x": 1.0})
		s.Equal("N/A", v.Component)
		s.Equal("N/A", v.Regulation)
		s.Equal("N/A", v.Scope)
	})
}

// TestMembershipListFacts verifies IN works against []string facts produced
// by the flattener.
func (s *EngineSuite) TestMembershipListFacts() {
	facts := map[string]any{"leak_detection_methods": []string{"method_21", "optical_gas_imaging"}}

	hit := Condition{DataPoint: "leak_detection_methods", Operator: "IN", Value: []any{"optical_gas_imaging"}}
	s.Equal(True, evalCondition(hit, facts))

	miss := Condition{DataPoint: "leak_detection_methods", Operator: "IN", Value: []any{"acoustic"}}
	s.Equal(False, evalCondition(miss, facts))
}
