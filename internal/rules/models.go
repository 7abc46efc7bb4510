// Package rules evaluates declarative compliance rules against a flat
// facility fact map. A rule's logic is a recursive tree of boolean blocks
// over single-fact conditions, evaluated under three-valued logic so that
// missing data surfaces as a distinguished status rather than an error.
package rules

import (
	"encoding/json"
	"fmt"
)

// Tri is a three-valued logic result. Unknown means a referenced fact was
// absent; it poisons every enclosing block.
type Tri int8

const (
	False Tri = iota
	True
	Unknown
)

func (t Tri) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	}
	return "unknown"
}

// Compliance statuses for rules whose logic could be evaluated. Rules whose
// required data is missing report their own configured status instead.
const (
	StatusInCompliance    = "In Compliance"
	StatusOutOfCompliance = "Out of Compliance"
)

// Logic block types. ALL and SINGLE are logical AND, ANY is logical OR.
// Anything else evaluates to false.
const (
	LogicAll    = "ALL"
	LogicAny    = "ANY"
	LogicSingle = "SINGLE"
)

// Condition is a leaf node: one operator applied to one fact.
type Condition struct {
	DataPoint string `json:"data_point"`
	Operator  string `json:"operator"`
	Value     any    `json:"value"`
}

// Logic is a branch node combining child nodes under one block type.
type Logic struct {
	Type       string `json:"type"`
	Conditions []Node `json:"conditions"`
}

// Node is one tree node: either a Condition leaf or a Logic branch, never
// both. The JSON form distinguishes them by the presence of an "operator"
// key, matching the rule file format.
type Node struct {
	Cond  *Condition
	Logic *Logic
}

func (n *Node) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("rule node: %w", err)
	}
	if _, isLeaf := probe["operator"]; isLeaf {
		var c Condition
		if err := json.Unmarshal(data, &c); err != nil {
			return fmt.Errorf("rule condition: %w", err)
		}
		n.Cond = &c
		return nil
	}
	var l Logic
	if err := json.Unmarshal(data, &l); err != nil {
		return fmt.Errorf("rule logic block: %w", err)
	}
	n.Logic = &l
	return nil
}

// Rule is one declarative compliance rule as loaded from a rule file.
type Rule struct {
	RuleID               string   `json:"rule_id"`
	Component            string   `json:"component"`
	Regulation           string   `json:"regulation"`
	DataRequirements     []string `json:"data_requirements"`
	Logic                Node     `json:"logic"`
	OutputIfCompliant    string   `json:"output_if_compliant"`
	OutputIfNoncompliant string   `json:"output_if_noncompliant"`
	StatusIfDataMissing  string   `json:"status_if_data_missing"`
	AutomatedCheckScope  string   `json:"automated_check_scope"`
}

// Verdict is the outcome of checking one rule against one facility.
type Verdict struct {
	RuleID     string `json:"rule_id"`
	Component  string `json:"component"`
	Regulation string `json:"regulation"`
	Status     string `json:"status"`
	Details    string `json:"details"`
	Scope      string `json:"scope"`
}

// Checked reports whether the verdict carries a definite compliance outcome,
// as opposed to a missing-data or not-applicable status.
func (v Verdict) Checked() bool {
	return v.Status == StatusInCompliance || v.Status == StatusOutOfCompliance
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
