package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeRuleFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "epa_rules.json", `{
		"epa_hours": {
			"rule_id": "epa_hours",
			"component": "Compressor",
			"data_requirements": ["operating_hours"],
			"logic": {"data_point": "operating_hours", "operator": "<=", "value": 26000},
			"output_if_compliant": "ok",
			"output_if_noncompliant": "not ok",
			"status_if_data_missing": "Data Insufficient"
		},
		"epa_tanks": {
			"data_requirements": ["tank_count_vented"],
			"logic": {"data_point": "tank_count_vented", "operator": "==", "value": 0},
			"status_if_data_missing": "N/A"
		}
	}`)
	writeRuleFile(t, dir, "state_rules.json", `{
		"epa_tanks": {
			"rule_id": "epa_tanks",
			"regulation": "state override",
			"data_requirements": ["tank_count_vented"],
			"logic": {"data_point": "tank_count_vented", "operator": "<=", "value": 1},
			"status_if_data_missing": "N/A"
		}
	}`)

	book, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, book, 2)

	// The map key backfills a missing rule_id field.
	require.Equal(t, "epa_hours", book["epa_hours"].RuleID)

	// Later files overwrite duplicate ids.
	require.Equal(t, "state override", book["epa_tanks"].Regulation)
	v := Check(book["epa_tanks"], map[string]any{"tank_count_vented": 1.0})
	require.Equal(t, StatusInCompliance, v.Status)
}

func TestLoadDirEmpty(t *testing.T) {
	book, err := LoadDir(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, book)
}

func TestLoadDirBadJSON(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "broken.json", `{not json`)
	_, err := LoadDir(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "broken.json")
}

func TestCheckAllOrdering(t *testing.T) {
	book := Rulebook{
		"b_rule": {RuleID: "b_rule", StatusIfDataMissing: "N/A", DataRequirements: []string{"x"}},
		"a_rule": {RuleID: "a_rule", StatusIfDataMissing: "N/A", DataRequirements: []string{"x"}},
	}
	verdicts := book.CheckAll(map[string]any{})
	require.Len(t, verdicts, 2)
	require.Equal(t, "a_rule", verdicts[0].RuleID)
	require.Equal(t, "b_rule", verdicts[1].RuleID)
}
