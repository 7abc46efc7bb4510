package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Rulebook is the merged set of loaded rules keyed by rule id. Loaded once
// and treated as read-only afterwards; concurrent readers never contend.
type Rulebook map[string]Rule

// LoadDir reads every *.json file in dir and merges the rule collections
// into one rulebook. Files load in lexical order; a duplicate rule id is
// silently overwritten by the later file.
func LoadDir(dir string) (Rulebook, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing rule files in %s: %w", dir, err)
	}
	sort.Strings(paths)

	book := Rulebook{}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading rule file %s: %w", path, err)
		}
		var rules map[string]Rule
		if err := json.Unmarshal(data, &rules); err != nil {
			return nil, fmt.Errorf("parsing rule file %s: %w", path, err)
		}
		for id, rule := range rules {
			if rule.RuleID == "" {
				rule.RuleID = id
			}
			book[id] = rule
		}
	}
	return book, nil
}

// CheckAll evaluates every rule in the book against one fact map, ordered
// by rule id for stable output.
func (b Rulebook) CheckAll(facts map[string]any) []Verdict {
	ids := make([]string, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Verdict, 0, len(ids))
	for _, id := range ids {
		out = append(out, Check(b[id], facts))
	}
	return out
}
