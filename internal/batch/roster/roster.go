// Package roster maps counties to the facility identifiers reporting there.
// Rosters are maintained by hand as YAML files, one batch per county.
package roster

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Roster maps county name to facility IDs.
type Roster map[string][]string

type rosterFile struct {
	Counties map[string][]string `yaml:"counties"`
}

// Load reads a county roster from a YAML file.
func Load(path string) (Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}

	var file rosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing roster %s: %w", path, err)
	}
	if len(file.Counties) == 0 {
		return nil, fmt.Errorf("roster %s lists no counties", path)
	}

	r := Roster{}
	for county, ids := range file.Counties {
		if len(ids) == 0 {
			continue
		}
		r[county] = ids
	}
	return r, nil
}

// Counties returns the roster's county names in sorted order.
func (r Roster) Counties() []string {
	out := make([]string, 0, len(r))
	for county := range r {
		out = append(out, county)
	}
	sort.Strings(out)
	return out
}
