// Package fetch provides concrete record fetchers for the batch layer.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"methanewatch/internal/normalize"
)

// Dir fetches raw facility records from a directory of JSON files named
// <facility_id>_<year>.json, one file per facility-year. The upstream
// report scraper writes this layout.
type Dir struct {
	root string
}

// NewDir builds a directory fetcher rooted at root.
func NewDir(root string) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("record directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("record directory %s: not a directory", root)
	}
	return &Dir{root: root}, nil
}

func (d *Dir) Fetch(ctx context.Context, facilityID string, year int) (normalize.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(d.root, fmt.Sprintf("%s_%d.json", facilityID, year))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading record for facility %s year %d: %w", facilityID, year, err)
	}

	var raw normalize.RawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing record for facility %s year %d: %w", facilityID, year, err)
	}
	return raw, nil
}
