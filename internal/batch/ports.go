package batch

import (
	"context"

	"methanewatch/internal/normalize"
)

//go:generate mockgen -source=ports.go -destination=mocks/fetcher.go -package=mocks

// Fetcher retrieves the raw reporting record for one facility-year. Fetch
// returns an error for unreachable or unparsable records; the batch treats
// that as a per-facility failure, never a batch failure.
type Fetcher interface {
	Fetch(ctx context.Context, facilityID string, year int) (normalize.RawRecord, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, facilityID string, year int) (normalize.RawRecord, error)

func (f FetcherFunc) Fetch(ctx context.Context, facilityID string, year int) (normalize.RawRecord, error) {
	return f(ctx, facilityID, year)
}
