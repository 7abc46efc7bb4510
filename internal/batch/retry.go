package batch

import (
	"context"
	"fmt"
	"time"

	"methanewatch/internal/normalize"
)

const (
	defaultFetchTimeout = 30 * time.Second
	defaultFetchRetries = 2
	defaultBackoffStep  = 700 * time.Millisecond
)

// retryingFetcher decorates a Fetcher with a per-attempt timeout and a small
// bounded retry count using linear backoff. Exhausting retries yields an
// error result for that facility rather than blocking the batch.
type retryingFetcher struct {
	next    Fetcher
	timeout time.Duration
	retries int
	backoff time.Duration
}

// RetryOption configures a retrying fetcher.
type RetryOption func(*retryingFetcher)

func WithFetchTimeout(d time.Duration) RetryOption {
	return func(f *retryingFetcher) {
		f.timeout = d
	}
}

func WithFetchRetries(n int) RetryOption {
	return func(f *retryingFetcher) {
		f.retries = n
	}
}

func WithBackoffStep(d time.Duration) RetryOption {
	return func(f *retryingFetcher) {
		f.backoff = d
	}
}

// NewRetrying wraps next with timeout and retry behavior.
func NewRetrying(next Fetcher, opts ...RetryOption) Fetcher {
	f := &retryingFetcher{
		next:    next,
		timeout: defaultFetchTimeout,
		retries: defaultFetchRetries,
		backoff: defaultBackoffStep,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *retryingFetcher) Fetch(ctx context.Context, facilityID string, year int) (normalize.RawRecord, error) {
	var lastErr error
	for attempt := 0; attempt <= f.retries; attempt++ {
		if attempt > 0 {
			// Linear backoff: step * attempt number.
			select {
			case <-time.After(f.backoff * time.Duration(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
		raw, err := f.next.Fetch(attemptCtx, facilityID, year)
		cancel()
		if err == nil {
			return raw, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("fetching facility %s year %d after %d attempts: %w",
		facilityID, year, f.retries+1, lastErr)
}
