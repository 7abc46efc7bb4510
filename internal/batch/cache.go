package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"methanewatch/internal/normalize"
)

const defaultCacheTTL = 24 * time.Hour

// cachedFetcher is a read-through redis cache in front of a Fetcher. Raw
// records barely change within a reporting year, so cache failures degrade
// to the inner fetcher instead of failing the facility.
type cachedFetcher struct {
	next   Fetcher
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// CacheOption configures a cached fetcher.
type CacheOption func(*cachedFetcher)

func WithCacheTTL(ttl time.Duration) CacheOption {
	return func(f *cachedFetcher) {
		f.ttl = ttl
	}
}

func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(f *cachedFetcher) {
		f.logger = logger
	}
}

// NewCached wraps next with a redis read-through cache.
func NewCached(next Fetcher, client *redis.Client, opts ...CacheOption) Fetcher {
	f := &cachedFetcher{
		next:   next,
		client: client,
		ttl:    defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func cacheKey(facilityID string, year int) string {
	return fmt.Sprintf("methanewatch:record:%s:%d", facilityID, year)
}

func (f *cachedFetcher) Fetch(ctx context.Context, facilityID string, year int) (normalize.RawRecord, error) {
	key := cacheKey(facilityID, year)

	data, err := f.client.Get(ctx, key).Bytes()
	if err == nil {
		var raw normalize.RawRecord
		if jsonErr := json.Unmarshal(data, &raw); jsonErr == nil {
			return raw, nil
		}
		// Unreadable cache entries are refetched and overwritten.
		f.warn(ctx, "discarding corrupt cache entry", "key", key)
	} else if !errors.Is(err, redis.Nil) {
		f.warn(ctx, "cache read failed", "key", key, "error", err)
	}

	raw, err := f.next.Fetch(ctx, facilityID, year)
	if err != nil {
		return nil, err
	}

	if data, jsonErr := json.Marshal(raw); jsonErr == nil {
		if setErr := f.client.Set(ctx, key, data, f.ttl).Err(); setErr != nil {
			f.warn(ctx, "cache write failed", "key", key, "error", setErr)
		}
	}
	return raw, nil
}

func (f *cachedFetcher) warn(ctx context.Context, msg string, args ...any) {
	if f.logger != nil {
		f.logger.WarnContext(ctx, msg, args...)
	}
}
