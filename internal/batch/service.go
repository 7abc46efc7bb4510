// Package batch runs many facilities through fetch, normalization,
// flattening, and rule evaluation concurrently, and rolls the results up
// into county-level summary statistics.
package batch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"methanewatch/internal/batch/metrics"
	"methanewatch/internal/flatten"
	"methanewatch/internal/normalize"
	"methanewatch/internal/rules"
)

const defaultWorkers = 8

// Service coordinates batch compliance runs. The rulebook is loaded once
// and shared read-only across all workers.
type Service struct {
	fetcher Fetcher
	book    rules.Rulebook
	workers int
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// New builds a batch service around a fetcher and a loaded rulebook.
func New(fetcher Fetcher, book rules.Rulebook, opts ...Option) (*Service, error) {
	if fetcher == nil {
		return nil, errors.New("fetcher is required")
	}
	if book == nil {
		return nil, errors.New("rulebook is required")
	}

	svc := &Service{
		fetcher: fetcher,
		book:    book,
		workers: defaultWorkers,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Run processes the given facilities for one reporting year. Facilities
// whose fetch fails are logged and excluded from the statistics but listed
// in the summary; only context cancellation fails the whole batch.
//
// A bounded worker pool fetches and evaluates concurrently. Workers hand
// results to a single collecting owner over a channel, so the summary is
// never written from two goroutines.
func (s *Service) Run(ctx context.Context, county string, facilityIDs []string, year int) (Summary, error) {
	start := time.Now()
	summary := Summary{
		RunID:  uuid.New().String(),
		County: county,
		Year:   year,
	}

	s.info(ctx, "batch started",
		"run_id", summary.RunID,
		"county", county,
		"facilities", len(facilityIDs),
		"year", year,
	)

	results := make(chan facilityResult)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	go func() {
		for _, id := range facilityIDs {
			g.Go(func() error {
				res := s.processFacility(gctx, id, year)
				select {
				case results <- res:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}
		g.Wait()
		close(results)
	}()

	for res := range results {
		if res.err != nil {
			s.warn(ctx, "skipping facility",
				"run_id", summary.RunID,
				"facility_id", res.facilityID,
				"error", res.err,
			)
		}
		summary.fold(res)
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	summary.finalize()
	s.metrics.ObserveBatch(summary.Facilities, time.Since(start))
	s.info(ctx, "batch finished",
		"run_id", summary.RunID,
		"county", county,
		"facilities", summary.Facilities,
		"skipped", len(summary.Skipped),
		"critical", summary.CriticalFacilities,
	)
	return summary, nil
}

func (s *Service) processFacility(ctx context.Context, facilityID string, year int) facilityResult {
	fetchStart := time.Now()
	raw, err := s.fetcher.Fetch(ctx, facilityID, year)
	if err != nil {
		s.metrics.ObserveFetch("error", time.Since(fetchStart))
		s.metrics.IncrementFacility("error")
		return facilityResult{facilityID: facilityID, err: err}
	}
	s.metrics.ObserveFetch("ok", time.Since(fetchStart))

	raw = normalize.Stamp(raw, facilityID, year)
	facts := flatten.Facility(normalize.Facility(raw))

	verdicts := s.book.CheckAll(facts)
	for _, v := range verdicts {
		s.metrics.IncrementVerdict(v.Status)
	}
	s.metrics.IncrementFacility("ok")

	return facilityResult{
		facilityID: facilityID,
		methane:    FacilityMethane(facts),
		verdicts:   verdicts,
	}
}

func (s *Service) info(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, msg, args...)
	}
}

func (s *Service) warn(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.WarnContext(ctx, msg, args...)
	}
}
