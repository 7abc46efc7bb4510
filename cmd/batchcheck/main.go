// Command batchcheck runs county-level methane compliance batches: it loads
// the rulebook and the county roster, fetches each county's facility records,
// evaluates every rule, and prints one JSON summary per county.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"methanewatch/internal/batch"
	"methanewatch/internal/batch/fetch"
	batchmetrics "methanewatch/internal/batch/metrics"
	"methanewatch/internal/batch/roster"
	"methanewatch/internal/platform/config"
	"methanewatch/internal/platform/logger"
	"methanewatch/internal/platform/redis"
	"methanewatch/internal/rules"
)

// main wires dependencies and keeps the run lifecycle small. Business logic
// lives in the internal packages.
func main() {
	cfg := config.FromEnv()

	flag.StringVar(&cfg.RulesDir, "rules", cfg.RulesDir, "directory of rule JSON files")
	flag.StringVar(&cfg.RecordsDir, "records", cfg.RecordsDir, "directory of raw facility record JSON files")
	flag.StringVar(&cfg.RosterPath, "roster", cfg.RosterPath, "county roster YAML file")
	flag.IntVar(&cfg.Year, "year", cfg.Year, "reporting year")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent fetch workers")
	flag.Parse()

	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("batchcheck failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	book, err := rules.LoadDir(cfg.RulesDir)
	if err != nil {
		return err
	}
	if len(book) == 0 {
		return fmt.Errorf("no rules loaded from %s", cfg.RulesDir)
	}
	log.Info("rulebook loaded", "rules", len(book), "dir", cfg.RulesDir)

	counties, err := roster.Load(cfg.RosterPath)
	if err != nil {
		return err
	}

	dir, err := fetch.NewDir(cfg.RecordsDir)
	if err != nil {
		return err
	}
	var fetcher batch.Fetcher = dir

	cache, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if cache != nil {
		defer cache.Close()
		fetcher = batch.NewCached(fetcher, cache.Client,
			batch.WithCacheTTL(cfg.Redis.CacheTTL),
			batch.WithCacheLogger(log))
		log.Info("record cache enabled", "url", cfg.Redis.URL)
	}

	fetcher = batch.NewRetrying(fetcher,
		batch.WithFetchTimeout(cfg.FetchTimeout),
		batch.WithFetchRetries(cfg.FetchRetries))

	svc, err := batch.New(fetcher, book,
		batch.WithWorkers(cfg.Workers),
		batch.WithLogger(log),
		batch.WithMetrics(batchmetrics.New()))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for _, county := range counties.Counties() {
		summary, err := svc.Run(ctx, county, counties[county], cfg.Year)
		if err != nil {
			return fmt.Errorf("county %s: %w", county, err)
		}
		if err := enc.Encode(summary); err != nil {
			return err
		}
	}
	return nil
}
