// Package config assembles runtime configuration from the environment so
// main stays lean.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything a batch compliance run needs.
type Config struct {
	RulesDir     string
	RecordsDir   string
	RosterPath   string
	Year         int
	Workers      int
	FetchTimeout time.Duration
	FetchRetries int
	LogLevel     string
	Redis        RedisConfig
}

// RedisConfig configures the optional record cache. An empty URL disables
// caching entirely.
type RedisConfig struct {
	URL         string
	CacheTTL    time.Duration
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

// FromEnv builds a Config from MW_* environment variables, with defaults
// suitable for local runs.
func FromEnv() Config {
	return Config{
		RulesDir:     envStr("MW_RULES_DIR", "rules"),
		RecordsDir:   envStr("MW_RECORDS_DIR", "records"),
		RosterPath:   envStr("MW_ROSTER", "counties.yaml"),
		Year:         envInt("MW_YEAR", 2023),
		Workers:      envInt("MW_WORKERS", 8),
		FetchTimeout: envDuration("MW_FETCH_TIMEOUT", 30*time.Second),
		FetchRetries: envInt("MW_FETCH_RETRIES", 2),
		LogLevel:     envStr("MW_LOG_LEVEL", "info"),
		Redis: RedisConfig{
			URL:         os.Getenv("MW_REDIS_URL"),
			CacheTTL:    envDuration("MW_CACHE_TTL", 24*time.Hour),
			DialTimeout: envDuration("MW_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout: envDuration("MW_REDIS_READ_TIMEOUT", 3*time.Second),
		},
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
