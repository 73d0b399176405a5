// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package config

import (
	"time"
)

// Config holds all application configuration loaded from environment variables
// and config files.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Upstream:
//     - Judge: External judge API (base URL, rate limiting, availability probe)
//
//  2. Infrastructure:
//     - Database: DuckDB configuration (path, memory, threads)
//     - Catalog: Problem catalog refresh cadence
//     - Housekeeping: Snooze expiry and inactive user purge cadence
//     - Server: HTTP server configuration (port, host, timeout)
//
//  3. API:
//     - API: CORS origins and per-IP rate limiting
//
//  4. Observability:
//     - Logging: Log levels and output formats
//
// Example - Load configuration from environment:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	// cfg.Judge.BaseURL, cfg.Database.Path, etc. are now populated
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from
// multiple goroutines.
type Config struct {
	Judge        JudgeConfig        `koanf:"judge"`
	Database     DatabaseConfig     `koanf:"database"`
	Catalog      CatalogConfig      `koanf:"catalog"`
	Housekeeping HousekeepingConfig `koanf:"housekeeping"`
	Server       ServerConfig       `koanf:"server"`
	API          APIConfig          `koanf:"api"`
	Logging      LoggingConfig      `koanf:"logging"`
}

// JudgeConfig holds connection settings for the external judge API.
//
// Environment Variables:
//   - JUDGE_BASE_URL: Judge API base URL (default: https://codeforces.com/api)
//   - JUDGE_TIMEOUT: Per-request timeout (default: 30s)
//   - JUDGE_RATE_LIMIT: Requests per second to the judge API (default: 2)
//   - JUDGE_RATE_BURST: Burst allowance for the rate limiter (default: 4)
//   - JUDGE_REFERENCE_HANDLE: Handle queried by the availability probe
//   - JUDGE_PROBE_INTERVAL: Availability probe cadence (default: 5m)
//   - JUDGE_VERIFY_WINDOW: Submissions inspected by solve verification (default: 100)
type JudgeConfig struct {
	BaseURL         string        `koanf:"base_url" validate:"required,url"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	RateLimit       float64       `koanf:"rate_limit" validate:"gt=0"`
	RateBurst       int           `koanf:"rate_burst" validate:"gte=1"`
	ReferenceHandle string        `koanf:"reference_handle" validate:"required"`
	ProbeInterval   time.Duration `koanf:"probe_interval" validate:"gt=0"`
	VerifyWindow    int           `koanf:"verify_window" validate:"gte=1"`
}

// DatabaseConfig holds DuckDB settings for the persistence layer.
type DatabaseConfig struct {
	Path                   string `koanf:"path" validate:"required"`
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads" validate:"gte=0"` // 0 = use NumCPU
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"`
}

// CatalogConfig controls the problem catalog refresh loop.
//
// RefreshInterval is the steady-state cadence; RetryDelay is the short pause
// before retrying after a failed refresh. The published snapshot is never
// replaced by a failed refresh.
type CatalogConfig struct {
	RefreshInterval time.Duration `koanf:"refresh_interval" validate:"gt=0"`
	RetryDelay      time.Duration `koanf:"retry_delay" validate:"gt=0"`
}

// HousekeepingConfig controls background persistence maintenance.
//
// Snoozed problems older than SnoozeTTL are expired on every SnoozeSweep
// tick. Users idle for longer than InactiveTTL are purged, along with their
// skipped rows, on every PurgeSweep tick.
type HousekeepingConfig struct {
	SnoozeTTL           time.Duration `koanf:"snooze_ttl" validate:"gt=0"`
	SnoozeSweepInterval time.Duration `koanf:"snooze_sweep_interval" validate:"gt=0"`
	InactiveTTL         time.Duration `koanf:"inactive_ttl" validate:"gt=0"`
	PurgeSweepInterval  time.Duration `koanf:"purge_sweep_interval" validate:"gt=0"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port" validate:"gte=1,lte=65535"`
	Host        string        `koanf:"host" validate:"required"`
	Timeout     time.Duration `koanf:"timeout" validate:"gt=0"`
	Environment string        `koanf:"environment" validate:"oneof=development staging production"`
}

// APIConfig holds API surface settings: CORS and per-IP rate limiting.
type APIConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"gte=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	// Console is human-readable for development.
	// Default: json
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	// Adds slight performance overhead.
	// Default: false
	Caller bool `koanf:"caller"`
}
