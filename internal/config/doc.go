// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

/*
Package config provides centralized configuration management for Ascent.

This package handles loading, validation, and parsing of configuration for all
application components. It ensures consistent configuration across the backend
services and provides sensible defaults for optional settings.

# Configuration Sources

Configuration is loaded with Koanf v2 from three layered sources, later layers
overriding earlier ones:

  - Built-in defaults
  - Optional YAML config file (config.yaml, or CONFIG_PATH)
  - Environment variables

# Configuration Structure

The package organizes configuration into logical groups:

  - JudgeConfig: External judge API connection, rate limiting, probe cadence
  - DatabaseConfig: DuckDB connection and performance tuning
  - CatalogConfig: Problem catalog refresh cadence
  - HousekeepingConfig: Snooze expiry and inactive user purge cadence
  - ServerConfig: HTTP server settings (host, port, timeouts)
  - APIConfig: CORS origins and per-IP rate limiting
  - LoggingConfig: Log levels and output formats

# Environment Variables

Judge API (JudgeConfig):
  - JUDGE_BASE_URL: Judge API base URL (default: https://codeforces.com/api)
  - JUDGE_TIMEOUT: Per-request timeout (default: 30s)
  - JUDGE_RATE_LIMIT: Requests per second (default: 2)
  - JUDGE_RATE_BURST: Rate limiter burst (default: 4)
  - JUDGE_REFERENCE_HANDLE: Handle queried by the availability probe
  - JUDGE_PROBE_INTERVAL: Probe cadence (default: 5m)
  - JUDGE_VERIFY_WINDOW: Submissions inspected by verification (default: 100)

Database (DatabaseConfig):
  - DUCKDB_PATH: Database file path (default: /data/ascent.duckdb)
  - DUCKDB_THREADS: Thread count (default: CPU count)
  - DUCKDB_MAX_MEMORY: Memory limit (default: 512MB)

Catalog (CatalogConfig):
  - CATALOG_REFRESH_INTERVAL: Steady-state refresh cadence (default: 1h)
  - CATALOG_RETRY_DELAY: Retry pause after failed refresh (default: 10s)

Housekeeping (HousekeepingConfig):
  - SNOOZE_TTL: Snoozed problem lifetime (default: 48h)
  - SNOOZE_SWEEP_INTERVAL: Snooze expiry sweep cadence (default: 1h)
  - INACTIVE_TTL: Idle user lifetime (default: 360h)
  - PURGE_SWEEP_INTERVAL: Inactive purge cadence (default: 24h)

HTTP Server (ServerConfig):
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 3857)
  - HTTP_TIMEOUT: Request timeout (default: 30s)
  - ENVIRONMENT: development, staging, or production

API (APIConfig):
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS: Requests per window per IP (default: 100)
  - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
  - DISABLE_RATE_LIMIT: Disable rate limiting (default: false)

Logging (LoggingConfig):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file:line (default: false)

# Usage Example

	import "github.com/raunakbh/ascent/internal/config"

	cfg, err := config.Load()
	if err != nil {
	    log.Fatalf("Failed to load config: %v", err)
	}

	fmt.Printf("Starting server on %s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Judge API: %s\n", cfg.Judge.BaseURL)
	fmt.Printf("Database: %s\n", cfg.Database.Path)

# Validation

Field-level rules are expressed as go-playground/validator struct tags (URL
formats, port range, positive durations, enum values). Cross-field checks are
performed by hand: judge timeout must be shorter than the probe interval, and
housekeeping sweep intervals must not exceed their TTLs.

# Thread Safety

The Config struct is immutable after Load() returns, making it safe for
concurrent access from multiple goroutines without synchronization.
*/
package config
