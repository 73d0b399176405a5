// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

/*
Package main is the entry point for the Ascent server.

Ascent recommends practice problems to competitive programmers by combining
an hourly-refreshed catalog of judge problems with each user's solve
history, and exposes the result over a small REST API.

# Application Architecture

The server runs under Suture v4 process supervision:

	RootSupervisor ("ascent")
	├── DataSupervisor ("data-layer")
	│   └── Store housekeeper (snooze expiry, inactive-user purge)
	├── SyncSupervisor ("sync-layer")
	│   ├── Catalog refresh loop (hourly, 10s retry on failure)
	│   └── Availability probe (every 5 minutes)
	└── APISupervisor ("api-layer")
	    └── HTTP server (/api/v1 endpoints + /metrics)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Database: DuckDB store for users, snoozed and skipped problems
 3. Judge client: rate-limited HTTP client behind a circuit breaker
 4. Catalog cache, availability probe, profile resolver
 5. HTTP server: chi router with CORS, rate limiting and Prometheus metrics

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority
wins): environment variables, config file (config.yaml), built-in defaults.
Commonly used variables:

	JUDGE_BASE_URL      external judge API root (default https://codeforces.com/api)
	DUCKDB_PATH         database file path (default /data/ascent.duckdb)
	HTTP_PORT           listen port (default 3857)
	LOG_LEVEL           trace|debug|info|warn|error (default info)

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM: the supervisor
tree stops all loops, the HTTP server drains in-flight requests with a 10s
timeout, and the database closes last.
*/
package main
