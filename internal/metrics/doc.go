// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package implements application instrumentation using the Prometheus client
library, exposing metrics for monitoring performance, errors, and system health.

# Overview

The package provides metrics for:
  - Catalog refresh duration, errors, and snapshot size
  - Judge API request latency, status, and circuit breaker state
  - Availability probe flag
  - HTTP request latency and throughput
  - Database query performance (DuckDB)
  - Housekeeping sweep counters

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:3857/metrics

# Usage

All metrics are registered via promauto at package init and recorded through
helper functions:

	start := time.Now()
	problems, err := refresh(ctx)
	metrics.RecordCatalogRefresh(time.Since(start), len(problems), err)

# Design Notes

Metrics registration uses promauto for automatic registration with the default
registry. This means importing this package has the side effect of registering
all metrics, which is intentional for simplicity.

Helper functions accept time.Duration and convert to seconds internally,
following Prometheus best practices for base units.
*/
package metrics
