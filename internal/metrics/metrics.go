// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - Catalog refresh cycles
// - Judge API requests and circuit breaker state
// - API endpoint latency and throughput
// - Database query performance (DuckDB)
// - Housekeeping sweeps

var (
	// Catalog Metrics
	CatalogRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_refresh_duration_seconds",
			Help:    "Duration of problem catalog refresh cycles in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	CatalogRefreshErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_refresh_errors_total",
			Help: "Total number of failed catalog refresh attempts",
		},
	)

	CatalogLastRefresh = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_last_refresh_timestamp_seconds",
			Help: "Unix timestamp of the last successful catalog refresh",
		},
	)

	CatalogProblems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_problems",
			Help: "Number of problems in the current catalog snapshot",
		},
	)

	// Judge API Metrics
	JudgeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "judge_requests_total",
			Help: "Total number of judge API requests",
		},
		[]string{"method", "status"},
	)

	JudgeRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "judge_request_duration_seconds",
			Help:    "Duration of judge API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	JudgeBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "judge_circuit_breaker_state",
			Help: "Judge API circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	JudgeAvailable = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "judge_available",
			Help: "Whether the availability probe currently reports the judge as reachable (1=yes)",
		},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// Housekeeping Metrics
	SnoozesExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "housekeeping_snoozes_expired_total",
			Help: "Total number of snoozed problems expired by housekeeping",
		},
	)

	UsersPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "housekeeping_users_purged_total",
			Help: "Total number of inactive users purged by housekeeping",
		},
	)

	HousekeepingErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "housekeeping_errors_total",
			Help: "Total number of failed housekeeping sweeps",
		},
		[]string{"sweep"},
	)
)

// RecordCatalogRefresh records a catalog refresh attempt.
func RecordCatalogRefresh(duration time.Duration, problems int, err error) {
	CatalogRefreshDuration.Observe(duration.Seconds())
	if err != nil {
		CatalogRefreshErrors.Inc()
		return
	}
	CatalogLastRefresh.Set(float64(time.Now().Unix()))
	CatalogProblems.Set(float64(problems))
}

// RecordJudgeRequest records a judge API request metric.
func RecordJudgeRequest(method, status string, duration time.Duration) {
	JudgeRequestsTotal.WithLabelValues(method, status).Inc()
	JudgeRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// SetJudgeAvailable publishes the availability probe flag.
func SetJudgeAvailable(available bool) {
	if available {
		JudgeAvailable.Set(1)
	} else {
		JudgeAvailable.Set(0)
	}
}
