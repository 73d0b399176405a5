// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package api

import (
	"context"
	"net/http"
	"time"
)

// Pinger covers the store's liveness check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service health without touching the judge API.
type HealthHandler struct {
	cache interface {
		Ready() bool
		LastRefresh() time.Time
	}
	probe interface{ Available() bool }
	db    Pinger
}

// NewHealthHandler creates the health endpoints handler.
func NewHealthHandler(cache interface {
	Ready() bool
	LastRefresh() time.Time
}, probe interface{ Available() bool }, db Pinger) *HealthHandler {
	return &HealthHandler{cache: cache, probe: probe, db: db}
}

// healthStatus is the /health payload.
type healthStatus struct {
	Status          string    `json:"status"`
	JudgeAvailable  bool      `json:"judgeAvailable"`
	CatalogReady    bool      `json:"catalogReady"`
	CatalogRefresh  time.Time `json:"catalogRefreshedAt"`
	DatabaseHealthy bool      `json:"databaseHealthy"`
}

// Health handles GET /health: a component-level status summary. The service
// is degraded, not down, while the judge is unreachable; requests still fail
// fast with a clear message.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := healthStatus{
		JudgeAvailable: h.probe.Available(),
		CatalogReady:   h.cache.Ready(),
		CatalogRefresh: h.cache.LastRefresh(),
	}
	status.DatabaseHealthy = h.db.Ping(ctx) == nil

	switch {
	case status.DatabaseHealthy && status.CatalogReady && status.JudgeAvailable:
		status.Status = "healthy"
	case status.DatabaseHealthy:
		status.Status = "degraded"
	default:
		status.Status = "unhealthy"
	}

	rw.Success(status)
}

// Live handles GET /health/live: process liveness only.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// Ready handles GET /health/ready: the service can answer suggestion
// requests only once the catalog holds a snapshot and the store responds.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if !h.cache.Ready() {
		rw.ServiceUnavailable("catalog snapshot not yet available")
		return
	}
	if err := h.db.Ping(ctx); err != nil {
		rw.ServiceUnavailable("database unavailable")
		return
	}

	rw.Success(map[string]string{"status": "ready"})
}
