// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/raunakbh/ascent/internal/config"
	"github.com/raunakbh/ascent/internal/middleware"
)

// Router assembles the HTTP surface: the recommendation API under /api/v1,
// health endpoints, and the Prometheus scrape endpoint.
type Router struct {
	handler *Handler
	health  *HealthHandler
	cfg     *config.APIConfig
}

// NewRouter creates a router over the given handlers.
func NewRouter(handler *Handler, health *HealthHandler, cfg *config.APIConfig) *Router {
	return &Router{handler: handler, health: health, cfg: cfg}
}

// Routes builds the chi handler tree.
func (router *Router) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: router.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.rateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/suggest/{handle}/{easy}/{medium}/{hard}", router.handler.Suggest)
		r.Get("/verify/{handle}/{contestId}/{index}", router.handler.Verify)
		r.Get("/swot/{handle}", router.handler.Swot)
		r.Post("/skip/{handle}/{problemId}", router.handler.Skip)
		r.Post("/snooze/{handle}/{problemId}", router.handler.Snooze)

		r.Get("/health", router.health.Health)
		r.Get("/health/live", router.health.Live)
		r.Get("/health/ready", router.health.Ready)
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// rateLimit builds the per-IP limiter, or a no-op when disabled.
func (router *Router) rateLimit() func(http.Handler) http.Handler {
	if router.cfg.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		router.cfg.RateLimitReqs,
		router.cfg.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
	)
}
