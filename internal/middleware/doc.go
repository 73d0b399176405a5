// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

/*
Package middleware provides HTTP middleware for the API surface.

Two components complement the chi built-ins used by the router:

  - Request ID: UUID-based request tracking, honoring upstream proxy IDs
  - Prometheus Metrics: per-route request/response instrumentation

Both are standard func(http.Handler) http.Handler middleware and are
thread-safe; request IDs travel via context.Context and metrics use the
prometheus client's atomic collectors.
*/
package middleware
