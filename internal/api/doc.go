// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

/*
Package api exposes the recommendation service over HTTP.

Endpoints (all under /api/v1):

  - GET /suggest/{handle}/{easy}/{medium}/{hard} with optional ?low=&high=
  - GET /verify/{handle}/{contestId}/{index}
  - GET /swot/{handle}
  - POST /skip/{handle}/{problemId}
  - POST /snooze/{handle}/{problemId}
  - GET /health, /health/live, /health/ready

Plus GET /metrics for Prometheus scraping at the root.

Every response uses the APIResponse envelope. User-facing handlers check the
availability probe and catalog readiness before doing any work, so a broken
upstream produces an immediate 503 instead of a slow failure. Judge sentinel
errors map to stable statuses: unknown handle is 404, unreachable judge is
503, and a malformed upstream payload is 502 with a generic retry message.
*/
package api
