// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

// Package supervisor provides Suture-based process supervision.
//
// The tree isolates the long-running loops from each other: the catalog
// refresher, the availability probe, the store housekeeper, and the HTTP
// server each restart independently with exponential backoff when they
// fail, and shut down gracefully together on process termination.
package supervisor
