// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

// Package store persists per-user practice state in DuckDB.
//
// Three tables back the recommender: users (handle and last access time,
// driving inactive-user purges), snoozed (problems temporarily hidden from
// upsolve suggestions, expiring after a configurable TTL), and skipped
// (problems the user never wants suggested again). The Housekeeper runs the
// periodic expiry and purge sweeps.
package store
