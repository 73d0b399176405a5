// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

// Package services adapts the long-running loops to the suture.Service
// interface so the supervisor tree can restart them independently.
package services
