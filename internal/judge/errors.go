// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package judge

import "errors"

// Sentinel errors for the judge API. Handlers map these to HTTP statuses;
// everything else is treated as an internal failure.
var (
	// ErrUpstreamUnavailable means the judge could not be reached or the
	// circuit breaker rejected the call. User-facing paths fail fast on it.
	ErrUpstreamUnavailable = errors.New("judge unavailable")

	// ErrUserNotFound means the judge rejected the handle.
	ErrUserNotFound = errors.New("user not found")

	// ErrMalformedPayload means the judge answered with a body that does not
	// parse as the expected envelope. Treated as an upstream fault, never as
	// partial data.
	ErrMalformedPayload = errors.New("malformed judge payload")
)
