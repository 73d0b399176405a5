// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package judge

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/raunakbh/ascent/internal/config"
	"github.com/raunakbh/ascent/internal/logging"
	"github.com/raunakbh/ascent/internal/metrics"
)

// Probe tracks judge availability with a periodically refreshed flag.
//
// Every interval it queries user.info for a fixed reference handle; the flag
// is true only when that call yields a well-formed success payload. All
// user-facing query paths consult Available() and fail fast without issuing
// further judge calls while the flag is false.
//
// The flag starts false so readiness reflects an actual successful probe,
// never an assumption.
type Probe struct {
	client    API
	handle    string
	interval  time.Duration
	available atomic.Bool
}

// NewProbe creates an availability probe. The probe does not run on its own;
// call Check once at startup and Run for the periodic loop.
func NewProbe(client API, cfg *config.JudgeConfig) *Probe {
	return &Probe{
		client:   client,
		handle:   cfg.ReferenceHandle,
		interval: cfg.ProbeInterval,
	}
}

// Available reports the outcome of the most recent probe.
func (p *Probe) Available() bool {
	return p.available.Load()
}

// Check performs a single probe and updates the flag. Any transport error,
// malformed body, or FAILED envelope marks the judge unavailable.
func (p *Probe) Check(ctx context.Context) {
	_, err := p.client.UserInfo(ctx, p.handle)
	up := err == nil
	prev := p.available.Swap(up)
	metrics.SetJudgeAvailable(up)

	if up != prev {
		if up {
			logging.Info().Msg("judge is reachable")
		} else {
			logging.Warn().Err(err).Msg("judge appears to be down")
		}
	}
}

// Run probes immediately and then on every interval tick until the context
// is canceled. It always returns ctx.Err().
func (p *Probe) Run(ctx context.Context) error {
	p.Check(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.Check(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
