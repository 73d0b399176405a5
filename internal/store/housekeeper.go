// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package store

import (
	"context"
	"time"

	"github.com/raunakbh/ascent/internal/config"
	"github.com/raunakbh/ascent/internal/logging"
	"github.com/raunakbh/ascent/internal/metrics"
)

// Housekeeper runs the periodic snooze-expiry and inactive-user sweeps.
// Sweep failures are logged and counted, never fatal; the next tick retries.
type Housekeeper struct {
	db  *DB
	cfg *config.HousekeepingConfig
}

// NewHousekeeper creates a housekeeper over the given store.
func NewHousekeeper(db *DB, cfg *config.HousekeepingConfig) *Housekeeper {
	return &Housekeeper{db: db, cfg: cfg}
}

// Run sweeps once immediately and then on each interval tick until the
// context is canceled. It always returns ctx.Err().
func (h *Housekeeper) Run(ctx context.Context) error {
	snoozeTicker := time.NewTicker(h.cfg.SnoozeSweepInterval)
	defer snoozeTicker.Stop()
	purgeTicker := time.NewTicker(h.cfg.PurgeSweepInterval)
	defer purgeTicker.Stop()

	h.sweepSnoozed(ctx)
	h.sweepInactive(ctx)

	for {
		select {
		case <-snoozeTicker.C:
			h.sweepSnoozed(ctx)
		case <-purgeTicker.C:
			h.sweepInactive(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (h *Housekeeper) sweepSnoozed(ctx context.Context) {
	n, err := h.db.ExpireSnoozed(ctx, h.cfg.SnoozeTTL)
	if err != nil {
		metrics.HousekeepingErrors.WithLabelValues("snooze").Inc()
		logging.Warn().Err(err).Msg("Snooze expiry sweep failed")
		return
	}
	if n > 0 {
		metrics.SnoozesExpired.Add(float64(n))
		logging.Info().Int64("expired", n).Msg("Expired stale snoozes")
	}
}

func (h *Housekeeper) sweepInactive(ctx context.Context) {
	n, err := h.db.PurgeInactive(ctx, h.cfg.InactiveTTL)
	if err != nil {
		metrics.HousekeepingErrors.WithLabelValues("purge").Inc()
		logging.Warn().Err(err).Msg("Inactive user purge failed")
		return
	}
	if n > 0 {
		metrics.UsersPurged.Add(float64(n))
		logging.Info().Int64("purged", n).Msg("Purged inactive users")
	}
}
