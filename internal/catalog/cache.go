// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/raunakbh/ascent/internal/config"
	"github.com/raunakbh/ascent/internal/judge"
	"github.com/raunakbh/ascent/internal/logging"
	"github.com/raunakbh/ascent/internal/metrics"
)

// Cache maintains the current problem catalog snapshot.
//
// The snapshot is published through an atomic pointer: readers always see a
// complete, immutable snapshot and never block on a refresh in progress. A
// failed refresh leaves the previous snapshot untouched.
//
// Thread Safety: Snapshot() and Ready() are safe from any goroutine.
// Refresh execution is serialized by refreshMu.
type Cache struct {
	client    judge.API
	interval  time.Duration
	retry     time.Duration
	snapshot  atomic.Pointer[Snapshot]
	refreshMu sync.Mutex // Prevents concurrent refresh execution
	lastMu    sync.RWMutex
	lastOK    time.Time
}

// NewCache creates a catalog cache. The cache is empty until the first
// successful Refresh; Run performs one immediately.
func NewCache(client judge.API, cfg *config.CatalogConfig) *Cache {
	return &Cache{
		client:   client,
		interval: cfg.RefreshInterval,
		retry:    cfg.RetryDelay,
	}
}

// Snapshot returns the current catalog snapshot, or nil before the first
// successful refresh.
func (c *Cache) Snapshot() *Snapshot {
	return c.snapshot.Load()
}

// Ready reports whether a snapshot has been published.
func (c *Cache) Ready() bool {
	return c.snapshot.Load() != nil
}

// LastRefresh returns the time of the last successful refresh.
func (c *Cache) LastRefresh() time.Time {
	c.lastMu.RLock()
	defer c.lastMu.RUnlock()
	return c.lastOK
}

// Refresh fetches the problem set and publishes a new snapshot.
// On failure the published snapshot is left untouched and the error is
// returned; callers decide the retry policy.
func (c *Cache) Refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	start := time.Now()

	result, err := c.client.ProblemSet(ctx)
	if err != nil {
		metrics.RecordCatalogRefresh(time.Since(start), 0, err)
		logging.Warn().Err(err).Msg("Catalog refresh failed")
		return err
	}

	snap := buildSnapshot(result)
	c.snapshot.Store(snap)

	c.lastMu.Lock()
	c.lastOK = time.Now()
	c.lastMu.Unlock()

	metrics.RecordCatalogRefresh(time.Since(start), len(snap.Problems), nil)
	logging.Info().
		Int("problems", len(snap.Problems)).
		Dur("took", time.Since(start)).
		Msg("Catalog refreshed")
	return nil
}

// Run refreshes immediately and then on every interval tick until the
// context is canceled. A failed refresh is retried after the short retry
// delay instead of waiting a full interval. It always returns ctx.Err().
func (c *Cache) Run(ctx context.Context) error {
	retryTimer := time.NewTimer(c.retry)
	retryTimer.Stop() // armed only after a failed refresh
	defer retryTimer.Stop()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	attempt := func() {
		if err := c.Refresh(ctx); err != nil && ctx.Err() == nil {
			retryTimer.Reset(c.retry)
		}
	}

	attempt()

	for {
		select {
		case <-ticker.C:
			attempt()
		case <-retryTimer.C:
			attempt()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
