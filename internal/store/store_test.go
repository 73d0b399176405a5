// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/raunakbh/ascent/internal/config"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(&config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "256MB",
		Threads:   1,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestTouchUserUpsert(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := db.TouchUser(ctx, "alice"); err != nil {
		t.Fatalf("TouchUser failed: %v", err)
	}
	// Second touch must update, not conflict.
	if err := db.TouchUser(ctx, "alice"); err != nil {
		t.Fatalf("second TouchUser failed: %v", err)
	}

	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("users count = %d, want 1", count)
	}
}

func TestSnoozeAndSkipRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := db.SnoozeProblem(ctx, "alice", "1915C"); err != nil {
		t.Fatalf("SnoozeProblem failed: %v", err)
	}
	if err := db.SnoozeProblem(ctx, "alice", "1915C"); err != nil {
		t.Fatalf("re-snooze failed: %v", err)
	}
	if err := db.SkipProblem(ctx, "alice", "1800A"); err != nil {
		t.Fatalf("SkipProblem failed: %v", err)
	}
	if err := db.SkipProblem(ctx, "alice", "1800A"); err != nil {
		t.Fatalf("re-skip failed: %v", err)
	}

	snoozed, err := db.SnoozedProblems(ctx, "alice")
	if err != nil {
		t.Fatalf("SnoozedProblems failed: %v", err)
	}
	if len(snoozed) != 1 || snoozed[0] != "1915C" {
		t.Errorf("snoozed = %v, want [1915C]", snoozed)
	}

	skipped, err := db.SkippedProblems(ctx, "alice")
	if err != nil {
		t.Fatalf("SkippedProblems failed: %v", err)
	}
	if len(skipped) != 1 || skipped[0] != "1800A" {
		t.Errorf("skipped = %v, want [1800A]", skipped)
	}

	// Other users see nothing.
	other, err := db.SnoozedProblems(ctx, "bob")
	if err != nil {
		t.Fatalf("SnoozedProblems for bob failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("bob snoozed = %v, want empty", other)
	}
}

func TestExpireSnoozed(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := db.SnoozeProblem(ctx, "alice", "old"); err != nil {
		t.Fatalf("SnoozeProblem failed: %v", err)
	}
	if err := db.SnoozeProblem(ctx, "alice", "fresh"); err != nil {
		t.Fatalf("SnoozeProblem failed: %v", err)
	}

	// Backdate one row past the TTL.
	stale := time.Now().UTC().Add(-49 * time.Hour)
	if _, err := db.conn.ExecContext(ctx,
		`UPDATE snoozed SET snoozed_at = ? WHERE problem_id = 'old'`, stale); err != nil {
		t.Fatalf("backdate failed: %v", err)
	}

	n, err := db.ExpireSnoozed(ctx, 48*time.Hour)
	if err != nil {
		t.Fatalf("ExpireSnoozed failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expired = %d, want 1", n)
	}

	remaining, err := db.SnoozedProblems(ctx, "alice")
	if err != nil {
		t.Fatalf("SnoozedProblems failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0] != "fresh" {
		t.Errorf("remaining = %v, want [fresh]", remaining)
	}
}

func TestPurgeInactive(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := db.TouchUser(ctx, "stale"); err != nil {
		t.Fatalf("TouchUser failed: %v", err)
	}
	if err := db.TouchUser(ctx, "active"); err != nil {
		t.Fatalf("TouchUser failed: %v", err)
	}
	if err := db.SkipProblem(ctx, "stale", "1A"); err != nil {
		t.Fatalf("SkipProblem failed: %v", err)
	}
	if err := db.SnoozeProblem(ctx, "stale", "2B"); err != nil {
		t.Fatalf("SnoozeProblem failed: %v", err)
	}

	old := time.Now().UTC().Add(-16 * 24 * time.Hour)
	if _, err := db.conn.ExecContext(ctx,
		`UPDATE users SET last_access = ? WHERE handle = 'stale'`, old); err != nil {
		t.Fatalf("backdate failed: %v", err)
	}

	n, err := db.PurgeInactive(ctx, 15*24*time.Hour)
	if err != nil {
		t.Fatalf("PurgeInactive failed: %v", err)
	}
	if n != 1 {
		t.Errorf("purged = %d, want 1", n)
	}

	skipped, err := db.SkippedProblems(ctx, "stale")
	if err != nil {
		t.Fatalf("SkippedProblems failed: %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("stale skipped rows survived the purge: %v", skipped)
	}

	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("users count = %d, want 1 (only active)", count)
	}
}

// noCountDriver executes everything but cannot report affected row counts,
// mimicking drivers without that support.
type noCountDriver struct{}

func (noCountDriver) Open(string) (driver.Conn, error) { return noCountConn{}, nil }

type noCountConn struct{}

func (noCountConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not implemented") }
func (noCountConn) Close() error                        { return nil }
func (noCountConn) Begin() (driver.Tx, error)           { return noCountTx{}, nil }

func (noCountConn) ExecContext(context.Context, string, []driver.NamedValue) (driver.Result, error) {
	return noCountResult{}, nil
}

type noCountTx struct{}

func (noCountTx) Commit() error   { return nil }
func (noCountTx) Rollback() error { return nil }

type noCountResult struct{}

func (noCountResult) LastInsertId() (int64, error) { return 0, nil }
func (noCountResult) RowsAffected() (int64, error) { return 0, errors.New("row count unsupported") }

func TestSweepsSurfaceRowCountErrors(t *testing.T) {
	sql.Register("nocount", noCountDriver{})
	conn, err := sql.Open("nocount", "")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	db := &DB{conn: conn}
	ctx := context.Background()

	if _, err := db.ExpireSnoozed(ctx, 48*time.Hour); err == nil {
		t.Error("ExpireSnoozed swallowed the row count error")
	}
	if _, err := db.PurgeInactive(ctx, 360*time.Hour); err == nil {
		t.Error("PurgeInactive swallowed the row count error")
	}
}

func TestHousekeeperRunStopsOnCancel(t *testing.T) {
	db := testDB(t)
	h := NewHousekeeper(db, &config.HousekeepingConfig{
		SnoozeTTL:           48 * time.Hour,
		SnoozeSweepInterval: time.Hour,
		InactiveTTL:         360 * time.Hour,
		PurgeSweepInterval:  time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}
