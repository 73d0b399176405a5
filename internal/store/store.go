// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/raunakbh/ascent/internal/config"
	"github.com/raunakbh/ascent/internal/logging"
	"github.com/raunakbh/ascent/internal/metrics"
)

// DB wraps the DuckDB connection holding per-user practice state: last
// access times, snoozed problems, and permanently skipped problems.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// New opens the database and initializes the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Ensure the parent directory exists for file-backed databases.
	// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
		cfg.Path, numThreads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(numThreads)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	db := &DB{conn: conn, cfg: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.initSchema(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.Info().Str("path", cfg.Path).Msg("Database opened")
	return db, nil
}

// Ping verifies the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) initSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			handle VARCHAR PRIMARY KEY,
			last_access TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS snoozed (
			handle VARCHAR NOT NULL,
			problem_id VARCHAR NOT NULL,
			snoozed_at TIMESTAMP NOT NULL,
			PRIMARY KEY (handle, problem_id)
		)`,
		`CREATE TABLE IF NOT EXISTS skipped (
			handle VARCHAR NOT NULL,
			problem_id VARCHAR NOT NULL,
			PRIMARY KEY (handle, problem_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// TouchUser records the user's last access, creating the row on first sight.
func (db *DB) TouchUser(ctx context.Context, handle string) error {
	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (handle, last_access) VALUES (?, ?)
		 ON CONFLICT (handle) DO UPDATE SET last_access = EXCLUDED.last_access`,
		handle, time.Now().UTC())
	metrics.RecordDBQuery("upsert", "users", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to touch user %s: %w", handle, err)
	}
	return nil
}

// SnoozeProblem hides a problem from the user's upsolve list. Snoozing an
// already snoozed problem restarts its expiry clock.
func (db *DB) SnoozeProblem(ctx context.Context, handle, problemID string) error {
	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO snoozed (handle, problem_id, snoozed_at) VALUES (?, ?, ?)
		 ON CONFLICT (handle, problem_id) DO UPDATE SET snoozed_at = EXCLUDED.snoozed_at`,
		handle, problemID, time.Now().UTC())
	metrics.RecordDBQuery("upsert", "snoozed", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to snooze problem %s for %s: %w", problemID, handle, err)
	}
	return nil
}

// SkipProblem permanently marks a problem as not worth suggesting to the
// user again. Skipping twice is a no-op.
func (db *DB) SkipProblem(ctx context.Context, handle, problemID string) error {
	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO skipped (handle, problem_id) VALUES (?, ?)
		 ON CONFLICT (handle, problem_id) DO NOTHING`,
		handle, problemID)
	metrics.RecordDBQuery("insert", "skipped", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to skip problem %s for %s: %w", problemID, handle, err)
	}
	return nil
}

// SnoozedProblems returns the user's currently snoozed problem ids.
func (db *DB) SnoozedProblems(ctx context.Context, handle string) ([]string, error) {
	return db.problemIDs(ctx, "snoozed", handle)
}

// SkippedProblems returns the user's skipped problem ids.
func (db *DB) SkippedProblems(ctx context.Context, handle string) ([]string, error) {
	return db.problemIDs(ctx, "skipped", handle)
}

func (db *DB) problemIDs(ctx context.Context, table, handle string) ([]string, error) {
	start := time.Now()
	// table is one of the two fixed names above, never caller input.
	rows, err := db.conn.QueryContext(ctx,
		fmt.Sprintf(`SELECT problem_id FROM %s WHERE handle = ?`, table), handle)
	metrics.RecordDBQuery("select", table, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s for %s: %w", table, handle, err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", table, err)
	}
	return ids, nil
}

// ExpireSnoozed deletes snoozed rows older than ttl and returns how many
// were removed.
func (db *DB) ExpireSnoozed(ctx context.Context, ttl time.Duration) (int64, error) {
	start := time.Now()
	cutoff := time.Now().UTC().Add(-ttl)
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM snoozed WHERE snoozed_at < ?`, cutoff)
	metrics.RecordDBQuery("delete", "snoozed", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to expire snoozed problems: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count expired snoozed rows: %w", err)
	}
	return n, nil
}

// PurgeInactive deletes users idle for longer than ttl together with their
// skipped and snoozed rows, and returns how many users were removed.
func (db *DB) PurgeInactive(ctx context.Context, ttl time.Duration) (int64, error) {
	start := time.Now()
	cutoff := time.Now().UTC().Add(-ttl)

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		metrics.RecordDBQuery("delete", "users", time.Since(start), err)
		return 0, fmt.Errorf("failed to begin purge transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"skipped", "snoozed"} {
		_, err = tx.ExecContext(ctx, fmt.Sprintf(
			`DELETE FROM %s WHERE handle IN (SELECT handle FROM users WHERE last_access < ?)`,
			table), cutoff)
		if err != nil {
			metrics.RecordDBQuery("delete", table, time.Since(start), err)
			return 0, fmt.Errorf("failed to purge %s rows: %w", table, err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE last_access < ?`, cutoff)
	if err != nil {
		metrics.RecordDBQuery("delete", "users", time.Since(start), err)
		return 0, fmt.Errorf("failed to purge inactive users: %w", err)
	}

	if err := tx.Commit(); err != nil {
		metrics.RecordDBQuery("delete", "users", time.Since(start), err)
		return 0, fmt.Errorf("failed to commit purge transaction: %w", err)
	}
	metrics.RecordDBQuery("delete", "users", time.Since(start), nil)

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged users: %w", err)
	}
	return n, nil
}
