// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	// Judge defaults
	if cfg.Judge.BaseURL != "https://codeforces.com/api" {
		t.Errorf("Judge.BaseURL = %q, want https://codeforces.com/api", cfg.Judge.BaseURL)
	}
	if cfg.Judge.Timeout != 30*time.Second {
		t.Errorf("Judge.Timeout = %v, want 30s", cfg.Judge.Timeout)
	}
	if cfg.Judge.ProbeInterval != 5*time.Minute {
		t.Errorf("Judge.ProbeInterval = %v, want 5m", cfg.Judge.ProbeInterval)
	}
	if cfg.Judge.VerifyWindow != 100 {
		t.Errorf("Judge.VerifyWindow = %d, want 100", cfg.Judge.VerifyWindow)
	}
	if cfg.Judge.ReferenceHandle == "" {
		t.Error("Judge.ReferenceHandle should have a default")
	}

	// Database defaults
	if cfg.Database.Path != "/data/ascent.duckdb" {
		t.Errorf("Database.Path = %q, want /data/ascent.duckdb", cfg.Database.Path)
	}
	if cfg.Database.MaxMemory != "512MB" {
		t.Errorf("Database.MaxMemory = %q, want 512MB", cfg.Database.MaxMemory)
	}

	// Catalog defaults
	if cfg.Catalog.RefreshInterval != time.Hour {
		t.Errorf("Catalog.RefreshInterval = %v, want 1h", cfg.Catalog.RefreshInterval)
	}
	if cfg.Catalog.RetryDelay != 10*time.Second {
		t.Errorf("Catalog.RetryDelay = %v, want 10s", cfg.Catalog.RetryDelay)
	}

	// Housekeeping defaults
	if cfg.Housekeeping.SnoozeTTL != 48*time.Hour {
		t.Errorf("Housekeeping.SnoozeTTL = %v, want 48h", cfg.Housekeeping.SnoozeTTL)
	}
	if cfg.Housekeeping.InactiveTTL != 15*24*time.Hour {
		t.Errorf("Housekeeping.InactiveTTL = %v, want 360h", cfg.Housekeeping.InactiveTTL)
	}

	// Server defaults
	if cfg.Server.Port != 3857 {
		t.Errorf("Server.Port = %d, want 3857", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}

	// API defaults
	if cfg.API.RateLimitReqs != 100 {
		t.Errorf("API.RateLimitReqs = %d, want 100", cfg.API.RateLimitReqs)
	}
	if len(cfg.API.CORSOrigins) != 1 || cfg.API.CORSOrigins[0] != "*" {
		t.Errorf("API.CORSOrigins = %v, want [*]", cfg.API.CORSOrigins)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

// TestDefaultConfigValidates guards against defaults that fail their own rules
func TestDefaultConfigValidates(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaultConfig() should validate: %v", err)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Judge
		{"JUDGE_BASE_URL", "judge.base_url"},
		{"JUDGE_TIMEOUT", "judge.timeout"},
		{"JUDGE_RATE_LIMIT", "judge.rate_limit"},
		{"JUDGE_REFERENCE_HANDLE", "judge.reference_handle"},
		{"JUDGE_PROBE_INTERVAL", "judge.probe_interval"},

		// Database
		{"DUCKDB_PATH", "database.path"},
		{"DUCKDB_MAX_MEMORY", "database.max_memory"},

		// Catalog
		{"CATALOG_REFRESH_INTERVAL", "catalog.refresh_interval"},
		{"CATALOG_RETRY_DELAY", "catalog.retry_delay"},

		// Housekeeping
		{"SNOOZE_TTL", "housekeeping.snooze_ttl"},
		{"INACTIVE_TTL", "housekeeping.inactive_ttl"},

		// Server
		{"HTTP_PORT", "server.port"},
		{"HTTP_HOST", "server.host"},
		{"HTTP_TIMEOUT", "server.timeout"},

		// API
		{"CORS_ORIGINS", "api.cors_origins"},
		{"RATE_LIMIT_REQUESTS", "api.rate_limit_reqs"},
		{"DISABLE_RATE_LIMIT", "api.rate_limit_disabled"},

		// Logging
		{"LOG_LEVEL", "logging.level"},
		{"LOG_FORMAT", "logging.format"},

		// Unknown (should return empty to skip)
		{"PATH", ""},
		{"HOME", ""},
		{"RANDOM_VAR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := envTransformFunc(tt.input)
			if got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestLoadWithEnvOverrides verifies the ENV > defaults precedence
func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JUDGE_REFERENCE_HANDLE", "tourist")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Judge.ReferenceHandle != "tourist" {
		t.Errorf("Judge.ReferenceHandle = %q, want tourist", cfg.Judge.ReferenceHandle)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if len(cfg.API.CORSOrigins) != 2 {
		t.Fatalf("API.CORSOrigins = %v, want 2 origins", cfg.API.CORSOrigins)
	}
	if cfg.API.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("API.CORSOrigins[0] = %q", cfg.API.CORSOrigins[0])
	}
}

// TestLoadWithConfigFile verifies the file layer between defaults and env
func TestLoadWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := strings.Join([]string{
		"server:",
		"  port: 9001",
		"judge:",
		"  reference_handle: Petr",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 9001 {
		t.Errorf("Server.Port = %d, want 9001 from config file", cfg.Server.Port)
	}
	if cfg.Judge.ReferenceHandle != "Petr" {
		t.Errorf("Judge.ReferenceHandle = %q, want Petr from config file", cfg.Judge.ReferenceHandle)
	}
	// Untouched fields keep defaults
	if cfg.Catalog.RefreshInterval != time.Hour {
		t.Errorf("Catalog.RefreshInterval = %v, want default 1h", cfg.Catalog.RefreshInterval)
	}
}

func TestValidateRejectsBadJudgeURL(t *testing.T) {
	cfg := defaultConfig()
	cfg.Judge.BaseURL = "ftp://codeforces.com/api"

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for non-http scheme")
	}

	cfg = defaultConfig()
	cfg.Judge.BaseURL = "https://codeforces.com/api/"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for trailing slash")
	}
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := defaultConfig()
	cfg.Server.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for port 0")
	}

	cfg = defaultConfig()
	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for port 70000")
	}
}

func TestValidateRejectsProbeFasterThanTimeout(t *testing.T) {
	cfg := defaultConfig()
	cfg.Judge.Timeout = 10 * time.Minute
	cfg.Judge.ProbeInterval = 5 * time.Minute

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error when timeout exceeds probe interval")
	}
}

func TestValidateRejectsSweepExceedingTTL(t *testing.T) {
	cfg := defaultConfig()
	cfg.Housekeeping.SnoozeSweepInterval = 72 * time.Hour

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for sweep interval exceeding TTL")
	}
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	cfg := defaultConfig()
	cfg.Logging.Level = "verbose"

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown log level")
	}
}
