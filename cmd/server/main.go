// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/raunakbh/ascent/internal/api"
	"github.com/raunakbh/ascent/internal/catalog"
	"github.com/raunakbh/ascent/internal/config"
	"github.com/raunakbh/ascent/internal/judge"
	"github.com/raunakbh/ascent/internal/logging"
	"github.com/raunakbh/ascent/internal/profile"
	"github.com/raunakbh/ascent/internal/store"
	"github.com/raunakbh/ascent/internal/supervisor"
	"github.com/raunakbh/ascent/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config is unavailable, so the default logger has to do
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("judge_url", cfg.Judge.BaseURL).
		Str("db_path", cfg.Database.Path).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Ascent")

	db, err := store.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	// Judge client behind a circuit breaker so a flapping upstream trips
	// fast instead of piling up timeouts.
	client := judge.NewBreakerClient(&cfg.Judge)
	probe := judge.NewProbe(client, &cfg.Judge)
	cache := catalog.NewCache(client, &cfg.Catalog)
	resolver := profile.NewResolver(client, db)

	handler := api.NewHandler(client, probe, cache, resolver, db, cfg.Judge.VerifyWindow)
	health := api.NewHealthHandler(cache, probe, db)
	router := api.NewRouter(handler, health, &cfg.API)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Routes(),
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	tree.AddDataService(services.NewHousekeeperService(store.NewHousekeeper(db, &cfg.Housekeeping)))
	tree.AddSyncService(services.NewCatalogRefreshService(cache))
	tree.AddSyncService(services.NewAvailabilityProbeService(probe))
	tree.AddAPIService(services.NewHTTPServerService(server, supervisor.DefaultTreeConfig().ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
