// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/aniscout/internal/config"
	"github.com/tomtom215/aniscout/internal/logging"
	"github.com/tomtom215/aniscout/internal/supervisor"
	"github.com/tomtom215/aniscout/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LoggingOptions())
	logger := logging.WithComponent("main")

	logger.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Bool("translation", cfg.Translation.Enabled).
		Str("language_pair", cfg.Translation.Source+"|"+cfg.Translation.Target).
		Bool("rate_limit", !cfg.Security.RateLimitDisabled).
		Str("gemini_key", logging.SanitizeToken(cfg.Gemini.APIKey)).
		Msg("Starting Aniscout with supervisor tree")
	if cfg.HasWildcardCORS() {
		logger.Warn().Msg("CORS allows any origin; set CORS_ORIGINS to restrict it")
	}

	comps, err := initComponents(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize components")
	}
	defer comps.close(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// sutureslog needs slog; this adapter forwards to zerolog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), cfg.TreeConfig())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      comps.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree.AddMaintenanceService(comps.maintenanceService(cfg, logging.WithComponent("maintenance")))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logger.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	// The channel yields exactly one value when the tree stops.
	select {
	case <-ctx.Done():
		logger.Info().Msg("Context canceled, waiting for supervisor to finish...")
		err = <-errCh
	case err = <-errCh:
		cancel()
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logger.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logger.Info().Msg("Application stopped gracefully")
}
