// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package main

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tomtom215/aniscout/internal/anilist"
	"github.com/tomtom215/aniscout/internal/api"
	"github.com/tomtom215/aniscout/internal/cache"
	"github.com/tomtom215/aniscout/internal/chat"
	"github.com/tomtom215/aniscout/internal/config"
	"github.com/tomtom215/aniscout/internal/jikan"
	"github.com/tomtom215/aniscout/internal/middleware"
	"github.com/tomtom215/aniscout/internal/mood"
	"github.com/tomtom215/aniscout/internal/recommend"
	"github.com/tomtom215/aniscout/internal/supervisor/services"
	"github.com/tomtom215/aniscout/internal/translate"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// components holds everything main wires into the supervisor tree.
type components struct {
	anilist    *anilist.Client
	jikan      *jikan.Client
	translator *translate.Translator
	gemini     *chat.Client
	engine     *recommend.Engine
	moods      *mood.Service
	disk       *cache.DiskStore
	handler    http.Handler
}

// initComponents builds the upstream clients, the recommendation services
// and the HTTP handler. Nothing here contacts an upstream.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initComponents(cfg *config.Config, logger zerolog.Logger) (*components, error) {
	c := &components{}

	var err error
	if c.anilist, err = anilist.New(cfg.AniList); err != nil {
		return nil, fmt.Errorf("anilist client: %w", err)
	}
	if c.jikan, err = jikan.New(cfg.Jikan); err != nil {
		return nil, fmt.Errorf("jikan client: %w", err)
	}

	if cfg.Translation.DiskCachePath != "" {
		c.disk, err = cache.OpenDiskStore("translation_disk", cache.DiskOptions{
			Path:   cfg.Translation.DiskCachePath,
			Prefix: cfg.Translation.Source + "|" + cfg.Translation.Target + ":",
			TTL:    cfg.Translation.DiskCacheTTL,
		})
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", cfg.Translation.DiskCachePath).Msg("translation disk cache opened")
	}
	if c.translator, err = translate.New(cfg.Translation, c.disk); err != nil {
		c.close(logger)
		return nil, err
	}

	if c.gemini, err = chat.New(cfg.Gemini); err != nil {
		c.close(logger)
		return nil, err
	}
	if !c.gemini.Configured() {
		logger.Info().Msg("chat disabled (GEMINI_API_KEY not set)")
	}

	engineCfg := cfg.Recommend
	if c.engine, err = recommend.NewEngine(&engineCfg, c.anilist, c.translator, logger); err != nil {
		c.close(logger)
		return nil, fmt.Errorf("recommendation engine: %w", err)
	}
	c.moods = mood.NewService(c.anilist, c.translator)

	perfMon := middleware.NewPerformanceMonitor(0, 0)
	handler := api.NewHandler(api.Dependencies{
		Recommender:  c.engine,
		Random:       c.jikan,
		Moods:        c.moods,
		Autocomplete: c.anilist,
		Chat:         c.gemini,
		Translator:   c.translator,
		Breakers: []api.BreakerReporter{
			c.anilist, c.jikan, c.translator, c.gemini,
		},
		PerfMon:        perfMon,
		Version:        version,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	c.handler = api.NewRouter(handler, api.NewChiMiddleware(chiConfig(cfg)), perfMon).Setup()
	return c, nil
}

// chiConfig maps the security section onto the router middleware settings.
func chiConfig(cfg *config.Config) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mw.RateLimitRequests = cfg.Security.RateLimitReqs
	mw.RateLimitWindow = cfg.Security.RateLimitWindow
	mw.RateLimitDisabled = cfg.Security.RateLimitDisabled
	mw.ChatRateLimitRequests = cfg.Security.ChatRateLimitReqs
	mw.ChatRateLimitWindow = cfg.Security.ChatRateLimitWindow
	return mw
}

// maintenanceService sweeps every enabled cache tier.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func (c *components) maintenanceService(cfg *config.Config, logger zerolog.Logger) *services.CacheMaintenanceService {
	var caches []services.ExpiringCache
	if m := c.anilist.MediaCache(); m != nil {
		caches = append(caches, m)
	}
	if m := c.translator.Memory(); m != nil {
		caches = append(caches, m)
	}

	// A nil *DiskStore must not become a non-nil interface.
	var disk services.CollectableStore
	if c.disk != nil {
		disk = c.disk
	}
	return services.NewCacheMaintenanceService(caches, disk, cfg.Supervisor.MaintenanceInterval, logger)
}

// close releases the disk cache, if open.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func (c *components) close(logger zerolog.Logger) {
	if c.disk == nil {
		return
	}
	if err := c.disk.Close(); err != nil {
		logger.Error().Err(err).Msg("error closing translation disk cache")
	}
}
