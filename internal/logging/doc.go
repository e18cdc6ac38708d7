// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

// Package logging provides centralized zerolog-based structured logging for Aniscout.
//
// The package provides:
//   - Zero-allocation structured logging via zerolog
//   - JSON output for production, console output for development
//   - Context-aware logging with request and correlation ID propagation
//   - slog adapter for Suture v4 integration
//   - Redaction helpers for API keys embedded in upstream URLs
//
// # Quick Start
//
//	import "github.com/tomtom215/aniscout/internal/logging"
//
//	// Initialize at application startup
//	logging.Init(cfg.LoggingOptions())
//
//	// Log messages with structured fields
//	logging.Info().Int("anime_id", 20).Msg("Reference resolved")
//	logging.Error().Err(err).Str("service", "anilist").Msg("Upstream failed")
//
//	// Context-aware logging
//	logging.Ctx(ctx).Info().Int("results", n).Msg("Recommendations ranked")
//
// # Configuration
//
// Logging is configured from the logging section of the application config
// (LOG_LEVEL, LOG_FORMAT, LOG_CALLER environment variables):
//
//	level   - trace, debug, info, warn, error (default: info)
//	format  - json, console (default: json)
//	caller  - include caller file:line (default: false)
//
// # Conventions
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// Upstream errors can embed request URLs. Log them through RedactError, and
// print credentials only through SanitizeToken.
//
// # Thread Safety
//
// The global logger is safe for concurrent use. Init and SetLogger swap it
// under a sync.RWMutex.
package logging
