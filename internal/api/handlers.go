// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package api

import (
	"context"
	"time"

	"github.com/tomtom215/aniscout/internal/anime"
	"github.com/tomtom215/aniscout/internal/chat"
	"github.com/tomtom215/aniscout/internal/middleware"
	"github.com/tomtom215/aniscout/internal/mood"
	"github.com/tomtom215/aniscout/internal/recommend"
)

// Recommender produces similarity recommendations. *recommend.Engine satisfies it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

// RandomSource returns a random anime with an untranslated synopsis.
type RandomSource interface {
	Random(ctx context.Context) (anime.Anime, error)
}

// MoodRecommender produces mood recommendations. *mood.Service satisfies it.
type MoodRecommender interface {
	Recommend(ctx context.Context, req mood.Request) ([]mood.Result, error)
}

// Autocompleter returns title suggestions.
type Autocompleter interface {
	Autocomplete(ctx context.Context, search string, perPage int) ([]anime.Suggestion, error)
}

// ChatClient answers free-form questions.
type ChatClient interface {
	Ask(ctx context.Context, message string, history []chat.Message) (string, error)
	Configured() bool
}

// Translator renders synopses. It never fails.
type Translator interface {
	Translate(ctx context.Context, text string) string
}

// BreakerReporter exposes the circuit breaker of an upstream client.
type BreakerReporter interface {
	Name() string
	State() string
}

// Dependencies are the services a Handler serves requests with.
// Recommender and Moods are required; the rest are optional and
// their endpoints answer 503 when absent.
type Dependencies struct {
	Recommender  Recommender
	Random       RandomSource
	Moods        MoodRecommender
	Autocomplete Autocompleter
	Chat         ChatClient
	Translator   Translator
	Breakers     []BreakerReporter
	PerfMon      *middleware.PerformanceMonitor

	// Version is reported by the health endpoint.
	Version string

	// RequestTimeout bounds the upstream work of a single request.
	RequestTimeout time.Duration
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_recommend.go: similarity recommendations
//   - handlers_anime.go: random anime and autocomplete
//   - handlers_mood.go: mood list and mood recommendations
//   - handlers_chat.go: AI chat
//   - handlers_health.go: health and performance endpoints
type Handler struct {
	deps      Dependencies
	startTime time.Time
}

// NewHandler creates a new API handler.
func NewHandler(deps Dependencies) *Handler {
	if deps.RequestTimeout <= 0 {
		deps.RequestTimeout = 30 * time.Second
	}
	if deps.Version == "" {
		deps.Version = "dev"
	}
	return &Handler{
		deps:      deps,
		startTime: time.Now(),
	}
}

// withTimeout derives the per-request upstream deadline.
func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, h.deps.RequestTimeout)
}

// translate renders text through the configured translator, if any.
func (h *Handler) translate(ctx context.Context, text string) string {
	if h.deps.Translator == nil {
		return text
	}
	return h.deps.Translator.Translate(ctx, text)
}
