// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/aniscout/internal/anime"
)

// Note: This package does not import the upstream clients. The Resolver and
// Enricher interfaces are satisfied by the anilist and translate packages.

// Resolver looks up reference anime. Implementations return an error wrapping
// anime.ErrNotFound when the input does not match anything; every other error
// is treated as an upstream failure.
type Resolver interface {
	ResolveByID(ctx context.Context, id int) (*anime.Media, error)
	ResolveByTitle(ctx context.Context, title string) (*anime.Media, error)
}

// Enricher rewrites synopsis text for presentation. It must not fail; on any
// problem it returns a usable fallback.
type Enricher interface {
	Translate(ctx context.Context, text string) string
}

// Engine orchestrates similarity recommendations. It is safe for concurrent use.
type Engine struct {
	config   *Config
	resolver Resolver
	enricher Enricher
	ranker   *Ranker
	logger   zerolog.Logger
}

// NewEngine creates a recommendation engine. enricher may be nil, in which
// case synopses are returned untranslated.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, resolver Resolver, enricher Enricher, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if resolver == nil {
		return nil, errors.New("resolver is required")
	}

	return &Engine{
		config:   cfg,
		resolver: resolver,
		enricher: enricher,
		ranker:   NewRanker(NewScorer(cfg.Weights)),
		logger:   logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// Recommend resolves the references, ranks their native recommendations and
// returns the top results.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	refs := req.References()
	if len(refs) < MinReferences || len(refs) > MaxReferences {
		return nil, &InputCountError{Got: len(refs), Min: MinReferences, Max: MaxReferences}
	}

	limit := e.limitFor(req.Limit)
	logger := e.logger.With().Int("references", len(refs)).Int("limit", limit).Logger()
	logger.Debug().Msg("processing recommendation request")

	resolved, err := e.resolveAll(ctx, refs)
	if err != nil {
		logger.Debug().Err(err).Msg("reference resolution failed")
		return nil, err
	}

	pool := Aggregate(resolved)
	ranked, err := e.ranker.Rank(pool, MergeAttributes(resolved), limit)
	if err != nil {
		logger.Debug().Msg("no candidates aggregated")
		return nil, err
	}

	results, err := e.present(ctx, ranked)
	if err != nil {
		return nil, fmt.Errorf("present results: %w", err)
	}

	resp := &Response{
		Results:        results,
		References:     make([]anime.Suggestion, len(resolved)),
		CandidateCount: pool.Len(),
	}
	for i := range resolved {
		resp.References[i] = anime.Suggestion{ID: resolved[i].ID, Title: resolved[i].DefaultTitle()}
	}

	logger.Debug().
		Int("candidates", pool.Len()).
		Int("returned", len(results)).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")

	return resp, nil
}

// limitFor applies the default and cap to a requested limit.
func (e *Engine) limitFor(requested int) int {
	switch {
	case requested <= 0:
		return e.config.DefaultLimit
	case requested > e.config.MaxLimit:
		return e.config.MaxLimit
	default:
		return requested
	}
}

// resolveAll looks up every reference in parallel. Results keep request order.
// The first failure cancels the remaining lookups and is returned classified.
func (e *Engine) resolveAll(ctx context.Context, refs []Reference) ([]anime.Media, error) {
	resolved := make([]anime.Media, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.ResolveConcurrency)

	for i, ref := range refs {
		g.Go(func() error {
			m, err := e.resolve(gctx, ref)
			if err != nil {
				return classify(ref, err)
			}
			resolved[i] = *m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resolved, nil
}

func (e *Engine) resolve(ctx context.Context, ref Reference) (*anime.Media, error) {
	if ref.ByTitle {
		return e.resolver.ResolveByTitle(ctx, strings.TrimSpace(ref.Title))
	}
	return e.resolver.ResolveByID(ctx, ref.ID)
}

// classify maps a resolver error onto the recommendation taxonomy.
func classify(ref Reference, err error) error {
	if errors.Is(err, anime.ErrNotFound) {
		return &UnresolvedReferenceError{Ref: ref, Err: err}
	}
	return &UpstreamError{Ref: ref, Err: err}
}

// present converts ranked results into client form, translating synopses in
// parallel. Output order follows the ranking regardless of completion order.
func (e *Engine) present(ctx context.Context, ranked []ScoredResult) ([]Recommendation, error) {
	out := make([]Recommendation, len(ranked))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.EnrichConcurrency)

	for i := range ranked {
		g.Go(func() error {
			r := &ranked[i]
			rec := Recommendation{
				Anime:           anime.Normalize(&r.Media),
				SimilarityScore: r.Match.Score,
				MatchDetails: MatchDetails{
					GenreOverlap:           r.Match.GenreOverlap,
					TagOverlap:             r.Match.TagOverlap,
					IsNativeRecommendation: r.Match.IsNative,
				},
			}
			if e.enricher != nil {
				rec.Synopsis = e.enricher.Translate(gctx, r.Media.Description)
			} else {
				rec.Synopsis = r.Media.Description
			}
			out[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
