// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package mood

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/aniscout/internal/anilist"
	"github.com/tomtom215/aniscout/internal/anime"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
	DefaultPage  = 1
	MaxPage      = 10
)

// Searcher runs genre/tag searches. *anilist.Client satisfies it.
type Searcher interface {
	SearchByMood(ctx context.Context, q anilist.MoodQuery) ([]anime.Media, error)
}

// Translator renders synopses. It must not fail.
type Translator interface {
	Translate(ctx context.Context, text string) string
}

// Reason lists the requested genres and tags an entry carries. Empty lists
// are omitted.
type Reason struct {
	MatchedGenres []string `json:"matched_genres,omitempty"`
	MatchedTags   []string `json:"matched_tags,omitempty"`
}

// Result is one mood recommendation.
type Result struct {
	anime.Anime
	Reason Reason `json:"reason"`
}

// Request selects a mood page. Zero Limit and Page take the defaults.
type Request struct {
	Mood  string
	Limit int
	Page  int
}

// Service produces mood recommendations.
type Service struct {
	searcher   Searcher
	translator Translator
}

// NewService creates a mood service. translator may be nil.
func NewService(searcher Searcher, translator Translator) *Service {
	return &Service{searcher: searcher, translator: translator}
}

// Recommend returns one page of anime for the requested mood.
func (s *Service) Recommend(ctx context.Context, req Request) ([]Result, error) {
	m, ok := Lookup(req.Mood)
	if !ok {
		return nil, &UnknownMoodError{Mood: req.Mood}
	}

	limit, page := req.Limit, req.Page
	if limit == 0 {
		limit = DefaultLimit
	}
	if page == 0 {
		page = DefaultPage
	}
	if limit < 1 || limit > MaxLimit {
		return nil, fmt.Errorf("limit must be between 1 and %d, got %d", MaxLimit, limit)
	}
	if page < 1 || page > MaxPage {
		return nil, fmt.Errorf("page must be between 1 and %d, got %d", MaxPage, page)
	}

	media, err := s.searcher.SearchByMood(ctx, anilist.MoodQuery{
		Genres:  m.Genres,
		Tags:    m.Tags,
		Page:    page,
		PerPage: limit,
	})
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(media))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := range media {
		g.Go(func() error {
			results[i] = s.build(gctx, &media[i], m)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) build(ctx context.Context, media *anime.Media, m Mood) Result {
	a := anime.Normalize(media)
	if s.translator != nil {
		a.Synopsis = s.translator.Translate(ctx, media.Description)
	} else {
		a.Synopsis = media.Description
	}
	return Result{Anime: a, Reason: MatchReason(media, m)}
}

// MatchReason lists, in the entry's own order, which of the mood's genres
// and tags the entry carries.
func MatchReason(media *anime.Media, m Mood) Reason {
	var r Reason
	for _, g := range media.Genres {
		if slices.Contains(m.Genres, g) {
			r.MatchedGenres = append(r.MatchedGenres, g)
		}
	}
	for _, t := range media.Tags {
		if slices.Contains(m.Tags, t.Name) {
			r.MatchedTags = append(r.MatchedTags, t.Name)
		}
	}
	return r
}
