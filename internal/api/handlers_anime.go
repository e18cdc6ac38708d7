// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/aniscout/internal/anime"
	"github.com/tomtom215/aniscout/internal/metrics"
)

// RandomAnime handles GET /api/v1/anime/random.
func (h *Handler) RandomAnime(w http.ResponseWriter, r *http.Request) {
	if h.deps.Random == nil {
		NewResponseWriter(w, r).ServiceUnavailable("Random anime is not available")
		return
	}
	start := time.Now()

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	a, err := h.deps.Random.Random(ctx)
	metrics.RecordRecommendation("random", outcomeLabel(err), time.Since(start))
	if err != nil {
		respondDomainError(w, r, "jikan", err)
		return
	}

	a.Synopsis = h.translate(ctx, a.Synopsis)
	NewResponseWriter(w, r).Success(a)
}

// SearchAnime handles GET /api/v1/anime/search?q=&limit= for autocomplete.
// A search with no matches returns an empty list.
func (h *Handler) SearchAnime(w http.ResponseWriter, r *http.Request) {
	if h.deps.Autocomplete == nil {
		NewResponseWriter(w, r).ServiceUnavailable("Search is not available")
		return
	}

	req := SearchRequest{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		Limit: getIntParam(r, "limit", 10),
	}
	if !validateRequest(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	suggestions, err := h.deps.Autocomplete.Autocomplete(ctx, req.Query, req.Limit)
	if err != nil && !errors.Is(err, anime.ErrNotFound) {
		respondDomainError(w, r, "anilist", err)
		return
	}
	if suggestions == nil {
		suggestions = []anime.Suggestion{}
	}

	NewResponseWriter(w, r).SuccessList(suggestions, len(suggestions))
}
