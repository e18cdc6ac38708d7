// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/aniscout/internal/metrics"
	"github.com/tomtom215/aniscout/internal/mood"
)

// ListMoods handles GET /api/v1/moods.
func (h *Handler) ListMoods(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(MoodsResponse{Moods: mood.Available()})
}

// MoodRecommendations handles GET /api/v1/moods/{mood}?limit=&page=.
func (h *Handler) MoodRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	name := chi.URLParam(r, "mood")
	if _, ok := mood.Lookup(name); !ok {
		respondDomainError(w, r, "anilist", &mood.UnknownMoodError{Mood: name})
		return
	}

	req := MoodRequest{
		Mood:  name,
		Limit: getIntParam(r, "limit", mood.DefaultLimit),
		Page:  getIntParam(r, "page", mood.DefaultPage),
	}
	if !validateRequest(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	results, err := h.deps.Moods.Recommend(ctx, mood.Request{
		Mood:  req.Mood,
		Limit: req.Limit,
		Page:  req.Page,
	})
	metrics.RecordRecommendation("mood", outcomeLabel(err), time.Since(start))
	if err != nil {
		respondDomainError(w, r, "anilist", err)
		return
	}
	if results == nil {
		results = []mood.Result{}
	}

	NewResponseWriter(w, r).SuccessList(results, len(results))
}
