// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/aniscout/internal/logging"
	"github.com/tomtom215/aniscout/internal/metrics"
	"github.com/tomtom215/aniscout/internal/recommend"
)

// SimilarRecommendations handles POST /api/v1/recommendations/similar.
// It ranks anime similar to 2-10 reference anime given by AniList ID or title.
func (h *Handler) SimilarRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req SimilarRequest
	if !decodeJSONBody(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	resp, err := h.deps.Recommender.Recommend(ctx, recommend.Request{
		IDs:    req.IDs,
		Titles: req.Titles,
		Limit:  req.Limit,
	})
	metrics.RecordRecommendation("similar", outcomeLabel(err), time.Since(start))
	if err != nil {
		respondDomainError(w, r, "anilist", err)
		return
	}
	metrics.RecordCandidatePool(resp.CandidateCount)

	logging.Ctx(r.Context()).Info().
		Int("references", len(resp.References)).
		Int("candidates", resp.CandidateCount).
		Int("results", len(resp.Results)).
		Msg("Similarity recommendations served")

	NewResponseWriter(w, r).Success(resp)
}
