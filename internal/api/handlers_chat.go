// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/aniscout/internal/chat"
	"github.com/tomtom215/aniscout/internal/metrics"
)

// Chat handles POST /api/v1/chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	if h.deps.Chat == nil || !h.deps.Chat.Configured() {
		respondDomainError(w, r, "gemini", chat.ErrNotConfigured)
		return
	}
	start := time.Now()

	var req ChatRequest
	if !decodeJSONBody(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	answer, err := h.deps.Chat.Ask(ctx, req.Message, req.History)
	metrics.RecordRecommendation("chat", outcomeLabel(err), time.Since(start))
	if err != nil {
		respondDomainError(w, r, "gemini", err)
		return
	}

	NewResponseWriter(w, r).Success(ChatResponse{Response: answer})
}
