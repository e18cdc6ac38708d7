// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/aniscout/internal/anime"
	"github.com/tomtom215/aniscout/internal/chat"
	"github.com/tomtom215/aniscout/internal/logging"
	"github.com/tomtom215/aniscout/internal/mood"
	"github.com/tomtom215/aniscout/internal/recommend"
	"github.com/tomtom215/aniscout/internal/upstream"
)

// errorResponse is the HTTP rendering of a domain error.
type errorResponse struct {
	status  int
	code    string
	message string
	details map[string]interface{}
}

// classifyError maps domain and upstream errors onto HTTP responses.
// service names the upstream involved, for messages and logs.
func classifyError(service string, err error) errorResponse {
	var (
		unresolved *recommend.UnresolvedReferenceError
		unknown    *mood.UnknownMoodError
		blocked    *chat.BlockedError
	)

	switch {
	case errors.Is(err, recommend.ErrInvalidInputCount):
		return errorResponse{http.StatusBadRequest, ErrCodeInvalidInputCount,
			"Provide between 2 and 10 anime", nil}

	case errors.As(err, &unresolved):
		var inputValue interface{} = unresolved.Ref.ID
		if unresolved.Ref.ByTitle {
			inputValue = unresolved.Ref.Title
		}
		return errorResponse{http.StatusNotFound, ErrCodeUnresolvedReference,
			"Anime not found: " + unresolved.Ref.String(),
			map[string]interface{}{"input": inputValue}}

	case errors.Is(err, recommend.ErrEmptyCandidatePool):
		return errorResponse{http.StatusNotFound, ErrCodeNoRecommendations,
			"No recommendations found for the given anime", nil}

	case errors.As(err, &unknown):
		return errorResponse{http.StatusBadRequest, ErrCodeInvalidMood,
			"Unknown mood: " + unknown.Mood,
			map[string]interface{}{"available": mood.Available()}}

	case errors.As(err, &blocked):
		return errorResponse{http.StatusBadRequest, ErrCodeContentBlocked,
			"The message was blocked by content filters",
			map[string]interface{}{"reason": blocked.Reason}}

	case errors.Is(err, chat.ErrInvalidMessage):
		return errorResponse{http.StatusBadRequest, ErrCodeValidationFailed, err.Error(), nil}

	case errors.Is(err, chat.ErrNotConfigured):
		return errorResponse{http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Chat service is not configured", nil}

	case errors.Is(err, anime.ErrNotFound):
		return errorResponse{http.StatusNotFound, ErrCodeNotFound, "Anime not found", nil}

	case errors.Is(err, upstream.ErrCircuitOpen):
		return errorResponse{http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Upstream service temporarily unavailable: " + service, nil}

	case errors.Is(err, context.DeadlineExceeded), upstream.IsTimeout(err):
		return errorResponse{http.StatusGatewayTimeout, ErrCodeGatewayTimeout,
			"Upstream service timed out: " + service, nil}

	case upstream.IsRateLimited(err):
		return errorResponse{http.StatusTooManyRequests, ErrCodeTooManyRequests,
			"Upstream rate limit exceeded, try again later", nil}

	default:
		return errorResponse{http.StatusBadGateway, ErrCodeExternalServiceFail,
			"External service unavailable: " + service, nil}
	}
}

// respondDomainError writes err using classifyError, logging server-side
// failures with redacted detail.
func respondDomainError(w http.ResponseWriter, r *http.Request, service string, err error) {
	resp := classifyError(service, err)

	event := logging.Ctx(r.Context()).Warn()
	if resp.status >= http.StatusInternalServerError {
		event = logging.Ctx(r.Context()).Error()
	}
	event.
		Str("service", service).
		Str("code", resp.code).
		Int("status", resp.status).
		Str("error", sanitizeLogValue(logging.RedactError(err))).
		Msg("Request failed")

	var details interface{}
	if resp.details != nil {
		details = resp.details
	}
	NewResponseWriter(w, r).ErrorWithDetails(resp.status, resp.code, resp.message, details)
}

// outcomeLabel is the metrics outcome for a recommendation error.
func outcomeLabel(err error) string {
	if err == nil {
		return "success"
	}
	return classifyError("", err).code
}
