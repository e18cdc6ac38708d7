// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

/*
Package upstream provides the resilient HTTP client shared by every outbound
integration (AniList, Jikan, MyMemory, Gemini).

Each Client owns:
  - an http.Client with a per-attempt timeout
  - a token bucket (golang.org/x/time/rate) throttling outbound requests
  - a retry loop with exponential backoff honoring Retry-After
  - a sony/gobreaker circuit breaker wrapping the whole retry loop

Resilience Mechanisms:
  - Retries: HTTP 429, HTTP 5xx and transport errors, up to MaxRetries
  - Backoff: RetryBaseDelay * 2^attempt, or the Retry-After seconds when present
  - Circuit Breaker: opens at >= 60% failures over >= 10 requests, half-opens after Timeout
  - Client errors (4xx other than 429) are returned immediately and do not
    count against the breaker

Errors:

	var se *upstream.StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound { ... }
	if errors.Is(err, upstream.ErrCircuitOpen) { ... }
	if upstream.IsTimeout(err) { ... }
*/
package upstream
