// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

// maxErrorBodySize limits the maximum amount of response body read for error reporting
const maxErrorBodySize = 64 * 1024 // 64KB

// maxBodySize caps successful response bodies.
const maxBodySize = 8 << 20 // 8MB

// ErrCircuitOpen is returned when the breaker rejects a call without
// contacting the upstream.
var ErrCircuitOpen = errors.New("circuit breaker open")

// StatusError is a non-2xx response from an upstream.
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Service, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Service, e.StatusCode, e.Body)
}

// Retryable reports whether the status is worth retrying (429 or 5xx).
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// IsStatus reports whether err carries an upstream response with code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// IsRateLimited reports whether the upstream answered 429 on the final attempt.
func IsRateLimited(err error) bool {
	return IsStatus(err, http.StatusTooManyRequests)
}

// IsTimeout reports whether err is a deadline or transport timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// throttleError means our own limiter could not grant a token before the
// caller's deadline. No request was sent.
type throttleError struct {
	service string
	cause   error
}

func (e *throttleError) Error() string {
	return e.service + ": rate limit wait: " + e.cause.Error()
}

func (e *throttleError) Unwrap() error {
	return e.cause
}

// throttled reports a failed limiter wait. rate.Limiter returns a plain
// error when the wait would pass the deadline, so the cause is rebuilt from
// ctx: context.Canceled when the caller gave up, otherwise
// context.DeadlineExceeded.
func throttled(ctx context.Context, service string) error {
	cause := ctx.Err()
	if cause == nil {
		cause = context.DeadlineExceeded
	}
	return &throttleError{service: service, cause: cause}
}

// countsAsFailure decides what the breaker records. Client errors, local
// throttling and caller cancellations say nothing about upstream health.
func countsAsFailure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var te *throttleError
	if errors.As(err, &te) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Retryable()
	}
	return true
}

// outcome classifies err for the upstream_requests_total metric.
func outcome(err error) string {
	if err == nil {
		return "success"
	}
	if errors.Is(err, ErrCircuitOpen) {
		return "rejected"
	}
	var te *throttleError
	if errors.As(err, &te) {
		return "throttled"
	}
	var se *StatusError
	if errors.As(err, &se) {
		if se.StatusCode >= 500 {
			return "server_error"
		}
		return "client_error"
	}
	return "network_error"
}

// readBodyForError reads the response body for error reporting (max 64KB)
// Returns the body content or a placeholder message if reading fails
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
