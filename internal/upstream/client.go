// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/aniscout/internal/logging"
	"github.com/tomtom215/aniscout/internal/metrics"
)

// RequestFunc builds a fresh request for each attempt so bodies can be replayed.
type RequestFunc func(ctx context.Context) (*http.Request, error)

// Client is a rate-limited, retrying, circuit-broken HTTP client for one
// upstream service.
//
// The circuit breaker uses real time (via sony/gobreaker) for its interval
// and timeout calculations. Tests exercise it with small MinRequests rather
// than by advancing clocks.
type Client struct {
	name           string
	userAgent      string
	httpClient     *http.Client
	limiter        *rate.Limiter
	cb             *gobreaker.CircuitBreaker[[]byte]
	maxRetries     int
	retryBaseDelay time.Duration
	logger         zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. The configured
// timeout is applied unless the client already sets one.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc.Timeout == 0 {
			hc.Timeout = c.httpClient.Timeout
		}
		c.httpClient = hc
	}
}

// New creates a Client from cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		name:           cfg.Name,
		userAgent:      cfg.UserAgent,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
		logger:         logging.WithComponent("upstream").With().Str("service", cfg.Name).Logger(),
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cb = newBreaker(cfg.Name, cfg.Breaker, c.logger)

	return c, nil
}

// newBreaker builds the breaker and keeps its Prometheus gauges current.
func newBreaker(name string, bc BreakerConfig, logger zerolog.Logger) *gobreaker.CircuitBreaker[[]byte] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < bc.MinRequests {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= bc.FailureRatio

			if shouldTrip {
				logger.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		IsSuccessful: func(err error) bool {
			return !countsAsFailure(err)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logger.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})
}

// Name returns the upstream service name.
func (c *Client) Name() string {
	return c.name
}

// State returns the breaker state: "closed", "half-open" or "open".
func (c *Client) State() string {
	return stateToString(c.cb.State())
}

// Do executes the request built by build through the breaker and retry loop
// and returns the response body of the first 2xx answer.
func (c *Client) Do(ctx context.Context, build RequestFunc) ([]byte, error) {
	start := time.Now()

	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.doWithRetry(ctx, build)
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "rejected").Inc()
		c.logger.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		err = fmt.Errorf("%s: %w", c.name, ErrCircuitOpen)
	case countsAsFailure(err):
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "failure").Inc()
		counts := c.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(float64(counts.ConsecutiveFailures))
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(0)
	}

	metrics.RecordUpstreamRequest(c.name, outcome(err), time.Since(start))
	return body, err
}

// DoJSON is Do followed by decoding the body into out (skipped when out is nil).
func (c *Client) DoJSON(ctx context.Context, build RequestFunc, out any) error {
	body, err := c.Do(ctx, build)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", c.name, err)
	}
	return nil
}

// GetJSON issues a GET to rawURL and decodes the JSON answer into out.
func (c *Client) GetJSON(ctx context.Context, rawURL string, out any) error {
	return c.DoJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}, out)
}

// PostJSON POSTs payload as JSON to rawURL and decodes the answer into out.
func (c *Client) PostJSON(ctx context.Context, rawURL string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: failed to encode request: %w", c.name, err)
	}
	return c.DoJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		return req, nil
	}, out)
}

// doWithRetry retries 429, 5xx and transport failures with exponential
// backoff: base, 2*base, 4*base... A Retry-After header overrides the delay.
func (c *Client) doWithRetry(ctx context.Context, build RequestFunc) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, throttled(ctx, c.name)
			}
		}

		body, retryAfter, retry, err := c.attempt(ctx, build)
		if err == nil {
			return body, nil
		}
		if !retry || attempt >= c.maxRetries || ctx.Err() != nil {
			return nil, err
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter > 0 {
			delay = retryAfter
		}

		metrics.RecordUpstreamRetry(c.name)
		c.logger.Debug().Int("attempt", attempt+1).Dur("delay", delay).Str("error", logging.RedactError(err)).Msg("Retrying upstream request")

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// attempt performs a single request. retry reports whether a failure is
// transient.
func (c *Client) attempt(ctx context.Context, build RequestFunc) (body []byte, retryAfter time.Duration, retry bool, err error) {
	req, err := build(ctx)
	if err != nil {
		return nil, 0, false, fmt.Errorf("%s: failed to create request: %w", c.name, err)
	}
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, !errors.Is(err, context.Canceled), &requestError{service: c.name, err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return nil, 0, true, &requestError{service: c.name, err: err}
		}
		return body, 0, false, nil
	}

	se := &StatusError{
		Service:    c.name,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(readBodyForError(resp.Body))),
	}
	if ra := resp.Header.Get("Retry-After"); ra != "" {
		if seconds, convErr := strconv.Atoi(ra); convErr == nil && seconds > 0 {
			retryAfter = time.Duration(seconds) * time.Second
		}
	}
	return nil, retryAfter, se.Retryable(), se
}

// requestError wraps transport failures with the request URL redacted.
type requestError struct {
	service string
	err     error
}

func (e *requestError) Error() string {
	return e.service + ": HTTP request failed: " + logging.RedactError(e.err)
}

func (e *requestError) Unwrap() error {
	return e.err
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
