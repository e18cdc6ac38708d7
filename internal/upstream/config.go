// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package upstream

import (
	"errors"
	"fmt"
	"time"
)

// BreakerConfig tunes the circuit breaker wrapping a Client.
type BreakerConfig struct {
	// MaxRequests allowed through while half-open.
	MaxRequests uint32 `koanf:"max_requests"`

	// Interval after which closed-state counts reset.
	Interval time.Duration `koanf:"interval"`

	// Timeout spent open before probing again.
	Timeout time.Duration `koanf:"timeout"`

	// MinRequests before the failure ratio is considered.
	MinRequests uint32 `koanf:"min_requests"`

	// FailureRatio at or above which the breaker opens.
	FailureRatio float64 `koanf:"failure_ratio"`
}

// Config configures one upstream Client.
type Config struct {
	Name              string        `koanf:"-"`
	UserAgent         string        `koanf:"-"`
	Timeout           time.Duration `koanf:"timeout"`
	MaxRetries        int           `koanf:"max_retries"`
	RetryBaseDelay    time.Duration `koanf:"retry_base_delay"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	Breaker           BreakerConfig `koanf:"breaker"`
}

// DefaultBreakerConfig mirrors the production breaker: 3 half-open probes,
// 1 minute window, 2 minute open period, 60% over at least 10 requests.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// DefaultConfig returns a Config with conservative defaults for name.
func DefaultConfig(name string) Config {
	return Config{
		Name:              name,
		UserAgent:         "aniscout",
		Timeout:           10 * time.Second,
		MaxRetries:        2,
		RetryBaseDelay:    time.Second,
		RequestsPerSecond: 1.5,
		Burst:             3,
		Breaker:           DefaultBreakerConfig(),
	}
}

// Validate checks the configuration for values the client cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("max_retries must be >= 0, got %d", c.MaxRetries))
	}
	if c.RetryBaseDelay < 0 {
		errs = append(errs, fmt.Errorf("retry_base_delay must be >= 0, got %s", c.RetryBaseDelay))
	}
	if c.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("requests_per_second must be >= 0, got %v", c.RequestsPerSecond))
	}
	if c.RequestsPerSecond > 0 && c.Burst < 1 {
		errs = append(errs, fmt.Errorf("burst must be >= 1 when rate limiting, got %d", c.Burst))
	}
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		errs = append(errs, fmt.Errorf("breaker.failure_ratio must be in (0, 1], got %v", c.Breaker.FailureRatio))
	}
	if len(errs) > 0 {
		return fmt.Errorf("upstream %q: %w", c.Name, errors.Join(errs...))
	}
	return nil
}
