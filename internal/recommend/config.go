// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package recommend

import "fmt"

// Reference count bounds. Requests outside this range are rejected before
// any resolution work starts.
const (
	MinReferences = 2
	MaxReferences = 10
)

// Config contains configuration for the recommendation engine.
type Config struct {
	// Weights controls score composition.
	Weights Weights `koanf:"weights"`

	// DefaultLimit is used when a request does not specify a limit.
	// Default: 15
	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit caps the number of results per request.
	// Default: 50
	MaxLimit int `koanf:"max_limit"`

	// ResolveConcurrency bounds parallel reference lookups.
	// Default: 4
	ResolveConcurrency int `koanf:"resolve_concurrency"`

	// EnrichConcurrency bounds parallel synopsis translations.
	// Default: 8
	EnrichConcurrency int `koanf:"enrich_concurrency"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights:            DefaultWeights(),
		DefaultLimit:       15,
		MaxLimit:           50,
		ResolveConcurrency: 4,
		EnrichConcurrency:  8,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	if c.MaxLimit < 1 {
		return fmt.Errorf("max_limit must be positive, got %d", c.MaxLimit)
	}
	if c.DefaultLimit < 1 || c.DefaultLimit > c.MaxLimit {
		return fmt.Errorf("default_limit must be in [1, %d], got %d", c.MaxLimit, c.DefaultLimit)
	}
	if c.ResolveConcurrency < 1 {
		return fmt.Errorf("resolve_concurrency must be positive, got %d", c.ResolveConcurrency)
	}
	if c.EnrichConcurrency < 1 {
		return fmt.Errorf("enrich_concurrency must be positive, got %d", c.EnrichConcurrency)
	}
	return nil
}
