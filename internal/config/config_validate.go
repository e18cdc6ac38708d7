// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package config

import (
	"fmt"
	"net/url"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateSecurity,
		c.validateLogging,
		c.validateUpstreams,
		c.validateTranslation,
		c.validateRecommend,
		c.validateSupervisor,
	}

	for _, validator := range validators {
		if err := validator(); err != nil {
			return err
		}
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	timeouts := []struct {
		name  string
		value time.Duration
	}{
		{"HTTP_READ_TIMEOUT", c.Server.ReadTimeout},
		{"HTTP_WRITE_TIMEOUT", c.Server.WriteTimeout},
		{"HTTP_IDLE_TIMEOUT", c.Server.IdleTimeout},
		{"REQUEST_TIMEOUT", c.Server.RequestTimeout},
		{"HTTP_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout},
	}
	for _, t := range timeouts {
		if t.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", t.name, t.value)
		}
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateSecurity validates rate limiting bounds. Limits are not checked
// when rate limiting is disabled.
func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if err := validateRateLimit("RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW",
		c.Security.RateLimitReqs, c.Security.RateLimitWindow); err != nil {
		return err
	}
	return validateRateLimit("CHAT_RATE_LIMIT_REQS", "CHAT_RATE_LIMIT_WINDOW",
		c.Security.ChatRateLimitReqs, c.Security.ChatRateLimitWindow)
}

func validateRateLimit(reqName, windowName string, reqs int, window time.Duration) error {
	if reqs < minRateLimitRequests || reqs > maxRateLimitRequests {
		return fmt.Errorf("%s must be between %d and %d", reqName, minRateLimitRequests, maxRateLimitRequests)
	}
	if window < minRateLimitWindow || window > maxRateLimitWindow {
		return fmt.Errorf("%s must be between %v and %v", windowName, minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateUpstreams checks endpoint URLs and the shared client settings of
// every upstream service.
func (c *Config) validateUpstreams() error {
	endpoints := []struct {
		name  string
		value string
	}{
		{"ANILIST_ENDPOINT", c.AniList.Endpoint},
		{"JIKAN_BASE_URL", c.Jikan.BaseURL},
		{"TRANSLATION_ENDPOINT", c.Translation.Endpoint},
		{"GEMINI_ENDPOINT", c.Gemini.Endpoint},
	}
	for _, e := range endpoints {
		if err := validateHTTPURL(e.value, e.name); err != nil {
			return err
		}
	}

	for _, up := range []interface{ Validate() error }{
		&c.AniList.Upstream,
		&c.Jikan.Upstream,
		&c.Translation.Upstream,
		&c.Gemini.Upstream,
	} {
		if err := up.Validate(); err != nil {
			return err
		}
	}

	if c.Gemini.Model == "" {
		return fmt.Errorf("GEMINI_MODEL is required")
	}
	return nil
}

// validateTranslation checks the language pair and cache settings.
func (c *Config) validateTranslation() error {
	if err := c.Translation.Validate(); err != nil {
		return fmt.Errorf("translation: %w", err)
	}
	return nil
}

// validateRecommend checks the scoring weights and result limits.
func (c *Config) validateRecommend() error {
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

// validateSupervisor checks the supervisor tree settings.
func (c *Config) validateSupervisor() error {
	if c.Supervisor.FailureThreshold < 0 || c.Supervisor.FailureDecay < 0 || c.Supervisor.FailureBackoff < 0 {
		return fmt.Errorf("supervisor failure settings must be non-negative")
	}
	if c.Supervisor.MaintenanceInterval < time.Second {
		return fmt.Errorf("CACHE_MAINTENANCE_INTERVAL must be at least 1s, got %v", c.Supervisor.MaintenanceInterval)
	}
	return nil
}

// validateHTTPURL checks that rawURL is an absolute http(s) URL without a
// query string. Paths are allowed since several upstreams are versioned.
func validateHTTPURL(rawURL, fieldName string) error {
	if rawURL == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}
