// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/aniscout/internal/anilist"
	"github.com/tomtom215/aniscout/internal/chat"
	"github.com/tomtom215/aniscout/internal/jikan"
	"github.com/tomtom215/aniscout/internal/recommend"
	"github.com/tomtom215/aniscout/internal/translate"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/aniscout/config.yaml",
	"/etc/aniscout/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     120 * time.Second,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:         []string{"*"},
			RateLimitReqs:       100,
			RateLimitWindow:     time.Minute,
			RateLimitDisabled:   false,
			ChatRateLimitReqs:   10,
			ChatRateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		AniList:     anilist.DefaultConfig(),
		Jikan:       jikan.DefaultConfig(),
		Translation: translate.DefaultConfig(),
		Gemini:      chat.DefaultConfig(),
		Recommend:   *recommend.DefaultConfig(),
		Supervisor: SupervisorConfig{
			FailureThreshold:    5.0,
			FailureDecay:        30.0,
			FailureBackoff:      15 * time.Second,
			ShutdownTimeout:     10 * time.Second,
			MaintenanceInterval: 10 * time.Minute,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf with layered sources.
//
// Priority (lowest to highest):
//  1. Built-in defaults
//  2. Config file (CONFIG_PATH, or the first of DefaultConfigPaths that exists)
//  3. Environment variables
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file if exists
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.applyUpstreamIdentity()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyUpstreamIdentity restores the upstream names and user agent, which
// are not configurable and so never pass through koanf.
func (c *Config) applyUpstreamIdentity() {
	c.AniList.Upstream.Name = "anilist"
	c.Jikan.Upstream.Name = "jikan"
	c.Translation.Upstream.Name = "mymemory"
	c.Gemini.Upstream.Name = "gemini"
	for _, up := range []*string{
		&c.AniList.Upstream.UserAgent,
		&c.Jikan.Upstream.UserAgent,
		&c.Translation.Upstream.UserAgent,
		&c.Gemini.Upstream.UserAgent,
	} {
		if *up == "" {
			*up = "aniscout"
		}
	}
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings; YAML lists are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
// Variables not listed here are ignored so unrelated environment does not
// leak into the configuration.
var envMappings = map[string]string{
	// Server mappings
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"request_timeout":       "server.request_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Security mappings
	"cors_origins":           "security.cors_origins",
	"rate_limit_requests":    "security.rate_limit_reqs",
	"rate_limit_window":      "security.rate_limit_window",
	"disable_rate_limit":     "security.rate_limit_disabled",
	"chat_rate_limit_reqs":   "security.chat_rate_limit_reqs",
	"chat_rate_limit_window": "security.chat_rate_limit_window",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// AniList mappings
	"anilist_endpoint":   "anilist.endpoint",
	"anilist_timeout":    "anilist.timeout",
	"anilist_cache_size": "anilist.cache_size",
	"anilist_cache_ttl":  "anilist.cache_ttl",
	"anilist_rps":        "anilist.requests_per_second",

	// Jikan mappings
	"jikan_base_url": "jikan.base_url",
	"jikan_timeout":  "jikan.timeout",
	"jikan_rps":      "jikan.requests_per_second",

	// Translation mappings
	"translation_enabled":         "translation.enabled",
	"translation_endpoint":        "translation.endpoint",
	"translation_source":          "translation.source",
	"translation_target":          "translation.target",
	"translation_max_length":      "translation.max_length",
	"translation_cache_size":      "translation.cache_size",
	"translation_cache_ttl":       "translation.cache_ttl",
	"translation_disk_cache_path": "translation.disk_cache_path",
	"translation_disk_cache_ttl":  "translation.disk_cache_ttl",
	"translation_timeout":         "translation.timeout",

	// Gemini mappings
	"gemini_api_key":  "gemini.api_key",
	"gemini_endpoint": "gemini.endpoint",
	"gemini_model":    "gemini.model",
	"gemini_timeout":  "gemini.timeout",

	// Recommendation engine mappings
	"recommend_default_limit":       "recommend.default_limit",
	"recommend_max_limit":           "recommend.max_limit",
	"recommend_genre_weight":        "recommend.weights.genre",
	"recommend_tag_weight":          "recommend.weights.tag",
	"recommend_native_boost":        "recommend.weights.native_boost",
	"recommend_resolve_concurrency": "recommend.resolve_concurrency",
	"recommend_enrich_concurrency":  "recommend.enrich_concurrency",

	// Supervisor mappings
	"supervisor_failure_threshold": "supervisor.failure_threshold",
	"supervisor_failure_decay":     "supervisor.failure_decay",
	"supervisor_failure_backoff":   "supervisor.failure_backoff",
	"supervisor_shutdown_timeout":  "supervisor.shutdown_timeout",
	"cache_maintenance_interval":   "supervisor.maintenance_interval",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - GEMINI_API_KEY -> gemini.api_key
//   - TRANSLATION_TARGET -> translation.target
//   - PATH -> "" (skipped)
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// GetKoanfInstance returns a new Koanf instance for advanced usage.
func GetKoanfInstance() *koanf.Koanf {
	return koanf.New(".")
}
