// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/aniscout/internal/anilist"
	"github.com/tomtom215/aniscout/internal/chat"
	"github.com/tomtom215/aniscout/internal/jikan"
	"github.com/tomtom215/aniscout/internal/logging"
	"github.com/tomtom215/aniscout/internal/recommend"
	"github.com/tomtom215/aniscout/internal/supervisor"
	"github.com/tomtom215/aniscout/internal/translate"
)

// Config holds all application configuration.
//
// Upstream sections reuse the client packages' own Config types so a
// setting has exactly one definition.
type Config struct {
	Server      ServerConfig     `koanf:"server"`
	Security    SecurityConfig   `koanf:"security"`
	Logging     LoggingConfig    `koanf:"logging"`
	AniList     anilist.Config   `koanf:"anilist"`
	Jikan       jikan.Config     `koanf:"jikan"`
	Translation translate.Config `koanf:"translation"`
	Gemini      chat.Config      `koanf:"gemini"`
	Recommend   recommend.Config `koanf:"recommend"`
	Supervisor  SupervisorConfig `koanf:"supervisor"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int    `koanf:"port"`
	Host string `koanf:"host"`

	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`

	// RequestTimeout bounds the upstream work done for one API request.
	// Default: 30s
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// ShutdownTimeout bounds graceful HTTP shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SecurityConfig holds inbound request limits and CORS settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// Chat limits apply on top of the general limit.
	ChatRateLimitReqs   int           `koanf:"chat_rate_limit_reqs"`
	ChatRateLimitWindow time.Duration `koanf:"chat_rate_limit_window"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// SupervisorConfig holds supervisor tree and background maintenance settings.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`

	// MaintenanceInterval is how often expired cache entries are swept and
	// the disk cache is garbage collected.
	// Default: 10m
	MaintenanceInterval time.Duration `koanf:"maintenance_interval"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingOptions converts the logging section for logging.Init.
func (c *Config) LoggingOptions() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.Logging.Level
	lc.Format = c.Logging.Format
	lc.Caller = c.Logging.Caller
	return lc
}

// TreeConfig converts the supervisor section for supervisor.NewSupervisorTree.
func (c *Config) TreeConfig() supervisor.TreeConfig {
	return supervisor.TreeConfig{
		FailureThreshold: c.Supervisor.FailureThreshold,
		FailureDecay:     c.Supervisor.FailureDecay,
		FailureBackoff:   c.Supervisor.FailureBackoff,
		ShutdownTimeout:  c.Supervisor.ShutdownTimeout,
	}
}

// Load reads configuration from defaults, an optional config file and
// environment variables, in that order of precedence.
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
