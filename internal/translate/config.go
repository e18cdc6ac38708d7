// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package translate

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/language"

	"github.com/tomtom215/aniscout/internal/upstream"
)

// DefaultEndpoint is the public MyMemory translation endpoint.
const DefaultEndpoint = "https://api.mymemory.translated.net/get"

// Config configures synopsis translation.
type Config struct {
	Enabled  bool   `koanf:"enabled"`
	Endpoint string `koanf:"endpoint"`

	// Source and Target are BCP 47 language tags, e.g. "en" and "es".
	Source string `koanf:"source"`
	Target string `koanf:"target"`

	// MaxLength is the character limit sent upstream.
	MaxLength int `koanf:"max_length"`

	CacheSize int           `koanf:"cache_size"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`

	// DiskCachePath enables the BadgerDB tier when set.
	DiskCachePath string        `koanf:"disk_cache_path"`
	DiskCacheTTL  time.Duration `koanf:"disk_cache_ttl"`

	Upstream upstream.Config `koanf:",squash,flatten"`
}

// DefaultConfig returns English to Spanish translation with a 500 entry
// memory cache and a 5 second timeout.
func DefaultConfig() Config {
	up := upstream.DefaultConfig("mymemory")
	up.Timeout = 5 * time.Second
	up.MaxRetries = 0
	up.RequestsPerSecond = 5
	up.Burst = 10
	return Config{
		Enabled:      true,
		Endpoint:     DefaultEndpoint,
		Source:       "en",
		Target:       "es",
		MaxLength:    1000,
		CacheSize:    500,
		CacheTTL:     24 * time.Hour,
		DiskCacheTTL: 30 * 24 * time.Hour,
		Upstream:     up,
	}
}

// LangPair validates Source and Target and returns the "src|tgt" pair
// MyMemory expects, using the base language subtags.
func (c *Config) LangPair() (string, error) {
	src, err := language.Parse(c.Source)
	if err != nil {
		return "", fmt.Errorf("invalid source language %q: %w", c.Source, err)
	}
	tgt, err := language.Parse(c.Target)
	if err != nil {
		return "", fmt.Errorf("invalid target language %q: %w", c.Target, err)
	}
	srcBase, _ := src.Base()
	tgtBase, _ := tgt.Base()
	if srcBase == tgtBase {
		return "", errors.New("source and target languages must differ")
	}
	return srcBase.String() + "|" + tgtBase.String(), nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if _, err := c.LangPair(); err != nil {
		return err
	}
	if c.MaxLength < 0 {
		return fmt.Errorf("max_length must be >= 0, got %d", c.MaxLength)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must be >= 0, got %d", c.CacheSize)
	}
	return nil
}
