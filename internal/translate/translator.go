// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package translate

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/aniscout/internal/cache"
	"github.com/tomtom215/aniscout/internal/logging"
	"github.com/tomtom215/aniscout/internal/metrics"
	"github.com/tomtom215/aniscout/internal/upstream"
)

// flexInt accepts both 200 and "200"; MyMemory reports some errors with a
// string status.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("status %s: %w", b, err)
	}
	*f = flexInt(n)
	return nil
}

// myMemoryResponse is the /get payload.
type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string          `json:"translatedText"`
		Match          json.RawMessage `json:"match"`
	} `json:"responseData"`
	ResponseStatus  flexInt `json:"responseStatus"`
	ResponseDetails string  `json:"responseDetails"`
}

// Translator translates synopses through MyMemory with a memory cache and an
// optional BadgerDB tier. Translate never fails: any problem yields the
// cleaned source text.
type Translator struct {
	enabled   bool
	endpoint  string
	langPair  string
	maxLength int
	http      *upstream.Client
	memory    *cache.LRU[string]
	disk      *cache.DiskStore
	logger    zerolog.Logger
}

// New creates a Translator. disk may be nil.
func New(cfg Config, disk *cache.DiskStore, opts ...upstream.Option) (*Translator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}
	pair, _ := cfg.LangPair()
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	cfg.Upstream.Name = "mymemory"

	hc, err := upstream.New(cfg.Upstream, opts...)
	if err != nil {
		return nil, err
	}

	t := &Translator{
		enabled:   cfg.Enabled,
		endpoint:  cfg.Endpoint,
		langPair:  pair,
		maxLength: cfg.MaxLength,
		http:      hc,
		disk:      disk,
		logger:    logging.WithComponent("translate"),
	}
	if cfg.CacheSize > 0 {
		t.memory = cache.NewLRU[string]("translation_memory", cfg.CacheSize, cfg.CacheTTL)
	}
	return t, nil
}

// Name returns the upstream service name.
func (t *Translator) Name() string { return t.http.Name() }

// State returns the circuit breaker state.
func (t *Translator) State() string { return t.http.State() }

// Memory exposes the memory tier for maintenance; nil when disabled.
func (t *Translator) Memory() *cache.LRU[string] { return t.memory }

// Disk exposes the disk tier for maintenance; nil when disabled.
func (t *Translator) Disk() *cache.DiskStore { return t.disk }

// Translate returns text translated to the target language. Blank input
// (after markup removal) yields "". Upstream errors, timeouts and non-200
// MyMemory statuses yield the cleaned, truncated source text.
func (t *Translator) Translate(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		metrics.RecordTranslation("skipped")
		return ""
	}
	clean := strings.TrimSpace(StripHTML(text))
	if clean == "" {
		metrics.RecordTranslation("skipped")
		return ""
	}
	source := Truncate(clean, t.maxLength)

	if !t.enabled {
		metrics.RecordTranslation("skipped")
		return source
	}

	key := cacheKey(source)
	if cached, ok := t.lookup(key); ok {
		metrics.RecordTranslation("cached")
		return cached
	}

	translated, err := t.request(ctx, source)
	if err != nil {
		metrics.RecordTranslation("fallback")
		logging.Ctx(ctx).Warn().Str("error", logging.RedactError(err)).Msg("Translation failed, returning original text")
		return source
	}

	t.remember(key, translated)
	metrics.RecordTranslation("translated")
	return translated
}

// TranslateAll translates texts in parallel, preserving order.
func (t *Translator) TranslateAll(ctx context.Context, texts []string) []string {
	out := make([]string, len(texts))
	var g errgroup.Group
	g.SetLimit(4)
	for i, text := range texts {
		g.Go(func() error {
			out[i] = t.Translate(ctx, text)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Close releases the disk tier.
func (t *Translator) Close() error {
	if t.disk == nil {
		return nil
	}
	return t.disk.Close()
}

func (t *Translator) request(ctx context.Context, source string) (string, error) {
	q := url.Values{}
	q.Set("q", source)
	q.Set("langpair", t.langPair)

	var resp myMemoryResponse
	if err := t.http.GetJSON(ctx, t.endpoint+"?"+q.Encode(), &resp); err != nil {
		return "", err
	}
	if resp.ResponseStatus != 200 {
		details := resp.ResponseDetails
		if details == "" {
			details = "unknown error"
		}
		return "", fmt.Errorf("mymemory status %d: %s", int(resp.ResponseStatus), details)
	}
	if strings.TrimSpace(resp.ResponseData.TranslatedText) == "" {
		return "", errors.New("mymemory returned an empty translation")
	}
	return resp.ResponseData.TranslatedText, nil
}

func (t *Translator) lookup(key string) (string, bool) {
	if t.memory != nil {
		if v, ok := t.memory.Get(key); ok {
			return v, true
		}
	}
	if t.disk != nil {
		v, err := t.disk.Get(key)
		if err == nil {
			if t.memory != nil {
				t.memory.Add(key, v)
			}
			return v, true
		}
		if !errors.Is(err, cache.ErrMiss) {
			t.logger.Warn().Err(err).Msg("Disk translation cache read failed")
		}
	}
	return "", false
}

func (t *Translator) remember(key, value string) {
	if t.memory != nil {
		t.memory.Add(key, value)
	}
	if t.disk != nil {
		if err := t.disk.Set(key, value); err != nil {
			t.logger.Warn().Err(err).Msg("Disk translation cache write failed")
		}
	}
}
