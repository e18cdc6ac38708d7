// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package anilist

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/aniscout/internal/anime"
	"github.com/tomtom215/aniscout/internal/cache"
	"github.com/tomtom215/aniscout/internal/logging"
	"github.com/tomtom215/aniscout/internal/upstream"
)

// DefaultEndpoint is the public AniList GraphQL endpoint.
const DefaultEndpoint = "https://graphql.anilist.co"

// Config configures the AniList client.
type Config struct {
	Endpoint  string          `koanf:"endpoint"`
	CacheSize int             `koanf:"cache_size"`
	CacheTTL  time.Duration   `koanf:"cache_ttl"`
	Upstream  upstream.Config `koanf:",squash,flatten"`
}

// DefaultConfig returns the production AniList settings. AniList allows
// roughly 90 requests per minute.
func DefaultConfig() Config {
	up := upstream.DefaultConfig("anilist")
	up.RequestsPerSecond = 1.5
	up.Burst = 10
	return Config{
		Endpoint:  DefaultEndpoint,
		CacheSize: 1000,
		CacheTTL:  15 * time.Minute,
		Upstream:  up,
	}
}

// MoodQuery selects anime by genre and tag membership.
type MoodQuery struct {
	Genres  []string
	Tags    []string
	Page    int
	PerPage int
}

// Client queries AniList. It implements recommend.Resolver.
type Client struct {
	endpoint string
	http     *upstream.Client
	media    *cache.LRU[anime.Media]
	logger   zerolog.Logger
}

// New creates an AniList client. A CacheSize of zero disables the media cache.
func New(cfg Config, opts ...upstream.Option) (*Client, error) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	cfg.Upstream.Name = "anilist"

	hc, err := upstream.New(cfg.Upstream, opts...)
	if err != nil {
		return nil, err
	}

	c := &Client{
		endpoint: cfg.Endpoint,
		http:     hc,
		logger:   logging.WithComponent("anilist"),
	}
	if cfg.CacheSize > 0 {
		c.media = cache.NewLRU[anime.Media]("anilist_media", cfg.CacheSize, cfg.CacheTTL)
	}
	return c, nil
}

// Name returns the upstream service name.
func (c *Client) Name() string { return c.http.Name() }

// State returns the circuit breaker state.
func (c *Client) State() string { return c.http.State() }

// MediaCache exposes the media cache for maintenance; nil when disabled.
func (c *Client) MediaCache() *cache.LRU[anime.Media] { return c.media }

// ResolveByID fetches an anime with its native recommendations.
// Unknown IDs return an error wrapping anime.ErrNotFound.
func (c *Client) ResolveByID(ctx context.Context, id int) (*anime.Media, error) {
	key := "id:" + strconv.Itoa(id)
	if m, ok := c.cached(key); ok {
		return m, nil
	}

	m, err := c.fetchSingle(ctx, getByIDQuery, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("anilist: get anime %d: %w", id, err)
	}
	c.store(key, m)
	return m, nil
}

// ResolveByTitle finds the best AniList match for a free-form title.
// No match returns an error wrapping anime.ErrNotFound.
func (c *Client) ResolveByTitle(ctx context.Context, title string) (*anime.Media, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("anilist: empty title: %w", anime.ErrNotFound)
	}

	key := "title:" + strings.ToLower(title)
	if m, ok := c.cached(key); ok {
		return m, nil
	}

	m, err := c.fetchSingle(ctx, searchByTitleQuery, map[string]any{"search": title})
	if err != nil {
		return nil, fmt.Errorf("anilist: search %q: %w", title, err)
	}
	c.store(key, m)
	c.store("id:"+strconv.Itoa(m.ID), m)
	return m, nil
}

// SearchByMood returns one page of popular, non-adult anime whose genres
// or tags intersect the query.
func (c *Client) SearchByMood(ctx context.Context, q MoodQuery) ([]anime.Media, error) {
	vars := map[string]any{
		"page":    q.Page,
		"perPage": q.PerPage,
	}
	if len(q.Genres) > 0 {
		vars["genres"] = q.Genres
	}
	if len(q.Tags) > 0 {
		vars["tags"] = q.Tags
	}

	var resp graphqlResponse[pageData]
	if err := c.query(ctx, searchByMoodQuery, vars, &resp); err != nil {
		return nil, fmt.Errorf("anilist: mood search: %w", err)
	}

	out := make([]anime.Media, len(resp.Data.Page.Media))
	for i := range resp.Data.Page.Media {
		out[i] = resp.Data.Page.Media[i].toMedia()
	}
	return out, nil
}

// Autocomplete returns up to perPage title suggestions, most popular first.
func (c *Client) Autocomplete(ctx context.Context, search string, perPage int) ([]anime.Suggestion, error) {
	var resp graphqlResponse[pageData]
	vars := map[string]any{"search": search, "perPage": perPage}
	if err := c.query(ctx, autocompleteQuery, vars, &resp); err != nil {
		return nil, fmt.Errorf("anilist: autocomplete: %w", err)
	}

	out := make([]anime.Suggestion, len(resp.Data.Page.Media))
	for i := range resp.Data.Page.Media {
		m := resp.Data.Page.Media[i].toMedia()
		out[i] = anime.Suggest(&m)
	}
	return out, nil
}

// fetchSingle runs a Media(...) query and maps absence to anime.ErrNotFound.
func (c *Client) fetchSingle(ctx context.Context, query string, vars map[string]any) (*anime.Media, error) {
	var resp graphqlResponse[singleMediaData]
	if err := c.query(ctx, query, vars, &resp); err != nil {
		return nil, err
	}
	if resp.Data.Media == nil {
		return nil, anime.ErrNotFound
	}
	m := resp.Data.Media.toMedia()
	return &m, nil
}

// query POSTs a GraphQL request. AniList answers unknown media with HTTP 404
// and a GraphQL error of status 404; both become anime.ErrNotFound.
func (c *Client) query(ctx context.Context, query string, vars map[string]any, out any) error {
	err := c.http.PostJSON(ctx, c.endpoint, graphqlRequest{Query: query, Variables: vars}, out)
	if upstream.IsStatus(err, http.StatusNotFound) {
		return anime.ErrNotFound
	}
	if err != nil {
		logging.Ctx(ctx).Debug().Str("error", logging.RedactError(err)).Msg("AniList query failed")
		return err
	}

	errs := graphqlErrors(out)
	switch {
	case len(errs) == 0:
		return nil
	case notFound(errs):
		return anime.ErrNotFound
	default:
		return errors.New("graphql: " + errorMessage(errs))
	}
}

// graphqlErrors extracts the errors array from a decoded response.
func graphqlErrors(out any) []graphqlError {
	switch r := out.(type) {
	case *graphqlResponse[singleMediaData]:
		return r.Errors
	case *graphqlResponse[pageData]:
		return r.Errors
	default:
		return nil
	}
}

func (c *Client) cached(key string) (*anime.Media, bool) {
	if c.media == nil {
		return nil, false
	}
	m, ok := c.media.Get(key)
	if !ok {
		return nil, false
	}
	return &m, true
}

func (c *Client) store(key string, m *anime.Media) {
	if c.media != nil {
		c.media.Add(key, *m)
	}
}
