// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

// Package jikan is the Jikan (MyAnimeList) REST client used for random
// anime discovery.
package jikan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/aniscout/internal/anime"
	"github.com/tomtom215/aniscout/internal/upstream"
)

// DefaultBaseURL is the public Jikan v4 API.
const DefaultBaseURL = "https://api.jikan.moe/v4"

// ErrEmptyResponse is returned when Jikan answers 200 without an anime.
var ErrEmptyResponse = errors.New("jikan: empty response")

// Config configures the Jikan client.
type Config struct {
	BaseURL  string          `koanf:"base_url"`
	Upstream upstream.Config `koanf:",squash,flatten"`
}

// DefaultConfig returns the production Jikan settings: 10s timeout, two
// retries from a 1s base, and Jikan's documented 3 requests per second.
func DefaultConfig() Config {
	up := upstream.DefaultConfig("jikan")
	up.RequestsPerSecond = 3
	up.Burst = 3
	return Config{BaseURL: DefaultBaseURL, Upstream: up}
}

type imageSet struct {
	ImageURL string `json:"image_url"`
}

// randomAnimeResponse is the /random/anime payload. Nullable fields decode
// to zero values.
type randomAnimeResponse struct {
	Data *struct {
		MalID  int    `json:"mal_id"`
		URL    string `json:"url"`
		Images struct {
			JPG  *imageSet `json:"jpg"`
			WebP *imageSet `json:"webp"`
		} `json:"images"`
		Title         string  `json:"title"`
		TitleEnglish  string  `json:"title_english"`
		TitleJapanese string  `json:"title_japanese"`
		Synopsis      string  `json:"synopsis"`
		Rating        string  `json:"rating"`
		Score         float64 `json:"score"`
		Episodes      int     `json:"episodes"`
		Year          int     `json:"year"`
	} `json:"data"`
}

// Client fetches anime from Jikan.
type Client struct {
	baseURL string
	http    *upstream.Client
}

// New creates a Jikan client.
func New(cfg Config, opts ...upstream.Option) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.Upstream.Name = "jikan"

	hc, err := upstream.New(cfg.Upstream, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{baseURL: strings.TrimRight(cfg.BaseURL, "/"), http: hc}, nil
}

// Name returns the upstream service name.
func (c *Client) Name() string { return c.http.Name() }

// State returns the circuit breaker state.
func (c *Client) State() string { return c.http.State() }

// Random returns one random anime. The synopsis is the untranslated source
// text.
func (c *Client) Random(ctx context.Context) (anime.Anime, error) {
	var resp randomAnimeResponse
	if err := c.http.GetJSON(ctx, c.baseURL+"/random/anime", &resp); err != nil {
		return anime.Anime{}, fmt.Errorf("jikan: random anime: %w", err)
	}
	if resp.Data == nil || resp.Data.MalID == 0 {
		return anime.Anime{}, ErrEmptyResponse
	}

	d := resp.Data
	a := anime.Anime{
		ID: d.MalID,
		Title: anime.DisplayTitle{
			// Jikan has no explicit romaji; the main title is romanized.
			Romaji:  d.Title,
			English: d.TitleEnglish,
			Native:  d.TitleJapanese,
			Default: d.TitleEnglish,
		},
		URL:      d.URL,
		Synopsis: d.Synopsis,
		Rating:   d.Rating,
		Score:    d.Score,
		Episodes: d.Episodes,
		Year:     d.Year,
	}
	if a.Title.Default == "" {
		a.Title.Default = d.Title
	}
	if a.Title.Default == "" {
		a.Title.Default = anime.Placeholder(d.MalID)
	}
	switch {
	case d.Images.JPG != nil && d.Images.JPG.ImageURL != "":
		a.ImageURL = d.Images.JPG.ImageURL
	case d.Images.WebP != nil:
		a.ImageURL = d.Images.WebP.ImageURL
	}
	return a, nil
}
