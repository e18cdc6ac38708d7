// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package chat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/aniscout/internal/logging"
	"github.com/tomtom215/aniscout/internal/upstream"
)

// DefaultEndpoint is the Gemini models base URL.
const DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"

var (
	// ErrNotConfigured is returned when no API key is configured.
	ErrNotConfigured = errors.New("chat: gemini api key not configured")

	// ErrInvalidMessage is returned for blank or oversized messages.
	ErrInvalidMessage = fmt.Errorf("chat: message must be between 1 and %d characters", MaxMessageLength)

	// ErrEmptyResponse is returned when Gemini produces no text.
	ErrEmptyResponse = errors.New("chat: empty response from gemini")

	// ErrBlocked matches any *BlockedError.
	ErrBlocked = errors.New("chat: content blocked")
)

// BlockedError reports a prompt rejected by Gemini safety filters.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return "chat: content blocked: " + e.Reason
}

// Is makes errors.Is(err, ErrBlocked) match.
func (e *BlockedError) Is(target error) bool {
	return target == ErrBlocked
}

// GenerationConfig tunes sampling.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature" koanf:"temperature"`
	TopK            int     `json:"topK" koanf:"top_k"`
	TopP            float64 `json:"topP" koanf:"top_p"`
	MaxOutputTokens int     `json:"maxOutputTokens" koanf:"max_output_tokens"`
}

// Config configures the Gemini client.
type Config struct {
	APIKey     string           `koanf:"api_key"`
	Endpoint   string           `koanf:"endpoint"`
	Model      string           `koanf:"model"`
	Generation GenerationConfig `koanf:"generation"`
	Upstream   upstream.Config  `koanf:",squash,flatten"`
}

// DefaultConfig returns the production Gemini settings: 30s timeout and
// Gemini's free tier of 60 requests per minute.
func DefaultConfig() Config {
	up := upstream.DefaultConfig("gemini")
	up.Timeout = 30 * time.Second
	up.MaxRetries = 1
	up.RequestsPerSecond = 1
	up.Burst = 5
	return Config{
		Endpoint: DefaultEndpoint,
		Model:    "gemini-2.0-flash-exp",
		Generation: GenerationConfig{
			Temperature:     0.8,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 1024,
		},
		Upstream: up,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// safetySettings blocks medium and above in every harm category.
var safetySettings = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
}

// Client is the Gemini chat client.
type Client struct {
	apiKey     string
	url        string
	generation GenerationConfig
	http       *upstream.Client
}

// New creates a Gemini client. A missing API key is not an error here; Ask
// reports ErrNotConfigured instead so the rest of the service can run.
func New(cfg Config, opts ...upstream.Option) (*Client, error) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		return nil, errors.New("chat: model is required")
	}
	cfg.Upstream.Name = "gemini"

	hc, err := upstream.New(cfg.Upstream, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{
		apiKey:     cfg.APIKey,
		url:        strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Model + ":generateContent",
		generation: cfg.Generation,
		http:       hc,
	}, nil
}

// Name returns the upstream service name.
func (c *Client) Name() string { return c.http.Name() }

// State returns the circuit breaker state.
func (c *Client) State() string { return c.http.State() }

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

// Ask sends message with recent history and returns the model's answer.
func (c *Client) Ask(ctx context.Context, message string, history []Message) (string, error) {
	if !ValidMessage(message) {
		return "", ErrInvalidMessage
	}
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: BuildPrompt(strings.TrimSpace(message), history)}}}},
		GenerationConfig: c.generation,
		SafetySettings:   safetySettings,
	})
	if err != nil {
		return "", fmt.Errorf("chat: encode request: %w", err)
	}

	var resp generateResponse
	err = c.http.DoJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", c.apiKey)
		return req, nil
	}, &resp)
	if err != nil {
		logging.Ctx(ctx).Warn().Str("error", logging.RedactError(err)).Msg("Gemini request failed")
		return "", fmt.Errorf("chat: %w", err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", &BlockedError{Reason: resp.PromptFeedback.BlockReason}
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 || resp.Candidates[0].Content.Parts[0].Text == "" {
		return "", ErrEmptyResponse
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
