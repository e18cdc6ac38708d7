// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package api

import "github.com/tomtom215/aniscout/internal/chat"

// SimilarRequest is the body of POST /recommendations/similar.
//
// Reference counts are not validated here: the engine rejects them with
// INVALID_INPUT_COUNT before any upstream call.
type SimilarRequest struct {
	Titles []string `json:"titles,omitempty" validate:"omitempty,dive,notblank,max=200"`
	IDs    []int    `json:"ids,omitempty" validate:"omitempty,dive,gt=0"`
	Limit  int      `json:"limit,omitempty" validate:"omitempty,min=1,max=50"`
}

// MoodRequest holds the validated parameters of GET /moods/{mood}.
type MoodRequest struct {
	Mood  string `query:"mood" validate:"required,mood"`
	Limit int    `query:"limit" validate:"min=1,max=50"`
	Page  int    `query:"page" validate:"min=1,max=10"`
}

// SearchRequest holds the validated parameters of GET /anime/search.
type SearchRequest struct {
	Query string `query:"q" validate:"required,notblank,max=200"`
	Limit int    `query:"limit" validate:"min=1,max=20"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string         `json:"message" validate:"required,notblank"`
	History []chat.Message `json:"history,omitempty" validate:"omitempty,max=10,dive"`
}

// ChatResponse is the payload returned by POST /chat.
type ChatResponse struct {
	Response string `json:"response"`
}

// MoodsResponse is the payload returned by GET /moods.
type MoodsResponse struct {
	Moods []string `json:"moods"`
}
