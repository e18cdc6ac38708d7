// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package recommend

import (
	"strconv"

	"github.com/tomtom215/aniscout/internal/anime"
)

// Reference is one caller-supplied input, either an AniList ID or a title.
// Title keeps the caller's text untrimmed so errors can quote it back.
type Reference struct {
	ID      int
	Title   string
	ByTitle bool
}

// String identifies the input in error messages.
func (r Reference) String() string {
	if r.ByTitle {
		return strconv.Quote(r.Title)
	}
	return "id " + strconv.Itoa(r.ID)
}

// Request asks for recommendations similar to a set of reference anime.
// IDs take precedence over Titles when both are present.
type Request struct {
	// IDs are AniList identifiers of the references.
	IDs []int

	// Titles are free-text titles, resolved by search.
	Titles []string

	// Limit is the maximum number of results. Zero selects the default.
	Limit int
}

// References returns the inputs to resolve, in request order.
func (r *Request) References() []Reference {
	if len(r.IDs) > 0 {
		refs := make([]Reference, len(r.IDs))
		for i, id := range r.IDs {
			refs[i] = Reference{ID: id}
		}
		return refs
	}

	refs := make([]Reference, len(r.Titles))
	for i, title := range r.Titles {
		refs[i] = Reference{Title: title, ByTitle: true}
	}
	return refs
}

// MatchDetails explains how a score was obtained.
type MatchDetails struct {
	GenreOverlap           int  `json:"genre_overlap"`
	TagOverlap             int  `json:"tag_overlap"`
	IsNativeRecommendation bool `json:"is_native_recommendation"`
}

// Recommendation is one ranked result in client form.
type Recommendation struct {
	anime.Anime

	// SimilarityScore is 0-100, higher is more similar.
	SimilarityScore int          `json:"similarity_score"`
	MatchDetails    MatchDetails `json:"match_details"`
}

// Response is the engine output.
type Response struct {
	// Results are ordered by similarity score, highest first.
	Results []Recommendation `json:"results"`

	// References are the resolved inputs, in request order.
	References []anime.Suggestion `json:"references"`

	// CandidateCount is the size of the candidate pool before truncation.
	CandidateCount int `json:"candidate_count"`
}
