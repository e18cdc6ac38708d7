// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package recommend

import (
	"fmt"
	"math"
)

// Weights controls how overlap is converted into a score.
type Weights struct {
	// Genre is the contribution of a perfect genre overlap.
	// Default: 60
	Genre float64 `koanf:"genre"`

	// Tag is the contribution of a perfect tag overlap.
	// Default: 40
	Tag float64 `koanf:"tag"`

	// NativeBoost is added when the candidate is a native recommendation.
	// Default: 20
	NativeBoost float64 `koanf:"native_boost"`
}

// DefaultWeights returns the standard 60/40 split with a +20 native boost.
func DefaultWeights() Weights {
	return Weights{Genre: 60, Tag: 40, NativeBoost: 20}
}

// Validate rejects negative weights, which would break score monotonicity.
func (w Weights) Validate() error {
	if w.Genre < 0 {
		return fmt.Errorf("genre weight must be non-negative, got %f", w.Genre)
	}
	if w.Tag < 0 {
		return fmt.Errorf("tag weight must be non-negative, got %f", w.Tag)
	}
	if w.NativeBoost < 0 {
		return fmt.Errorf("native boost must be non-negative, got %f", w.NativeBoost)
	}
	return nil
}

// MaxScore is the upper bound of every similarity score.
const MaxScore = 100

// Match is the explainable outcome of scoring one candidate.
type Match struct {
	// Score is the similarity score, 0-100.
	Score int

	// GenreOverlap is the genre Jaccard index as a percentage.
	GenreOverlap int

	// TagOverlap is the tag Jaccard index as a percentage.
	TagOverlap int

	// IsNative reports whether the native boost was applied.
	IsNative bool
}

// Scorer computes similarity between a merged reference profile and a candidate.
type Scorer struct {
	weights Weights
}

// NewScorer creates a scorer with the given weights.
func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// Score compares a candidate against the merged reference attributes.
func (s *Scorer) Score(ref, candidate AttributeSet, isNative bool) Match {
	genreSim := Jaccard(ref.Genres, candidate.Genres)
	tagSim := Jaccard(ref.Tags, candidate.Tags)

	raw := genreSim*s.weights.Genre + tagSim*s.weights.Tag
	if isNative {
		raw += s.weights.NativeBoost
	}

	return Match{
		Score:        roundHalfUp(math.Min(MaxScore, raw)),
		GenreOverlap: roundHalfUp(genreSim * 100),
		TagOverlap:   roundHalfUp(tagSim * 100),
		IsNative:     isNative,
	}
}

// Jaccard returns |a ∩ b| / |a ∪ b|. Two empty sets have similarity 0.
func Jaccard(a, b Set) float64 {
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	intersection := 0
	for v := range small {
		if large.Has(v) {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// roundHalfUp rounds non-negative values to the nearest integer, halves up.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
