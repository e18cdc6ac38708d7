// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package recommend

import (
	"sort"

	"github.com/tomtom215/aniscout/internal/anime"
)

// ScoredResult is a candidate annotated with its similarity match.
type ScoredResult struct {
	Media anime.Media
	Match Match
}

// Ranker scores and orders a candidate pool.
type Ranker struct {
	scorer *Scorer
}

// NewRanker creates a ranker backed by the given scorer.
func NewRanker(scorer *Scorer) *Ranker {
	return &Ranker{scorer: scorer}
}

// Rank scores every candidate against the merged reference attributes, sorts
// by score descending and keeps the first limit results. Equal scores keep
// their aggregation order. A non-positive limit keeps every result.
//
// An empty pool yields ErrEmptyCandidatePool rather than an empty slice.
func (r *Ranker) Rank(pool *CandidatePool, ref AttributeSet, limit int) ([]ScoredResult, error) {
	if pool == nil || pool.Len() == 0 {
		return nil, ErrEmptyCandidatePool
	}

	candidates := pool.Candidates()
	results := make([]ScoredResult, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		results[i] = ScoredResult{
			Media: c.Media,
			Match: r.scorer.Score(ref, BuildAttributes(&c.Media), c.IsNative),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Match.Score > results[j].Match.Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
