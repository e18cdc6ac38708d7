// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package recommend

import "github.com/tomtom215/aniscout/internal/anime"

// Candidate is a potential recommendation and its provenance.
type Candidate struct {
	Media    anime.Media
	IsNative bool
}

// CandidatePool is a deduplicated, insertion-ordered set of candidates keyed
// by anime ID.
type CandidatePool struct {
	candidates []Candidate
	index      map[int]int
}

// Aggregate builds the candidate pool from the references' native
// recommendation lists.
//
// Candidates whose ID matches any reference are discarded. When the same ID
// appears in several lists the first occurrence is kept and later ones are
// dropped without merging.
func Aggregate(refs []anime.Media) *CandidatePool {
	refIDs := make(map[int]struct{}, len(refs))
	for i := range refs {
		refIDs[refs[i].ID] = struct{}{}
	}

	pool := &CandidatePool{index: make(map[int]int)}
	for i := range refs {
		for _, rec := range refs[i].Recommendations {
			if _, isRef := refIDs[rec.ID]; isRef {
				continue
			}
			if _, seen := pool.index[rec.ID]; seen {
				continue
			}
			pool.index[rec.ID] = len(pool.candidates)
			pool.candidates = append(pool.candidates, Candidate{Media: rec, IsNative: true})
		}
	}
	return pool
}

// Len returns the number of distinct candidates.
func (p *CandidatePool) Len() int {
	return len(p.candidates)
}

// Contains reports whether a candidate with the given ID is in the pool.
func (p *CandidatePool) Contains(id int) bool {
	_, ok := p.index[id]
	return ok
}

// Candidates returns the candidates in insertion order. The slice must not be
// modified.
func (p *CandidatePool) Candidates() []Candidate {
	return p.candidates
}
