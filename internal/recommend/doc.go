// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

// Package recommend implements similarity-based anime recommendations from a
// small set of reference titles.
//
// # Architecture
//
// The package is split into a pure scoring core and a thin orchestrator:
//
//   - Attribute sets: genre and tag sets per item, merged across references
//   - Scorer: weighted Jaccard overlap with a flat native-recommendation boost
//   - Aggregator: deduplicated candidate pool drawn from the references'
//     native recommendation lists, first occurrence wins
//   - Ranker: stable sort by score, truncation, empty-pool detection
//   - Engine: input validation, parallel reference resolution, ranking and
//     synopsis enrichment
//
// The core performs no I/O and holds no state between calls. Only the Engine
// talks to collaborators, through the Resolver and Enricher interfaces.
//
// # Scoring
//
//	genre   = J(referenceGenres, candidateGenres)
//	tag     = J(referenceTags, candidateTags)
//	raw     = genre*60 + tag*40 (+20 when native)
//	score   = round(min(100, raw))
//
// where J is the Jaccard index and J(∅, ∅) = 0. Overlap percentages are
// reported unclamped as round(J*100).
//
// # Errors
//
// Every failure is classified so callers can tell them apart:
//
//   - ErrInvalidInputCount: fewer than 2 or more than 10 references
//   - ErrUnresolvedReference: a specific reference does not exist upstream
//   - ErrEmptyCandidatePool: no reference carried native recommendations
//   - ErrUpstreamFailure: the resolver failed for service reasons (retryable)
//
// # Usage
//
//	engine, err := recommend.NewEngine(cfg, resolver, translator, logger)
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    Titles: []string{"Mushishi", "Natsume Yuujinchou"},
//	    Limit:  15,
//	})
package recommend
