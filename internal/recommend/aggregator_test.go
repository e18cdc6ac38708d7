// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package recommend

import (
	"testing"

	"github.com/tomtom215/aniscout/internal/anime"
)

func media(id int, genres []string, tags ...string) anime.Media {
	m := anime.Media{ID: id, Genres: genres}
	for _, tg := range tags {
		m.Tags = append(m.Tags, anime.Tag{Name: tg, Rank: 50})
	}
	return m
}

func withRecs(m anime.Media, recs ...anime.Media) anime.Media {
	m.Recommendations = recs
	return m
}

func poolIDs(p *CandidatePool) []int {
	ids := make([]int, 0, p.Len())
	for _, c := range p.Candidates() {
		ids = append(ids, c.Media.ID)
	}
	return ids
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	t.Run("no native lists yields empty pool", func(t *testing.T) {
		t.Parallel()
		pool := Aggregate([]anime.Media{
			media(1, []string{"Action"}),
			media(2, []string{"Romance"}),
		})
		if pool.Len() != 0 {
			t.Errorf("Len() = %d, want 0", pool.Len())
		}
	})

	t.Run("first occurrence wins", func(t *testing.T) {
		t.Parallel()
		first := media(10, []string{"Comedy"})
		second := media(10, []string{"Horror"})
		pool := Aggregate([]anime.Media{
			withRecs(media(1, nil), first, media(11, nil)),
			withRecs(media(2, nil), second, media(12, nil)),
		})

		if got, want := poolIDs(pool), []int{10, 11, 12}; !equalInts(got, want) {
			t.Fatalf("ids = %v, want %v", got, want)
		}
		if g := pool.Candidates()[0].Media.Genres; len(g) != 1 || g[0] != "Comedy" {
			t.Errorf("duplicate overwrote first occurrence: genres = %v", g)
		}
	})

	t.Run("references are excluded", func(t *testing.T) {
		t.Parallel()
		pool := Aggregate([]anime.Media{
			withRecs(media(1, nil), media(2, nil), media(3, nil)),
			withRecs(media(2, nil), media(1, nil), media(4, nil)),
		})
		if pool.Contains(1) || pool.Contains(2) {
			t.Errorf("pool contains a reference: %v", poolIDs(pool))
		}
		if got, want := poolIDs(pool), []int{3, 4}; !equalInts(got, want) {
			t.Errorf("ids = %v, want %v", got, want)
		}
	})

	t.Run("every candidate is native", func(t *testing.T) {
		t.Parallel()
		pool := Aggregate([]anime.Media{
			withRecs(media(1, nil), media(5, nil)),
			media(2, nil),
		})
		for _, c := range pool.Candidates() {
			if !c.IsNative {
				t.Errorf("candidate %d not marked native", c.Media.ID)
			}
		}
	})
}

func TestAggregateDedupInvariant(t *testing.T) {
	t.Parallel()

	// Overlapping lists that also mention references.
	refs := []anime.Media{
		withRecs(media(1, nil), media(2, nil), media(5, nil), media(6, nil), media(5, nil)),
		withRecs(media(2, nil), media(6, nil), media(7, nil), media(1, nil)),
		withRecs(media(3, nil), media(7, nil), media(8, nil), media(3, nil)),
	}

	pool := Aggregate(refs)
	seen := map[int]bool{}
	for _, id := range poolIDs(pool) {
		if seen[id] {
			t.Errorf("duplicate id %d", id)
		}
		seen[id] = true
		for _, r := range refs {
			if r.ID == id {
				t.Errorf("reference id %d in pool", id)
			}
		}
	}
	if got, want := poolIDs(pool), []int{5, 6, 7, 8}; !equalInts(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}
