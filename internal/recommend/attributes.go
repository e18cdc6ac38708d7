// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package recommend

import "github.com/tomtom215/aniscout/internal/anime"

// Set is an exact-match string set. No case or whitespace normalization is
// applied to members.
type Set map[string]struct{}

// NewSet builds a set from values, collapsing duplicates.
func NewSet(values []string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is a member.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// add inserts every value into the set.
func (s Set) add(values []string) {
	for _, v := range values {
		s[v] = struct{}{}
	}
}

// AttributeSet holds the genre and tag-name sets of one item or of a merged
// group of items.
type AttributeSet struct {
	Genres Set
	Tags   Set
}

// BuildAttributes extracts the genre and tag-name sets of a single item.
// Tag ranks are ignored.
func BuildAttributes(m *anime.Media) AttributeSet {
	return AttributeSet{
		Genres: NewSet(m.Genres),
		Tags:   NewSet(m.TagNames()),
	}
}

// MergeAttributes unions the attribute sets of every reference.
func MergeAttributes(refs []anime.Media) AttributeSet {
	merged := AttributeSet{Genres: Set{}, Tags: Set{}}
	for i := range refs {
		merged.Genres.add(refs[i].Genres)
		merged.Tags.add(refs[i].TagNames())
	}
	return merged
}
