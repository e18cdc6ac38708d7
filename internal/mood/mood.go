// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

// Package mood maps named moods to AniList genre and tag filters and builds
// mood recommendations annotated with the reason each title matched.
package mood

import (
	"fmt"
	"strings"
)

// Mood is a named set of genre and tag filters.
type Mood struct {
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
	Tags   []string `json:"tags"`
}

// moods is the supported table, in display order.
var moods = []Mood{
	{Name: "relajado", Genres: []string{"Slice of Life"}, Tags: []string{"Iyashikei"}},
	{Name: "feliz", Genres: []string{"Comedy", "Slice of Life"}, Tags: []string{"Cute Girls Doing Cute Things", "School"}},
	{Name: "intenso", Genres: []string{"Thriller", "Psychological"}, Tags: []string{"Psychological", "Mind Games"}},
	{Name: "epico", Genres: []string{"Action", "Adventure"}, Tags: []string{"Shounen", "Super Power"}},
	{Name: "triste", Genres: []string{"Drama"}, Tags: []string{"Tragedy", "Emotional"}},
	{Name: "romantico", Genres: []string{"Romance"}, Tags: []string{"Love Triangle", "School"}},
	{Name: "misterioso", Genres: []string{"Mystery"}, Tags: []string{"Detective", "Supernatural"}},
	{Name: "fantastico", Genres: []string{"Fantasy"}, Tags: []string{"Magic", "Isekai"}},
}

// Available returns the mood names in display order.
func Available() []string {
	names := make([]string, len(moods))
	for i, m := range moods {
		names[i] = m.Name
	}
	return names
}

// All returns a copy of the mood table.
func All() []Mood {
	out := make([]Mood, len(moods))
	copy(out, moods)
	return out
}

// Lookup finds a mood by name, ignoring case and surrounding space.
func Lookup(name string) (Mood, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, m := range moods {
		if m.Name == name {
			return m, true
		}
	}
	return Mood{}, false
}

// UnknownMoodError is returned for names not in the table.
type UnknownMoodError struct {
	Mood string
}

func (e *UnknownMoodError) Error() string {
	return fmt.Sprintf("mood %q is not valid; available moods: %s", e.Mood, strings.Join(Available(), ", "))
}
