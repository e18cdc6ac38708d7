// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

// Package anime holds the domain model shared by the upstream clients,
// the recommendation core and the HTTP layer.
package anime

import (
	"errors"
	"strconv"
)

// ErrNotFound is returned by resolvers when an identifier or title does not
// match any anime. It is distinct from transport or service failures.
var ErrNotFound = errors.New("anime not found")

// Title holds the localized titles of an anime. Any of them may be empty.
type Title struct {
	Romaji  string `json:"romaji,omitempty"`
	English string `json:"english,omitempty"`
	Native  string `json:"native,omitempty"`
}

// CoverImage holds cover art URLs.
type CoverImage struct {
	Large  string `json:"large,omitempty"`
	Medium string `json:"medium,omitempty"`
}

// Tag is a descriptive label. Rank is the upstream relevance (0-100) and is
// carried for display only.
type Tag struct {
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

// Media is a fully resolved anime record.
//
// Recommendations are the related entries supplied by the upstream source
// itself ("native recommendations"). Entries within Recommendations never
// carry their own Recommendations.
type Media struct {
	ID              int        `json:"id"`
	Title           Title      `json:"title"`
	CoverImage      CoverImage `json:"cover_image"`
	SiteURL         string     `json:"site_url,omitempty"`
	Description     string     `json:"description,omitempty"`
	AverageScore    int        `json:"average_score,omitempty"`
	Episodes        int        `json:"episodes,omitempty"`
	SeasonYear      int        `json:"season_year,omitempty"`
	Genres          []string   `json:"genres"`
	Tags            []Tag      `json:"tags"`
	Recommendations []Media    `json:"recommendations,omitempty"`
}

// TagNames returns the tag names in source order.
func (m *Media) TagNames() []string {
	names := make([]string, len(m.Tags))
	for i, t := range m.Tags {
		names[i] = t.Name
	}
	return names
}

// DefaultTitle picks the display title: English, then romaji, then a
// placeholder built from the ID.
func (m *Media) DefaultTitle() string {
	return m.Title.Display(m.ID, false)
}

// Display returns the preferred display title. When includeNative is set the
// native title is tried after romaji.
func (t Title) Display(id int, includeNative bool) string {
	switch {
	case t.English != "":
		return t.English
	case t.Romaji != "":
		return t.Romaji
	case includeNative && t.Native != "":
		return t.Native
	default:
		return Placeholder(id)
	}
}

// Placeholder is the title used when an entry has no usable title.
func Placeholder(id int) string {
	return "Anime #" + strconv.Itoa(id)
}

// ImageURL prefers the large cover over the medium one.
func (c CoverImage) ImageURL() string {
	if c.Large != "" {
		return c.Large
	}
	return c.Medium
}
