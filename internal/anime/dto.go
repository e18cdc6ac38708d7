// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package anime

// DisplayTitle is the title block returned to clients.
type DisplayTitle struct {
	Romaji  string `json:"romaji,omitempty"`
	English string `json:"english,omitempty"`
	Native  string `json:"native,omitempty"`

	// Default is the title clients should render.
	Default string `json:"default"`
}

// Anime is the normalized representation returned by every endpoint,
// regardless of which upstream produced it.
type Anime struct {
	ID       int          `json:"id"`
	Title    DisplayTitle `json:"title"`
	ImageURL string       `json:"image_url,omitempty"`
	URL      string       `json:"url,omitempty"`
	Synopsis string       `json:"synopsis,omitempty"`
	Rating   string       `json:"rating,omitempty"`
	Score    float64      `json:"score,omitempty"`
	Episodes int          `json:"episodes,omitempty"`
	Year     int          `json:"year,omitempty"`
}

// Suggestion is a lightweight autocomplete entry.
type Suggestion struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Normalize converts a Media record into its client representation.
// The synopsis is left empty; callers fill it after translation.
func Normalize(m *Media) Anime {
	return Anime{
		ID: m.ID,
		Title: DisplayTitle{
			Romaji:  m.Title.Romaji,
			English: m.Title.English,
			Native:  m.Title.Native,
			Default: m.DefaultTitle(),
		},
		ImageURL: m.CoverImage.ImageURL(),
		URL:      m.SiteURL,
		Score:    float64(m.AverageScore),
		Episodes: m.Episodes,
		Year:     m.SeasonYear,
	}
}

// Suggest builds an autocomplete entry, falling back through English,
// romaji and native titles.
func Suggest(m *Media) Suggestion {
	return Suggestion{ID: m.ID, Title: m.Title.Display(m.ID, true)}
}
