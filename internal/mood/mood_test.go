// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package mood

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/tomtom215/aniscout/internal/anilist"
	"github.com/tomtom215/aniscout/internal/anime"
)

func TestAvailable_Order(t *testing.T) {
	t.Parallel()

	want := []string{"relajado", "feliz", "intenso", "epico", "triste", "romantico", "misterioso", "fantastico"}
	got := Available()
	if len(got) != len(want) {
		t.Fatalf("Available() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Available()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		wantOK bool
		want   string
	}{
		{"exact", "feliz", true, "feliz"},
		{"upper case", "FELIZ", true, "feliz"},
		{"padded", "  epico ", true, "epico"},
		{"unknown", "aburrido", false, ""},
		{"empty", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, ok := Lookup(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if m.Name != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.input, m.Name, tt.want)
			}
		})
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	t.Parallel()

	all := All()
	all[0].Name = "mutated"
	if Available()[0] != "relajado" {
		t.Error("All() exposed the underlying table")
	}
}

func TestUnknownMoodError_ListsMoods(t *testing.T) {
	t.Parallel()

	err := &UnknownMoodError{Mood: "aburrido"}
	msg := err.Error()
	if !strings.Contains(msg, "aburrido") || !strings.Contains(msg, "fantastico") {
		t.Errorf("Error() = %q, want mood name and available list", msg)
	}
}

func TestMatchReason(t *testing.T) {
	t.Parallel()

	m, _ := Lookup("feliz")
	media := &anime.Media{
		Genres: []string{"Slice of Life", "Music", "Comedy"},
		Tags:   []anime.Tag{{Name: "School"}, {Name: "Band"}},
	}

	r := MatchReason(media, m)
	if strings.Join(r.MatchedGenres, ",") != "Slice of Life,Comedy" {
		t.Errorf("MatchedGenres = %v", r.MatchedGenres)
	}
	if strings.Join(r.MatchedTags, ",") != "School" {
		t.Errorf("MatchedTags = %v", r.MatchedTags)
	}

	none := MatchReason(&anime.Media{Genres: []string{"Horror"}}, m)
	if none.MatchedGenres != nil || none.MatchedTags != nil {
		t.Errorf("expected empty reason, got %+v", none)
	}
}

type fakeSearcher struct {
	mu     sync.Mutex
	query  anilist.MoodQuery
	media  []anime.Media
	err    error
	called int
}

func (f *fakeSearcher) SearchByMood(ctx context.Context, q anilist.MoodQuery) ([]anime.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called++
	f.query = q
	return f.media, f.err
}

type prefixTranslator struct{}

func (prefixTranslator) Translate(ctx context.Context, text string) string {
	return "es:" + text
}

func TestService_Recommend(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{media: []anime.Media{
		{ID: 1, Title: anime.Title{Romaji: "Yuru Camp"}, Genres: []string{"Slice of Life"}, Tags: []anime.Tag{{Name: "Iyashikei"}}, Description: "camping"},
		{ID: 2, Title: anime.Title{English: "Non Non Biyori"}, Genres: []string{"Comedy"}, Description: "village"},
	}}
	svc := NewService(searcher, prefixTranslator{})

	results, err := svc.Recommend(context.Background(), Request{Mood: "Relajado"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if searcher.query.Page != DefaultPage || searcher.query.PerPage != DefaultLimit {
		t.Errorf("query page/perPage = %d/%d, want defaults", searcher.query.Page, searcher.query.PerPage)
	}
	if searcher.query.Genres[0] != "Slice of Life" || searcher.query.Tags[0] != "Iyashikei" {
		t.Errorf("query filters = %+v", searcher.query)
	}

	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].ID != 1 || results[1].ID != 2 {
		t.Errorf("result order = %d,%d, want 1,2", results[0].ID, results[1].ID)
	}
	if results[0].Synopsis != "es:camping" {
		t.Errorf("Synopsis = %q, want translated", results[0].Synopsis)
	}
	if len(results[0].Reason.MatchedTags) != 1 {
		t.Errorf("MatchedTags = %v", results[0].Reason.MatchedTags)
	}
	if results[1].Reason.MatchedGenres != nil {
		t.Errorf("unexpected genres for non-matching entry: %v", results[1].Reason.MatchedGenres)
	}
}

func TestService_Recommend_Errors(t *testing.T) {
	t.Parallel()

	upstreamErr := errors.New("anilist down")

	tests := []struct {
		name       string
		req        Request
		searchErr  error
		wantCalled bool
		check      func(error) bool
	}{
		{
			name:  "unknown mood",
			req:   Request{Mood: "aburrido"},
			check: func(err error) bool { var u *UnknownMoodError; return errors.As(err, &u) },
		},
		{
			name:  "limit too large",
			req:   Request{Mood: "feliz", Limit: MaxLimit + 1},
			check: func(err error) bool { return err != nil },
		},
		{
			name:  "negative page",
			req:   Request{Mood: "feliz", Page: -1},
			check: func(err error) bool { return err != nil },
		},
		{
			name:  "page too large",
			req:   Request{Mood: "feliz", Page: MaxPage + 1},
			check: func(err error) bool { return err != nil },
		},
		{
			name:       "upstream failure",
			req:        Request{Mood: "feliz"},
			searchErr:  upstreamErr,
			wantCalled: true,
			check:      func(err error) bool { return errors.Is(err, upstreamErr) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			searcher := &fakeSearcher{err: tt.searchErr}
			_, err := NewService(searcher, nil).Recommend(context.Background(), tt.req)
			if !tt.check(err) {
				t.Errorf("Recommend() error = %v", err)
			}
			if (searcher.called > 0) != tt.wantCalled {
				t.Errorf("searcher called = %d, wantCalled %v", searcher.called, tt.wantCalled)
			}
		})
	}
}

func TestService_Recommend_NoTranslator(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{media: []anime.Media{{ID: 5, Description: "raw"}}}
	results, err := NewService(searcher, nil).Recommend(context.Background(), Request{Mood: "triste", Limit: 1, Page: 2})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if results[0].Synopsis != "raw" {
		t.Errorf("Synopsis = %q, want raw", results[0].Synopsis)
	}
	if searcher.query.Page != 2 || searcher.query.PerPage != 1 {
		t.Errorf("query page/perPage = %d/%d", searcher.query.Page, searcher.query.PerPage)
	}
}
