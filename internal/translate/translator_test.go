// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/aniscout/internal/cache"
)

// myMemoryStub answers every request with an uppercase "translation".
type myMemoryStub struct {
	*httptest.Server
	hits atomic.Int32
}

func newMyMemoryStub(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *myMemoryStub {
	t.Helper()
	s := &myMemoryStub{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

func upperHandler(t *testing.T) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("langpair"); got != "en|es" {
			t.Errorf("langpair = %q, want en|es", got)
		}
		q := r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`{"responseData":{"translatedText":"` + strings.ToUpper(q) + `","match":1},"responseStatus":200}`))
	}
}

func newTestTranslator(t *testing.T, endpoint string, disk *cache.DiskStore) *Translator {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	cfg.Upstream.RequestsPerSecond = 0
	cfg.Upstream.Timeout = 200 * time.Millisecond
	tr, err := New(cfg, disk)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tr
}

func TestTranslate_Success(t *testing.T) {
	t.Parallel()

	stub := newMyMemoryStub(t, upperHandler(t))
	tr := newTestTranslator(t, stub.URL, nil)

	if got := tr.Translate(context.Background(), "a bounty hunter"); got != "A BOUNTY HUNTER" {
		t.Errorf("Translate() = %q", got)
	}
}

func TestTranslate_CachesCaseInsensitively(t *testing.T) {
	t.Parallel()

	stub := newMyMemoryStub(t, upperHandler(t))
	tr := newTestTranslator(t, stub.URL, nil)

	first := tr.Translate(context.Background(), "Space Cowboys")
	second := tr.Translate(context.Background(), "space cowboys")

	if first != "SPACE COWBOYS" || second != first {
		t.Errorf("translations = %q, %q", first, second)
	}
	if got := stub.hits.Load(); got != 1 {
		t.Errorf("upstream hits = %d, want 1", got)
	}
}

func TestTranslate_FallsBackToSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler func(w http.ResponseWriter, r *http.Request)
	}{
		{"http error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"quota status", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"responseData":{"translatedText":"MYMEMORY WARNING"},"responseStatus":429,"responseDetails":"quota"}`))
		}},
		{"string status", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"responseData":{"translatedText":"x"},"responseStatus":"403","responseDetails":"INVALID LANGUAGE PAIR"}`))
		}},
		{"empty translation", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"responseData":{"translatedText":"  "},"responseStatus":200}`))
		}},
		{"timeout", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}},
		{"garbage", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			stub := newMyMemoryStub(t, tt.handler)
			tr := newTestTranslator(t, stub.URL, nil)

			if got := tr.Translate(context.Background(), "<p>Original text</p>"); got != "Original text" {
				t.Errorf("Translate() = %q, want cleaned original", got)
			}
			// Failures are not cached.
			tr.Translate(context.Background(), "Original text")
			if got := stub.hits.Load(); got != 2 {
				t.Errorf("upstream hits = %d, want 2", got)
			}
		})
	}
}

func TestTranslate_BlankInput(t *testing.T) {
	t.Parallel()

	stub := newMyMemoryStub(t, upperHandler(t))
	tr := newTestTranslator(t, stub.URL, nil)

	for _, in := range []string{"", "   ", "<br><br/>", "<i></i>"} {
		if got := tr.Translate(context.Background(), in); got != "" {
			t.Errorf("Translate(%q) = %q, want empty", in, got)
		}
	}
	if stub.hits.Load() != 0 {
		t.Errorf("blank input must not reach upstream")
	}
}

func TestTranslate_Disabled(t *testing.T) {
	t.Parallel()

	stub := newMyMemoryStub(t, upperHandler(t))
	cfg := DefaultConfig()
	cfg.Enabled = false
	cfg.Endpoint = stub.URL
	tr, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := tr.Translate(context.Background(), "Plain <b>text</b>"); got != "Plain text" {
		t.Errorf("Translate() = %q", got)
	}
	if stub.hits.Load() != 0 {
		t.Error("disabled translator must not call upstream")
	}
}

func TestTranslate_TruncatesBeforeSending(t *testing.T) {
	t.Parallel()

	var received atomic.Value
	stub := newMyMemoryStub(t, func(w http.ResponseWriter, r *http.Request) {
		received.Store(r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"responseData":{"translatedText":"ok"},"responseStatus":200}`))
	})
	tr := newTestTranslator(t, stub.URL, nil)

	tr.Translate(context.Background(), strings.Repeat("a", 1500))

	q, _ := received.Load().(string)
	if len(q) != 1003 || !strings.HasSuffix(q, "...") {
		t.Errorf("sent %d chars, want 1000 + ...", len(q))
	}
}

func TestTranslate_DiskTier(t *testing.T) {
	t.Parallel()

	disk, err := cache.OpenDiskStore("translation_disk_test", cache.DiskOptions{InMemory: true, TTL: time.Hour})
	if err != nil {
		t.Fatalf("OpenDiskStore() error = %v", err)
	}
	t.Cleanup(func() { _ = disk.Close() })

	stub := newMyMemoryStub(t, upperHandler(t))

	first := newTestTranslator(t, stub.URL, disk)
	first.Translate(context.Background(), "persist me")

	// A fresh translator has an empty memory tier but shares the disk.
	second := newTestTranslator(t, stub.URL, disk)
	if got := second.Translate(context.Background(), "persist me"); got != "PERSIST ME" {
		t.Errorf("Translate() = %q", got)
	}
	if got := stub.hits.Load(); got != 1 {
		t.Errorf("upstream hits = %d, want 1", got)
	}
}

func TestTranslateAll_PreservesOrder(t *testing.T) {
	t.Parallel()

	stub := newMyMemoryStub(t, upperHandler(t))
	tr := newTestTranslator(t, stub.URL, nil)

	in := []string{"one", "", "two", "three", "four", "five"}
	got := tr.TranslateAll(context.Background(), in)
	want := []string{"ONE", "", "TWO", "THREE", "FOUR", "FIVE"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestConfig_LangPair(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source, target string
		want           string
		wantErr        bool
	}{
		{"en", "es", "en|es", false},
		{"en-US", "es-419", "en|es", false},
		{"ja", "en", "ja|en", false},
		{"en", "en-GB", "", true},
		{"english", "es", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.source+"_"+tt.target, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			cfg.Source, cfg.Target = tt.source, tt.target
			got, err := cfg.LangPair()
			if (err != nil) != tt.wantErr {
				t.Fatalf("LangPair() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("LangPair() = %q, want %q", got, tt.want)
			}
		})
	}
}
