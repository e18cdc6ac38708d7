// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/aniscout/internal/anime"
	"github.com/tomtom215/aniscout/internal/chat"
	"github.com/tomtom215/aniscout/internal/middleware"
	"github.com/tomtom215/aniscout/internal/mood"
	"github.com/tomtom215/aniscout/internal/recommend"
	"github.com/tomtom215/aniscout/internal/upstream"
)

// ===================================================================================================
// Fakes
// ===================================================================================================

type fakeRecommender struct {
	mu   sync.Mutex
	got  recommend.Request
	resp *recommend.Response
	err  error
}

func (f *fakeRecommender) Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeRandom struct {
	a   anime.Anime
	err error
}

func (f *fakeRandom) Random(ctx context.Context) (anime.Anime, error) { return f.a, f.err }

type fakeMoods struct {
	got     mood.Request
	results []mood.Result
	err     error
}

func (f *fakeMoods) Recommend(ctx context.Context, req mood.Request) ([]mood.Result, error) {
	f.got = req
	return f.results, f.err
}

type fakeAutocomplete struct {
	gotLimit int
	out      []anime.Suggestion
	err      error
}

func (f *fakeAutocomplete) Autocomplete(ctx context.Context, search string, perPage int) ([]anime.Suggestion, error) {
	f.gotLimit = perPage
	return f.out, f.err
}

type fakeChat struct {
	configured bool
	answer     string
	err        error
	history    []chat.Message
}

func (f *fakeChat) Ask(ctx context.Context, message string, history []chat.Message) (string, error) {
	f.history = history
	return f.answer, f.err
}

func (f *fakeChat) Configured() bool { return f.configured }

type tagTranslator struct{}

func (tagTranslator) Translate(ctx context.Context, text string) string { return "[es] " + text }

type fakeBreaker struct{ name, state string }

func (b fakeBreaker) Name() string  { return b.name }
func (b fakeBreaker) State() string { return b.state }

// ===================================================================================================
// Helpers
// ===================================================================================================

func newTestServer(deps Dependencies) http.Handler {
	if deps.Recommender == nil {
		deps.Recommender = &fakeRecommender{}
	}
	if deps.Moods == nil {
		deps.Moods = &fakeMoods{}
	}
	deps.RequestTimeout = 5 * time.Second
	mw := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})
	return NewRouter(NewHandler(deps), mw, middleware.NewPerformanceMonitor(100, time.Second)).Setup()
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env APIResponse
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s: %v (%s)", method, target, err, w.Body.String())
		}
	}
	return w, env
}

func errorCode(env APIResponse) string {
	if env.Error == nil {
		return ""
	}
	return env.Error.Code
}

// ===================================================================================================
// Similarity
// ===================================================================================================

func TestSimilarRecommendations(t *testing.T) {
	t.Parallel()

	rec := &fakeRecommender{resp: &recommend.Response{
		Results: []recommend.Recommendation{{
			Anime:           anime.Anime{ID: 3, Title: anime.DisplayTitle{Default: "Bleach"}},
			SimilarityScore: 87,
			MatchDetails:    recommend.MatchDetails{GenreOverlap: 2, TagOverlap: 1, IsNativeRecommendation: true},
		}},
		References:     []anime.Suggestion{{ID: 1, Title: "Naruto"}, {ID: 2, Title: "One Piece"}},
		CandidateCount: 12,
	}}
	h := newTestServer(Dependencies{Recommender: rec})

	w, env := do(t, h, http.MethodPost, "/api/v1/recommendations/similar", `{"ids":[1,2],"titles":["x","y"],"limit":5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if !env.Success {
		t.Error("expected success")
	}
	if len(rec.got.IDs) != 2 || rec.got.Limit != 5 {
		t.Errorf("engine request = %+v", rec.got)
	}
	if !strings.Contains(w.Body.String(), `"similarity_score":87`) || !strings.Contains(w.Body.String(), `"is_native_recommendation":true`) {
		t.Errorf("body missing result fields: %s", w.Body.String())
	}
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestSimilarRecommendations_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"malformed json", `{"ids":`, nil, http.StatusBadRequest, ErrCodeBadRequest},
		{"limit too large", `{"ids":[1,2],"limit":51}`, nil, http.StatusBadRequest, ErrCodeValidationFailed},
		{"negative id", `{"ids":[1,-2]}`, nil, http.StatusBadRequest, ErrCodeValidationFailed},
		{"empty title", `{"titles":["Mushishi",""]}`, nil, http.StatusBadRequest, ErrCodeValidationFailed},
		{"whitespace title", `{"titles":["Mushishi","   "]}`, nil, http.StatusBadRequest, ErrCodeValidationFailed},
		{"count", `{"ids":[1]}`, &recommend.InputCountError{Got: 1, Min: 2, Max: 10}, http.StatusBadRequest, ErrCodeInvalidInputCount},
		{"unresolved", `{"titles":["a","zzz"]}`, &recommend.UnresolvedReferenceError{Ref: recommend.Reference{Title: "zzz", ByTitle: true}, Err: anime.ErrNotFound}, http.StatusNotFound, ErrCodeUnresolvedReference},
		{"empty pool", `{"ids":[1,2]}`, recommend.ErrEmptyCandidatePool, http.StatusNotFound, ErrCodeNoRecommendations},
		{"breaker", `{"ids":[1,2]}`, &recommend.UpstreamError{Err: upstream.ErrCircuitOpen}, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newTestServer(Dependencies{Recommender: &fakeRecommender{err: tt.err}})

			w, env := do(t, h, http.MethodPost, "/api/v1/recommendations/similar", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if errorCode(env) != tt.wantCode {
				t.Errorf("code = %q, want %q", errorCode(env), tt.wantCode)
			}
		})
	}
}

// ===================================================================================================
// Random and search
// ===================================================================================================

func TestRandomAnime(t *testing.T) {
	t.Parallel()

	h := newTestServer(Dependencies{
		Random:     &fakeRandom{a: anime.Anime{ID: 21, Synopsis: "pirates"}},
		Translator: tagTranslator{},
	})

	w, _ := do(t, h, http.MethodGet, "/api/v1/anime/random", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"synopsis":"[es] pirates"`) {
		t.Errorf("synopsis not translated: %s", w.Body.String())
	}
}

func TestRandomAnime_UpstreamErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"rate limited", &upstream.StatusError{Service: "jikan", StatusCode: 429}, http.StatusTooManyRequests},
		{"server error", &upstream.StatusError{Service: "jikan", StatusCode: 500}, http.StatusBadGateway},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newTestServer(Dependencies{Random: &fakeRandom{err: tt.err}})
			w, _ := do(t, h, http.MethodGet, "/api/v1/anime/random", "")
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestSearchAnime(t *testing.T) {
	t.Parallel()

	ac := &fakeAutocomplete{out: []anime.Suggestion{{ID: 1, Title: "Naruto"}}}
	h := newTestServer(Dependencies{Autocomplete: ac})

	w, env := do(t, h, http.MethodGet, "/api/v1/anime/search?q=nar", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ac.gotLimit != 10 {
		t.Errorf("default limit = %d, want 10", ac.gotLimit)
	}
	if env.Meta.Count == nil || *env.Meta.Count != 1 {
		t.Errorf("meta.count = %v", env.Meta.Count)
	}

	w, env = do(t, h, http.MethodGet, "/api/v1/anime/search?q=nar&limit=21", "")
	if w.Code != http.StatusBadRequest || errorCode(env) != ErrCodeValidationFailed {
		t.Errorf("limit 21: status %d code %s", w.Code, errorCode(env))
	}

	w, _ = do(t, h, http.MethodGet, "/api/v1/anime/search?q=%20", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank query: status %d", w.Code)
	}
}

func TestSearchAnime_NotFoundIsEmpty(t *testing.T) {
	t.Parallel()

	h := newTestServer(Dependencies{Autocomplete: &fakeAutocomplete{err: anime.ErrNotFound}})
	w, _ := do(t, h, http.MethodGet, "/api/v1/anime/search?q=zzzz", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"data":[]`) {
		t.Errorf("status %d body %s", w.Code, w.Body.String())
	}
}

// ===================================================================================================
// Moods
// ===================================================================================================

func TestListMoods(t *testing.T) {
	t.Parallel()

	w, _ := do(t, newTestServer(Dependencies{}), http.MethodGet, "/api/v1/moods", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"moods":["relajado","feliz"`) {
		t.Errorf("moods not in order: %s", w.Body.String())
	}
}

func TestMoodRecommendations(t *testing.T) {
	t.Parallel()

	moods := &fakeMoods{results: []mood.Result{{
		Anime:  anime.Anime{ID: 7},
		Reason: mood.Reason{MatchedGenres: []string{"Comedy"}},
	}}}
	h := newTestServer(Dependencies{Moods: moods})

	w, _ := do(t, h, http.MethodGet, "/api/v1/moods/FELIZ?limit=5&page=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	if moods.got.Limit != 5 || moods.got.Page != 2 {
		t.Errorf("service request = %+v", moods.got)
	}
	if strings.Contains(w.Body.String(), "matched_tags") {
		t.Errorf("empty matched_tags should be omitted: %s", w.Body.String())
	}
}

func TestMoodRecommendations_Invalid(t *testing.T) {
	t.Parallel()

	h := newTestServer(Dependencies{})

	w, env := do(t, h, http.MethodGet, "/api/v1/moods/aburrido", "")
	if w.Code != http.StatusBadRequest || errorCode(env) != ErrCodeInvalidMood {
		t.Errorf("unknown mood: status %d code %s", w.Code, errorCode(env))
	}
	if !strings.Contains(w.Body.String(), "fantastico") {
		t.Errorf("expected available moods in details: %s", w.Body.String())
	}

	for _, q := range []string{"limit=0", "limit=51", "page=11"} {
		w, env = do(t, h, http.MethodGet, "/api/v1/moods/feliz?"+q, "")
		if w.Code != http.StatusBadRequest || errorCode(env) != ErrCodeValidationFailed {
			t.Errorf("%s: status %d code %s", q, w.Code, errorCode(env))
		}
	}
}

// ===================================================================================================
// Chat
// ===================================================================================================

func TestChat(t *testing.T) {
	t.Parallel()

	c := &fakeChat{configured: true, answer: "Prueba Frieren."}
	h := newTestServer(Dependencies{Chat: c})

	w, _ := do(t, h, http.MethodPost, "/api/v1/chat",
		`{"message":"recomiéndame algo","history":[{"role":"user","content":"hola"},{"role":"assistant","content":"¡Hola!"}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"response":"Prueba Frieren."`) {
		t.Errorf("body = %s", w.Body.String())
	}
	if len(c.history) != 2 {
		t.Errorf("history len = %d, want 2", len(c.history))
	}
}

func TestChat_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		chat       *fakeChat
		body       string
		wantStatus int
		wantCode   string
	}{
		{"not configured", &fakeChat{}, `{"message":"hola"}`, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"blank message", &fakeChat{configured: true}, `{"message":"   "}`, http.StatusBadRequest, ErrCodeValidationFailed},
		{"bad role", &fakeChat{configured: true}, `{"message":"hola","history":[{"role":"system","content":"x"}]}`, http.StatusBadRequest, ErrCodeValidationFailed},
		{"too long", &fakeChat{configured: true, err: chat.ErrInvalidMessage}, `{"message":"` + strings.Repeat("a", 1001) + `"}`, http.StatusBadRequest, ErrCodeValidationFailed},
		{"blocked", &fakeChat{configured: true, err: &chat.BlockedError{Reason: "SAFETY"}}, `{"message":"hola"}`, http.StatusBadRequest, ErrCodeContentBlocked},
		{"empty answer", &fakeChat{configured: true, err: chat.ErrEmptyResponse}, `{"message":"hola"}`, http.StatusBadGateway, ErrCodeExternalServiceFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newTestServer(Dependencies{Chat: tt.chat})
			w, env := do(t, h, http.MethodPost, "/api/v1/chat", tt.body)
			if w.Code != tt.wantStatus || errorCode(env) != tt.wantCode {
				t.Errorf("status %d code %s, want %d %s (%s)", w.Code, errorCode(env), tt.wantStatus, tt.wantCode, w.Body.String())
			}
		})
	}
}

// ===================================================================================================
// Operational
// ===================================================================================================

func TestHealth(t *testing.T) {
	t.Parallel()

	h := newTestServer(Dependencies{
		Version:  "1.2.3",
		Breakers: []BreakerReporter{fakeBreaker{"anilist", "closed"}, fakeBreaker{"jikan", "open"}},
	})

	w, _ := do(t, h, http.MethodGet, "/api/v1/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`"status":"degraded"`, `"version":"1.2.3"`, `"jikan":"open"`, `"anilist":"closed"`} {
		if !strings.Contains(body, want) {
			t.Errorf("health body missing %s: %s", want, body)
		}
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers on health routes")
	}
}

func TestUnavailableFeatures(t *testing.T) {
	t.Parallel()

	h := newTestServer(Dependencies{})
	for _, target := range []string{"/api/v1/anime/random", "/api/v1/anime/search?q=a"} {
		w, _ := do(t, h, http.MethodGet, target, "")
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: status = %d, want 503", target, w.Code)
		}
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	t.Parallel()

	h := newTestServer(Dependencies{})

	w, env := do(t, h, http.MethodGet, "/api/v1/nope", "")
	if w.Code != http.StatusNotFound || errorCode(env) != ErrCodeNotFound {
		t.Errorf("unknown route: status %d code %s", w.Code, errorCode(env))
	}

	w, env = do(t, h, http.MethodGet, "/api/v1/chat", "")
	if w.Code != http.StatusMethodNotAllowed || errorCode(env) != ErrCodeMethodNotAllowed {
		t.Errorf("wrong method: status %d code %s", w.Code, errorCode(env))
	}
}

func TestRouter_MetricsAndPerformance(t *testing.T) {
	t.Parallel()

	h := newTestServer(Dependencies{})
	do(t, h, http.MethodGet, "/api/v1/moods", "")

	w, _ := do(t, h, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "api_requests_total") {
		t.Errorf("metrics endpoint: status %d", w.Code)
	}

	w, _ = do(t, h, http.MethodGet, "/api/v1/stats/performance", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "GET /api/v1/moods") {
		t.Errorf("performance stats: status %d body %s", w.Code, w.Body.String())
	}
}
