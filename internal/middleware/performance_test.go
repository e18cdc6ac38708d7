// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func TestNewPerformanceMonitor_Defaults(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(0, 0)
	if pm.maxMetrics != 1000 {
		t.Errorf("maxMetrics = %d, want 1000", pm.maxMetrics)
	}
	if pm.slowThreshold != DefaultSlowThreshold {
		t.Errorf("slowThreshold = %v, want %v", pm.slowThreshold, DefaultSlowThreshold)
	}
}

func TestPerformanceMonitor_SlidingWindow(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(3, time.Second)
	for i := 1; i <= 5; i++ {
		pm.RecordRequest(&RequestMetrics{Route: fmt.Sprintf("/r%d", i), Method: http.MethodGet, DurationMS: int64(i)})
	}

	recent := pm.GetRecentMetrics(10)
	if len(recent) != 3 {
		t.Fatalf("len(recent) = %d, want 3", len(recent))
	}
	if recent[0].Route != "/r3" || recent[2].Route != "/r5" {
		t.Errorf("window = %s..%s, want /r3../r5", recent[0].Route, recent[2].Route)
	}

	last := pm.GetRecentMetrics(1)
	if len(last) != 1 || last[0].Route != "/r5" {
		t.Errorf("GetRecentMetrics(1) = %+v", last)
	}
}

func TestPerformanceMonitor_GetStats(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(100, time.Second)
	for _, d := range []int64{10, 20, 30, 40, 50} {
		pm.RecordRequest(&RequestMetrics{Route: "/api/v1/moods", Method: http.MethodGet, DurationMS: d, StatusCode: 200})
	}
	pm.RecordRequest(&RequestMetrics{Route: "/api/v1/chat", Method: http.MethodPost, DurationMS: 900, StatusCode: 502})

	stats := pm.GetStats()
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, want 2", len(stats))
	}

	moods := stats[0]
	if moods.Endpoint != "GET /api/v1/moods" {
		t.Errorf("busiest endpoint = %q", moods.Endpoint)
	}
	if moods.RequestCount != 5 || moods.ErrorCount != 0 {
		t.Errorf("count/errors = %d/%d", moods.RequestCount, moods.ErrorCount)
	}
	if moods.AvgDuration != 30 || moods.P50Duration != 30 || moods.MinDuration != 10 || moods.MaxDuration != 50 {
		t.Errorf("moods stats = %+v", moods)
	}

	if stats[1].ErrorCount != 1 {
		t.Errorf("chat ErrorCount = %d, want 1", stats[1].ErrorCount)
	}
}

func TestPerformanceMonitor_Middleware(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(10, time.Nanosecond)
	r := chi.NewRouter()
	r.Use(pm.Middleware)
	r.Get("/api/v1/moods/{mood}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/moods/aburrido", nil))

	recent := pm.GetRecentMetrics(1)
	if len(recent) != 1 {
		t.Fatalf("expected one recorded request, got %d", len(recent))
	}
	if recent[0].Route != "/api/v1/moods/{mood}" {
		t.Errorf("Route = %q, want pattern", recent[0].Route)
	}
	if recent[0].StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", recent[0].StatusCode)
	}
}

func TestPercentile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		sorted []int64
		p      float64
		want   int64
	}{
		{"empty", nil, 0.5, 0},
		{"single", []int64{7}, 0.99, 7},
		{"p50 of ten", []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.50, 5},
		{"p95 of ten", []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.95, 9},
		{"p100", []int64{1, 2, 3}, 1.0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := percentile(tt.sorted, tt.p); got != tt.want {
				t.Errorf("percentile(%v, %v) = %d, want %d", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestPerformanceMonitor_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(50, time.Second)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			pm.RecordRequest(&RequestMetrics{Route: "/x", Method: http.MethodGet, DurationMS: int64(i)})
		}()
		go func() {
			defer wg.Done()
			_ = pm.GetStats()
		}()
	}
	wg.Wait()

	if n := len(pm.GetRecentMetrics(100)); n != 20 {
		t.Errorf("recorded %d samples, want 20", n)
	}
}
