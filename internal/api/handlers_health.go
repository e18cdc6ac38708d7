// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/aniscout/internal/middleware"
)

// HealthStatus is the payload of GET /api/v1/health.
type HealthStatus struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Uptime   float64           `json:"uptime_seconds"`
	Breakers map[string]string `json:"circuit_breakers"`
}

// Health handles GET /api/v1/health. The service is "degraded" while any
// upstream circuit breaker is open, and "healthy" otherwise.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:   "healthy",
		Version:  h.deps.Version,
		Uptime:   time.Since(h.startTime).Seconds(),
		Breakers: make(map[string]string, len(h.deps.Breakers)),
	}

	for _, b := range h.deps.Breakers {
		state := b.State()
		status.Breakers[b.Name()] = state
		if state == "open" {
			status.Status = "degraded"
		}
	}

	NewResponseWriter(w, r).Success(status)
}

// HealthLive handles GET /api/v1/health/live. It succeeds while the process serves HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// PerformanceStats handles GET /api/v1/stats/performance.
func (h *Handler) PerformanceStats(w http.ResponseWriter, r *http.Request) {
	if h.deps.PerfMon == nil {
		NewResponseWriter(w, r).Success([]middleware.EndpointStats{})
		return
	}
	stats := h.deps.PerfMon.GetStats()
	NewResponseWriter(w, r).SuccessList(stats, len(stats))
}
