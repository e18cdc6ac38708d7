// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

/*
Package middleware provides HTTP middleware components for the API server.

Key Components:

  - Request ID: UUID-based request tracking, propagated to the logging context
  - Prometheus Metrics: request count, latency and in-flight gauge per route
  - Performance Monitor: sliding-window latency percentiles and slow request logs

All middleware has the func(http.Handler) http.Handler shape and is mounted on
the chi router:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(perfMon.Middleware)

Metrics and the performance monitor label requests by chi route pattern
(for example /api/v1/moods/{mood}), never by raw path.

All components are safe for concurrent use.
*/
package middleware
