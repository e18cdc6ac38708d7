// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto at
package init, so importing the package is enough to expose them.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - Outbound calls to AniList, Jikan, MyMemory and Gemini
  - Circuit breaker state transitions per upstream
  - Translation cache hit/miss rates
  - Recommendation outcomes and candidate pool sizes

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Usage Example

	start := time.Now()
	resp, err := engine.Recommend(ctx, req)
	outcome := "success"
	if err != nil {
	    outcome = "error"
	}
	metrics.RecordRecommendation("similar", outcome, time.Since(start))

# Thread Safety

All recording functions are safe for concurrent use.
*/
package metrics
