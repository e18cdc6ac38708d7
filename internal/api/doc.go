// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

/*
Package api provides the HTTP API of the recommendation service.

Routes (all JSON, wrapped in the standard envelope):

	POST /api/v1/recommendations/similar   similarity recommendations from 2-10 anime
	GET  /api/v1/anime/random              one random anime
	GET  /api/v1/anime/search?q=&limit=    title autocomplete
	GET  /api/v1/moods                     supported moods
	GET  /api/v1/moods/{mood}?limit=&page= mood recommendations
	POST /api/v1/chat                      AI chat about anime
	GET  /api/v1/health                    status, version, uptime, breaker states
	GET  /api/v1/health/live               liveness probe
	GET  /api/v1/stats/performance         per-route latency percentiles
	GET  /metrics                          Prometheus exposition

Response envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 12}}
	{"success": false, "error": {"code": "UNRESOLVED_REFERENCE", "message": "...", "details": {"input": "..."}}}

Error mapping:

	INVALID_INPUT_COUNT      400  fewer than 2 or more than 10 references
	UNRESOLVED_REFERENCE     404  a reference does not exist (details.input names it)
	NO_RECOMMENDATIONS       404  references have no native recommendations
	INVALID_MOOD             400  unknown mood (details.available lists moods)
	CONTENT_BLOCKED          400  chat message blocked by the model's safety filters
	VALIDATION_ERROR         400  malformed parameters
	TOO_MANY_REQUESTS        429  inbound or upstream rate limit
	EXTERNAL_SERVICE_FAILED  502  upstream failure
	SERVICE_UNAVAILABLE      503  circuit breaker open or feature not configured
	GATEWAY_TIMEOUT          504  upstream timeout

Middleware order: RealIP, RequestID, Recoverer, Prometheus, performance
monitor, request logging, CORS, compression; then per-group rate limits
(go-chi/httprate) and security headers.
*/
package api
