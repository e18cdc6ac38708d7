// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

/*
Package main is the entry point for the Aniscout server.

Aniscout recommends anime. Given two to ten reference titles or AniList IDs
it gathers their community recommendations, scores every candidate by genre
and tag overlap with the references, and returns a ranked list with
synopses translated to the configured language. It also serves random
picks, mood based discovery, title autocomplete and an optional Gemini
backed chat.

# Application Architecture

	RootSupervisor ("aniscout")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── Cache maintenance (LRU expiry sweep, BadgerDB GC)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 defaults, config file, environment
 2. Logging: zerolog with JSON/console output modes
 3. Upstream clients: AniList, Jikan, MyMemory, Gemini, each with its own
    rate limiter and circuit breaker
 4. Optional BadgerDB translation cache (TRANSLATION_DISK_CACHE_PATH)
 5. Recommendation engine and mood service
 6. HTTP handler and router
 7. Supervisor tree

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server stops accepting
connections and drains in-flight requests within HTTP_SHUTDOWN_TIMEOUT;
the disk cache is closed after the tree stops.

# Example Usage

	export GEMINI_API_KEY=your-key        # optional, enables /api/v1/chat
	export TRANSLATION_TARGET=es
	export CORS_ORIGINS=https://anime.example
	./aniscout

	curl -X POST localhost:8080/api/v1/recommendations/similar \
	  -H 'Content-Type: application/json' \
	  -d '{"titles": ["Cowboy Bebop", "Samurai Champloo"], "limit": 10}'
*/
package main
