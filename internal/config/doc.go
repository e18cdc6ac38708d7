// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

/*
Package config provides centralized configuration management for Aniscout.

Configuration is layered with Koanf v2, lowest priority first:

 1. Built-in defaults (defaultConfig, loaded through the structs provider)
 2. A YAML file: CONFIG_PATH, else config.yaml, config.yml,
    /etc/aniscout/config.yaml or /etc/aniscout/config.yml
 3. Environment variables listed in envMappings

Unlisted environment variables are ignored.

# Configuration Structure

  - server: listen address and HTTP timeouts
  - security: CORS origins and inbound rate limits
  - logging: zerolog level, format and caller info
  - anilist, jikan, translation, gemini: upstream client settings, including
    the shared timeout, retry, rate limit and breaker fields
  - recommend: scoring weights, result limits and concurrency
  - supervisor: suture failure handling and cache maintenance interval

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8080)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT
  - REQUEST_TIMEOUT: upstream budget per API request (default: 30s)
  - HTTP_SHUTDOWN_TIMEOUT (default: 10s)

Security:
  - CORS_ORIGINS: comma-separated list (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW (default: 100 per 1m)
  - CHAT_RATE_LIMIT_REQS, CHAT_RATE_LIMIT_WINDOW (default: 10 per 1m)
  - DISABLE_RATE_LIMIT

Upstreams:
  - ANILIST_ENDPOINT, ANILIST_TIMEOUT, ANILIST_CACHE_SIZE, ANILIST_CACHE_TTL, ANILIST_RPS
  - JIKAN_BASE_URL, JIKAN_TIMEOUT, JIKAN_RPS
  - TRANSLATION_ENABLED, TRANSLATION_SOURCE, TRANSLATION_TARGET (default: en, es)
  - TRANSLATION_DISK_CACHE_PATH: enables the BadgerDB cache tier
  - GEMINI_API_KEY: enables the chat endpoint
  - GEMINI_MODEL, GEMINI_ENDPOINT, GEMINI_TIMEOUT

Recommendation:
  - RECOMMEND_GENRE_WEIGHT, RECOMMEND_TAG_WEIGHT, RECOMMEND_NATIVE_BOOST (default: 60, 40, 20)
  - RECOMMEND_DEFAULT_LIMIT, RECOMMEND_MAX_LIMIT (default: 15, 50)

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	logging.Init(cfg.LoggingOptions())

Validate is called by Load; an invalid configuration never reaches the
caller.
*/
package config
