// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

/*
Package cache provides the in-process and on-disk caches used by Aniscout.

# Components

  - LRU[V]: generic, thread-safe LRU with lazy TTL expiry. Backs the
    translation cache and the short-lived AniList media cache.
  - DiskStore: BadgerDB-backed string store with native TTLs. Optional
    second tier for translations so a restart does not re-spend the
    MyMemory daily quota.

# Metrics

Both report cache_hits_total, cache_misses_total, cache_entries and
cache_evictions_total under their cache_type label.

# Usage

	translations := cache.NewLRU[string]("translation_memory", 500, 24*time.Hour)
	translations.Add("a pirate adventure", "una aventura pirata")
	if es, ok := translations.Get("a pirate adventure"); ok {
	    ...
	}
*/
package cache
