// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

// Package anilist is the AniList GraphQL client. It resolves reference anime
// (with their native recommendations) for the similarity engine, runs
// genre/tag searches for mood recommendations and serves title autocomplete.
//
// Unknown media map to anime.ErrNotFound; every other failure is returned as
// is and treated as an upstream failure by callers. Resolved media are kept in
// a short-lived LRU so repeated references do not spend the AniList quota.
package anilist
