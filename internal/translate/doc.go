// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

// Package translate translates anime synopses through the MyMemory API.
//
// Input is stripped of markup, trimmed and truncated (1000 characters by
// default) before lookup. Results are cached by the lowercased source text
// in an LRU and, when configured, a BadgerDB store. The Translator never
// returns an error: on any failure the cleaned source text is returned so
// callers can always render something.
package translate
