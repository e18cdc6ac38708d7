// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

// Package chat implements the conversational anime assistant backed by
// Google Gemini. It builds a single prompt from a fixed Spanish system
// prompt, the last five conversation turns and the new message, and maps
// Gemini safety blocks and empty answers to typed errors.
package chat
