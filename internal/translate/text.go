// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package translate

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// truncationSuffix marks text cut to the maximum length.
const truncationSuffix = "..."

// StripHTML removes markup from an upstream description and decodes
// entities. Line-break elements become newlines.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input: keep what was decoded so far.
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				b.WriteByte('\n')
			}
		}
	}
}

// Truncate limits s to maxRunes characters, appending "..." when cut.
// maxRunes <= 0 disables truncation.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i] + truncationSuffix
		}
		n++
	}
	return s
}

// cacheKey normalizes text for cache lookups.
func cacheKey(text string) string {
	return strings.ToLower(text)
}
