// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package logging

import "regexp"

// secretParamPattern matches sensitive query parameters inside free text,
// e.g. the URL embedded in a *url.Error message.
var secretParamPattern = regexp.MustCompile(`(?i)([?&](?:key|api_key|apikey|token|access_token|client_secret|password)=)[^&\s"]*`)

// SanitizeToken masks a token, showing only first and last 4 characters.
// Example: "AIzaSyD-abcdefghijklmnop" -> "AIza...mnop"
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// RedactText masks sensitive query parameter values anywhere in s.
func RedactText(s string) string {
	return secretParamPattern.ReplaceAllString(s, "${1}REDACTED")
}

// RedactError returns err's message with secrets masked, or "" for nil.
func RedactError(err error) string {
	if err == nil {
		return ""
	}
	return RedactText(err.Error())
}
