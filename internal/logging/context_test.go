// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package logging

import (
	"context"
	"strings"
	"testing"
)

func TestRequestIDContext(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("empty context returned %q", got)
	}

	ctx := ContextWithRequestID(context.Background(), "req-42")
	if got := RequestIDFromContext(ctx); got != "req-42" {
		t.Errorf("RequestIDFromContext() = %q, want req-42", got)
	}
}

func TestContextWithNewCorrelationID(t *testing.T) {
	t.Parallel()

	if got := CorrelationIDFromContext(context.Background()); got != "" {
		t.Errorf("empty context returned %q", got)
	}

	a := CorrelationIDFromContext(ContextWithNewCorrelationID(context.Background()))
	b := CorrelationIDFromContext(ContextWithNewCorrelationID(context.Background()))
	if len(a) != 8 || len(b) != 8 {
		t.Errorf("correlation IDs %q, %q should be 8 characters", a, b)
	}
	if a == b {
		t.Errorf("two correlation IDs collided: %q", a)
	}
}

func TestCtx(t *testing.T) {
	buf := captureGlobal(t, Config{Level: "info"})

	ctx := ContextWithRequestID(context.Background(), "req-7")
	ctx = ContextWithNewCorrelationID(ctx)
	Ctx(ctx).Info().Msg("with ids")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-7"`) {
		t.Errorf("request_id missing: %q", out)
	}
	if !strings.Contains(out, `"correlation_id":"`+CorrelationIDFromContext(ctx)+`"`) {
		t.Errorf("correlation_id missing: %q", out)
	}
}

func TestCtx_NoIDs(t *testing.T) {
	buf := captureGlobal(t, Config{Level: "info"})

	Ctx(context.Background()).Info().Msg("bare")

	out := buf.String()
	if strings.Contains(out, "request_id") || strings.Contains(out, "correlation_id") {
		t.Errorf("unexpected id fields: %q", out)
	}
}
