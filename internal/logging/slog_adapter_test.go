// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogLogger_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level slog.Level
		want  string
	}{
		{"info", slog.LevelInfo, `"level":"info"`},
		{"warn", slog.LevelWarn, `"level":"warn"`},
		{"error", slog.LevelError, `"level":"error"`},
		{"above error", slog.LevelError + 4, `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			l := newSlogLoggerFrom(zerolog.New(&buf))
			l.Log(context.Background(), tt.level, "service restarted")

			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q missing %s", buf.String(), tt.want)
			}
		})
	}
}

func TestSlogLogger_Enabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := newSlogLoggerFrom(zerolog.New(&buf).Level(zerolog.WarnLevel))

	if l.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled on a warn logger")
	}
	if !l.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled on a warn logger")
	}

	l.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info entry written: %q", buf.String())
	}
}

func TestSlogLogger_AttrKinds(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := newSlogLoggerFrom(zerolog.New(&buf))
	l.Info("supervisor event",
		slog.String("service", "http-server"),
		slog.Int("restarts", 2),
		slog.Uint64("failures", 3),
		slog.Float64("threshold", 5.5),
		slog.Bool("terminal", false),
		slog.Duration("backoff", 15*time.Second),
		slog.Time("at", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)),
		slog.Any("err", errors.New(`Get "https://x.example/?key=SECRET": EOF`)),
	)

	out := buf.String()
	for _, want := range []string{
		`"service":"http-server"`,
		`"restarts":2`,
		`"failures":3`,
		`"threshold":5.5`,
		`"terminal":false`,
		`"backoff":`,
		`"at":"2026-01-02T03:04:05Z"`,
		`key=REDACTED`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
	if strings.Contains(out, "SECRET") {
		t.Errorf("error attribute leaked a key: %q", out)
	}
}

func TestSlogLogger_WithAttrsAndGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := newSlogLoggerFrom(zerolog.New(&buf)).
		With(slog.String("supervisor", "aniscout")).
		WithGroup("event").
		With(slog.String("kind", "backoff"))
	l.Warn("entering backoff", slog.Group("cfg", slog.Int("threshold", 5)))

	out := buf.String()
	for _, want := range []string{
		`"supervisor":"aniscout"`,
		`"event.kind":"backoff"`,
		`"event.cfg.threshold":5`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}

func TestSlogLogger_EmptyGroupIgnored(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := newSlogLoggerFrom(zerolog.New(&buf)).WithGroup("")
	l.Info("flat", slog.String("k", "v"))

	if !strings.Contains(buf.String(), `"k":"v"`) {
		t.Errorf("output %q missing flat key", buf.String())
	}
}

func TestNewSlogLogger_UsesGlobal(t *testing.T) {
	buf := captureGlobal(t, Config{Level: "info"})

	NewSlogLogger().Info("from suture", slog.String("service", "cache-maintenance"))

	if !strings.Contains(buf.String(), `"service":"cache-maintenance"`) {
		t.Errorf("global output = %q", buf.String())
	}
}
