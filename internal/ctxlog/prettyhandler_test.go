// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer, level slog.Level, opts ...Option) *slog.Logger {
	opts = append([]Option{WithDestinationWriter(buf)}, opts...)
	return slog.New(NewPrettyHandler(&slog.HandlerOptions{Level: level}, opts...))
}

func TestPrettyHandler_Enabled(t *testing.T) {
	tests := []struct {
		name    string
		level   slog.Level
		options *slog.HandlerOptions
		want    bool
	}{
		{
			name:    "debug level with debug handler",
			level:   slog.LevelDebug,
			options: &slog.HandlerOptions{Level: slog.LevelDebug},
			want:    true,
		},
		{
			name:    "debug level with info handler",
			level:   slog.LevelDebug,
			options: &slog.HandlerOptions{Level: slog.LevelInfo},
			want:    false,
		},
		{
			name:    "error level with warn handler",
			level:   slog.LevelError,
			options: &slog.HandlerOptions{Level: slog.LevelWarn},
			want:    true,
		},
		{
			name:    "nil options default to info",
			level:   slog.LevelDebug,
			options: nil,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPrettyHandler(tt.options)
			assert.Equal(t, tt.want, h.Enabled(context.Background(), tt.level))
		})
	}
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer

	logger := newTestLogger(&buf, slog.LevelDebug)
	logger.Info("process started", "pid", 42, "path", "/usr/bin/java")

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "\n"), "expected a trailing newline")
	assert.Contains(t, out, "INFO:")
	assert.Contains(t, out, "process started")
	assert.Contains(t, out, `"pid"`)
	assert.Contains(t, out, "42")
	assert.Contains(t, out, `"/usr/bin/java"`)
	assert.NotContains(t, out, "\033[", "colour must be off unless requested")
}

func TestPrettyHandler_NoAttrs(t *testing.T) {
	var buf bytes.Buffer

	newTestLogger(&buf, slog.LevelDebug).Warn("bare")
	assert.NotContains(t, buf.String(), "{")

	buf.Reset()
	newTestLogger(&buf, slog.LevelDebug, WithOutputEmptyAttrs()).Warn("bare")
	assert.Contains(t, buf.String(), "{}")
}

func TestPrettyHandler_BelowLevelIsDropped(t *testing.T) {
	var buf bytes.Buffer

	newTestLogger(&buf, slog.LevelWarn).Info("quiet")
	assert.Empty(t, buf.String())
}

func TestPrettyHandler_WithAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer

	logger := newTestLogger(&buf, slog.LevelDebug).
		With("component", "launcher").
		WithGroup("child").
		With("pid", 7)

	logger.Info("exited", "exitCode", 3, slog.Group("timing", "elapsed", time.Second))

	out := buf.String()
	assert.Contains(t, out, `"component"`)
	assert.Contains(t, out, `"child"`)
	assert.Contains(t, out, `"exitCode"`)
	assert.Contains(t, out, `"timing"`)
	assert.Contains(t, out, `"1s"`)
}

func TestPrettyHandler_DerivedHandlersDoNotShareAttrs(t *testing.T) {
	var buf bytes.Buffer

	base := newTestLogger(&buf, slog.LevelDebug)
	a := base.With("only", "a")
	b := base.With("only", "b")

	a.Info("first")
	b.Info("second")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"a"`)
	assert.NotContains(t, lines[0], `"b"`)
	assert.Contains(t, lines[1], `"b"`)
}

func TestPrettyHandler_ValueKinds(t *testing.T) {
	var buf bytes.Buffer

	newTestLogger(&buf, slog.LevelDebug).Info("kinds",
		"err", errors.New("boom"),
		"args", []string{"-cp", "classes"},
		"ok", true,
		"ratio", 0.5,
	)

	out := buf.String()
	assert.Contains(t, out, `"boom"`)
	assert.Contains(t, out, `"-cp"`)
	assert.Contains(t, out, `"classes"`)
	assert.Contains(t, out, "true")
	assert.Contains(t, out, "0.5")
}

func TestPrettyHandler_Colour(t *testing.T) {
	var buf bytes.Buffer

	newTestLogger(&buf, slog.LevelDebug, WithColour()).Error("red alert")
	assert.Contains(t, buf.String(), "\033[31m")
}

func TestPrettyHandler_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer

	logger := newTestLogger(&buf, slog.LevelDebug)

	var wg sync.WaitGroup

	for i := range 10 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			logger.Info("line", "i", i)
		}()
	}

	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 10)
}
