// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/mazerun/internal/color"
)

var (
	// ErrMarshalAttribute is returned when an error occurs while marshaling an attribute.
	ErrMarshalAttribute = errors.New("error when marshaling attribute")
	// ErrIoWrite is returned when an error occurs while writing to the output.
	ErrIoWrite = errors.New("error when writing to output")
)

const (
	// TimeFormat is the format used for timestamps in log messages.
	TimeFormat = "[15:04:05.000]"
)

var _ slog.Handler = (*PrettyHandler)(nil)

// PrettyHandler writes one line per record: timestamp, level, message and the
// attributes rendered as compact JSON.
type PrettyHandler struct {
	level            slog.Leveler
	attrs            map[string]any
	groups           []string
	m                *sync.Mutex
	writer           io.Writer
	colour           bool
	outputEmptyAttrs bool
}

// Option implements a functional options pattern for PrettyHandler.
type Option func(h *PrettyHandler)

// WithDestinationWriter sets the destination writer for the PrettyHandler.
func WithDestinationWriter(writer io.Writer) Option {
	return func(h *PrettyHandler) {
		h.writer = writer
	}
}

// WithColour enables color output for the PrettyHandler.
func WithColour() Option {
	return func(h *PrettyHandler) {
		h.colour = true
	}
}

// WithAutoColour enables colour when f is a terminal and the environment allows it.
func WithAutoColour(f *os.File) Option {
	return func(h *PrettyHandler) {
		h.colour = color.EnabledFor(f)
	}
}

// WithOutputEmptyAttrs writes "{}" for records without attributes.
func WithOutputEmptyAttrs() Option {
	return func(h *PrettyHandler) {
		h.outputEmptyAttrs = true
	}
}

// NewPrettyHandler creates a new PrettyHandler with the given options.
// Only the Level field of handlerOptions is used.
func NewPrettyHandler(handlerOptions *slog.HandlerOptions, options ...Option) *PrettyHandler {
	h := &PrettyHandler{
		level:  slog.LevelInfo,
		attrs:  map[string]any{},
		m:      &sync.Mutex{},
		writer: os.Stderr,
	}

	if handlerOptions != nil && handlerOptions.Level != nil {
		h.level = handlerOptions.Level
	}

	for _, opt := range options {
		opt(h)
	}

	return h
}

// Enabled checks if the handler is enabled for the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// WithAttrs creates a new handler with the given attributes.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	for _, a := range attrs {
		putAttr(clone.attrs, clone.groups, a)
	}

	return clone
}

// WithGroup creates a new handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := h.clone()
	clone.groups = append(clone.groups, name)

	return clone
}

// Handle implements the slog.Handler interface for PrettyHandler.
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := cloneMap(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		putAttr(attrs, h.groups, a)
		return true
	})

	out := strings.Builder{}

	if !r.Time.IsZero() {
		out.WriteString(color.Paint(h.colour, r.Time.Format(TimeFormat), color.FgWhite))
		out.WriteString(" ")
	}

	out.WriteString(color.Paint(h.colour, r.Level.String()+":", levelColour(r.Level)))
	out.WriteString(" ")
	out.WriteString(color.Paint(h.colour, r.Message, color.FgHiWhite))

	if h.outputEmptyAttrs || len(attrs) > 0 {
		f := colorjson.NewFormatter()
		f.Indent = 0
		f.DisabledColor = !h.colour

		b, err := f.Marshal(attrs)
		if err != nil {
			return errors.Join(ErrMarshalAttribute, err)
		}

		out.WriteString(" ")
		out.Write(b)
	}

	out.WriteString("\n")

	h.m.Lock()
	defer h.m.Unlock()

	if _, err := io.WriteString(h.writer, out.String()); err != nil {
		return errors.Join(ErrIoWrite, err)
	}

	return nil
}

func (h *PrettyHandler) clone() *PrettyHandler {
	c := *h
	c.attrs = cloneMap(h.attrs)
	c.groups = append([]string(nil), h.groups...)

	return &c
}

func levelColour(l slog.Level) color.Code {
	switch {
	case l <= slog.LevelDebug:
		return color.FgWhite
	case l <= slog.LevelInfo:
		return color.FgCyan
	case l < slog.LevelError:
		return color.FgYellow
	default:
		return color.FgRed
	}
}

// putAttr stores a under the nested maps named by groups, following the slog
// rules for empty keys and inline groups.
func putAttr(m map[string]any, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Key == "" && a.Value.Kind() != slog.KindGroup {
		return
	}

	for _, g := range groups {
		next, ok := m[g].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[g] = next
		}

		m = next
	}

	if a.Value.Kind() != slog.KindGroup {
		m[a.Key] = jsonValue(a.Value)
		return
	}

	members := a.Value.Group()
	if len(members) == 0 {
		return
	}

	if a.Key != "" {
		sub, ok := m[a.Key].(map[string]any)
		if !ok {
			sub = map[string]any{}
			m[a.Key] = sub
		}

		m = sub
	}

	for _, member := range members {
		putAttr(m, nil, member)
	}
}

// jsonValue converts v into one of the types colorjson knows how to render.
func jsonValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return json.Number(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return json.Number(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindBool:
		return v.Bool()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	}

	switch x := v.Any().(type) {
	case nil:
		return nil
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	}

	b, err := json.Marshal(v.Any())
	if err != nil {
		return fmt.Sprint(v.Any())
	}

	var out any

	d := json.NewDecoder(strings.NewReader(string(b)))
	d.UseNumber()

	if err := d.Decode(&out); err != nil {
		return fmt.Sprint(v.Any())
	}

	return out
}

func cloneMap(m map[string]any) map[string]any {
	out := maps.Clone(m)
	if out == nil {
		return map[string]any{}
	}

	for k, v := range out {
		if sub, ok := v.(map[string]any); ok {
			out[k] = cloneMap(sub)
		}
	}

	return out
}
