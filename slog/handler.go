// Package slog provides logging decorators and a plain-text handler for
// crawl logs.
package slog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Ensure Handler implements slog.Handler.
var _ slog.Handler = (*Handler)(nil)

// Handler formats records as a single line:
//
//	2006-01-02 15:04:05.000 [LEVEL] message key=value
//
// Records at slog.LevelError are labeled [FATAL].
type Handler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Leveler
	attrs []slog.Attr
}

// NewHandler creates a Handler writing to w. Records below level are
// discarded.
func NewHandler(w io.Writer, level slog.Leveler) *Handler {
	return &Handler{mu: &sync.Mutex{}, w: w, level: level}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Time.Format("2006-01-02 15:04:05.000"))
	sb.WriteString(" [")
	sb.WriteString(levelLabel(r.Level))
	sb.WriteString("] ")
	sb.WriteString(r.Message)
	for _, a := range h.attrs {
		writeAttr(&sb, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, a)
		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &h2
}

// WithGroup is accepted but groups are not nested in the output; the
// crawl logs never use them.
func (h *Handler) WithGroup(string) slog.Handler {
	return h
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "FATAL"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

func writeAttr(sb *strings.Builder, a slog.Attr) {
	sb.WriteByte(' ')
	sb.WriteString(a.Key)
	sb.WriteByte('=')
	v := a.Value.Resolve()
	s := v.String()
	if v.Kind() == slog.KindString && strings.ContainsAny(s, " \t\"") {
		s = fmt.Sprintf("%q", s)
	}
	sb.WriteString(s)
}
