// Package utils carries small ambient helpers; today that is the
// colorized dev-mode slog handler used by cmd/server.
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/fatih/color"
)

// PrettyHandlerOptions wraps the standard slog.HandlerOptions so dev-mode
// callers configure level/ReplaceAttr the usual way.
type PrettyHandlerOptions struct {
	SlogOpts slog.HandlerOptions
}

// PrettyHandler renders log records as a single colorized line —
// level, message, then key=value attrs — meant for local/dev use, not
// production log aggregation.
type PrettyHandler struct {
	slog.Handler
	out   io.Writer
	mu    *sync.Mutex
	attrs []slog.Attr
}

// NewPrettyHandler builds a PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts PrettyHandlerOptions) *PrettyHandler {
	return &PrettyHandler{
		Handler: slog.NewJSONHandler(w, &opts.SlogOpts),
		out:     w,
		mu:      &sync.Mutex{},
	}
}

func levelColor(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return color.New(color.FgRed, color.Bold)
	case level >= slog.LevelWarn:
		return color.New(color.FgYellow, color.Bold)
	case level >= slog.LevelInfo:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgMagenta)
	}
}

// Handle formats one record as "LEVEL message key=value ...".
func (h *PrettyHandler) Handle(ctx context.Context, r slog.Record) error {
	levelStr := levelColor(r.Level).Sprintf("%-5s", r.Level.String())

	fields := make(map[string]any, r.NumAttrs())
	for _, a := range h.attrs {
		fields[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		fields[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()

	fmt.Fprintf(h.out, "%s %s", levelStr, color.New(color.Bold).Sprint(r.Message))
	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			raw = []byte(fmt.Sprintf("%v", v))
		}
		fmt.Fprintf(h.out, " %s=%s", color.CyanString(k), raw)
	}
	fmt.Fprintln(h.out)
	return nil
}

// WithAttrs returns a handler that carries attrs on every future record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &PrettyHandler{
		Handler: h.Handler.WithAttrs(attrs),
		out:     h.out,
		mu:      h.mu,
		attrs:   append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

// WithGroup delegates to the embedded JSON handler for level filtering only.
// Records are still printed by Handle, which ignores the group: attrs appear
// without the group name as a prefix.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	return &PrettyHandler{Handler: h.Handler.WithGroup(name), out: h.out, mu: h.mu, attrs: h.attrs}
}
