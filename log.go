package marionette

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace is the slog level used for per-command trace output. It sits
// below slog.LevelDebug so normal debug logging does not include it.
const LevelTrace = slog.Level(-8)

// slogLevel maps a Verbosity to the minimum slog level it admits.
func (v Verbosity) slogLevel() slog.Level {
	switch v {
	case VerbositySilent:
		return slog.LevelError + 128
	case VerbosityError:
		return slog.LevelError
	case VerbosityWarning:
		return slog.LevelWarn
	case VerbosityInfo:
		return slog.LevelInfo
	case VerbosityDebug:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// logRing is a bounded buffer of formatted log lines shared by every
// derived ringHandler. Oldest lines are evicted first.
type logRing struct {
	max   int
	lines []string
}

func (r *logRing) append(line string) {
	if r.max <= 0 {
		return
	}
	if len(r.lines) >= r.max {
		n := copy(r.lines, r.lines[len(r.lines)-r.max+1:])
		r.lines = r.lines[:n]
	}
	r.lines = append(r.lines, line)
}

// tail returns up to n of the most recent lines, oldest first.
func (r *logRing) tail(n int) []string {
	if n <= 0 || len(r.lines) == 0 {
		return nil
	}
	if n > len(r.lines) {
		n = len(r.lines)
	}
	out := make([]string, n)
	copy(out, r.lines[len(r.lines)-n:])
	return out
}

// ringHandler is a slog.Handler that retains every admitted record in a
// shared logRing and forwards it to an inner handler. The engine reads the
// ring back after a run via [Engine.LogTail].
type ringHandler struct {
	ring  *logRing
	level *slog.LevelVar
	inner slog.Handler
	attrs []slog.Attr
}

func newRingHandler(ring *logRing, level *slog.LevelVar, inner slog.Handler) *ringHandler {
	return &ringHandler{ring: ring, level: level, inner: inner}
}

func (h *ringHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *ringHandler) Handle(ctx context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(levelName(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	})
	h.ring.append(b.String())

	if h.inner != nil && h.inner.Enabled(ctx, r.Level) {
		return h.inner.Handle(ctx, r)
	}
	return nil
}

func (h *ringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	if h.inner != nil {
		next.inner = h.inner.WithAttrs(attrs)
	}
	return &next
}

func (h *ringHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	if h.inner != nil {
		next.inner = h.inner.WithGroup(name)
	}
	return &next
}

func levelName(l slog.Level) string {
	if l == LevelTrace {
		return "TRACE"
	}
	return l.String()
}

// newEngineLogger builds the engine's logger: a ring handler layered over
// either the caller-provided logger's handler or a stderr text handler.
// The returned LevelVar switches verbosity at runtime.
func newEngineLogger(base *slog.Logger, v Verbosity, ringSize int) (*slog.Logger, *slog.LevelVar, *logRing) {
	level := new(slog.LevelVar)
	level.Set(v.slogLevel())

	var inner slog.Handler
	if base != nil {
		inner = base.Handler()
	} else {
		inner = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.LevelKey {
					if lv, ok := a.Value.Any().(slog.Level); ok && lv == LevelTrace {
						a.Value = slog.StringValue("TRACE")
					}
				}
				return a
			},
		})
	}

	ring := &logRing{max: ringSize}
	return slog.New(newRingHandler(ring, level, inner)), level, ring
}
