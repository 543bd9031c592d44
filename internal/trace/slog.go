package trace

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"slices"

	slogmulti "github.com/samber/slog-multi"
)

// SlogTracer turns events into slog records. Records fan out to all
// handlers given at construction.
type SlogTracer struct {
	counters
	logger  *slog.Logger
	level   Level
	closers []io.Closer
}

// NewSlogTracer builds a tracer over slogmulti.Fanout(handlers...).
// closers are closed by Close (log files opened by the caller).
func NewSlogTracer(level Level, closers []io.Closer, handlers ...slog.Handler) *SlogTracer {
	return &SlogTracer{
		logger:  slog.New(slogmulti.Fanout(handlers...)),
		level:   level,
		closers: closers,
	}
}

// Logger exposes the underlying logger.
func (t *SlogTracer) Logger() *slog.Logger { return t.logger }

// Emit logs the event; scope maps to the slog level.
func (t *SlogTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) && ev.Kind != KindHeartbeat {
		return
	}
	ev.Seq = t.nextSeq()

	lvl := slog.LevelInfo
	if ev.Scope >= ScopePass {
		lvl = slog.LevelDebug
	}
	attrs := make([]slog.Attr, 0, 8+len(ev.Extra))
	attrs = append(attrs,
		slog.String("kind", ev.Kind.String()),
		slog.String("scope", ev.Scope.String()),
		slog.Uint64("seq", ev.Seq),
	)
	if ev.SpanID != 0 {
		attrs = append(attrs, slog.Uint64("span", ev.SpanID))
	}
	if ev.ParentID != 0 {
		attrs = append(attrs, slog.Uint64("parent", ev.ParentID))
	}
	if ev.GID != 0 {
		attrs = append(attrs, slog.Uint64("gid", ev.GID))
	}
	if ev.Detail != "" {
		attrs = append(attrs, slog.String("detail", ev.Detail))
	}
	for _, k := range slices.Sorted(maps.Keys(ev.Extra)) {
		attrs = append(attrs, slog.String(k, ev.Extra[k]))
	}
	t.logger.LogAttrs(context.Background(), lvl, ev.Name, attrs...)
}

// Flush is a no-op; slog handlers write synchronously.
func (t *SlogTracer) Flush() error { return nil }

// Close closes files handed to NewSlogTracer.
func (t *SlogTracer) Close() error {
	var firstErr error
	for _, c := range t.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Level returns the current tracing level.
func (t *SlogTracer) Level() Level { return t.level }

// Enabled returns true if tracing is active.
func (t *SlogTracer) Enabled() bool { return t.level > LevelOff }

func jsonHandler(w io.Writer) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
}
