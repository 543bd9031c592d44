package trace

import "context"

// ctxScope: то, что контекст несёт для трассировки: трейсер и спан,
// под которым открываются новые.
type ctxScope struct {
	tracer Tracer
	parent uint64
}

type ctxKey struct{}

func scopeOf(ctx context.Context) ctxScope {
	if ctx != nil {
		if s, ok := ctx.Value(ctxKey{}).(ctxScope); ok {
			return s
		}
	}
	return ctxScope{tracer: Nop}
}

// FromContext returns the tracer carried by ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return scopeOf(ctx).tracer
}

// WithTracer attaches t to ctx. Spans started from the result are roots.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, ctxScope{tracer: t})
}

// ParentSpan returns the span new spans in ctx nest under; 0 at the root.
func ParentSpan(ctx context.Context) uint64 {
	return scopeOf(ctx).parent
}

// WithParentSpan nests spans started from the returned context under id.
func WithParentSpan(ctx context.Context, id uint64) context.Context {
	s := scopeOf(ctx)
	s.parent = id
	return context.WithValue(ctx, ctxKey{}, s)
}

// Start begins a span under the parent carried by ctx and returns a context
// in which the new span is the parent.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	s := scopeOf(ctx)
	span := Begin(s.tracer, scope, name, s.parent)
	if span.ID() == 0 {
		return ctx, span
	}
	s.parent = span.ID()
	return context.WithValue(ctx, ctxKey{}, s), span
}
