// Package trace provides span tracing for codesniff runs.
//
// A run is traced at three granularities: the driver (one CLI invocation),
// a file (tokenize + dispatch + fix loop of one source file) and a pass
// (one dispatch pass inside the fix loop). Sniff-level events are emitted
// only at LevelDebug.
//
// # Usage
//
//	codesniff check --trace=- --trace-level=phase src/
//
// # Implementations
//
//   - Nop: no-op tracer when tracing is disabled
//   - StreamTracer: immediate text or NDJSON output
//   - RingTracer: last N events in memory, dumped on panic
//   - MultiTracer: fan-out to several tracers
//   - SlogTracer: events as slog records, fanned out with slog-multi
//
// Every tracer owns its sequence and span counters, so two tracers in one
// process never share numbering.
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "pass#1", parentID)
//	defer span.End("")
package trace
