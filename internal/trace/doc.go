// Package trace provides structured tracing for the mpint tool.
//
// Tracing follows a command through its phases and, during property
// checks, through every generated case. The arithmetic package itself never
// traces; callers wrap operations in spans.
//
// # Usage
//
//	mpint check --trace=- --trace-level=case
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: nothing streamed; the ring is dumped on failure
//   - LevelCommand: command phases
//   - LevelCase: individual property-check cases
//   - LevelDebug: single arithmetic operations
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeCommand, "divmod", 0)
//	defer span.End("")
package trace
