// Package trace is the logging layer of guardc.
//
// Instead of free-form log lines the toolchain emits structured events:
// span begin/end pairs around driver steps and analysis passes, plus point
// events for per-unit and per-group detail.
//
// # Usage
//
//	guardc check --trace=- --trace-level=detail ./guards
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for crash dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// LevelPhase shows driver and pass boundaries, LevelDetail adds per-unit
// events and LevelDebug adds per-group events (ScopeGroup).
//
// Tracers travel through the pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "guard.validate", 0)
//	defer span.End("")
package trace
