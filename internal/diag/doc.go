// Package diag defines the diagnostic model shared by the front-end, the
// guard analyzer and the CLI.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – closed numeric identifier (see codes.go) with a stable ID such as
//     "E1001" and a symbolic name such as "GUARD_INCOMPLETE".
//   - Message – human oriented text; keep it short and actionable.
//   - Primary – the source.Span the diagnostic points at.
//   - Overloads – 1-based overload indices the diagnostic talks about.
//
// Secondary context ("overload #1 covers ...") is emitted as its own
// Info-level Diagnostic carrying the same Code, directly after the primary
// one, so consumers that only understand flat lists still see it.
//
// # Emitting diagnostics
//
// Producers depend on the Reporter interface only. ReportBuilder offers a
// fluent way to attach overload indices before Emit. BagReporter stores into a
// Bag; DedupReporter drops exact repeats before forwarding.
//
// Package diag performs no IO and no formatting beyond the one-line golden
// form; rendering lives in internal/diagfmt.
package diag
