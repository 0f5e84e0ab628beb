// Package diag defines the diagnostic model shared by all pipeline phases.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Code – compact numeric identifier (see codes.go) with a stable string
//     form such as SYN2004. The code range decides the Category.
//   - Category – LEXICAL, SYNTAX, SEMANTIC or RUNTIME.
//   - Message – human oriented text; keep it short.
//   - Line – 1-based line of the token or instruction that caused it.
//   - Primary – byte span in the program text.
//   - Notes – optional secondary locations ("first defined here").
//
// # Lifecycle
//
// A Bag is created per run, filled through a Reporter while the phases run,
// then read and cleared by the caller. Every diagnostic is kept (up to the
// configured limit); nothing is latched per category.
//
// Phases never import the Bag directly: they receive a Reporter. BagReporter
// adapts a Bag; ReportBuilder lets a phase attach notes before emitting.
//
// Formatting lives in internal/diagfmt, except for FormatShortDiagnostics,
// which tests use as a stable one-line-per-entry representation.
package diag
