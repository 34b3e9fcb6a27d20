// Package logging assembles structured slog loggers used across capsum.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code can tag log
// lines with the run identifier and stage name. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
//
// Logs default to stderr: stdout is reserved for the summary the user asked for.
package logging
