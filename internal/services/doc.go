// Package services defines shared utilities consumed by the summarize pipeline
// and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and stage names for logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures (external tool, configuration, validation, transient) with
//     errors.Is.
package services
