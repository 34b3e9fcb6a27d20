// Package config loads, normalizes, and validates capsum configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// CAPSUM_MODEL. Relative credential paths resolve against the work directory so
// the token file and downloaded captions sit side by side.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
