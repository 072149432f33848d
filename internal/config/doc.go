// Package config loads, normalizes, and validates phirapack configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// PHIRAPACK_OUTPUT_DIR. The Config type centralizes the staging, output,
// history and logging knobs the CLI needs so they are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
