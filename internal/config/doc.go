// Package config loads, normalizes, and validates Scrub configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and rejects invalid mode literals and
// category tables before any run starts. The Config type centralizes every
// knob the CLI and engine need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, lowercase mode literals, and clear validation errors.
package config
