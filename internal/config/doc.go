// Package config loads, normalizes, and validates the TOML configuration for
// the upscaler. Paths are tilde-expanded and made absolute; missing files fall
// back to repository defaults.
package config
