// Package config loads, normalizes, and validates the TOML configuration that
// tunes the timeline engine: project defaults, editing tolerances, playback
// timing, asset caching, and logging.
package config
