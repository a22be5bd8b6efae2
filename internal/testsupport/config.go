// Package testsupport provides shared helpers for package tests: seeded
// configurations, timeline fixtures, and in-memory media.
package testsupport

import (
	"path/filepath"
	"testing"

	"splice/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with a unique temp log directory per
// test. It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithHistoryLimit overrides the undo depth on the test config.
func WithHistoryLimit(limit int) ConfigOption {
	return func(c *config.Config) {
		c.Editing.HistoryLimit = limit
	}
}

// WithSnapTolerance overrides the snap tolerance on the test config.
func WithSnapTolerance(ms int64) ConfigOption {
	return func(c *config.Config) {
		c.Editing.SnapToleranceMs = ms
	}
}
