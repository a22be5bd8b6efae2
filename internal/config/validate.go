package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateProject(); err != nil {
		return err
	}
	if err := c.validateEditing(); err != nil {
		return err
	}
	if err := c.validatePlayback(); err != nil {
		return err
	}
	if err := c.validateAssets(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateProject() error {
	if c.Project.Width <= 0 || c.Project.Height <= 0 {
		return errors.New("project.width and project.height must be positive")
	}
	if c.Project.FrameRate <= 0 {
		return errors.New("project.frame_rate must be positive")
	}
	return nil
}

func (c *Config) validateEditing() error {
	if c.Editing.MinClipDurationMs <= 0 {
		return errors.New("editing.min_clip_duration_ms must be positive")
	}
	if c.Editing.SnapToleranceMs < 0 {
		return errors.New("editing.snap_tolerance_ms must not be negative")
	}
	if c.Editing.GridStepMs <= 0 {
		return errors.New("editing.grid_step_ms must be positive")
	}
	if c.Editing.HistoryLimit <= 0 {
		return errors.New("editing.history_limit must be positive")
	}
	if c.Editing.TextClipDurationMs < c.Editing.MinClipDurationMs {
		return errors.New("editing.text_clip_duration_ms must be at least the minimum clip duration")
	}
	return nil
}

func (c *Config) validatePlayback() error {
	if c.Playback.DefaultRate <= 0 {
		return errors.New("playback.default_rate must be positive")
	}
	if c.Playback.ResyncWindowMs <= 0 {
		return errors.New("playback.resync_window_ms must be positive")
	}
	if c.Playback.FallbackDurationMs <= 0 {
		return errors.New("playback.fallback_duration_ms must be positive")
	}
	return nil
}

func (c *Config) validateAssets() error {
	if c.Assets.CacheEntries <= 0 {
		return errors.New("assets.cache_entries must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
