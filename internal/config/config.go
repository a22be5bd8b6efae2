package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir string `toml:"log_dir"`
}

// Project contains defaults applied to newly created projects.
type Project struct {
	Width     int `toml:"width"`
	Height    int `toml:"height"`
	FrameRate int `toml:"frame_rate"`
}

// Editing contains tuning for edit operations and history.
type Editing struct {
	MinClipDurationMs  int64 `toml:"min_clip_duration_ms"`
	SnapToleranceMs    int64 `toml:"snap_tolerance_ms"`
	GridStepMs         int64 `toml:"grid_step_ms"`
	HistoryLimit       int   `toml:"history_limit"`
	TextClipDurationMs int64 `toml:"text_clip_duration_ms"`
}

// Playback contains clock and mixer timing configuration.
type Playback struct {
	DefaultRate        float64 `toml:"default_rate"`
	ResyncWindowMs     int64   `toml:"resync_window_ms"`
	FallbackDurationMs int64   `toml:"fallback_duration_ms"`
}

// Assets contains decode cache configuration.
type Assets struct {
	CacheEntries int `toml:"cache_entries"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config is the root configuration document.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Project  Project  `toml:"project"`
	Editing  Editing  `toml:"editing"`
	Playback Playback `toml:"playback"`
	Assets   Assets   `toml:"assets"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the conventional location of the config file.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "splice", "config.toml"), nil
}

// Load reads configuration from path, falling back to the default location
// and then to built-in defaults when no file exists. It reports the resolved
// path and whether a file was found.
func Load(path string) (*Config, string, bool, error) {
	resolved := strings.TrimSpace(path)
	if resolved == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return nil, "", false, err
		}
		resolved = defaultPath
	} else {
		expanded, err := ExpandPath(resolved)
		if err != nil {
			return nil, "", false, err
		}
		resolved = expanded
	}

	cfg := Default()
	data, err := os.ReadFile(resolved)
	exists := true
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, resolved, true, fmt.Errorf("parse config %q: %w", resolved, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		exists = false
	default:
		return nil, resolved, false, fmt.Errorf("read config %q: %w", resolved, err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, resolved, exists, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, resolved, exists, err
	}
	return &cfg, resolved, exists, nil
}

// EnsureDirectories creates directories the configuration references.
func (c *Config) EnsureDirectories() error {
	if c.Paths.LogDir == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create log directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// ExpandPath resolves ~ and environment variables in a filesystem path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			trimmed = home
		} else {
			trimmed = filepath.Join(home, trimmed[2:])
		}
	}
	return filepath.Clean(os.ExpandEnv(trimmed)), nil
}
