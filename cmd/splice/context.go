package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"splice/internal/assets"
	"splice/internal/config"
	"splice/internal/edit"
	"splice/internal/history"
	"splice/internal/logging"
	"splice/internal/timeline"
)

type commandContext struct {
	configFlag  *string
	projectFlag *string
	mediaFlag   *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, projectFlag, mediaFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		projectFlag: projectFlag,
		mediaFlag:   mediaFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) projectPath() (string, error) {
	if c.projectFlag == nil || strings.TrimSpace(*c.projectFlag) == "" {
		return "", errors.New("no project file given; pass --project")
	}
	return config.ExpandPath(strings.TrimSpace(*c.projectFlag))
}

// provider resolves assets from the media directory when one is given; an
// empty provider otherwise, which makes asset-backed clips render as skipped.
func (c *commandContext) provider() (assets.Provider, error) {
	if c.mediaFlag == nil || strings.TrimSpace(*c.mediaFlag) == "" {
		return assets.NewMemoryProvider(), nil
	}
	root, err := config.ExpandPath(strings.TrimSpace(*c.mediaFlag))
	if err != nil {
		return nil, fmt.Errorf("resolve media directory: %w", err)
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return assets.NewCache(assets.NewDirectoryProvider(root), cfg.Assets.CacheEntries)
}

// settings maps the editing and playback configuration onto model settings.
func (c *commandContext) settings() (timeline.Settings, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return timeline.Settings{}, err
	}
	return timeline.Settings{
		MinClipDuration:  cfg.Editing.MinClipDurationMs,
		TextClipDuration: cfg.Editing.TextClipDurationMs,
		FallbackDuration: cfg.Playback.FallbackDurationMs,
	}, nil
}

// loadModel reads the project file into a model configured from the config.
func (c *commandContext) loadModel() (*timeline.Model, string, error) {
	path, err := c.projectPath()
	if err != nil {
		return nil, "", err
	}
	settings, err := c.settings()
	if err != nil {
		return nil, "", err
	}
	project, err := timeline.LoadProjectFile(path)
	if err != nil {
		return nil, "", err
	}
	return timeline.NewModel(project, settings), path, nil
}

// newEditor builds an editor with snapping and history sized from the config.
func (c *commandContext) newEditor(model *timeline.Model) (*edit.Editor, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	hist := history.NewManager(model, history.WithLimit(cfg.Editing.HistoryLimit))
	return edit.NewEditor(model, hist, edit.Options{
		SnapTolerance: cfg.Editing.SnapToleranceMs,
		GridStep:      cfg.Editing.GridStepMs,
	}, c.ensureLogger()), nil
}

// withProjectLock guards a mutate-and-save sequence with an advisory file
// lock next to the project, so concurrent invocations cannot interleave
// read-modify-write cycles.
func (c *commandContext) withProjectLock(fn func(model *timeline.Model, path string) error) error {
	path, err := c.projectPath()
	if err != nil {
		return err
	}
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire project lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("project %s is locked by another splice invocation", path)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	model, resolved, err := c.loadModel()
	if err != nil {
		return err
	}
	return fn(model, resolved)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
