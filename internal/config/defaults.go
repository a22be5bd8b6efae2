package config

const (
	defaultLogDir             = "~/.local/share/splice/logs"
	defaultProjectWidth       = 1920
	defaultProjectHeight      = 1080
	defaultProjectFrameRate   = 30
	defaultMinClipDurationMs  = 100
	defaultSnapToleranceMs    = 100
	defaultGridStepMs         = 100
	defaultHistoryLimit       = 50
	defaultTextClipDurationMs = 5000
	defaultPlaybackRate       = 1.0
	defaultResyncWindowMs     = 100
	defaultFallbackDurationMs = 60000
	defaultAssetCacheEntries  = 32
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Project: Project{
			Width:     defaultProjectWidth,
			Height:    defaultProjectHeight,
			FrameRate: defaultProjectFrameRate,
		},
		Editing: Editing{
			MinClipDurationMs:  defaultMinClipDurationMs,
			SnapToleranceMs:    defaultSnapToleranceMs,
			GridStepMs:         defaultGridStepMs,
			HistoryLimit:       defaultHistoryLimit,
			TextClipDurationMs: defaultTextClipDurationMs,
		},
		Playback: Playback{
			DefaultRate:        defaultPlaybackRate,
			ResyncWindowMs:     defaultResyncWindowMs,
			FallbackDurationMs: defaultFallbackDurationMs,
		},
		Assets: Assets{
			CacheEntries: defaultAssetCacheEntries,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
