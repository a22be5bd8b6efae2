// Package engine assembles the playback pipeline: one clock, one compositor,
// one mixer, all driven from a single external tick. Every collaborator sees
// the same logical time per tick, so video and audio can never disagree about
// the frame being presented.
package engine

import (
	"log/slog"
	"time"

	"splice/internal/assets"
	"splice/internal/compositor"
	"splice/internal/logging"
	"splice/internal/mixer"
	"splice/internal/playback"
	"splice/internal/render"
	"splice/internal/timeline"
)

// Options tunes the engine.
type Options struct {
	// Rate is the initial playback rate; zero means 1x.
	Rate float64
	// ResyncWindow is the audio drift threshold in milliseconds; zero uses
	// the mixer default.
	ResyncWindow int64
	// Now overrides the wall clock, for deterministic tests.
	Now func() time.Time
}

// Engine owns the transport state and fans each tick out to the renderer and
// the mixer. It does not own a timer: the embedding application drives Tick
// from its frame loop. All methods must be called from that same goroutine.
type Engine struct {
	model      *timeline.Model
	clock      *playback.Clock
	compositor *compositor.Compositor
	mixer      *mixer.Mixer
	surface    render.Surface
	logger     *slog.Logger
}

// New wires an engine over the given model, media provider, audio sink, and
// render surface. A nil logger discards logs.
func New(model *timeline.Model, provider assets.Provider, output mixer.Output, surface render.Surface, opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	clockOpts := []playback.Option{}
	if opts.Rate > 0 {
		clockOpts = append(clockOpts, playback.WithRate(opts.Rate))
	}
	if opts.Now != nil {
		clockOpts = append(clockOpts, playback.WithNow(opts.Now))
	}
	return &Engine{
		model:      model,
		clock:      playback.NewClock(model.ProjectDuration, clockOpts...),
		compositor: compositor.New(provider, logger),
		mixer:      mixer.New(provider, output, mixer.Options{ResyncWindow: opts.ResyncWindow}, logger),
		surface:    surface,
		logger:     logger.With(logging.String(logging.FieldComponent, "engine")),
	}
}

// State returns the transport state.
func (e *Engine) State() playback.State { return e.clock.State() }

// LogicalTime returns the last computed logical position in milliseconds.
func (e *Engine) LogicalTime() int64 { return e.clock.LogicalTime() }

// Rate returns the playback rate.
func (e *Engine) Rate() float64 { return e.clock.Rate() }

// Play starts or resumes playback.
func (e *Engine) Play() {
	e.clock.Play()
	e.logger.Debug("play", logging.Int64(logging.FieldTimeMs, e.clock.LogicalTime()))
}

// Pause freezes playback and synchronously releases every audio source; no
// sample may fire after it returns.
func (e *Engine) Pause() {
	e.clock.Pause()
	e.mixer.Stop()
	e.logger.Debug("pause", logging.Int64(logging.FieldTimeMs, e.clock.LogicalTime()))
}

// Stop halts playback, resets the position to zero, and releases all audio.
func (e *Engine) Stop() {
	e.clock.Stop()
	e.mixer.Stop()
	e.logger.Debug("stop")
}

// Seek jumps to a logical time, clamped to the project duration. While
// playing, the mixer's drift detection reschedules audio at the corrected
// offset on the next tick.
func (e *Engine) Seek(timeMs int64) {
	e.clock.Seek(timeMs)
}

// SetRate changes the playback rate.
func (e *Engine) SetRate(rate float64) {
	e.clock.SetRate(rate)
}

// Tick advances the pipeline one frame: recompute logical time, render the
// frame for it, and reconcile audio against it. A frame is rendered in every
// state so a paused or stopped timeline still presents its current position.
// Reaching the end of the timeline auto-stops and releases audio. Returns the
// logical time this tick rendered.
func (e *Engine) Tick() int64 {
	wasPlaying := e.clock.Playing()
	logical := e.clock.Tick()

	tracks := e.model.Tracks()
	e.compositor.RenderFrame(e.surface, tracks, logical)

	switch {
	case e.clock.Playing():
		e.mixer.Tick(tracks, logical)
	case wasPlaying:
		// Auto-stop at the end of the timeline.
		e.mixer.Stop()
	}
	return logical
}
