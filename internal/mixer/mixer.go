// Package mixer schedules audio sources against the playback clock and keeps
// them sample-accurately aligned, resyncing from scratch when the logical
// time jumps (seek detection). Actual sample playback happens on the
// platform's audio path behind the Output interface; its clock is the ground
// truth for drift detection.
package mixer

import (
	"log/slog"
	"sort"

	"splice/internal/assets"
	"splice/internal/logging"
	"splice/internal/services"
	"splice/internal/timeline"
)

// DefaultResyncWindow is the seek-detection threshold in milliseconds.
const DefaultResyncWindow = 100

// Source is one scheduled playback handle returned by the Output sink.
type Source interface {
	// SetGain updates the live gain without rescheduling.
	SetGain(gain float64)
	// Stop releases the source immediately.
	Stop()
}

// Output is the audio sink collaborator: it accepts schedule/stop commands
// and exposes the output clock in milliseconds. Schedule calls must return
// immediately (fire-and-forget relative to the tick loop).
type Output interface {
	Schedule(clipID string, buffer *assets.AudioBuffer, offsetMs int64, gain float64) (Source, error)
	Now() int64
}

// Options tunes the mixer.
type Options struct {
	// ResyncWindow is the drift threshold; zero uses the default.
	ResyncWindow int64
}

// Mixer reconciles scheduled sources with the clips active at the current
// logical time. Single-threaded: Tick, Stop, and friends must come from the
// engine loop goroutine.
type Mixer struct {
	provider assets.Provider
	output   Output
	logger   *slog.Logger
	window   int64

	sources     map[string]Source
	synced      bool
	lastLogical int64
	lastOutput  int64
	resyncs     int64
}

// New creates a mixer reading audio through the given provider.
// A nil logger discards logs.
func New(provider assets.Provider, output Output, opts Options, logger *slog.Logger) *Mixer {
	if logger == nil {
		logger = logging.NewNop()
	}
	window := opts.ResyncWindow
	if window <= 0 {
		window = DefaultResyncWindow
	}
	return &Mixer{
		provider: provider,
		output:   output,
		logger:   logger.With(logging.String(logging.FieldComponent, "mixer")),
		window:   window,
		sources:  make(map[string]Source),
	}
}

// ResyncCount reports how many full resyncs have occurred.
func (m *Mixer) ResyncCount() int64 { return m.resyncs }

// Tick reconciles audio sources against the clips active at logicalTime.
// Drift beyond the resync window means the logical clock jumped relative to
// the output clock: everything is stopped and rescheduled at corrected
// offsets. Clips whose assets are not ready are skipped this tick and
// retried on the next one.
func (m *Mixer) Tick(tracks []*timeline.Track, logicalTime int64) {
	outputNow := m.output.Now()
	if m.synced {
		expected := m.lastLogical + (outputNow - m.lastOutput)
		drift := logicalTime - expected
		if drift < 0 {
			drift = -drift
		}
		if drift > m.window {
			m.releaseAll()
			m.resyncs++
			m.logger.Debug("audio resync",
				logging.Int64(logging.FieldTimeMs, logicalTime),
				logging.Int64("drift_ms", drift),
			)
		}
	}
	m.lastLogical = logicalTime
	m.lastOutput = outputNow
	m.synced = true

	active := activeAudioClips(tracks, logicalTime)

	for clipID, source := range m.sources {
		if _, ok := active[clipID]; !ok {
			source.Stop()
			delete(m.sources, clipID)
		}
	}

	for clipID, placement := range active {
		gain := gainFor(placement.clip, placement.track, logicalTime)
		if source, ok := m.sources[clipID]; ok {
			source.SetGain(gain)
			continue
		}
		m.schedule(placement.clip, logicalTime, gain)
	}
}

// Stop synchronously releases every scheduled source and resets sync state.
// Called on pause and stop; nothing may fire after it returns.
func (m *Mixer) Stop() {
	m.releaseAll()
	m.synced = false
}

func (m *Mixer) releaseAll() {
	for clipID, source := range m.sources {
		source.Stop()
		delete(m.sources, clipID)
	}
}

func (m *Mixer) schedule(clip *timeline.Clip, logicalTime int64, gain float64) {
	buffer, err := m.provider.Audio(clip.AssetID)
	if err != nil {
		if !services.Skippable(err) {
			m.logger.Warn("audio fetch failed",
				logging.String(logging.FieldClipID, clip.ID),
				logging.String(logging.FieldAssetID, clip.AssetID),
				logging.Error(err),
			)
		}
		return
	}
	offset := clip.SourceStart + (logicalTime - clip.Start)
	source, err := m.output.Schedule(clip.ID, buffer, offset, gain)
	if err != nil {
		m.logger.Warn("audio schedule failed",
			logging.String(logging.FieldClipID, clip.ID),
			logging.Error(err),
		)
		return
	}
	m.sources[clip.ID] = source
}

type activePlacement struct {
	clip  *timeline.Clip
	track *timeline.Track
}

func activeAudioClips(tracks []*timeline.Track, logicalTime int64) map[string]activePlacement {
	active := make(map[string]activePlacement)
	for _, track := range sortedByOrder(tracks) {
		if track.Kind != timeline.TrackAudio && track.Kind != timeline.TrackVideo {
			continue
		}
		for _, clip := range track.ActiveClips(logicalTime) {
			if clip.AssetID == "" {
				continue
			}
			active[clip.ID] = activePlacement{clip: clip, track: track}
		}
	}
	return active
}

func gainFor(clip *timeline.Clip, track *timeline.Track, logicalTime int64) float64 {
	if track.Muted {
		return 0
	}
	return timeline.ValueAt(clip, timeline.PropVolume, logicalTime-clip.Start)
}

func sortedByOrder(tracks []*timeline.Track) []*timeline.Track {
	sorted := make([]*timeline.Track, len(tracks))
	copy(sorted, tracks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}
