// Package edit orchestrates user-level gestures (drag-move, cut, trim) over
// the timeline model, resolving positions through the snap engine and
// checkpointing history before every mutation unless the caller opts out for
// continuous gestures.
package edit

import (
	"log/slog"

	"splice/internal/history"
	"splice/internal/logging"
	"splice/internal/snap"
	"splice/internal/timeline"
)

// Options tunes gesture resolution.
type Options struct {
	SnapTolerance int64
	GridStep      int64
}

// GestureOptions modifies a single operation.
type GestureOptions struct {
	// SkipCheckpoint suppresses the pre-mutation checkpoint. Continuous
	// drags checkpoint once at gesture start, not per mouse-move.
	SkipCheckpoint bool
	// SnapDisabled bypasses candidate snapping; grid rounding still applies.
	SnapDisabled bool
	// Playhead is offered as a snap candidate.
	Playhead int64
}

// Editor wires the model, snap engine, and history manager together.
type Editor struct {
	model   *timeline.Model
	history *history.Manager
	opts    Options
	logger  *slog.Logger
}

// NewEditor creates an editor. A nil logger discards logs.
func NewEditor(model *timeline.Model, hist *history.Manager, opts Options, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Editor{
		model:   model,
		history: hist,
		opts:    opts,
		logger:  logger.With(logging.String(logging.FieldComponent, "edit")),
	}
}

// Model returns the underlying timeline model.
func (e *Editor) Model() *timeline.Model { return e.model }

// History returns the attached history manager.
func (e *Editor) History() *history.Manager { return e.history }

// BeginGesture records the single checkpoint for a continuous gesture.
// Subsequent per-move calls should set GestureOptions.SkipCheckpoint.
func (e *Editor) BeginGesture(label string) {
	e.history.Checkpoint(label)
}

// DragMove resolves a drop position through the snap engine and moves the
// clip. Returns false when the underlying move is rejected.
func (e *Editor) DragMove(clipID, targetTrackID string, requestedStartMs int64, gesture GestureOptions) bool {
	resolved := snap.Resolve(requestedStartMs, e.model.Tracks(), snap.Options{
		Tolerance:     e.opts.SnapTolerance,
		GridStep:      e.opts.GridStep,
		Playhead:      gesture.Playhead,
		ExcludeClipID: clipID,
		Disabled:      gesture.SnapDisabled,
	})
	if !gesture.SkipCheckpoint {
		e.history.Checkpoint("Move clip")
	}
	moved := e.model.MoveClip(clipID, targetTrackID, resolved)
	if moved {
		e.logger.Debug("clip moved",
			logging.String(logging.FieldClipID, clipID),
			logging.Int64(logging.FieldTimeMs, resolved),
		)
	}
	return moved
}

// CutAt locates the clip under the click time on a track and splits it.
func (e *Editor) CutAt(trackID string, timeMs int64, gesture GestureOptions) (*timeline.Clip, *timeline.Clip, bool) {
	track, ok := e.model.FindTrack(trackID)
	if !ok {
		return nil, nil, false
	}
	clip, ok := track.ClipAt(timeMs)
	if !ok {
		return nil, nil, false
	}
	if !gesture.SkipCheckpoint {
		e.history.Checkpoint("Split clip")
	}
	first, second, ok := e.model.SplitClip(clip.ID, timeMs)
	if ok {
		e.logger.Debug("clip split",
			logging.String(logging.FieldClipID, clip.ID),
			logging.Int64(logging.FieldTimeMs, timeMs),
		)
	}
	return first, second, ok
}

// TrimTo resolves a trim boundary from screen space (pixels at the given
// density) through the snap engine and resizes the clip.
func (e *Editor) TrimTo(clipID string, side timeline.ClipSide, pixelX, pixelsPerSecond float64, gesture GestureOptions) bool {
	if pixelsPerSecond <= 0 {
		return false
	}
	requested := int64(pixelX / pixelsPerSecond * 1000)
	resolved := snap.Resolve(requested, e.model.Tracks(), snap.Options{
		Tolerance:     e.opts.SnapTolerance,
		GridStep:      e.opts.GridStep,
		Playhead:      gesture.Playhead,
		ExcludeClipID: clipID,
		Disabled:      gesture.SnapDisabled,
	})
	if !gesture.SkipCheckpoint {
		e.history.Checkpoint("Trim clip")
	}
	return e.model.ResizeClip(clipID, side, resolved)
}

// PlaceClip checkpoints and adds a clip to a track.
func (e *Editor) PlaceClip(trackID, assetID string, assetDurationMs, startMs int64) (*timeline.Clip, bool) {
	e.history.Checkpoint("Add clip")
	return e.model.AddClip(trackID, assetID, assetDurationMs, startMs)
}

// DeleteClip checkpoints and removes a clip.
func (e *Editor) DeleteClip(clipID string) bool {
	e.history.Checkpoint("Delete clip")
	return e.model.RemoveClip(clipID)
}

// AddTrack checkpoints and appends a track.
func (e *Editor) AddTrack(kind timeline.TrackKind) *timeline.Track {
	e.history.Checkpoint("Add track")
	return e.model.AddTrack(kind)
}

// DeleteTrack checkpoints and removes a track with its clips.
func (e *Editor) DeleteTrack(trackID string) bool {
	e.history.Checkpoint("Delete track")
	return e.model.RemoveTrack(trackID)
}
