// Package compositor assembles the visible frame for a logical time from the
// timeline model, drawing through the render.Surface collaborator.
package compositor

import (
	"log/slog"
	"sort"

	"splice/internal/assets"
	"splice/internal/logging"
	"splice/internal/render"
	"splice/internal/services"
	"splice/internal/timeline"
)

// Compositor renders frames; it holds no model state of its own.
type Compositor struct {
	provider assets.Provider
	logger   *slog.Logger
}

// New creates a compositor reading media through the given provider.
// A nil logger discards logs.
func New(provider assets.Provider, logger *slog.Logger) *Compositor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Compositor{
		provider: provider,
		logger:   logger.With(logging.String(logging.FieldComponent, "compositor")),
	}
}

// RenderFrame draws the frame for logicalTime onto the surface: clear to
// black, tracks in ascending order (hidden tracks skipped), active clips in
// list order so the most recently added paints on top. Audio clips produce no
// visual output. A clip whose asset is missing or not yet decoded is skipped
// for this frame only; frames are atomic and no failure aborts the pass.
func (c *Compositor) RenderFrame(surface render.Surface, tracks []*timeline.Track, logicalTime int64) {
	surface.Clear()
	for _, track := range sortedByOrder(tracks) {
		if !track.Visible || !track.Kind.Visual() {
			continue
		}
		for _, clip := range track.ActiveClips(logicalTime) {
			c.drawClip(surface, clip, logicalTime)
		}
	}
}

func (c *Compositor) drawClip(surface render.Surface, clip *timeline.Clip, logicalTime int64) {
	relative := logicalTime - clip.Start
	opts := render.DrawOptions{
		Alpha:     timeline.ValueAt(clip, timeline.PropOpacity, relative),
		Filters:   enabledFilters(clip),
		Placement: placementAt(clip, relative),
	}

	if clip.Kind == timeline.TrackText {
		if clip.Text == nil {
			return
		}
		surface.DrawText(render.TextSpec{
			Content:   clip.Text.Content,
			Color:     clip.Text.Color,
			Alignment: clip.Text.Alignment,
			Shadow:    clip.Text.Shadow,
		}, opts)
		return
	}

	frame, err := c.provider.FrameAt(clip.AssetID, clip.SourceStart+relative)
	if err != nil {
		if !services.Skippable(err) {
			c.logger.Warn("frame fetch failed",
				logging.String(logging.FieldClipID, clip.ID),
				logging.String(logging.FieldAssetID, clip.AssetID),
				logging.Error(err),
			)
		}
		return
	}
	surface.DrawImage(frame, opts)
}

func enabledFilters(clip *timeline.Clip) []render.Filter {
	var filters []render.Filter
	for _, effect := range clip.Effects {
		if !effect.Enabled {
			continue
		}
		filters = append(filters, render.Filter{Type: effect.Type, Value: effect.Value})
	}
	return filters
}

func placementAt(clip *timeline.Clip, relative int64) render.Placement {
	return render.Placement{
		X:        timeline.ValueAt(clip, timeline.PropX, relative),
		Y:        timeline.ValueAt(clip, timeline.PropY, relative),
		ScaleX:   timeline.ValueAt(clip, timeline.PropScaleX, relative),
		ScaleY:   timeline.ValueAt(clip, timeline.PropScaleY, relative),
		Rotation: timeline.ValueAt(clip, timeline.PropRotation, relative),
		AnchorX:  clip.Transform.AnchorX,
		AnchorY:  clip.Transform.AnchorY,
	}
}

func sortedByOrder(tracks []*timeline.Track) []*timeline.Track {
	sorted := make([]*timeline.Track, len(tracks))
	copy(sorted, tracks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}
