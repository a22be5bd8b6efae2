package timeline

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Settings tunes model-enforced limits. Zero values fall back to defaults.
type Settings struct {
	MinClipDuration  int64
	TextClipDuration int64
	FallbackDuration int64
}

const (
	defaultMinClipDuration  = 100
	defaultTextClipDuration = 5000
	defaultFallbackDuration = 60000
)

// DefaultSettings returns the repository defaults (100 ms clip floor, 5 s
// text clips, 60 s empty-project duration).
func DefaultSettings() Settings {
	return Settings{
		MinClipDuration:  defaultMinClipDuration,
		TextClipDuration: defaultTextClipDuration,
		FallbackDuration: defaultFallbackDuration,
	}
}

func (s Settings) withDefaults() Settings {
	if s.MinClipDuration <= 0 {
		s.MinClipDuration = defaultMinClipDuration
	}
	if s.TextClipDuration <= 0 {
		s.TextClipDuration = defaultTextClipDuration
	}
	if s.FallbackDuration <= 0 {
		s.FallbackDuration = defaultFallbackDuration
	}
	return s
}

// Model owns a project graph and exposes the synchronous mutation API.
// Mutations have no side effects beyond the model itself. Precondition
// violations (missing ids, out-of-bounds splits, resizes under the minimum
// duration, locked tracks) are no-ops reported through the boolean return,
// never errors. Callers must serialize access; the model is not safe for
// concurrent mutation.
type Model struct {
	project  *Project
	settings Settings
}

// NewModel wraps an existing project. A nil project gets an empty one.
func NewModel(project *Project, settings Settings) *Model {
	if project == nil {
		project = NewProject("Untitled", Resolution{Width: 1920, Height: 1080}, 30)
	}
	return &Model{project: project, settings: settings.withDefaults()}
}

// NewProject creates an empty project with no tracks.
func NewProject(name string, resolution Resolution, frameRate int) *Project {
	return &Project{
		ID:         uuid.NewString(),
		Name:       name,
		Resolution: resolution,
		FrameRate:  frameRate,
	}
}

// Project returns the live project graph. Treat it as read-only; mutate
// through the model API so invariants hold.
func (m *Model) Project() *Project {
	return m.project
}

// Settings returns the limits the model enforces.
func (m *Model) Settings() Settings {
	return m.settings
}

// Tracks returns the live track list in display order as stored.
func (m *Model) Tracks() []*Track {
	return m.project.Tracks
}

// RestoreTracks replaces the track list wholesale. The history manager uses
// it to apply snapshots.
func (m *Model) RestoreTracks(tracks []*Track) {
	m.project.Tracks = tracks
}

// ProjectDuration returns the maximum clip end across all tracks, or the
// fallback minimum when the timeline is empty. Consumers must not assume a
// non-zero content duration otherwise.
func (m *Model) ProjectDuration() int64 {
	var max int64
	for _, track := range m.project.Tracks {
		for _, clip := range track.Clips {
			if end := clip.End(); end > max {
				max = end
			}
		}
	}
	if max == 0 {
		return m.settings.FallbackDuration
	}
	return max
}

// AddTrack appends a track of the given kind at the top of the z-order.
func (m *Model) AddTrack(kind TrackKind) *Track {
	track := &Track{
		ID:      uuid.NewString(),
		Name:    m.nextTrackName(kind),
		Kind:    kind,
		Order:   len(m.project.Tracks),
		Visible: true,
	}
	m.project.Tracks = append(m.project.Tracks, track)
	return track
}

func (m *Model) nextTrackName(kind TrackKind) string {
	n := 1
	for _, track := range m.project.Tracks {
		if track.Kind == kind {
			n++
		}
	}
	label := string(kind)
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	return fmt.Sprintf("%s %d", label, n)
}

// RemoveTrack deletes a track and every clip it owns.
func (m *Model) RemoveTrack(id string) bool {
	for i, track := range m.project.Tracks {
		if track.ID == id {
			m.project.Tracks = append(m.project.Tracks[:i], m.project.Tracks[i+1:]...)
			return true
		}
	}
	return false
}

// FindTrack locates a track by id.
func (m *Model) FindTrack(id string) (*Track, bool) {
	for _, track := range m.project.Tracks {
		if track.ID == id {
			return track, true
		}
	}
	return nil, false
}

// FindClip locates a clip and its owning track by clip id.
func (m *Model) FindClip(id string) (*Clip, *Track, bool) {
	for _, track := range m.project.Tracks {
		for _, clip := range track.Clips {
			if clip.ID == id {
				return clip, track, true
			}
		}
	}
	return nil, nil, false
}

// AddClip places a clip on a track at startMs. Duration defaults to the
// asset's duration, or the configured text-clip default when the track kind
// is text or the asset reports no duration (still images). Returns false when
// the track is missing or locked.
func (m *Model) AddClip(trackID, assetID string, assetDurationMs, startMs int64) (*Clip, bool) {
	track, ok := m.FindTrack(trackID)
	if !ok || track.Locked {
		return nil, false
	}
	if startMs < 0 {
		startMs = 0
	}
	duration := assetDurationMs
	if track.Kind == TrackText || duration <= 0 {
		duration = m.settings.TextClipDuration
	}
	clip := &Clip{
		ID:        uuid.NewString(),
		TrackID:   track.ID,
		Kind:      track.Kind,
		Name:      fmt.Sprintf("%s clip %d", track.Kind, len(track.Clips)+1),
		AssetID:   assetID,
		Start:     startMs,
		Duration:  duration,
		SourceEnd: duration,
		Opacity:   1,
		Volume:    1,
		Transform: IdentityTransform(),
	}
	if track.Kind == TrackText {
		clip.AssetID = ""
		clip.Text = &TextStyle{Content: "Text", Font: "sans-serif", FontSize: 48, Color: "#ffffff", Alignment: "center"}
	}
	track.Clips = append(track.Clips, clip)
	return clip, true
}

// RemoveClip deletes a clip from its owning track.
func (m *Model) RemoveClip(id string) bool {
	clip, track, ok := m.FindClip(id)
	if !ok || track.Locked {
		return false
	}
	for i, candidate := range track.Clips {
		if candidate == clip {
			track.Clips = append(track.Clips[:i], track.Clips[i+1:]...)
			return true
		}
	}
	return false
}

// MoveClip repositions a clip, optionally onto another track of the same
// kind. Moving to a missing or locked track, or a track of a different kind,
// is a no-op.
func (m *Model) MoveClip(id, newTrackID string, newStartMs int64) bool {
	clip, fromTrack, ok := m.FindClip(id)
	if !ok || fromTrack.Locked {
		return false
	}
	target := fromTrack
	if newTrackID != "" && newTrackID != fromTrack.ID {
		toTrack, found := m.FindTrack(newTrackID)
		if !found || toTrack.Locked || toTrack.Kind != clip.Kind {
			return false
		}
		target = toTrack
	}
	if newStartMs < 0 {
		newStartMs = 0
	}
	if target != fromTrack {
		for i, candidate := range fromTrack.Clips {
			if candidate == clip {
				fromTrack.Clips = append(fromTrack.Clips[:i], fromTrack.Clips[i+1:]...)
				break
			}
		}
		target.Clips = append(target.Clips, clip)
		clip.TrackID = target.ID
	}
	clip.Start = newStartMs
	return true
}

// ResizeClip moves one clip boundary to newBoundaryMs. Resizing the start
// shifts SourceStart by the same delta; resizing the end adjusts only the
// duration. Requests that would leave the clip under the minimum duration, or
// push SourceStart negative, are rejected without effect (soft clamp policy).
func (m *Model) ResizeClip(id string, side ClipSide, newBoundaryMs int64) bool {
	clip, track, ok := m.FindClip(id)
	if !ok || track.Locked {
		return false
	}
	switch side {
	case SideStart:
		if newBoundaryMs < 0 || newBoundaryMs > clip.End()-m.settings.MinClipDuration {
			return false
		}
		delta := newBoundaryMs - clip.Start
		if clip.AssetID != "" && clip.SourceStart+delta < 0 {
			return false
		}
		clip.Start = newBoundaryMs
		clip.Duration -= delta
		clip.SourceStart += delta
	case SideEnd:
		if newBoundaryMs < clip.Start+m.settings.MinClipDuration {
			return false
		}
		clip.Duration = newBoundaryMs - clip.Start
		clip.SourceEnd = clip.SourceStart + clip.Duration
	default:
		return false
	}
	return true
}

// SplitClip cuts a clip at a track-relative time, producing two clips whose
// ranges exactly partition the original and whose source offsets are
// contiguous. Splitting at or outside the clip bounds is a no-op.
func (m *Model) SplitClip(id string, atMs int64) (*Clip, *Clip, bool) {
	clip, track, ok := m.FindClip(id)
	if !ok || track.Locked {
		return nil, nil, false
	}
	if atMs <= clip.Start || atMs >= clip.End() {
		return nil, nil, false
	}
	offset := atMs - clip.Start

	second := clip.Clone()
	second.ID = uuid.NewString()
	second.Start = atMs
	second.Duration = clip.Duration - offset
	second.SourceStart = clip.SourceStart + offset
	second.SourceEnd = clip.SourceEnd
	// Keyframe times are clip-relative: shift them onto the second half and
	// keep only samples each half can still reach.
	second.Keyframes = shiftKeyframes(second.Keyframes, offset)

	clip.Duration = offset
	clip.SourceEnd = clip.SourceStart + offset
	clip.Keyframes = truncateKeyframes(clip.Keyframes, offset)

	for i, candidate := range track.Clips {
		if candidate == clip {
			track.Clips = append(track.Clips[:i+1], append([]*Clip{second}, track.Clips[i+1:]...)...)
			break
		}
	}
	return clip, second, true
}

func shiftKeyframes(keyframes []*Keyframe, offset int64) []*Keyframe {
	shifted := keyframes[:0]
	for _, keyframe := range keyframes {
		if keyframe.Time < offset {
			continue
		}
		keyframe.Time -= offset
		shifted = append(shifted, keyframe)
	}
	return shifted
}

func truncateKeyframes(keyframes []*Keyframe, limit int64) []*Keyframe {
	kept := make([]*Keyframe, 0, len(keyframes))
	for _, keyframe := range keyframes {
		if keyframe.Time <= limit {
			kept = append(kept, keyframe)
		}
	}
	return kept
}

// ClipPatch carries optional field updates for SetClipProperty. Nil fields
// are left untouched. Opacity and volume are clamped to [0,1].
type ClipPatch struct {
	Name      *string
	Opacity   *float64
	Volume    *float64
	Transform *Transform
	Text      *TextStyle
}

// SetClipProperty applies a patch to a clip's static properties.
func (m *Model) SetClipProperty(id string, patch ClipPatch) bool {
	clip, track, ok := m.FindClip(id)
	if !ok || track.Locked {
		return false
	}
	if patch.Name != nil {
		clip.Name = *patch.Name
	}
	if patch.Opacity != nil {
		clip.Opacity = clampUnit(*patch.Opacity)
	}
	if patch.Volume != nil {
		clip.Volume = clampUnit(*patch.Volume)
	}
	if patch.Transform != nil {
		transform := *patch.Transform
		if transform.ScaleX < 0 {
			transform.ScaleX = 0
		}
		if transform.ScaleY < 0 {
			transform.ScaleY = 0
		}
		transform.AnchorX = clampUnit(transform.AnchorX)
		transform.AnchorY = clampUnit(transform.AnchorY)
		clip.Transform = transform
	}
	if patch.Text != nil && clip.Kind == TrackText {
		text := *patch.Text
		clip.Text = &text
	}
	return true
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
