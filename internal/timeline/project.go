package timeline

// All timeline positions and durations are integer milliseconds. JSON field
// names follow the browser project_data interchange schema (camelCase).

// Resolution is the project's output frame size in pixels.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Project is the root of the timeline graph and owns all tracks.
type Project struct {
	ID         string     `json:"projectId"`
	Name       string     `json:"name"`
	Resolution Resolution `json:"resolution"`
	FrameRate  int        `json:"frameRate"`
	Tracks     []*Track   `json:"tracks"`
}

// Track is an ordered lane of non-exclusive clips sharing a kind.
// Order determines compositing/z-order and mixing order; lower order renders
// first (bottom).
type Track struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Kind    TrackKind `json:"kind"`
	Order   int       `json:"order"`
	Muted   bool      `json:"muted"`
	Locked  bool      `json:"locked"`
	Visible bool      `json:"visible"`
	Clips   []*Clip   `json:"clips"`
}

// Transform positions a clip's visual output relative to the frame center.
type Transform struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	ScaleX   float64 `json:"scaleX"`
	ScaleY   float64 `json:"scaleY"`
	Rotation float64 `json:"rotation"`
	AnchorX  float64 `json:"anchorX"`
	AnchorY  float64 `json:"anchorY"`
}

// IdentityTransform returns the neutral transform (centered, unscaled).
func IdentityTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1, AnchorX: 0.5, AnchorY: 0.5}
}

// TextStyle carries rendering properties for text clips.
type TextStyle struct {
	Content   string `json:"content"`
	Font      string `json:"font"`
	FontSize  int    `json:"fontSize"`
	Color     string `json:"color"`
	Alignment string `json:"alignment"`
	Shadow    bool   `json:"shadow"`
}

// Effect is a composable image filter attached to a clip. Effects apply in
// list order; that ordering is a stable contract and is never re-derived.
type Effect struct {
	ID      string     `json:"id"`
	Type    EffectType `json:"type"`
	Value   float64    `json:"value"`
	Enabled bool       `json:"enabled"`
}

// Keyframe is a sparse, timed value sample for a clip property. Time is
// relative to the clip start. Duplicates at the same time are permitted and
// resolved by list order.
type Keyframe struct {
	ID       string   `json:"id"`
	Property Property `json:"property"`
	Time     int64    `json:"time"`
	Value    float64  `json:"value"`
	Easing   Easing   `json:"easing"`
}

// Clip is a time-bounded placement of a media or text reference on a track.
// Invariants: Duration > 0; SourceEnd-SourceStart == Duration for non-text
// clips (retiming is not modeled).
type Clip struct {
	ID          string      `json:"id"`
	TrackID     string      `json:"trackId"`
	Kind        TrackKind   `json:"kind"`
	Name        string      `json:"name"`
	AssetID     string      `json:"assetId,omitempty"`
	Start       int64       `json:"start"`
	Duration    int64       `json:"duration"`
	SourceStart int64       `json:"sourceStart"`
	SourceEnd   int64       `json:"sourceEnd"`
	Opacity     float64     `json:"opacity"`
	Volume      float64     `json:"volume"`
	Transform   Transform   `json:"transform"`
	Effects     []*Effect   `json:"effects"`
	Keyframes   []*Keyframe `json:"keyframes"`
	Text        *TextStyle  `json:"text,omitempty"`
}

// End returns the exclusive end of the clip's timeline range.
func (c *Clip) End() int64 {
	return c.Start + c.Duration
}

// Active reports whether the clip covers the given timeline position.
func (c *Clip) Active(timeMs int64) bool {
	return timeMs >= c.Start && timeMs < c.End()
}

// Clone returns a deep copy of the clip.
func (c *Clip) Clone() *Clip {
	if c == nil {
		return nil
	}
	cp := *c
	// Preserve nil slices so a restored snapshot marshals identically to the
	// original (null, not []).
	if c.Effects != nil {
		cp.Effects = make([]*Effect, len(c.Effects))
		for i, effect := range c.Effects {
			e := *effect
			cp.Effects[i] = &e
		}
	}
	if c.Keyframes != nil {
		cp.Keyframes = make([]*Keyframe, len(c.Keyframes))
		for i, keyframe := range c.Keyframes {
			k := *keyframe
			cp.Keyframes[i] = &k
		}
	}
	if c.Text != nil {
		text := *c.Text
		cp.Text = &text
	}
	return &cp
}

// Clone returns a deep copy of the track and its clips.
func (t *Track) Clone() *Track {
	if t == nil {
		return nil
	}
	cp := *t
	if t.Clips != nil {
		cp.Clips = make([]*Clip, len(t.Clips))
		for i, clip := range t.Clips {
			cp.Clips[i] = clip.Clone()
		}
	}
	return &cp
}

// Clone returns a deep copy of the project graph.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Tracks = CloneTracks(p.Tracks)
	return &cp
}

// CloneTracks deep-copies a track list. The history manager snapshots with it.
func CloneTracks(tracks []*Track) []*Track {
	if tracks == nil {
		return nil
	}
	cp := make([]*Track, len(tracks))
	for i, track := range tracks {
		cp[i] = track.Clone()
	}
	return cp
}

// ActiveClips returns, in clip-list order, every clip covering timeMs.
// List order is creation order, so the most recently added clip comes last
// and paints on top when the compositor draws the slice in order.
func (t *Track) ActiveClips(timeMs int64) []*Clip {
	var active []*Clip
	for _, clip := range t.Clips {
		if clip.Active(timeMs) {
			active = append(active, clip)
		}
	}
	return active
}

// ClipAt returns the winning clip at timeMs under the overlap rule: when
// several clips on one track cover the same instant, the latest in list order
// (most recently added) wins.
func (t *Track) ClipAt(timeMs int64) (*Clip, bool) {
	for i := len(t.Clips) - 1; i >= 0; i-- {
		if t.Clips[i].Active(timeMs) {
			return t.Clips[i], true
		}
	}
	return nil, false
}
