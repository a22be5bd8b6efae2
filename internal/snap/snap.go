// Package snap resolves requested timeline positions to nearby alignment
// points: the timeline origin, the playhead, and other clips' boundaries.
package snap

import (
	"splice/internal/timeline"
)

const (
	// DefaultTolerance is the snap capture window in milliseconds.
	DefaultTolerance = 100
	// DefaultGridStep is the fallback rounding grid in milliseconds.
	DefaultGridStep = 100
)

// Options configures a snap resolution request.
type Options struct {
	// Tolerance is the capture window around candidates; zero uses the default.
	Tolerance int64
	// GridStep is the fallback rounding step; zero uses the default.
	GridStep int64
	// Playhead is the current playback position, offered as a candidate.
	Playhead int64
	// ExcludeClipID omits one clip's boundaries, so a dragged clip cannot
	// snap to itself.
	ExcludeClipID string
	// Disabled bypasses candidate matching; the target is still rounded to
	// the grid.
	Disabled bool
}

func (o Options) withDefaults() Options {
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.GridStep <= 0 {
		o.GridStep = DefaultGridStep
	}
	return o
}

// Resolve maps a requested time to the nearest snap candidate within
// tolerance, or rounds it to the grid when no candidate is close enough (or
// snapping is disabled). The result is never negative.
func Resolve(targetMs int64, tracks []*timeline.Track, opts Options) int64 {
	opts = opts.withDefaults()
	if !opts.Disabled {
		if snapped, ok := nearestCandidate(targetMs, tracks, opts); ok {
			return clampZero(snapped)
		}
	}
	return clampZero(roundToGrid(targetMs, opts.GridStep))
}

// Candidates returns every snap point the resolver considers, in no
// particular order. Exposed for UI layers that draw alignment guides.
func Candidates(tracks []*timeline.Track, opts Options) []int64 {
	opts = opts.withDefaults()
	points := []int64{0, opts.Playhead}
	for _, track := range tracks {
		for _, clip := range track.Clips {
			if clip.ID == opts.ExcludeClipID {
				continue
			}
			points = append(points, clip.Start, clip.End())
		}
	}
	return points
}

func nearestCandidate(targetMs int64, tracks []*timeline.Track, opts Options) (int64, bool) {
	best := int64(0)
	bestDistance := opts.Tolerance + 1
	found := false
	for _, candidate := range Candidates(tracks, opts) {
		distance := targetMs - candidate
		if distance < 0 {
			distance = -distance
		}
		if distance <= opts.Tolerance && distance < bestDistance {
			best = candidate
			bestDistance = distance
			found = true
		}
	}
	return best, found
}

func roundToGrid(value, step int64) int64 {
	if step <= 0 {
		return value
	}
	half := step / 2
	if value >= 0 {
		return ((value + half) / step) * step
	}
	return -(((-value + half) / step) * step)
}

func clampZero(value int64) int64 {
	if value < 0 {
		return 0
	}
	return value
}
