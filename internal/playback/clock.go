// Package playback provides the authoritative logical-time source for the
// engine. The clock owns no timer: an external driver calls Tick at its own
// cadence (target 60 Hz, jitter tolerated) and the clock recomputes logical
// time from wall-clock anchors, which keeps it deterministic under synthetic
// clocks in tests.
package playback

import "time"

// State is the clock's transport state.
type State string

const (
	// StateStopped is the initial state; position rests at zero after Stop.
	StateStopped State = "stopped"
	// StatePlaying advances logical time against the wall clock.
	StatePlaying State = "playing"
	// StatePaused freezes logical time but retains the position.
	StatePaused State = "paused"
)

// DurationFunc reports the current project duration in milliseconds. The
// clock queries it on seek clamps and end-of-timeline detection so edits made
// during playback take effect immediately.
type DurationFunc func() int64

// Clock tracks logical timeline position across play/pause/stop/seek.
// Single-threaded by design: the driver tick and the transport controls must
// come from the same goroutine (see the engine loop).
type Clock struct {
	state    State
	rate     float64
	duration DurationFunc
	now      func() time.Time

	// Anchors are valid only while playing.
	wallAnchor    time.Time
	logicalAnchor int64

	logical int64
}

// Option customizes a Clock.
type Option func(*Clock)

// WithNow overrides the wall-clock source, for deterministic tests.
func WithNow(now func() time.Time) Option {
	return func(c *Clock) {
		if now != nil {
			c.now = now
		}
	}
}

// WithRate sets the initial playback rate.
func WithRate(rate float64) Option {
	return func(c *Clock) {
		if rate > 0 {
			c.rate = rate
		}
	}
}

// NewClock creates a stopped clock at position zero.
func NewClock(duration DurationFunc, opts ...Option) *Clock {
	c := &Clock{
		state:    StateStopped,
		rate:     1,
		duration: duration,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current transport state.
func (c *Clock) State() State { return c.state }

// Rate returns the playback rate.
func (c *Clock) Rate() float64 { return c.rate }

// Playing reports whether logical time is advancing.
func (c *Clock) Playing() bool { return c.state == StatePlaying }

// LogicalTime returns the last computed logical position. While playing it is
// refreshed by Tick; consumers must read it once per tick and pass the value
// down rather than re-reading mid-frame.
func (c *Clock) LogicalTime() int64 { return c.logical }

// Play starts or resumes playback, anchoring logical time to the wall clock.
// Playing from the end of the timeline restarts at zero.
func (c *Clock) Play() {
	if c.state == StatePlaying {
		return
	}
	if d := c.projectDuration(); d > 0 && c.logical >= d {
		c.logical = 0
	}
	c.wallAnchor = c.now()
	c.logicalAnchor = c.logical
	c.state = StatePlaying
}

// Pause freezes logical time at its current position.
func (c *Clock) Pause() {
	if c.state != StatePlaying {
		return
	}
	c.logical = c.computeLogical()
	c.state = StatePaused
}

// Stop halts playback and resets the position to zero.
func (c *Clock) Stop() {
	c.logical = 0
	c.state = StateStopped
}

// Seek jumps to a logical time, clamped to [0, projectDuration], without
// changing the transport state. While playing, the anchors rebase so the next
// tick continues from the new position.
func (c *Clock) Seek(timeMs int64) {
	if timeMs < 0 {
		timeMs = 0
	}
	if d := c.projectDuration(); d > 0 && timeMs > d {
		timeMs = d
	}
	c.logical = timeMs
	if c.state == StatePlaying {
		c.wallAnchor = c.now()
		c.logicalAnchor = timeMs
	}
}

// SetRate changes the playback rate, rebasing anchors mid-play so already
// elapsed time keeps its old rate.
func (c *Clock) SetRate(rate float64) {
	if rate <= 0 {
		return
	}
	if c.state == StatePlaying {
		c.logical = c.computeLogical()
		c.wallAnchor = c.now()
		c.logicalAnchor = c.logical
	}
	c.rate = rate
}

// Tick recomputes logical time from the wall clock. When the position passes
// the project duration the clock auto-stops and clamps there (end-of-timeline
// stop policy). It returns the frame-consistent logical time for this tick.
func (c *Clock) Tick() int64 {
	if c.state != StatePlaying {
		return c.logical
	}
	c.logical = c.computeLogical()
	if d := c.projectDuration(); d > 0 && c.logical >= d {
		c.logical = d
		c.state = StateStopped
	}
	return c.logical
}

func (c *Clock) computeLogical() int64 {
	elapsed := c.now().Sub(c.wallAnchor)
	return c.logicalAnchor + int64(float64(elapsed.Milliseconds())*c.rate)
}

func (c *Clock) projectDuration() int64 {
	if c.duration == nil {
		return 0
	}
	return c.duration()
}
