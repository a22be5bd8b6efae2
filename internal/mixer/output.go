package mixer

import (
	"time"

	"splice/internal/assets"
)

// NullOutput is a discard audio sink for headless playback. It accepts
// schedules and exposes a monotonic millisecond clock but never emits
// samples. Like the mixer itself it is single-threaded.
type NullOutput struct {
	start time.Time
	live  int
}

// NewNullOutput creates a discard sink whose clock starts at zero.
func NewNullOutput() *NullOutput {
	return &NullOutput{start: time.Now()}
}

// Schedule records a live source and discards the samples.
func (o *NullOutput) Schedule(_ string, _ *assets.AudioBuffer, _ int64, _ float64) (Source, error) {
	o.live++
	return &nullSource{output: o}, nil
}

// Now reports milliseconds elapsed since the sink was created.
func (o *NullOutput) Now() int64 { return time.Since(o.start).Milliseconds() }

// LiveSources reports how many scheduled sources have not been stopped.
func (o *NullOutput) LiveSources() int { return o.live }

type nullSource struct {
	output  *NullOutput
	stopped bool
}

func (s *nullSource) SetGain(float64) {}

func (s *nullSource) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	s.output.live--
}
