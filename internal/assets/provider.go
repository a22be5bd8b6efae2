// Package assets defines the media provider collaborator contract and a
// bounded decode cache. Providers expose already-decoded frames and sample
// buffers; the engine never touches compressed bitstreams. A provider must
// report not-ready instead of blocking so asset fetches cannot stall the tick
// loop.
package assets

import (
	"image"

	"splice/internal/timeline"
)

// Info describes a media asset's static properties.
type Info struct {
	ID       string
	Kind     timeline.TrackKind
	Duration int64
	Width    int
	Height   int
}

// AudioBuffer holds decoded interleaved PCM samples.
type AudioBuffer struct {
	SampleRate int
	Channels   int
	Samples    []float32
}

// DurationMs returns the buffer length in milliseconds.
func (b *AudioBuffer) DurationMs() int64 {
	if b == nil || b.SampleRate <= 0 || b.Channels <= 0 {
		return 0
	}
	frames := len(b.Samples) / b.Channels
	return int64(frames) * 1000 / int64(b.SampleRate)
}

// Provider is the asset collaborator contract.
//
// Lookup reports services.ErrNotFound for unknown ids. FrameAt and Audio
// report services.ErrNotReady while decoding is still in flight and
// services.ErrDecode for permanently unusable media; they never block.
type Provider interface {
	Lookup(id string) (Info, error)
	FrameAt(id string, offsetMs int64) (image.Image, error)
	Audio(id string) (*AudioBuffer, error)
}
