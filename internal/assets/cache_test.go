package assets_test

import (
	"errors"
	"image"
	"image/color"
	"sync/atomic"
	"testing"

	"splice/internal/assets"
	"splice/internal/services"
	"splice/internal/timeline"
)

type countingProvider struct {
	inner      assets.Provider
	audioCalls atomic.Int64
	frameCalls atomic.Int64
}

func (c *countingProvider) Lookup(id string) (assets.Info, error) {
	return c.inner.Lookup(id)
}

func (c *countingProvider) FrameAt(id string, offsetMs int64) (image.Image, error) {
	c.frameCalls.Add(1)
	return c.inner.FrameAt(id, offsetMs)
}

func (c *countingProvider) Audio(id string) (*assets.AudioBuffer, error) {
	c.audioCalls.Add(1)
	return c.inner.Audio(id)
}

func toneBuffer(ms int64) *assets.AudioBuffer {
	sampleRate := 48000
	frames := int(ms) * sampleRate / 1000
	return &assets.AudioBuffer{
		SampleRate: sampleRate,
		Channels:   2,
		Samples:    make([]float32, frames*2),
	}
}

func TestCacheServesRepeatAudioFetches(t *testing.T) {
	memory := assets.NewMemoryProvider()
	memory.AddAudio("tone", toneBuffer(1000))
	counting := &countingProvider{inner: memory}
	cache, err := assets.NewCache(counting, 4)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	for i := 0; i < 5; i++ {
		if _, err := cache.Audio("tone"); err != nil {
			t.Fatalf("Audio: %v", err)
		}
	}
	if got := counting.audioCalls.Load(); got != 1 {
		t.Fatalf("inner decode called %d times, want 1", got)
	}
}

func TestCacheDoesNotRetainFailures(t *testing.T) {
	memory := assets.NewMemoryProvider()
	memory.AddAudio("tone", toneBuffer(1000))
	memory.SetReady("tone", false)
	cache, err := assets.NewCache(memory, 4)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	if _, err := cache.Audio("tone"); !errors.Is(err, services.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	memory.SetReady("tone", true)
	if _, err := cache.Audio("tone"); err != nil {
		t.Fatalf("expected recovery after readiness, got %v", err)
	}
}

func TestCacheStillImagesByID(t *testing.T) {
	memory := assets.NewMemoryProvider()
	memory.AddImage("logo", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	counting := &countingProvider{inner: memory}
	cache, err := assets.NewCache(counting, 4)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	for _, offset := range []int64{0, 100, 25000} {
		if _, err := cache.FrameAt("logo", offset); err != nil {
			t.Fatalf("FrameAt(%d): %v", offset, err)
		}
	}
	if got := counting.frameCalls.Load(); got != 1 {
		t.Fatalf("still image decoded %d times, want 1", got)
	}
}

func TestCachePassesVideoFramesThrough(t *testing.T) {
	memory := assets.NewMemoryProvider()
	memory.AddVideo("clip", 5000, 4, 4, func(int64) image.Image {
		return image.NewRGBA(image.Rect(0, 0, 4, 4))
	})
	counting := &countingProvider{inner: memory}
	cache, err := assets.NewCache(counting, 4)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	for _, offset := range []int64{0, 33, 66} {
		if _, err := cache.FrameAt("clip", offset); err != nil {
			t.Fatalf("FrameAt(%d): %v", offset, err)
		}
	}
	if got := counting.frameCalls.Load(); got != 3 {
		t.Fatalf("video frames fetched %d times, want 3 (no caching)", got)
	}
}

func TestMemoryProviderErrors(t *testing.T) {
	memory := assets.NewMemoryProvider()
	if _, err := memory.Lookup("ghost"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	memory.AddAudio("bad", toneBuffer(100))
	memory.SetCorrupt("bad")
	if _, err := memory.Audio("bad"); !errors.Is(err, services.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestAudioBufferDuration(t *testing.T) {
	buffer := toneBuffer(1500)
	if got := buffer.DurationMs(); got != 1500 {
		t.Fatalf("DurationMs = %d, want 1500", got)
	}
	var nilBuffer *assets.AudioBuffer
	if got := nilBuffer.DurationMs(); got != 0 {
		t.Fatalf("nil DurationMs = %d, want 0", got)
	}
}

func TestMemoryProviderInfoKinds(t *testing.T) {
	memory := assets.NewMemoryProvider()
	memory.AddSolidVideo("v", 2000, 8, 8, imageRedRGBA())
	info, err := memory.Lookup("v")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if info.Kind != timeline.TrackVideo || info.Duration != 2000 {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func imageRedRGBA() color.RGBA {
	return color.RGBA{R: 255, A: 255}
}
