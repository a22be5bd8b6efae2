package assets

import (
	"fmt"
	"image"

	lru "github.com/hashicorp/golang-lru/v2"

	"splice/internal/timeline"
)

// DefaultCacheEntries bounds retained decoded buffers per cache.
const DefaultCacheEntries = 32

// Cache wraps a Provider with LRU retention of decoded audio buffers and
// still-image frames, so repeated ticks do not re-decode. Video frames pass
// through: they are offset-dependent and the upstream decoder owns their
// caching. Failed fetches (not ready, decode errors) are never cached, so a
// later tick can pick the asset up once it becomes available.
type Cache struct {
	inner  Provider
	audio  *lru.Cache[string, *AudioBuffer]
	frames *lru.Cache[string, image.Image]
}

// NewCache creates a caching provider with the given entry bound per cache.
func NewCache(inner Provider, entries int) (*Cache, error) {
	if entries <= 0 {
		entries = DefaultCacheEntries
	}
	audio, err := lru.New[string, *AudioBuffer](entries)
	if err != nil {
		return nil, fmt.Errorf("create audio cache: %w", err)
	}
	frames, err := lru.New[string, image.Image](entries)
	if err != nil {
		return nil, fmt.Errorf("create frame cache: %w", err)
	}
	return &Cache{inner: inner, audio: audio, frames: frames}, nil
}

// Lookup passes through to the wrapped provider.
func (c *Cache) Lookup(id string) (Info, error) {
	return c.inner.Lookup(id)
}

// FrameAt serves still images from cache and passes video frames through.
func (c *Cache) FrameAt(id string, offsetMs int64) (image.Image, error) {
	info, err := c.inner.Lookup(id)
	if err != nil {
		return nil, err
	}
	if info.Kind != timeline.TrackImage {
		return c.inner.FrameAt(id, offsetMs)
	}
	if frame, ok := c.frames.Get(id); ok {
		return frame, nil
	}
	frame, err := c.inner.FrameAt(id, offsetMs)
	if err != nil {
		return nil, err
	}
	c.frames.Add(id, frame)
	return frame, nil
}

// Audio serves decoded buffers from cache.
func (c *Cache) Audio(id string) (*AudioBuffer, error) {
	if buffer, ok := c.audio.Get(id); ok {
		return buffer, nil
	}
	buffer, err := c.inner.Audio(id)
	if err != nil {
		return nil, err
	}
	c.audio.Add(id, buffer)
	return buffer, nil
}

// Purge drops every cached buffer, e.g. when a project closes.
func (c *Cache) Purge() {
	c.audio.Purge()
	c.frames.Purge()
}
