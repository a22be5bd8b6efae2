package assets

import (
	"image"
	"image/color"
	"sync"

	"splice/internal/services"
	"splice/internal/timeline"
)

// MemoryProvider is an in-process Provider for tests and offline rendering.
// Assets are registered up front; readiness can be toggled to exercise the
// engine's skip-and-retry policy.
type MemoryProvider struct {
	mu     sync.Mutex
	assets map[string]*memoryAsset
}

type memoryAsset struct {
	info     Info
	frame    func(offsetMs int64) image.Image
	audio    *AudioBuffer
	notReady bool
	corrupt  bool
}

// NewMemoryProvider creates an empty provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{assets: make(map[string]*memoryAsset)}
}

// AddVideo registers a video asset whose frames come from the given function.
func (p *MemoryProvider) AddVideo(id string, durationMs int64, width, height int, frame func(offsetMs int64) image.Image) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.assets[id] = &memoryAsset{
		info:  Info{ID: id, Kind: timeline.TrackVideo, Duration: durationMs, Width: width, Height: height},
		frame: frame,
	}
}

// AddSolidVideo registers a video asset rendering a constant color.
func (p *MemoryProvider) AddSolidVideo(id string, durationMs int64, width, height int, fill color.RGBA) {
	frame := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			frame.SetRGBA(x, y, fill)
		}
	}
	p.AddVideo(id, durationMs, width, height, func(int64) image.Image { return frame })
}

// AddImage registers a still image asset (no intrinsic duration).
func (p *MemoryProvider) AddImage(id string, img image.Image) {
	p.mu.Lock()
	defer p.mu.Unlock()
	bounds := img.Bounds()
	p.assets[id] = &memoryAsset{
		info:  Info{ID: id, Kind: timeline.TrackImage, Width: bounds.Dx(), Height: bounds.Dy()},
		frame: func(int64) image.Image { return img },
	}
}

// AddAudio registers an audio asset backed by a decoded buffer.
func (p *MemoryProvider) AddAudio(id string, buffer *AudioBuffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.assets[id] = &memoryAsset{
		info:  Info{ID: id, Kind: timeline.TrackAudio, Duration: buffer.DurationMs()},
		audio: buffer,
	}
}

// SetReady toggles an asset's readiness; unready assets report ErrNotReady.
func (p *MemoryProvider) SetReady(id string, ready bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if asset, ok := p.assets[id]; ok {
		asset.notReady = !ready
	}
}

// SetCorrupt marks an asset as permanently undecodable.
func (p *MemoryProvider) SetCorrupt(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if asset, ok := p.assets[id]; ok {
		asset.corrupt = true
	}
}

// Lookup implements Provider.
func (p *MemoryProvider) Lookup(id string) (Info, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	asset, ok := p.assets[id]
	if !ok {
		return Info{}, services.Wrap(services.ErrNotFound, "assets", "lookup", id, nil)
	}
	return asset.info, nil
}

// FrameAt implements Provider.
func (p *MemoryProvider) FrameAt(id string, offsetMs int64) (image.Image, error) {
	p.mu.Lock()
	asset, ok := p.assets[id]
	p.mu.Unlock()
	if !ok {
		return nil, services.Wrap(services.ErrNotFound, "assets", "frame", id, nil)
	}
	if asset.corrupt {
		return nil, services.Wrap(services.ErrDecode, "assets", "frame", id, nil)
	}
	if asset.notReady {
		return nil, services.Wrap(services.ErrNotReady, "assets", "frame", id, nil)
	}
	if asset.frame == nil {
		return nil, services.Wrap(services.ErrNotFound, "assets", "frame", "asset has no visual stream", nil)
	}
	return asset.frame(offsetMs), nil
}

// Audio implements Provider.
func (p *MemoryProvider) Audio(id string) (*AudioBuffer, error) {
	p.mu.Lock()
	asset, ok := p.assets[id]
	p.mu.Unlock()
	if !ok {
		return nil, services.Wrap(services.ErrNotFound, "assets", "audio", id, nil)
	}
	if asset.corrupt {
		return nil, services.Wrap(services.ErrDecode, "assets", "audio", id, nil)
	}
	if asset.notReady {
		return nil, services.Wrap(services.ErrNotReady, "assets", "audio", id, nil)
	}
	if asset.audio == nil {
		return nil, services.Wrap(services.ErrNotFound, "assets", "audio", "asset has no audio stream", nil)
	}
	return asset.audio, nil
}
