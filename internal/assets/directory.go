package assets

import (
	"encoding/binary"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"splice/internal/services"
	"splice/internal/timeline"
)

// Raw audio layout for .f32 files: interleaved stereo float32, little endian.
const (
	rawSampleRate = 48000
	rawChannels   = 2
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif"}

// DirectoryProvider resolves asset ids against files in a media directory:
// "<id>.png" (or .jpg/.jpeg/.gif) for stills and "<id>.f32" for raw audio.
// Video decode is deliberately absent; wrap the provider in a Cache so
// repeated still and audio fetches do not re-read the files.
type DirectoryProvider struct {
	root string
}

// NewDirectoryProvider creates a provider rooted at the given directory.
func NewDirectoryProvider(root string) *DirectoryProvider {
	return &DirectoryProvider{root: root}
}

// Lookup implements Provider.
func (p *DirectoryProvider) Lookup(id string) (Info, error) {
	if path, ok := p.find(id, imageExtensions...); ok {
		f, err := os.Open(path)
		if err != nil {
			return Info{}, services.Wrap(services.ErrNotReady, "assets", "lookup", id, err)
		}
		defer f.Close()
		cfg, _, err := image.DecodeConfig(f)
		if err != nil {
			return Info{}, services.Wrap(services.ErrDecode, "assets", "lookup", id, err)
		}
		return Info{ID: id, Kind: timeline.TrackImage, Width: cfg.Width, Height: cfg.Height}, nil
	}
	if path, ok := p.find(id, ".f32"); ok {
		stat, err := os.Stat(path)
		if err != nil {
			return Info{}, services.Wrap(services.ErrNotReady, "assets", "lookup", id, err)
		}
		frames := stat.Size() / 4 / rawChannels
		return Info{ID: id, Kind: timeline.TrackAudio, Duration: frames * 1000 / rawSampleRate}, nil
	}
	return Info{}, services.Wrap(services.ErrNotFound, "assets", "lookup", id, nil)
}

// FrameAt implements Provider. Stills ignore the offset.
func (p *DirectoryProvider) FrameAt(id string, _ int64) (image.Image, error) {
	path, ok := p.find(id, imageExtensions...)
	if !ok {
		return nil, services.Wrap(services.ErrNotFound, "assets", "frame", id, nil)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotReady, "assets", "frame", id, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, services.Wrap(services.ErrDecode, "assets", "frame", id, err)
	}
	return img, nil
}

// Audio implements Provider.
func (p *DirectoryProvider) Audio(id string) (*AudioBuffer, error) {
	path, ok := p.find(id, ".f32")
	if !ok {
		return nil, services.Wrap(services.ErrNotFound, "assets", "audio", id, nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotReady, "assets", "audio", id, err)
	}
	if len(data)%4 != 0 {
		return nil, services.Wrap(services.ErrDecode, "assets", "audio", "truncated sample data", nil)
	}
	samples := make([]float32, len(data)/4)
	for i := range samples {
		samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return &AudioBuffer{SampleRate: rawSampleRate, Channels: rawChannels, Samples: samples}, nil
}

// find returns the first existing candidate path for the id. Ids containing
// path separators are rejected so a project file cannot escape the media
// directory.
func (p *DirectoryProvider) find(id string, extensions ...string) (string, bool) {
	if id == "" || strings.ContainsAny(id, `/\`) || id != filepath.Base(id) {
		return "", false
	}
	for _, ext := range extensions {
		path := filepath.Join(p.root, id+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}
