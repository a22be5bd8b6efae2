package assets_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"splice/internal/assets"
	"splice/internal/services"
	"splice/internal/timeline"
)

func writePNG(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{G: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write png: %v", err)
	}
}

func writeRawAudio(t *testing.T, path string, frames int, value float32) {
	t.Helper()
	data := make([]byte, frames*2*4)
	for i := 0; i < frames*2; i++ {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(value))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
}

func TestDirectoryProviderStills(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "logo.png"), 8, 6)
	provider := assets.NewDirectoryProvider(dir)

	info, err := provider.Lookup("logo")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if info.Kind != timeline.TrackImage || info.Width != 8 || info.Height != 6 {
		t.Fatalf("unexpected info: %+v", info)
	}

	frame, err := provider.FrameAt("logo", 1234)
	if err != nil {
		t.Fatalf("FrameAt: %v", err)
	}
	if frame.Bounds().Dx() != 8 {
		t.Fatalf("frame width = %d, want 8", frame.Bounds().Dx())
	}
}

func TestDirectoryProviderRawAudio(t *testing.T) {
	dir := t.TempDir()
	writeRawAudio(t, filepath.Join(dir, "tone.f32"), 48000, 0.25)
	provider := assets.NewDirectoryProvider(dir)

	info, err := provider.Lookup("tone")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if info.Duration != 1000 {
		t.Fatalf("duration = %d, want 1000", info.Duration)
	}

	buffer, err := provider.Audio("tone")
	if err != nil {
		t.Fatalf("Audio: %v", err)
	}
	if len(buffer.Samples) != 96000 || buffer.Samples[0] != 0.25 {
		t.Fatalf("samples = %d first=%v", len(buffer.Samples), buffer.Samples[0])
	}
}

func TestDirectoryProviderRejectsPathEscapes(t *testing.T) {
	provider := assets.NewDirectoryProvider(t.TempDir())
	if _, err := provider.Lookup("../etc/passwd"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for path escape, got %v", err)
	}
}

func TestDirectoryProviderMissingAsset(t *testing.T) {
	provider := assets.NewDirectoryProvider(t.TempDir())
	if _, err := provider.FrameAt("ghost", 0); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
