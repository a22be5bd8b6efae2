package testsupport

import (
	"image/color"
	"testing"

	"splice/internal/assets"
	"splice/internal/timeline"
)

// NewModel returns a model over an empty 16x16 project with default settings.
func NewModel(t testing.TB) *timeline.Model {
	t.Helper()
	project := timeline.NewProject("Test Project", timeline.Resolution{Width: 16, Height: 16}, 30)
	return timeline.NewModel(project, timeline.DefaultSettings())
}

// MustAddClip adds a clip and fails the test when the model rejects it.
func MustAddClip(t testing.TB, model *timeline.Model, trackID, assetID string, assetDurationMs, startMs int64) *timeline.Clip {
	t.Helper()
	clip, ok := model.AddClip(trackID, assetID, assetDurationMs, startMs)
	if !ok {
		t.Fatalf("AddClip(%s, %s) rejected", trackID, assetID)
	}
	return clip
}

// SeedProvider returns an in-memory provider preloaded with a red 5-second
// video ("red"), a blue 5-second video ("blue"), and a 5-second stereo tone
// ("tone").
func SeedProvider(t testing.TB) *assets.MemoryProvider {
	t.Helper()
	provider := assets.NewMemoryProvider()
	provider.AddSolidVideo("red", 5000, 16, 16, color.RGBA{R: 255, A: 255})
	provider.AddSolidVideo("blue", 5000, 16, 16, color.RGBA{B: 255, A: 255})
	provider.AddAudio("tone", Tone(t, 5000))
	return provider
}

// Tone builds a silent stereo buffer of the given duration at 48 kHz.
func Tone(t testing.TB, durationMs int64) *assets.AudioBuffer {
	t.Helper()
	const sampleRate = 48000
	return &assets.AudioBuffer{
		SampleRate: sampleRate,
		Channels:   2,
		Samples:    make([]float32, int(durationMs)*sampleRate/1000*2),
	}
}
