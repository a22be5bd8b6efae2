package compositor_test

import (
	"image/color"
	"testing"

	"splice/internal/assets"
	"splice/internal/compositor"
	"splice/internal/render"
	"splice/internal/testsupport"
	"splice/internal/timeline"
)

// newScene reuses the shared fixtures: a 16x16 model and a provider seeded
// with "red", "blue", and "tone" assets.
func newScene(t *testing.T) (*timeline.Model, *assets.MemoryProvider) {
	t.Helper()
	return testsupport.NewModel(t), testsupport.SeedProvider(t)
}

func renderAt(t *testing.T, model *timeline.Model, provider assets.Provider, at int64) *render.SoftwareSurface {
	t.Helper()
	surface := render.NewSoftwareSurface(16, 16)
	compositor.New(provider, nil).RenderFrame(surface, model.Tracks(), at)
	return surface
}

func center(s *render.SoftwareSurface) color.RGBA {
	w, h := s.Size()
	return s.Frame().RGBAAt(w/2, h/2)
}

func TestHigherOrderTrackPaintsOnTop(t *testing.T) {
	model, provider := newScene(t)

	bottom := model.AddTrack(timeline.TrackVideo) // order 0
	top := model.AddTrack(timeline.TrackVideo)    // order 1
	model.AddClip(bottom.ID, "red", 5000, 0)
	model.AddClip(top.ID, "blue", 5000, 0)

	got := center(renderAt(t, model, provider, 1000))
	if got.B != 255 || got.R != 0 {
		t.Fatalf("center = %v, want order-1 blue on top", got)
	}
}

func TestHiddenTrackIsSkipped(t *testing.T) {
	model, provider := newScene(t)
	track := model.AddTrack(timeline.TrackVideo)
	model.AddClip(track.ID, "red", 5000, 0)
	track.Visible = false

	got := center(renderAt(t, model, provider, 1000))
	if got != (color.RGBA{A: 255}) {
		t.Fatalf("center = %v, want black with hidden track", got)
	}
}

func TestInactiveClipProducesBlackFrame(t *testing.T) {
	model, provider := newScene(t)
	track := model.AddTrack(timeline.TrackVideo)
	model.AddClip(track.ID, "red", 1000, 0)

	if got := center(renderAt(t, model, provider, 1500)); got != (color.RGBA{A: 255}) {
		t.Fatalf("center = %v, want black past clip end", got)
	}
	// Exclusive end boundary: at exactly start+duration the clip is inactive.
	if got := center(renderAt(t, model, provider, 1000)); got != (color.RGBA{A: 255}) {
		t.Fatalf("center = %v, want black at exclusive end", got)
	}
}

func TestNotReadyAssetSkippedThenRecovered(t *testing.T) {
	model, provider := newScene(t)
	track := model.AddTrack(timeline.TrackVideo)
	model.AddClip(track.ID, "red", 5000, 0)

	provider.SetReady("red", false)
	if got := center(renderAt(t, model, provider, 1000)); got != (color.RGBA{A: 255}) {
		t.Fatalf("center = %v, want black while asset not ready", got)
	}
	provider.SetReady("red", true)
	if got := center(renderAt(t, model, provider, 1000)); got.R != 255 {
		t.Fatalf("center = %v, want red after asset became ready", got)
	}
}

func TestMissingAssetNeverPanics(t *testing.T) {
	model, provider := newScene(t)
	track := model.AddTrack(timeline.TrackVideo)
	model.AddClip(track.ID, "ghost", 5000, 0)
	if got := center(renderAt(t, model, provider, 1000)); got != (color.RGBA{A: 255}) {
		t.Fatalf("center = %v, want black for missing asset", got)
	}
}

func TestKeyframedOpacityFades(t *testing.T) {
	model, provider := newScene(t)
	provider.AddSolidVideo("white", 5000, 16, 16, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	track := model.AddTrack(timeline.TrackVideo)
	clip, _ := model.AddClip(track.ID, "white", 5000, 0)
	model.AddKeyframe(clip.ID, timeline.PropOpacity, 0, 0, timeline.EaseLinear)
	model.AddKeyframe(clip.ID, timeline.PropOpacity, 2000, 1, timeline.EaseLinear)

	dim := center(renderAt(t, model, provider, 500))
	bright := center(renderAt(t, model, provider, 2000))
	if dim.R >= bright.R {
		t.Fatalf("fade not applied: dim=%d bright=%d", dim.R, bright.R)
	}
	if bright.R != 255 {
		t.Fatalf("full opacity = %d, want 255", bright.R)
	}
}

func TestEnabledEffectsApplyDisabledDoNot(t *testing.T) {
	model, provider := newScene(t)
	provider.AddSolidVideo("white", 5000, 16, 16, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	track := model.AddTrack(timeline.TrackVideo)
	clip, _ := model.AddClip(track.ID, "white", 5000, 0)
	effect, _ := model.AddEffect(clip.ID, timeline.EffectInvert, 1)

	if got := center(renderAt(t, model, provider, 1000)); got.R != 0 {
		t.Fatalf("inverted white = %v, want black", got)
	}
	disabled := false
	model.UpdateEffect(clip.ID, effect.ID, timeline.EffectPatch{Enabled: &disabled})
	if got := center(renderAt(t, model, provider, 1000)); got.R != 255 {
		t.Fatalf("disabled effect still applied: %v", got)
	}
}

func TestOverlappingClipsOnOneTrackLatestWins(t *testing.T) {
	model, provider := newScene(t)
	track := model.AddTrack(timeline.TrackVideo)
	model.AddClip(track.ID, "red", 5000, 0)
	model.AddClip(track.ID, "blue", 5000, 0)

	got := center(renderAt(t, model, provider, 1000))
	if got.B != 255 {
		t.Fatalf("center = %v, want most recently added clip on top", got)
	}
}

func TestTextClipRendersWithoutAsset(t *testing.T) {
	model, provider := newScene(t)
	track := model.AddTrack(timeline.TrackText)
	clip, _ := model.AddClip(track.ID, "", 0, 0)
	model.SetClipProperty(clip.ID, timeline.ClipPatch{
		Text: &timeline.TextStyle{Content: "Hi", Color: "#00ff00", Alignment: "center"},
	})

	surface := renderAt(t, model, provider, 1000)
	found := false
	frame := surface.Frame()
	for y := 0; y < 16 && !found; y++ {
		for x := 0; x < 16; x++ {
			if pixel := frame.RGBAAt(x, y); pixel.G > 200 && pixel.R < 50 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatal("text clip drew no glyph pixels")
	}
}

func TestAudioTrackProducesNoVisualOutput(t *testing.T) {
	model, provider := newScene(t)
	track := model.AddTrack(timeline.TrackAudio)
	model.AddClip(track.ID, "tone", 1000, 0)

	if got := center(renderAt(t, model, provider, 500)); got != (color.RGBA{A: 255}) {
		t.Fatalf("center = %v, want black for audio-only timeline", got)
	}
}
