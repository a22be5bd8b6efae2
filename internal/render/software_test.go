package render_test

import (
	"image"
	"image/color"
	"testing"

	"splice/internal/render"
	"splice/internal/timeline"
)

func solid(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func centerPixel(s *render.SoftwareSurface) color.RGBA {
	w, h := s.Size()
	return s.Frame().RGBAAt(w/2, h/2)
}

func TestClearFillsBlack(t *testing.T) {
	surface := render.NewSoftwareSurface(8, 8)
	got := centerPixel(surface)
	want := color.RGBA{A: 255}
	if got != want {
		t.Fatalf("center pixel = %v, want opaque black", got)
	}
}

func TestDrawImageCoversCenter(t *testing.T) {
	surface := render.NewSoftwareSurface(16, 16)
	red := color.RGBA{R: 255, A: 255}
	surface.DrawImage(solid(8, 8, red), render.DrawOptions{Alpha: 1, Placement: render.IdentityPlacement()})

	if got := centerPixel(surface); got != red {
		t.Fatalf("center = %v, want %v", got, red)
	}
	// Corners stay black: the 8x8 source sits centered in the 16x16 frame.
	if got := surface.Frame().RGBAAt(0, 0); got != (color.RGBA{A: 255}) {
		t.Fatalf("corner = %v, want black", got)
	}
}

func TestDrawImageAlphaBlends(t *testing.T) {
	surface := render.NewSoftwareSurface(4, 4)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	surface.DrawImage(solid(4, 4, white), render.DrawOptions{Alpha: 0.5, Placement: render.IdentityPlacement()})

	got := centerPixel(surface)
	if got.R < 120 || got.R > 135 {
		t.Fatalf("blended channel = %d, want ≈128", got.R)
	}
}

func TestDrawImageZeroAlphaDrawsNothing(t *testing.T) {
	surface := render.NewSoftwareSurface(4, 4)
	surface.DrawImage(solid(4, 4, color.RGBA{R: 255, A: 255}), render.DrawOptions{Alpha: 0, Placement: render.IdentityPlacement()})
	if got := centerPixel(surface); got != (color.RGBA{A: 255}) {
		t.Fatalf("pixel = %v, want untouched black", got)
	}
}

func TestPlacementOffsetMovesSource(t *testing.T) {
	surface := render.NewSoftwareSurface(16, 16)
	red := color.RGBA{R: 255, A: 255}
	placement := render.IdentityPlacement()
	placement.X = 4
	surface.DrawImage(solid(4, 4, red), render.DrawOptions{Alpha: 1, Placement: placement})

	if got := surface.Frame().RGBAAt(12, 8); got != red {
		t.Fatalf("offset pixel = %v, want red", got)
	}
	if got := surface.Frame().RGBAAt(4, 8); got != (color.RGBA{A: 255}) {
		t.Fatalf("old center-left = %v, want black", got)
	}
}

func TestPlacementScaleGrowsCoverage(t *testing.T) {
	surface := render.NewSoftwareSurface(16, 16)
	red := color.RGBA{R: 255, A: 255}
	placement := render.IdentityPlacement()
	placement.ScaleX = 4
	placement.ScaleY = 4
	surface.DrawImage(solid(4, 4, red), render.DrawOptions{Alpha: 1, Placement: placement})

	if got := surface.Frame().RGBAAt(1, 1); got != red {
		t.Fatalf("scaled corner = %v, want red", got)
	}
}

func TestRotationNinetyDegrees(t *testing.T) {
	surface := render.NewSoftwareSurface(21, 21)
	red := color.RGBA{R: 255, A: 255}
	// A wide bar: unrotated it covers (2,10)..(18,10); rotated 90° it covers
	// the vertical line through the center instead.
	placement := render.IdentityPlacement()
	placement.Rotation = 90
	surface.DrawImage(solid(17, 3, red), render.DrawOptions{Alpha: 1, Placement: placement})

	if got := surface.Frame().RGBAAt(10, 3); got != red {
		t.Fatalf("rotated pixel = %v, want red", got)
	}
	if got := surface.Frame().RGBAAt(3, 10); got != (color.RGBA{A: 255}) {
		t.Fatalf("horizontal arm = %v, want black after rotation", got)
	}
}

func TestBrightnessFilter(t *testing.T) {
	surface := render.NewSoftwareSurface(4, 4)
	gray := color.RGBA{R: 100, G: 100, B: 100, A: 255}
	surface.DrawImage(solid(4, 4, gray), render.DrawOptions{
		Alpha:     1,
		Placement: render.IdentityPlacement(),
		Filters:   []render.Filter{{Type: timeline.EffectBrightness, Value: 2}},
	})
	if got := centerPixel(surface); got.R != 200 {
		t.Fatalf("brightened channel = %d, want 200", got.R)
	}
}

func TestGrayscaleFilter(t *testing.T) {
	surface := render.NewSoftwareSurface(4, 4)
	red := color.RGBA{R: 255, A: 255}
	surface.DrawImage(solid(4, 4, red), render.DrawOptions{
		Alpha:     1,
		Placement: render.IdentityPlacement(),
		Filters:   []render.Filter{{Type: timeline.EffectGrayscale, Value: 1}},
	})
	got := centerPixel(surface)
	if got.R != got.G || got.G != got.B {
		t.Fatalf("grayscale output not neutral: %v", got)
	}
}

func TestInvertFilter(t *testing.T) {
	surface := render.NewSoftwareSurface(4, 4)
	surface.DrawImage(solid(4, 4, color.RGBA{R: 255, G: 255, B: 255, A: 255}), render.DrawOptions{
		Alpha:     1,
		Placement: render.IdentityPlacement(),
		Filters:   []render.Filter{{Type: timeline.EffectInvert, Value: 1}},
	})
	if got := centerPixel(surface); got.R != 0 || got.G != 0 || got.B != 0 {
		t.Fatalf("inverted white = %v, want black", got)
	}
}

func TestFiltersComposeInOrder(t *testing.T) {
	gray := color.RGBA{R: 100, G: 100, B: 100, A: 255}

	brightThenInvert := render.NewSoftwareSurface(4, 4)
	brightThenInvert.DrawImage(solid(4, 4, gray), render.DrawOptions{
		Alpha:     1,
		Placement: render.IdentityPlacement(),
		Filters: []render.Filter{
			{Type: timeline.EffectBrightness, Value: 2},
			{Type: timeline.EffectInvert, Value: 1},
		},
	})
	invertThenBright := render.NewSoftwareSurface(4, 4)
	invertThenBright.DrawImage(solid(4, 4, gray), render.DrawOptions{
		Alpha:     1,
		Placement: render.IdentityPlacement(),
		Filters: []render.Filter{
			{Type: timeline.EffectInvert, Value: 1},
			{Type: timeline.EffectBrightness, Value: 2},
		},
	})

	// 100 → ×2 → 200 → invert → 55, versus 100 → invert → 155 → ×2 → 255.
	if got := centerPixel(brightThenInvert); got.R != 55 {
		t.Fatalf("bright-then-invert = %d, want 55", got.R)
	}
	if got := centerPixel(invertThenBright); got.R != 255 {
		t.Fatalf("invert-then-bright = %d, want 255", got.R)
	}
}

func TestBlurSoftensEdges(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if x < 4 {
				src.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
			} else {
				src.SetRGBA(x, y, color.RGBA{A: 255})
			}
		}
	}
	surface := render.NewSoftwareSurface(8, 8)
	surface.DrawImage(src, render.DrawOptions{
		Alpha:     1,
		Placement: render.IdentityPlacement(),
		Filters:   []render.Filter{{Type: timeline.EffectBlur, Value: 2}},
	})
	edge := surface.Frame().RGBAAt(4, 4)
	if edge.R == 0 || edge.R == 255 {
		t.Fatalf("edge pixel = %d, want intermediate after blur", edge.R)
	}
}

func TestDrawTextPaintsGlyphs(t *testing.T) {
	surface := render.NewSoftwareSurface(64, 32)
	surface.DrawText(render.TextSpec{Content: "HELLO", Color: "#ff0000"}, render.DrawOptions{
		Alpha:     1,
		Placement: render.IdentityPlacement(),
	})
	found := false
	for y := 0; y < 32 && !found; y++ {
		for x := 0; x < 64; x++ {
			pixel := surface.Frame().RGBAAt(x, y)
			if pixel.R > 200 && pixel.G < 50 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatal("no red glyph pixels drawn")
	}
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
	}{
		{"#ff0000", color.RGBA{R: 255, A: 255}},
		{"#0f0", color.RGBA{G: 255, A: 255}},
		{"336699", color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}},
		{"not-a-color", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tc := range cases {
		if got := render.ParseHexColor(tc.in); got != tc.want {
			t.Fatalf("ParseHexColor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
