package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// SoftwareSurface renders into an in-memory RGBA frame. It implements
// Surface with inverse-mapped nearest-neighbor sampling, which is the
// documented sampling contract for this engine.
type SoftwareSurface struct {
	frame *image.RGBA
}

// NewSoftwareSurface allocates a black frame of the given size.
func NewSoftwareSurface(width, height int) *SoftwareSurface {
	s := &SoftwareSurface{frame: image.NewRGBA(image.Rect(0, 0, width, height))}
	s.Clear()
	return s
}

// Size returns the frame dimensions.
func (s *SoftwareSurface) Size() (int, int) {
	bounds := s.frame.Bounds()
	return bounds.Dx(), bounds.Dy()
}

// Frame exposes the backing image for assertions and PNG dumps.
func (s *SoftwareSurface) Frame() *image.RGBA { return s.frame }

// Clear fills the frame with opaque black.
func (s *SoftwareSurface) Clear() {
	draw.Draw(s.frame, s.frame.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
}

// DrawImage composites src with filters, transform, and global alpha.
func (s *SoftwareSurface) DrawImage(src image.Image, opts DrawOptions) {
	alpha := opts.Alpha
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	placement := normalizePlacement(opts.Placement)
	if placement.ScaleX == 0 || placement.ScaleY == 0 {
		return
	}

	filtered := toRGBA(src)
	for _, filter := range opts.Filters {
		filtered = applyFilter(filtered, filter)
	}
	s.blit(filtered, placement, alpha)
}

func normalizePlacement(p Placement) Placement {
	if p.ScaleX == 0 && p.ScaleY == 0 && p.AnchorX == 0 && p.AnchorY == 0 && p.X == 0 && p.Y == 0 && p.Rotation == 0 {
		return IdentityPlacement()
	}
	return p
}

// blit inverse-maps every destination pixel through the placement transform
// and alpha-blends the sampled source pixel. The forward transform is
// translate(center + offset) ∘ rotate ∘ scale about the source anchor.
func (s *SoftwareSurface) blit(src *image.RGBA, p Placement, alpha float64) {
	width, height := s.Size()
	srcBounds := src.Bounds()
	srcW := float64(srcBounds.Dx())
	srcH := float64(srcBounds.Dy())
	if srcW == 0 || srcH == 0 {
		return
	}

	centerX := float64(width)/2 + p.X
	centerY := float64(height)/2 + p.Y
	anchorX := p.AnchorX * srcW
	anchorY := p.AnchorY * srcH

	theta := p.Rotation * math.Pi / 180
	cos := math.Cos(theta)
	sin := math.Sin(theta)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// Inverse: undo translation, rotation, then scale.
			dx := float64(x) + 0.5 - centerX
			dy := float64(y) + 0.5 - centerY
			rx := dx*cos + dy*sin
			ry := -dx*sin + dy*cos
			sx := rx/p.ScaleX + anchorX
			sy := ry/p.ScaleY + anchorY
			if sx < 0 || sy < 0 || sx >= srcW || sy >= srcH {
				continue
			}
			sample := src.RGBAAt(srcBounds.Min.X+int(sx), srcBounds.Min.Y+int(sy))
			s.blend(x, y, sample, alpha)
		}
	}
}

func (s *SoftwareSurface) blend(x, y int, src color.RGBA, alpha float64) {
	a := alpha * float64(src.A) / 255
	if a <= 0 {
		return
	}
	dst := s.frame.RGBAAt(x, y)
	blendChannel := func(srcC, dstC uint8) uint8 {
		v := float64(srcC)*a + float64(dstC)*(1-a)
		return uint8(math.Round(clamp255(v)))
	}
	s.frame.SetRGBA(x, y, color.RGBA{
		R: blendChannel(src.R, dst.R),
		G: blendChannel(src.G, dst.G),
		B: blendChannel(src.B, dst.B),
		A: 255,
	})
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		// Filters mutate a copy, never the caller's decoded frame.
		cp := image.NewRGBA(rgba.Bounds())
		copy(cp.Pix, rgba.Pix)
		return cp
	}
	bounds := src.Bounds()
	cp := image.NewRGBA(bounds)
	draw.Draw(cp, bounds, src, bounds.Min, draw.Src)
	return cp
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
