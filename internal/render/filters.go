package render

import (
	"image"
	"image/color"
	"math"

	"splice/internal/timeline"
)

// applyFilter dispatches one filter over the image, returning the result.
// Unknown filter types pass the image through untouched.
func applyFilter(img *image.RGBA, filter Filter) *image.RGBA {
	switch filter.Type {
	case timeline.EffectBrightness:
		return mapPixels(img, func(r, g, b float64) (float64, float64, float64) {
			return r * filter.Value, g * filter.Value, b * filter.Value
		})
	case timeline.EffectContrast:
		return mapPixels(img, func(r, g, b float64) (float64, float64, float64) {
			adjust := func(c float64) float64 { return (c-128)*filter.Value + 128 }
			return adjust(r), adjust(g), adjust(b)
		})
	case timeline.EffectSaturation:
		return mapPixels(img, func(r, g, b float64) (float64, float64, float64) {
			gray := luma(r, g, b)
			mix := func(c float64) float64 { return gray + (c-gray)*filter.Value }
			return mix(r), mix(g), mix(b)
		})
	case timeline.EffectGrayscale:
		amount := clampUnit(filter.Value)
		return mapPixels(img, func(r, g, b float64) (float64, float64, float64) {
			gray := luma(r, g, b)
			mix := func(c float64) float64 { return c + (gray-c)*amount }
			return mix(r), mix(g), mix(b)
		})
	case timeline.EffectSepia:
		amount := clampUnit(filter.Value)
		return mapPixels(img, func(r, g, b float64) (float64, float64, float64) {
			sr := 0.393*r + 0.769*g + 0.189*b
			sg := 0.349*r + 0.686*g + 0.168*b
			sb := 0.272*r + 0.534*g + 0.131*b
			return r + (sr-r)*amount, g + (sg-g)*amount, b + (sb-b)*amount
		})
	case timeline.EffectHueRotate:
		return hueRotate(img, filter.Value)
	case timeline.EffectInvert:
		amount := clampUnit(filter.Value)
		return mapPixels(img, func(r, g, b float64) (float64, float64, float64) {
			mix := func(c float64) float64 { return c + (255-2*c)*amount }
			return mix(r), mix(g), mix(b)
		})
	case timeline.EffectBlur:
		return boxBlur(img, int(filter.Value))
	default:
		return img
	}
}

func mapPixels(img *image.RGBA, fn func(r, g, b float64) (float64, float64, float64)) *image.RGBA {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pixel := img.RGBAAt(x, y)
			r, g, b := fn(float64(pixel.R), float64(pixel.G), float64(pixel.B))
			pixel.R = uint8(clamp255(r))
			pixel.G = uint8(clamp255(g))
			pixel.B = uint8(clamp255(b))
			img.SetRGBA(x, y, pixel)
		}
	}
	return img
}

func luma(r, g, b float64) float64 {
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// hueRotate applies the standard luminance-preserving hue rotation matrix.
func hueRotate(img *image.RGBA, degrees float64) *image.RGBA {
	theta := degrees * math.Pi / 180
	cos := math.Cos(theta)
	sin := math.Sin(theta)
	return mapPixels(img, func(r, g, b float64) (float64, float64, float64) {
		nr := (0.213+cos*0.787-sin*0.213)*r + (0.715-cos*0.715-sin*0.715)*g + (0.072-cos*0.072+sin*0.928)*b
		ng := (0.213-cos*0.213+sin*0.143)*r + (0.715+cos*0.285+sin*0.140)*g + (0.072-cos*0.072-sin*0.283)*b
		nb := (0.213-cos*0.213-sin*0.787)*r + (0.715-cos*0.715+sin*0.715)*g + (0.072+cos*0.928+sin*0.072)*b
		return nr, ng, nb
	})
}

// boxBlur runs a separable two-pass box blur with the given pixel radius.
func boxBlur(img *image.RGBA, radius int) *image.RGBA {
	if radius <= 0 {
		return img
	}
	bounds := img.Bounds()
	horizontal := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			horizontal.SetRGBA(x, y, averageRow(img, x, y, radius))
		}
	}
	out := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.SetRGBA(x, y, averageColumn(horizontal, x, y, radius))
		}
	}
	return out
}

func averageRow(img *image.RGBA, x, y, radius int) color.RGBA {
	return averageSpan(img, x, y, radius, true)
}

func averageColumn(img *image.RGBA, x, y, radius int) color.RGBA {
	return averageSpan(img, x, y, radius, false)
}

func averageSpan(img *image.RGBA, x, y, radius int, horizontal bool) color.RGBA {
	bounds := img.Bounds()
	var r, g, b, a, n float64
	for offset := -radius; offset <= radius; offset++ {
		sx, sy := x, y
		if horizontal {
			sx += offset
		} else {
			sy += offset
		}
		if sx < bounds.Min.X || sx >= bounds.Max.X || sy < bounds.Min.Y || sy >= bounds.Max.Y {
			continue
		}
		pixel := img.RGBAAt(sx, sy)
		r += float64(pixel.R)
		g += float64(pixel.G)
		b += float64(pixel.B)
		a += float64(pixel.A)
		n++
	}
	if n == 0 {
		return img.RGBAAt(x, y)
	}
	return color.RGBA{
		R: uint8(math.Round(r / n)),
		G: uint8(math.Round(g / n)),
		B: uint8(math.Round(b / n)),
		A: uint8(math.Round(a / n)),
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
