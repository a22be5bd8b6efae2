package render

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DrawText rasterizes the text into an offscreen image with the built-in
// face, then composites it through the regular image path so alpha, filters,
// and transform apply uniformly. Alignment shifts the rasterized block's
// anchor; shadow draws a black offset copy underneath.
func (s *SoftwareSurface) DrawText(spec TextSpec, opts DrawOptions) {
	content := spec.Content
	if strings.TrimSpace(content) == "" {
		return
	}
	face := basicfont.Face7x13
	lines := strings.Split(content, "\n")

	maxWidth := 0
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > maxWidth {
			maxWidth = w
		}
	}
	lineHeight := face.Metrics().Height.Ceil()
	blockHeight := lineHeight * len(lines)
	if maxWidth == 0 || blockHeight == 0 {
		return
	}

	const shadowOffset = 2
	pad := 0
	if spec.Shadow {
		pad = shadowOffset
	}
	block := image.NewRGBA(image.Rect(0, 0, maxWidth+pad, blockHeight+pad))
	fill := ParseHexColor(spec.Color)

	drawLines := func(c color.Color, dx, dy int) {
		drawer := font.Drawer{
			Dst:  block,
			Src:  image.NewUniform(c),
			Face: face,
		}
		ascent := face.Metrics().Ascent.Ceil()
		for i, line := range lines {
			x := 0
			switch strings.ToLower(spec.Alignment) {
			case "center":
				x = (maxWidth - font.MeasureString(face, line).Ceil()) / 2
			case "right":
				x = maxWidth - font.MeasureString(face, line).Ceil()
			}
			drawer.Dot = fixed.P(x+dx, ascent+i*lineHeight+dy)
			drawer.DrawString(line)
		}
	}

	if spec.Shadow {
		drawLines(color.Black, shadowOffset, shadowOffset)
	}
	drawLines(fill, 0, 0)

	s.DrawImage(block, opts)
}

// ParseHexColor reads #rgb or #rrggbb, defaulting to white on bad input.
func ParseHexColor(value string) color.RGBA {
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "#")
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	hexNibble := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		default:
			return 0, false
		}
	}
	byteAt := func(i int) (uint8, bool) {
		hi, ok1 := hexNibble(trimmed[i])
		lo, ok2 := hexNibble(trimmed[i+1])
		return hi<<4 | lo, ok1 && ok2
	}
	switch len(trimmed) {
	case 3:
		r, ok1 := hexNibble(trimmed[0])
		g, ok2 := hexNibble(trimmed[1])
		b, ok3 := hexNibble(trimmed[2])
		if !ok1 || !ok2 || !ok3 {
			return white
		}
		return color.RGBA{R: r * 17, G: g * 17, B: b * 17, A: 255}
	case 6:
		r, ok1 := byteAt(0)
		g, ok2 := byteAt(2)
		b, ok3 := byteAt(4)
		if !ok1 || !ok2 || !ok3 {
			return white
		}
		return color.RGBA{R: r, G: g, B: b, A: 255}
	default:
		return white
	}
}
