// Package render defines the drawable surface collaborator the compositor
// writes to, plus a software implementation backed by image.RGBA for tests,
// frame dumps, and the export path.
package render

import (
	"image"

	"splice/internal/timeline"
)

// Placement positions a drawn source on the surface. X/Y offset from the
// frame center; rotation is in degrees; anchor fractions select the pivot
// within the source.
type Placement struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	AnchorX  float64
	AnchorY  float64
}

// IdentityPlacement centers the source unscaled.
func IdentityPlacement() Placement {
	return Placement{ScaleX: 1, ScaleY: 1, AnchorX: 0.5, AnchorY: 0.5}
}

// Filter is one image filter application. Filters compose in slice order.
type Filter struct {
	Type  timeline.EffectType
	Value float64
}

// DrawOptions carries the per-draw state: global alpha, the filter chain,
// and the placement transform.
type DrawOptions struct {
	Alpha     float64
	Filters   []Filter
	Placement Placement
}

// TextSpec describes synthesized text geometry for clips without assets.
type TextSpec struct {
	Content   string
	Color     string
	Alignment string
	Shadow    bool
}

// Surface is the abstract 2D drawable target of fixed size the compositor
// renders every tick. Implementations must treat each call as immediate; the
// engine never interrupts a frame mid-render.
type Surface interface {
	// Size returns the fixed surface dimensions in pixels.
	Size() (width, height int)
	// Clear fills the surface with opaque black.
	Clear()
	// DrawImage composites a source image with the given options.
	DrawImage(src image.Image, opts DrawOptions)
	// DrawText rasterizes and composites synthesized text.
	DrawText(spec TextSpec, opts DrawOptions)
}
