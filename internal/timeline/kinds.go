package timeline

import "strings"

// TrackKind categorizes a track's media lane.
type TrackKind string

const (
	TrackVideo TrackKind = "video"
	TrackAudio TrackKind = "audio"
	TrackText  TrackKind = "text"
	TrackImage TrackKind = "image"
)

var allTrackKinds = []TrackKind{TrackVideo, TrackAudio, TrackText, TrackImage}

// AllTrackKinds returns the ordered list of known track kinds.
func AllTrackKinds() []TrackKind {
	cp := make([]TrackKind, len(allTrackKinds))
	copy(cp, allTrackKinds)
	return cp
}

// ParseTrackKind converts a string into a known TrackKind.
func ParseTrackKind(value string) (TrackKind, bool) {
	normalized := TrackKind(strings.ToLower(strings.TrimSpace(value)))
	for _, kind := range allTrackKinds {
		if kind == normalized {
			return kind, true
		}
	}
	return "", false
}

// Visual reports whether clips on this kind of track produce visual output.
func (k TrackKind) Visual() bool {
	switch k {
	case TrackVideo, TrackText, TrackImage:
		return true
	default:
		return false
	}
}

// EffectType identifies a composable image filter.
type EffectType string

const (
	EffectBrightness EffectType = "brightness"
	EffectContrast   EffectType = "contrast"
	EffectSaturation EffectType = "saturation"
	EffectBlur       EffectType = "blur"
	EffectGrayscale  EffectType = "grayscale"
	EffectSepia      EffectType = "sepia"
	EffectHueRotate  EffectType = "hue-rotate"
	EffectInvert     EffectType = "invert"
)

var allEffectTypes = []EffectType{
	EffectBrightness,
	EffectContrast,
	EffectSaturation,
	EffectBlur,
	EffectGrayscale,
	EffectSepia,
	EffectHueRotate,
	EffectInvert,
}

// AllEffectTypes returns the ordered list of known effect types.
func AllEffectTypes() []EffectType {
	cp := make([]EffectType, len(allEffectTypes))
	copy(cp, allEffectTypes)
	return cp
}

// ParseEffectType converts a string into a known EffectType.
func ParseEffectType(value string) (EffectType, bool) {
	normalized := EffectType(strings.ToLower(strings.TrimSpace(value)))
	for _, typ := range allEffectTypes {
		if typ == normalized {
			return typ, true
		}
	}
	return "", false
}

// Property identifies a keyframable clip property.
type Property string

const (
	PropOpacity  Property = "opacity"
	PropVolume   Property = "volume"
	PropX        Property = "x"
	PropY        Property = "y"
	PropScaleX   Property = "scaleX"
	PropScaleY   Property = "scaleY"
	PropRotation Property = "rotation"
)

var allProperties = []Property{
	PropOpacity,
	PropVolume,
	PropX,
	PropY,
	PropScaleX,
	PropScaleY,
	PropRotation,
}

// AllProperties returns the ordered list of keyframable properties.
func AllProperties() []Property {
	cp := make([]Property, len(allProperties))
	copy(cp, allProperties)
	return cp
}

// ParseProperty converts a string into a known Property.
func ParseProperty(value string) (Property, bool) {
	trimmed := strings.TrimSpace(value)
	for _, prop := range allProperties {
		if strings.EqualFold(string(prop), trimmed) {
			return prop, true
		}
	}
	return "", false
}

// Easing selects the interpolation curve applied between two keyframes.
type Easing string

const (
	EaseLinear Easing = "linear"
	EaseIn     Easing = "easeIn"
	EaseOut    Easing = "easeOut"
	EaseInOut  Easing = "easeInOut"
)

// ParseEasing converts a string into a known Easing, defaulting to linear.
func ParseEasing(value string) Easing {
	trimmed := strings.TrimSpace(value)
	for _, easing := range []Easing{EaseLinear, EaseIn, EaseOut, EaseInOut} {
		if strings.EqualFold(string(easing), trimmed) {
			return easing
		}
	}
	return EaseLinear
}

// ClipSide names a clip boundary for resize operations.
type ClipSide string

const (
	SideStart ClipSide = "start"
	SideEnd   ClipSide = "end"
)

// ParseClipSide converts a string into a known ClipSide.
func ParseClipSide(value string) (ClipSide, bool) {
	switch ClipSide(strings.ToLower(strings.TrimSpace(value))) {
	case SideStart:
		return SideStart, true
	case SideEnd:
		return SideEnd, true
	default:
		return "", false
	}
}
