package timeline

import "sort"

// ValueAt computes a clip property's value at a clip-relative time from its
// keyframes. With no keyframes for the property it returns the static value.
// Outside the keyframed range the nearest keyframe's value is returned
// unchanged (clamp, no extrapolation). Between two keyframes the destination
// keyframe's easing shapes the blend. Pure and clock-free.
func ValueAt(clip *Clip, property Property, relativeMs int64) float64 {
	keyframes := KeyframesFor(clip, property)
	if len(keyframes) == 0 {
		return staticValue(clip, property)
	}
	if relativeMs <= keyframes[0].Time {
		return keyframes[0].Value
	}
	last := keyframes[len(keyframes)-1]
	if relativeMs >= last.Time {
		return last.Value
	}
	for i := 1; i < len(keyframes); i++ {
		k1, k2 := keyframes[i-1], keyframes[i]
		if relativeMs > k2.Time {
			continue
		}
		if k2.Time == k1.Time {
			// Duplicate times resolve by list order: the later sample wins.
			return k2.Value
		}
		progress := float64(relativeMs-k1.Time) / float64(k2.Time-k1.Time)
		eased := ApplyEasing(k2.Easing, progress)
		return k1.Value + (k2.Value-k1.Value)*eased
	}
	return last.Value
}

// KeyframesFor returns the clip's keyframes for one property ordered by time.
// The sort is stable so duplicates at the same time keep list order.
func KeyframesFor(clip *Clip, property Property) []*Keyframe {
	var matched []*Keyframe
	for _, keyframe := range clip.Keyframes {
		if keyframe.Property == property {
			matched = append(matched, keyframe)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Time < matched[j].Time
	})
	return matched
}

// ApplyEasing maps linear progress in [0,1] through the named curve.
func ApplyEasing(easing Easing, t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	switch easing {
	case EaseIn:
		return t * t
	case EaseOut:
		return 1 - (1-t)*(1-t)
	case EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return 1 - 2*(1-t)*(1-t)
	default:
		return t
	}
}

func staticValue(clip *Clip, property Property) float64 {
	switch property {
	case PropOpacity:
		return clip.Opacity
	case PropVolume:
		return clip.Volume
	case PropX:
		return clip.Transform.X
	case PropY:
		return clip.Transform.Y
	case PropScaleX:
		return clip.Transform.ScaleX
	case PropScaleY:
		return clip.Transform.ScaleY
	case PropRotation:
		return clip.Transform.Rotation
	default:
		return 0
	}
}
