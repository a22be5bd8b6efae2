package timeline

import "github.com/google/uuid"

// AddEffect appends an enabled effect to a clip's filter chain. Effects apply
// in append order; nothing reorders them later.
func (m *Model) AddEffect(clipID string, effectType EffectType, value float64) (*Effect, bool) {
	clip, track, ok := m.FindClip(clipID)
	if !ok || track.Locked {
		return nil, false
	}
	effect := &Effect{
		ID:      uuid.NewString(),
		Type:    effectType,
		Value:   value,
		Enabled: true,
	}
	clip.Effects = append(clip.Effects, effect)
	return effect, true
}

// EffectPatch carries optional field updates for UpdateEffect.
type EffectPatch struct {
	Value   *float64
	Enabled *bool
}

// UpdateEffect modifies an effect in place, preserving its chain position.
func (m *Model) UpdateEffect(clipID, effectID string, patch EffectPatch) bool {
	clip, track, ok := m.FindClip(clipID)
	if !ok || track.Locked {
		return false
	}
	for _, effect := range clip.Effects {
		if effect.ID == effectID {
			if patch.Value != nil {
				effect.Value = *patch.Value
			}
			if patch.Enabled != nil {
				effect.Enabled = *patch.Enabled
			}
			return true
		}
	}
	return false
}

// RemoveEffect deletes an effect from a clip's chain.
func (m *Model) RemoveEffect(clipID, effectID string) bool {
	clip, track, ok := m.FindClip(clipID)
	if !ok || track.Locked {
		return false
	}
	for i, effect := range clip.Effects {
		if effect.ID == effectID {
			clip.Effects = append(clip.Effects[:i], clip.Effects[i+1:]...)
			return true
		}
	}
	return false
}

// AddKeyframe appends a keyframe for a clip property. Time is clip-relative
// and must not be negative. Duplicates at the same time are permitted; list
// order resolves them (last write wins).
func (m *Model) AddKeyframe(clipID string, property Property, timeMs int64, value float64, easing Easing) (*Keyframe, bool) {
	clip, track, ok := m.FindClip(clipID)
	if !ok || track.Locked || timeMs < 0 {
		return nil, false
	}
	if easing == "" {
		easing = EaseLinear
	}
	keyframe := &Keyframe{
		ID:       uuid.NewString(),
		Property: property,
		Time:     timeMs,
		Value:    value,
		Easing:   easing,
	}
	clip.Keyframes = append(clip.Keyframes, keyframe)
	return keyframe, true
}

// KeyframePatch carries optional field updates for UpdateKeyframe.
type KeyframePatch struct {
	Time   *int64
	Value  *float64
	Easing *Easing
}

// UpdateKeyframe modifies a keyframe in place.
func (m *Model) UpdateKeyframe(clipID, keyframeID string, patch KeyframePatch) bool {
	clip, track, ok := m.FindClip(clipID)
	if !ok || track.Locked {
		return false
	}
	for _, keyframe := range clip.Keyframes {
		if keyframe.ID == keyframeID {
			if patch.Time != nil && *patch.Time >= 0 {
				keyframe.Time = *patch.Time
			}
			if patch.Value != nil {
				keyframe.Value = *patch.Value
			}
			if patch.Easing != nil {
				keyframe.Easing = *patch.Easing
			}
			return true
		}
	}
	return false
}

// RemoveKeyframe deletes a keyframe from a clip.
func (m *Model) RemoveKeyframe(clipID, keyframeID string) bool {
	clip, track, ok := m.FindClip(clipID)
	if !ok || track.Locked {
		return false
	}
	for i, keyframe := range clip.Keyframes {
		if keyframe.ID == keyframeID {
			clip.Keyframes = append(clip.Keyframes[:i], clip.Keyframes[i+1:]...)
			return true
		}
	}
	return false
}
