package mixer

import (
	"log/slog"

	"splice/internal/assets"
	"splice/internal/logging"
	"splice/internal/services"
	"splice/internal/timeline"
)

// MixdownOptions configures an offline render of the timeline's audio.
type MixdownOptions struct {
	SampleRate int
	Channels   int
	// DurationMs bounds the output; zero derives it from the clips.
	DurationMs int64
}

// Mixdown renders the timeline's audio to a single interleaved float32
// buffer. Clips are accumulated additively with their gain applied per
// sample; the result is peak-normalized only when it clips. Buffers whose
// sample rate or channel count does not match the target are skipped with a
// warning, same as a not-ready asset during playback.
func Mixdown(tracks []*timeline.Track, provider assets.Provider, opts MixdownOptions, logger *slog.Logger) ([]float32, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if opts.SampleRate <= 0 || opts.Channels <= 0 {
		return nil, services.Wrap(services.ErrValidation, "mixer", "mixdown", "sample rate and channels must be positive", nil)
	}

	duration := opts.DurationMs
	if duration <= 0 {
		duration = audioDuration(tracks)
	}
	if duration <= 0 {
		return nil, nil
	}

	frames := int(duration * int64(opts.SampleRate) / 1000)
	out := make([]float32, frames*opts.Channels)

	for _, track := range sortedByOrder(tracks) {
		if track.Kind != timeline.TrackAudio && track.Kind != timeline.TrackVideo {
			continue
		}
		for _, clip := range track.Clips {
			if clip.AssetID == "" {
				continue
			}
			buffer, err := provider.Audio(clip.AssetID)
			if err != nil {
				if !services.Skippable(err) {
					logger.Warn("mixdown fetch failed",
						logging.String(logging.FieldClipID, clip.ID),
						logging.Error(err),
					)
				}
				continue
			}
			if buffer.SampleRate != opts.SampleRate || buffer.Channels != opts.Channels {
				logger.Warn("mixdown format mismatch",
					logging.String(logging.FieldClipID, clip.ID),
					logging.Int("sample_rate", buffer.SampleRate),
					logging.Int("channels", buffer.Channels),
				)
				continue
			}
			accumulateClip(out, clip, track, buffer, opts)
		}
	}

	normalizePeak(out)
	return out, nil
}

// accumulateClip adds the clip's source range into the output at its
// timeline position. Gain is sampled once per millisecond so keyframed
// volume ramps are audible without a per-sample interpolator pass.
func accumulateClip(out []float32, clip *timeline.Clip, track *timeline.Track, buffer *assets.AudioBuffer, opts MixdownOptions) {
	if track.Muted {
		return
	}
	channels := opts.Channels
	outFrames := len(out) / channels
	srcFrames := len(buffer.Samples) / channels

	startFrame := int(clip.Start * int64(opts.SampleRate) / 1000)
	sourceFrame := int(clip.SourceStart * int64(opts.SampleRate) / 1000)
	clipFrames := int(clip.Duration * int64(opts.SampleRate) / 1000)

	for frame := 0; frame < clipFrames; frame++ {
		dst := startFrame + frame
		src := sourceFrame + frame
		if dst >= outFrames || src >= srcFrames {
			break
		}
		relativeMs := int64(frame) * 1000 / int64(opts.SampleRate)
		gain := float32(timeline.ValueAt(clip, timeline.PropVolume, relativeMs))
		for ch := 0; ch < channels; ch++ {
			out[dst*channels+ch] += buffer.Samples[src*channels+ch] * gain
		}
	}
}

// normalizePeak scales the buffer down so the loudest sample sits at ±1.
// Quieter mixes are left untouched.
func normalizePeak(samples []float32) {
	var peak float32
	for _, s := range samples {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	if peak <= 1 {
		return
	}
	scale := 1 / peak
	for i := range samples {
		samples[i] *= scale
	}
}

func audioDuration(tracks []*timeline.Track) int64 {
	var max int64
	for _, track := range tracks {
		if track.Kind != timeline.TrackAudio && track.Kind != timeline.TrackVideo {
			continue
		}
		for _, clip := range track.Clips {
			if end := clip.End(); end > max {
				max = end
			}
		}
	}
	return max
}
