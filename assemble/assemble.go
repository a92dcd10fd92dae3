// Package assemble turns ordered audio segments into the final
// normalized artifact.
package assemble

import (
	"fmt"

	"radiohost/core"
	"radiohost/utils/audio"
)

// Assemble concatenates the segments in sequence order with a fixed
// silence between every consecutive pair (none before the first or after
// the last), then normalizes loudness so the peak sits cfg.HeadroomDB
// below full scale. Segments must agree on sample rate and channel
// count; the synthesizer guarantees that in practice.
func Assemble(segments []core.AudioSegment, cfg core.RunConfig, logger *core.Logger) (core.AssembledAudio, error) {
	if logger == nil {
		logger = core.GetLogger()
	}
	if len(segments) == 0 {
		return core.AssembledAudio{}, fmt.Errorf("assemble: %w", core.ErrNoSegments)
	}

	sampleRate := segments[0].SampleRate
	channels := segments[0].Channels

	total := 0
	for i, seg := range segments {
		if err := audio.ValidatePCMData(seg.Data, seg.Channels); err != nil {
			return core.AssembledAudio{}, fmt.Errorf("assemble: segment %d: %w", i, err)
		}
		if seg.SampleRate != sampleRate || seg.Channels != channels {
			return core.AssembledAudio{}, fmt.Errorf("assemble: segment %d format mismatch: %dHz/%dch vs %dHz/%dch",
				i, seg.SampleRate, seg.Channels, sampleRate, channels)
		}
		total += len(seg.Data)
	}

	silence := audio.SilencePCM(cfg.SilenceMs, channels, sampleRate)
	total += len(silence) * (len(segments) - 1)

	data := make([]byte, 0, total)
	for i, seg := range segments {
		if i > 0 {
			data = append(data, silence...)
		}
		data = append(data, seg.Data...)
	}

	peak := audio.PeakSample(data)
	gain := audio.HeadroomGain(peak, cfg.HeadroomDB)
	audio.ApplyGain(data, gain)

	out := core.AssembledAudio{
		Data:       data,
		SampleRate: sampleRate,
		Channels:   channels,
		Segments:   len(segments),
	}

	logger.Info("audio assembled",
		"segments", len(segments),
		"silences", len(segments)-1,
		"duration_s", fmt.Sprintf("%.2f", out.Duration().Seconds()),
		"gain", fmt.Sprintf("%.3f", gain),
	)
	return out, nil
}
