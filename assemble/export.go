package assemble

import (
	"bytes"
	"fmt"

	"radiohost/core"
	"radiohost/utils/audio"

	"github.com/viert/go-lame"
)

// Encode serializes assembled audio into the configured output format.
// MP3 is the consumer default; WAV keeps the samples intact for editing;
// µ-law serves telephony playout sinks; pcm writes the raw buffer as is.
func Encode(a core.AssembledAudio, cfg core.RunConfig) ([]byte, error) {
	if len(a.Data) == 0 {
		return nil, fmt.Errorf("assemble: %w", core.ErrNoSegments)
	}

	format, err := core.ParseAudioEncodingFormat(cfg.OutputFormat)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}

	switch format {
	case core.MP3:
		return encodeMP3(a, cfg.BitrateKbps)
	case core.WAV:
		return audio.PCMBytesToWavBytes(a.Data, a.Channels, a.SampleRate)
	case core.ULAW:
		return audio.PCMBytesToULaw(a.Data)
	default:
		return a.Data, nil
	}
}

// encodeMP3 runs the PCM through LAME at the given bitrate.
func encodeMP3(a core.AssembledAudio, bitrateKbps int) ([]byte, error) {
	if bitrateKbps <= 0 {
		bitrateKbps = 192
	}

	var buf bytes.Buffer
	enc := lame.NewEncoder(&buf)

	if err := enc.SetNumChannels(a.Channels); err != nil {
		return nil, fmt.Errorf("assemble: mp3 channels: %w", err)
	}
	if err := enc.SetInSamplerate(a.SampleRate); err != nil {
		return nil, fmt.Errorf("assemble: mp3 sample rate: %w", err)
	}
	if err := enc.SetBrate(bitrateKbps); err != nil {
		return nil, fmt.Errorf("assemble: mp3 bitrate: %w", err)
	}

	if _, err := enc.Write(a.Data); err != nil {
		return nil, fmt.Errorf("assemble: mp3 encode: %w", err)
	}
	// Close flushes the final MP3 frames into the buffer.
	enc.Close()

	return buf.Bytes(), nil
}
