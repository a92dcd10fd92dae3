package core

import (
	"fmt"
	"strings"
	"time"
)

type AudioEncodingFormat int

const (
	PCM  AudioEncodingFormat = iota // Pulse-code modulation, 16-bit little endian.
	ULAW                            // µ-law encoding, ITU-T G.711.
	MP3                             // MPEG-1 Audio Layer III.
	WAV                             // RIFF/WAVE container around PCM.
)

func (f AudioEncodingFormat) String() string {
	switch f {
	case PCM:
		return "pcm"
	case ULAW:
		return "ulaw"
	case MP3:
		return "mp3"
	case WAV:
		return "wav"
	default:
		return "unknown"
	}
}

// ParseAudioEncodingFormat maps a config value to an encoding format.
// The empty string means the MP3 default.
func ParseAudioEncodingFormat(s string) (AudioEncodingFormat, error) {
	switch strings.ToLower(s) {
	case "", "mp3":
		return MP3, nil
	case "wav":
		return WAV, nil
	case "ulaw":
		return ULAW, nil
	case "pcm":
		return PCM, nil
	default:
		return MP3, fmt.Errorf("unsupported output format %q", s)
	}
}

// AudioSegment is the synthesized audio for exactly one dialogue turn.
type AudioSegment struct {
	Speaker    Speaker
	Turn       int    // index of the originating turn in the parsed script
	Data       []byte // raw 16-bit LE PCM
	SampleRate int
	Channels   int
}

// Duration returns the playback length of the segment.
func (s *AudioSegment) Duration() time.Duration {
	if s.SampleRate == 0 || s.Channels == 0 {
		return 0
	}
	frames := len(s.Data) / (2 * s.Channels)
	return time.Duration(float64(frames) / float64(s.SampleRate) * float64(time.Second))
}

// AssembledAudio is the final ordered concatenation of segments and
// inter-turn silence, after loudness normalization. Still raw PCM; the
// exporter encodes it into the configured output format.
type AssembledAudio struct {
	Data       []byte
	SampleRate int
	Channels   int
	Segments   int // number of speech segments that went in
}

// Duration returns the playback length of the assembled audio.
func (a *AssembledAudio) Duration() time.Duration {
	if a.SampleRate == 0 || a.Channels == 0 {
		return 0
	}
	frames := len(a.Data) / (2 * a.Channels)
	return time.Duration(float64(frames) / float64(a.SampleRate) * float64(time.Second))
}
