package assemble

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
	"time"

	"radiohost/core"
	"radiohost/utils/audio"
)

func testConfig() core.RunConfig {
	cfg := core.DefaultRunConfig()
	cfg.SilenceMs = 220
	cfg.HeadroomDB = 1.5
	return cfg
}

// toneSegment builds a segment of the given duration filled with a
// constant sample value.
func toneSegment(turn int, durationMs int, amplitude int16, rate int) core.AudioSegment {
	frames := rate * durationMs / 1000
	data := make([]byte, frames*2)
	for i := 0; i < frames; i++ {
		binary.LittleEndian.PutUint16(data[i*2:i*2+2], uint16(amplitude))
	}
	return core.AudioSegment{
		Speaker:    core.SpeakerA,
		Turn:       turn,
		Data:       data,
		SampleRate: rate,
		Channels:   1,
	}
}

func TestAssembleEmptyInput(t *testing.T) {
	_, err := Assemble(nil, testConfig(), nil)
	if !errors.Is(err, core.ErrNoSegments) {
		t.Fatalf("err = %v, want ErrNoSegments", err)
	}
}

func TestAssembleSilenceBetweenSegments(t *testing.T) {
	cfg := testConfig()
	rate := 44100

	segments := []core.AudioSegment{
		toneSegment(0, 1000, 1000, rate),
		toneSegment(1, 1000, 1000, rate),
		toneSegment(2, 1000, 1000, rate),
	}

	out, err := Assemble(segments, cfg, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	silenceFrames := rate * cfg.SilenceMs / 1000
	wantBytes := 3*rate*2 + 2*silenceFrames*2
	if len(out.Data) != wantBytes {
		t.Errorf("assembled length = %d, want %d", len(out.Data), wantBytes)
	}

	wantDur := 3*time.Second + 2*time.Duration(cfg.SilenceMs)*time.Millisecond
	if diff := out.Duration() - wantDur; diff < -time.Millisecond || diff > time.Millisecond {
		t.Errorf("duration = %v, want about %v", out.Duration(), wantDur)
	}

	if out.Segments != 3 {
		t.Errorf("Segments = %d, want 3", out.Segments)
	}

	// The gap between the first two segments must be pure silence.
	gapStart := rate * 2
	gap := out.Data[gapStart : gapStart+silenceFrames*2]
	if !bytes.Equal(gap, make([]byte, len(gap))) {
		t.Error("inter-segment gap contains non-silent samples")
	}
}

func TestAssembleSingleSegmentNoSilence(t *testing.T) {
	cfg := testConfig()
	seg := toneSegment(0, 500, 1000, 44100)

	out, err := Assemble([]core.AudioSegment{seg}, cfg, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(out.Data) != len(seg.Data) {
		t.Errorf("single segment length = %d, want %d", len(out.Data), len(seg.Data))
	}
}

func TestAssembleNormalizesToHeadroom(t *testing.T) {
	cfg := testConfig()

	segments := []core.AudioSegment{
		toneSegment(0, 100, 16000, 44100),
		toneSegment(1, 100, 4000, 44100),
	}

	out, err := Assemble(segments, cfg, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	peak := audio.PeakSample(out.Data)
	wantPeak := int(math.Round(32767 * math.Pow(10, -cfg.HeadroomDB/20)))
	if diff := peak - wantPeak; diff < -1 || diff > 1 {
		t.Errorf("normalized peak = %d, want about %d", peak, wantPeak)
	}
}

func TestAssembleRejectsFormatMismatch(t *testing.T) {
	cfg := testConfig()
	segments := []core.AudioSegment{
		toneSegment(0, 100, 1000, 44100),
		toneSegment(1, 100, 1000, 22050),
	}

	if _, err := Assemble(segments, cfg, nil); err == nil {
		t.Fatal("expected error for mismatched sample rates")
	}
}

func TestAssembleRejectsInvalidPCM(t *testing.T) {
	cfg := testConfig()
	seg := toneSegment(0, 100, 1000, 44100)
	seg.Data = seg.Data[:len(seg.Data)-1] // odd length

	if _, err := Assemble([]core.AudioSegment{seg}, cfg, nil); err == nil {
		t.Fatal("expected error for odd-length PCM")
	}
}

func TestEncodeWav(t *testing.T) {
	cfg := testConfig()
	cfg.OutputFormat = "wav"

	out, err := Assemble([]core.AudioSegment{toneSegment(0, 100, 1000, 44100)}, cfg, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	encoded, err := Encode(out, cfg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.HasPrefix(encoded, []byte("RIFF")) {
		t.Error("wav output missing RIFF header")
	}

	stripped, err := audio.StripWAVHeaderIfPresent(encoded)
	if err != nil {
		t.Fatalf("StripWAVHeaderIfPresent: %v", err)
	}
	if !bytes.Equal(stripped, out.Data) {
		t.Error("wav payload does not match assembled PCM")
	}
}

func TestEncodeULaw(t *testing.T) {
	cfg := testConfig()
	cfg.OutputFormat = "ulaw"

	out, err := Assemble([]core.AudioSegment{toneSegment(0, 100, 1000, 44100)}, cfg, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	encoded, err := Encode(out, cfg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) != len(out.Data)/2 {
		t.Errorf("ulaw length = %d, want %d", len(encoded), len(out.Data)/2)
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	cfg := testConfig()
	cfg.OutputFormat = "ogg"

	out := core.AssembledAudio{Data: []byte{0, 0}, SampleRate: 44100, Channels: 1}
	if _, err := Encode(out, cfg); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestEncodeEmptyAudio(t *testing.T) {
	if _, err := Encode(core.AssembledAudio{}, testConfig()); !errors.Is(err, core.ErrNoSegments) {
		t.Fatal("expected ErrNoSegments for empty audio")
	}
}
