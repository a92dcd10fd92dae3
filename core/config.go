package core

// RunConfig is the immutable configuration snapshot for one pipeline run.
// It is built once (factories apply defaults and API keys) and passed by
// value into every stage; no stage mutates it.
type RunConfig struct {
	// Source text bounds
	SourceMaxChars int `json:"source_max_chars"`
	SourceMinChars int `json:"source_min_chars"`

	// Script targets
	WordsMin int `json:"words_min"`
	WordsMax int `json:"words_max"`
	TurnsMin int `json:"turns_min"`
	TurnsMax int `json:"turns_max"`

	// Speaker display names as they appear in the generated script
	SpeakerAName string `json:"speaker_a_name"`
	SpeakerBName string `json:"speaker_b_name"`

	// Language model parameters
	Model          string  `json:"model"`
	Temperature    float32 `json:"temperature"`
	MaxTokens      int     `json:"max_tokens"`
	RetryAttempts  int     `json:"retry_attempts"`
	ScriptMinChars int     `json:"script_min_chars"`

	// TTS parameters
	TTSModel        string  `json:"tts_model"`
	VoiceA          string  `json:"voice_a"`
	VoiceB          string  `json:"voice_b"`
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	SynthWorkers    int     `json:"synth_workers"`
	MaxSegmentBytes int     `json:"max_segment_bytes"`

	// Audio targets
	SampleRate   int     `json:"sample_rate"`
	SilenceMs    int     `json:"silence_ms"`
	HeadroomDB   float64 `json:"headroom_db"`
	BitrateKbps  int     `json:"bitrate_kbps"`
	OutputFormat string  `json:"output_format"` // "mp3", "wav", "ulaw" or "pcm"
	OutputPath   string  `json:"output_path"`
}

// DefaultRunConfig returns the config used when settings.json leaves a
// field unset. Values mirror the production defaults of the original
// radio host deployment.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		SourceMaxChars: 2500,
		SourceMinChars: 300,

		WordsMin: 260,
		WordsMax: 300,
		TurnsMin: 16,
		TurnsMax: 18,

		SpeakerAName: "A",
		SpeakerBName: "B",

		Model:          "gpt-4o-mini",
		Temperature:    0.9,
		MaxTokens:      1000,
		RetryAttempts:  2,
		ScriptMinChars: 600,

		TTSModel:        "eleven_multilingual_v2",
		VoiceA:          "pNInz6obpgDQGcFmaJgB", // Adam
		VoiceB:          "21m00Tcm4TlvDq8ikWAM", // Rachel
		Stability:       0.5,
		SimilarityBoost: 0.75,
		SynthWorkers:    1,
		MaxSegmentBytes: 16 << 20,

		SampleRate:   44100,
		SilenceMs:    220,
		HeadroomDB:   1.5,
		BitrateKbps:  192,
		OutputFormat: "mp3",
		OutputPath:   "synthetic_radio_host.mp3",
	}
}

// SpeakerName returns the configured display name for a speaker.
func (c RunConfig) SpeakerName(s Speaker) string {
	if s == SpeakerB {
		return c.SpeakerBName
	}
	return c.SpeakerAName
}

// Voice returns the configured voice identity for a speaker. An empty
// string means the speaker is outside the fixed two-host set.
func (c RunConfig) Voice(s Speaker) string {
	switch s {
	case SpeakerA:
		return c.VoiceA
	case SpeakerB:
		return c.VoiceB
	default:
		return ""
	}
}
