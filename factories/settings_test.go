package factories

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSettingsConfigFromJSONKeepsDefaults(t *testing.T) {
	blob := []byte(`{
		"run": {
			"speaker_a_name": "Vijay",
			"speaker_b_name": "Neha",
			"output_format": "wav"
		},
		"wikipedia": {
			"language": "hi",
			"timeout_ms": 5000
		}
	}`)

	cfg, err := SettingsConfigFromJSON(blob)
	if err != nil {
		t.Fatalf("SettingsConfigFromJSON: %v", err)
	}

	if cfg.Run.SpeakerAName != "Vijay" || cfg.Run.SpeakerBName != "Neha" {
		t.Errorf("speaker names = %q/%q", cfg.Run.SpeakerAName, cfg.Run.SpeakerBName)
	}
	if cfg.Run.OutputFormat != "wav" {
		t.Errorf("OutputFormat = %q, want wav", cfg.Run.OutputFormat)
	}
	if cfg.Wikipedia.Language != "hi" {
		t.Errorf("Language = %q, want hi", cfg.Wikipedia.Language)
	}
	if cfg.Wikipedia.TimeoutMs != 5000 {
		t.Errorf("TimeoutMs = %d, want 5000", cfg.Wikipedia.TimeoutMs)
	}

	// Untouched fields keep their defaults.
	if cfg.Run.SourceMaxChars != 2500 {
		t.Errorf("SourceMaxChars = %d, want 2500", cfg.Run.SourceMaxChars)
	}
	if cfg.Run.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q", cfg.Run.Model)
	}
	if cfg.Run.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", cfg.Run.SampleRate)
	}
	if cfg.Run.RetryAttempts != 2 {
		t.Errorf("RetryAttempts = %d, want 2", cfg.Run.RetryAttempts)
	}
}

func TestSettingsConfigFromJSONInvalid(t *testing.T) {
	if _, err := SettingsConfigFromJSON([]byte(`{"run": [1,2]}`)); err == nil {
		t.Fatal("expected error for malformed settings")
	}
}

func TestSettingsConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"run": {"silence_ms": 300}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := SettingsConfigFromFile(path)
	if err != nil {
		t.Fatalf("SettingsConfigFromFile: %v", err)
	}
	if cfg.Run.SilenceMs != 300 {
		t.Errorf("SilenceMs = %d, want 300", cfg.Run.SilenceMs)
	}
	if cfg.Run.HeadroomDB != 1.5 {
		t.Errorf("HeadroomDB = %v, want 1.5", cfg.Run.HeadroomDB)
	}
}

func TestSettingsConfigFromFileMissing(t *testing.T) {
	if _, err := SettingsConfigFromFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestBuildCollaboratorsRequiresKeys(t *testing.T) {
	settings := DefaultSettingsConfig()

	if _, err := BuildCollaborators(settings, APIKeys{}, nil); err == nil {
		t.Error("expected error with no API keys")
	}
	if _, err := BuildCollaborators(settings, APIKeys{OpenAI: "sk-test"}, nil); err == nil {
		t.Error("expected error with missing ElevenLabs key")
	}

	c, err := BuildCollaborators(settings, APIKeys{OpenAI: "sk-test", ElevenLabs: "el-test"}, nil)
	if err != nil {
		t.Fatalf("BuildCollaborators: %v", err)
	}
	if c.Encyclopedia == nil || c.LLM == nil || c.TTS == nil || c.Sink == nil {
		t.Error("collaborator set is incomplete")
	}
}
