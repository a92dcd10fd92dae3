package factories

import (
	"encoding/json"
	"fmt"
	"os"

	"radiohost/core"
	"radiohost/services/wikipedia"
)

// SettingsConfig is the top-level config loaded from settings.json.
// Fields left unset in the file keep their defaults, so a minimal file
// (or none at all) is a valid configuration.
type SettingsConfig struct {
	// Run is the per-run pipeline configuration snapshot.
	Run core.RunConfig `json:"run"`
	// Wikipedia configures the encyclopedia collaborator.
	Wikipedia wikipedia.Config `json:"wikipedia"`
	// LLMBaseURL overrides the OpenAI endpoint, for OpenAI-compatible providers.
	LLMBaseURL string `json:"llm_base_url,omitempty"`
	// TTSBaseURL overrides the ElevenLabs WebSocket endpoint.
	TTSBaseURL string `json:"tts_base_url,omitempty"`
}

// APIKeys carries collaborator credentials, read from the environment in
// main and injected here so settings files never contain secrets.
type APIKeys struct {
	OpenAI     string
	ElevenLabs string
}

// DefaultSettingsConfig returns a SettingsConfig pre-filled with run defaults.
func DefaultSettingsConfig() SettingsConfig {
	return SettingsConfig{
		Run: core.DefaultRunConfig(),
	}
}

// SettingsConfigFromJSON parses a JSON blob into a SettingsConfig.
// Parsing starts from the defaults, so absent keys keep their default
// values.
func SettingsConfigFromJSON(data []byte) (SettingsConfig, error) {
	cfg := DefaultSettingsConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultSettingsConfig(), fmt.Errorf("settings: %w", err)
	}
	return cfg, nil
}

// SettingsConfigFromFile reads and parses a SettingsConfig from a JSON file.
func SettingsConfigFromFile(path string) (SettingsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultSettingsConfig(), fmt.Errorf("settings: read %q: %w", path, err)
	}
	return SettingsConfigFromJSON(data)
}
