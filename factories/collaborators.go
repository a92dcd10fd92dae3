package factories

import (
	"errors"

	"radiohost/core"
	"radiohost/pipeline"
	elevenlabs "radiohost/services/elevenlabs/tts"
	openaillm "radiohost/services/openai/llm"
	"radiohost/services/wikipedia"
)

// BuildCollaborators constructs the full collaborator set for one
// pipeline run from the settings snapshot and API keys. Model and voice
// parameters come from the run config so the services and the pipeline
// can never disagree about them.
func BuildCollaborators(settings SettingsConfig, keys APIKeys, logger *core.Logger) (pipeline.Collaborators, error) {
	if keys.OpenAI == "" {
		return pipeline.Collaborators{}, errors.New("factories: OPENAI_API_KEY is required")
	}
	if keys.ElevenLabs == "" {
		return pipeline.Collaborators{}, errors.New("factories: ELEVENLABS_API_KEY is required")
	}
	if logger == nil {
		logger = core.GetLogger()
	}

	run := settings.Run

	llmService := openaillm.NewOpenAILLMService(openaillm.Config{
		APIKey:      keys.OpenAI,
		BaseURL:     settings.LLMBaseURL,
		Model:       run.Model,
		MaxTokens:   run.MaxTokens,
		Temperature: run.Temperature,
	}, logger)

	ttsService := elevenlabs.NewElevenLabsTTS(elevenlabs.ElevenLabsTTSConfig{
		APIKey:          keys.ElevenLabs,
		BaseURL:         settings.TTSBaseURL,
		ModelID:         run.TTSModel,
		Stability:       run.Stability,
		SimilarityBoost: run.SimilarityBoost,
		Style:           run.Style,
		SampleRate:      run.SampleRate,
		MaxAudioBytes:   run.MaxSegmentBytes,
	}, logger)

	return pipeline.Collaborators{
		Encyclopedia: wikipedia.NewClient(settings.Wikipedia, logger),
		LLM:          llmService,
		TTS:          ttsService,
		Sink:         pipeline.FileSink{},
	}, nil
}
