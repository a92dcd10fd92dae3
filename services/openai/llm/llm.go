package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"radiohost/core"

	"github.com/sashabaranov/go-openai"
)

// Config holds the configuration for the OpenAI service
type Config struct {
	APIKey      string  `json:"api_key"`
	BaseURL     string  `json:"base_url"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float32 `json:"temperature"`
}

// OpenAILLMService produces chat completions through the OpenAI API.
// Any OpenAI-compatible provider works by overriding BaseURL.
type OpenAILLMService struct {
	client *openai.Client
	config Config
	logger *core.Logger
}

// NewOpenAILLMService creates a new instance of OpenAILLMService
func NewOpenAILLMService(config Config, logger *core.Logger) *OpenAILLMService {
	if config.Model == "" {
		config.Model = "gpt-4o-mini"
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 1000
	}
	if logger == nil {
		logger = core.GetLogger()
	}

	clientCfg := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientCfg.BaseURL = config.BaseURL
	}

	return &OpenAILLMService{
		client: openai.NewClientWithConfig(clientCfg),
		config: config,
		logger: logger,
	}
}

// Complete runs a single blocking chat completion and returns the
// trimmed response text. Rate-limit and server-side failures are marked
// transient so callers can retry within their budget.
func (s *OpenAILLMService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if s.config.APIKey == "" {
		return "", errors.New("OpenAI API key is required")
	}

	req := openai.ChatCompletionRequest{
		Model:       s.config.Model,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		if isTransient(err) {
			return "", fmt.Errorf("openai: %w: %v", core.ErrCollaboratorUnavailable, err)
		}
		return "", fmt.Errorf("openai: completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("openai: completion returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	s.logger.Info("completion received", "model", s.config.Model, "chars", len(content))
	return content, nil
}

// isTransient reports whether the error is worth retrying: rate limits,
// server errors, or transport-level failures without an API status.
func isTransient(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= 500
	}
	// No structured API error means the request never got a response.
	return true
}
