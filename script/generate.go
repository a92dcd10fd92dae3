package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"radiohost/core"
)

// LLM is the language-model collaborator. The OpenAI service is the
// production implementation.
type LLM interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// errShortScript marks attempts that returned a script under the length
// threshold. It consumes a retry attempt like any transient failure.
var errShortScript = errors.New("script under length threshold")

// Generate calls the language model with the prompt and returns the raw
// script text. Transient collaborator failures and under-threshold
// responses each consume one attempt of cfg.RetryAttempts; the model
// returning a truncated script is the dominant failure mode and is
// cheaper to catch here than after the per-turn TTS calls.
func Generate(ctx context.Context, llm LLM, prompt string, cfg core.RunConfig, logger *core.Logger) (string, error) {
	if logger == nil {
		logger = core.GetLogger()
	}

	var raw string
	attemptsUsed := 0
	err := withAttempts(cfg.RetryAttempts, func(attempt int) error {
		attemptsUsed = attempt
		logger.Info("generating script", "attempt", attempt, "max_attempts", cfg.RetryAttempts)

		text, err := llm.Complete(ctx, SystemPrompt, prompt)
		if err != nil {
			return err
		}

		text = strings.TrimSpace(text)
		if chars := utf8.RuneCountInString(text); chars < cfg.ScriptMinChars {
			logger.Warn("script under threshold", "chars", chars, "min_chars", cfg.ScriptMinChars)
			return fmt.Errorf("%w: %d chars, need %d", errShortScript, chars, cfg.ScriptMinChars)
		}

		raw = text
		return nil
	}, func(err error) bool {
		if errors.Is(err, errShortScript) {
			return true
		}
		if errors.Is(err, core.ErrCollaboratorUnavailable) {
			return true
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}
		return false
	})

	if err != nil {
		if errors.Is(err, errShortScript) {
			return "", fmt.Errorf("%w after %d attempts: %v", core.ErrScriptTooShort, attemptsUsed, err)
		}
		return "", fmt.Errorf("%w after %d attempts: %v", core.ErrGenerationFailed, attemptsUsed, err)
	}

	logger.Info("script generated", "chars", len(raw), "lines", countNonEmptyLines(raw))
	return raw, nil
}

func countNonEmptyLines(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
