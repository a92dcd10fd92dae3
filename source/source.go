// Package source turns an encyclopedia topic into bounded plain text
// suitable for prompt construction.
package source

import (
	"context"
	"fmt"

	"radiohost/core"
	"radiohost/services/wikipedia"
)

// Encyclopedia is the lookup collaborator. The wikipedia client is the
// production implementation.
type Encyclopedia interface {
	Lookup(ctx context.Context, title string) (wikipedia.LookupResult, error)
}

// Fetch looks up the topic and returns its text truncated to
// cfg.SourceMaxChars. Text shorter than cfg.SourceMinChars after
// truncation fails the run: stub and disambiguation pages would only
// produce a degenerate prompt.
func Fetch(ctx context.Context, enc Encyclopedia, topic string, cfg core.RunConfig) (string, error) {
	res, err := enc.Lookup(ctx, topic)
	if err != nil {
		return "", fmt.Errorf("source: lookup %q: %w", topic, err)
	}
	if !res.Exists {
		return "", fmt.Errorf("source: %w: %q", core.ErrPageNotFound, topic)
	}

	text := res.Text
	if cfg.SourceMaxChars > 0 {
		if runes := []rune(text); len(runes) > cfg.SourceMaxChars {
			text = string(runes[:cfg.SourceMaxChars])
		}
	}
	if len([]rune(text)) < cfg.SourceMinChars {
		return "", fmt.Errorf("source: %w: %d chars, need %d", core.ErrSourceTooShort, len(text), cfg.SourceMinChars)
	}

	return text, nil
}
