package script

import (
	"fmt"
	"regexp"
	"strings"

	"radiohost/core"
)

// labelLikeRegex matches a line that carries a single-word speaker tag,
// whatever the tag is. Used to distinguish an unknown speaker (schema
// violation) from stray narration (dropped).
var labelLikeRegex = regexp.MustCompile(`^([\p{L}][\p{L}\p{N}_'-]*)\s*:`)

// Parse splits raw script text into ordered speaker-tagged turns. A line
// is a turn only if it starts with a recognized speaker label and a
// colon. Blank lines and narration are dropped; minor format drift from
// the model is expected. A label-like tag outside the two-host set fails
// the run, and so does recovering zero turns.
func Parse(raw string, cfg core.RunConfig) ([]core.ScriptTurn, error) {
	var turns []core.ScriptTurn

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if speaker, ok := matchSpeakerLabel(line, cfg); ok {
			turns = append(turns, core.ScriptTurn{Speaker: speaker, RawText: line})
			continue
		}

		if m := labelLikeRegex.FindStringSubmatch(line); m != nil {
			return nil, fmt.Errorf("script: %w: %q", core.ErrUnknownSpeaker, m[1])
		}

		// Stray narration, markdown fences and the like are tolerated.
	}

	if len(turns) == 0 {
		return nil, fmt.Errorf("script: %w", core.ErrScriptEmpty)
	}

	return turns, nil
}

// matchSpeakerLabel reports which of the two hosts a line belongs to.
// Configured display names and the literal A/B tags are recognized,
// case-insensitively.
func matchSpeakerLabel(line string, cfg core.RunConfig) (core.Speaker, bool) {
	candidates := []struct {
		label   string
		speaker core.Speaker
	}{
		{cfg.SpeakerAName, core.SpeakerA},
		{cfg.SpeakerBName, core.SpeakerB},
		{"A", core.SpeakerA},
		{"B", core.SpeakerB},
	}

	for _, c := range candidates {
		if c.label == "" {
			continue
		}
		if _, ok := cutLabelPrefix(line, c.label); ok {
			return c.speaker, true
		}
	}
	return 0, false
}

// cutLabelPrefix strips a leading "<label>:" (any spacing around the
// colon) and returns the remainder.
func cutLabelPrefix(line, label string) (string, bool) {
	if len(line) < len(label) || !strings.EqualFold(line[:len(label)], label) {
		return "", false
	}
	rest := strings.TrimLeft(line[len(label):], " \t")
	if !strings.HasPrefix(rest, ":") {
		return "", false
	}
	return strings.TrimLeft(rest[1:], " \t"), true
}
