package script

import (
	"regexp"
	"strings"

	"radiohost/core"
)

var (
	// Stage directions; non-greedy to the first closing bracket.
	parentheticalRegex = regexp.MustCompile(`\([^)]*\)`)
	bracketedRegex     = regexp.MustCompile(`\[[^\]]*\]`)

	// Runs of terminal punctuation the model likes to stack.
	punctRunRegex = regexp.MustCompile(`[!?]{2,}`)

	multipleSpacesRegex = regexp.MustCompile(`\s+`)
)

// Clean reduces a raw dialogue line to synthesizable text: no speaker
// label prefix, no parenthetical stage directions, single-spaced, with
// written-only punctuation smoothed out for speech. The pass repeats
// until the text stops changing, so a label uncovered by an earlier
// removal (as in "Vijay: (intro) B: text") is stripped too and Clean is
// idempotent.
func Clean(text string, cfg core.RunConfig) string {
	s := strings.TrimSpace(text)
	for {
		next := cleanPass(s, cfg)
		if next == s {
			return s
		}
		s = next
	}
}

// cleanPass applies every cleaning rule once, front to back.
func cleanPass(text string, cfg core.RunConfig) string {
	s := text

	// Strip label prefixes repeatedly: a model sometimes doubles the tag.
	for {
		stripped, ok := stripAnyLabel(s, cfg)
		if !ok {
			break
		}
		s = stripped
	}

	s = parentheticalRegex.ReplaceAllString(s, " ")
	s = bracketedRegex.ReplaceAllString(s, " ")

	// Ellipses read fine but synthesize badly; turn them into a pause.
	s = strings.ReplaceAll(s, "…", ", ")
	s = strings.ReplaceAll(s, "...", ", ")

	s = punctRunRegex.ReplaceAllString(s, "!")
	s = multipleSpacesRegex.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}

// CleanTurns derives the synthesizable form of every parsed turn,
// preserving order. Turns whose text cleans down to nothing are kept;
// the synthesizer decides what an empty turn means.
func CleanTurns(turns []core.ScriptTurn, cfg core.RunConfig) []core.CleanedTurn {
	cleaned := make([]core.CleanedTurn, 0, len(turns))
	for _, t := range turns {
		cleaned = append(cleaned, core.CleanedTurn{
			Speaker: t.Speaker,
			Text:    Clean(t.RawText, cfg),
		})
	}
	return cleaned
}

// stripAnyLabel removes one leading recognized speaker label, if present.
func stripAnyLabel(line string, cfg core.RunConfig) (string, bool) {
	for _, label := range []string{cfg.SpeakerAName, cfg.SpeakerBName, "A", "B"} {
		if label == "" {
			continue
		}
		if rest, ok := cutLabelPrefix(line, label); ok {
			return rest, true
		}
	}
	return line, false
}
