// Package script covers everything between source text and cleaned
// dialogue turns: prompt construction, generation with retry, turn
// parsing, and text cleanup for synthesis.
package script

import (
	"fmt"

	"radiohost/core"
)

// SystemPrompt is the fixed system message for script generation.
const SystemPrompt = "You write conversational Indian Hinglish radio scripts."

// BuildPrompt renders the generation prompt from source text and config.
// Pure string construction: identical inputs always yield an identical
// prompt.
func BuildPrompt(sourceText string, cfg core.RunConfig) string {
	return fmt.Sprintf(`You are a creative Indian radio show script writer.

TASK:
Generate a natural-sounding Hinglish (Hindi + English mix) conversation
between two radio hosts (%[1]s and %[2]s) based on the topic below.

HARD CONSTRAINTS (VERY IMPORTANT):
- Total length: %[3]d-%[4]d words (about 2 minutes of speech)
- Exactly %[5]d-%[6]d dialogue turns total (%[1]s + %[2]s combined)
- Each line should sound spoken, not written

STYLE RULES:
- Use casual Hinglish, not pure Hindi or English
- Frequently use fillers like: "achcha", "umm", "arre", "haan", "yaar", "matlab"
- Add light interruptions, incomplete sentences, and informal reactions
- Add occasional laughter cues like "(laughs)" or "(chuckles)"
- Avoid formal explanations or Wikipedia-style narration
- Keep sentences short and conversational

FORMAT (STRICT):
%[1]s: ...
%[2]s: ...
%[1]s: ...
%[2]s: ...
One turn per line, no narration outside the dialogue.

TOPIC:
%[7]s
`,
		cfg.SpeakerAName,
		cfg.SpeakerBName,
		cfg.WordsMin,
		cfg.WordsMax,
		cfg.TurnsMin,
		cfg.TurnsMax,
		sourceText,
	)
}
