package script

import (
	"errors"
	"strings"
	"testing"

	"radiohost/core"
)

func TestParseOrderedTurns(t *testing.T) {
	cfg := testConfig()

	raw := strings.Join([]string{
		"Vijay: arre Neha, aaj ka topic suno",
		"Neha: haan haan, batao batao",
		"",
		"Vijay: matlab ek dam interesting hai yaar",
		"Neha: achcha? (laughs)",
	}, "\n")

	turns, err := Parse(raw, cfg)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(turns) != 4 {
		t.Fatalf("Parse returned %d turns, want 4", len(turns))
	}

	wantSpeakers := []core.Speaker{core.SpeakerA, core.SpeakerB, core.SpeakerA, core.SpeakerB}
	for i, turn := range turns {
		if turn.Speaker != wantSpeakers[i] {
			t.Errorf("turn %d speaker = %v, want %v", i, turn.Speaker, wantSpeakers[i])
		}
	}
	if turns[0].RawText != "Vijay: arre Neha, aaj ka topic suno" {
		t.Errorf("turn 0 raw text = %q", turns[0].RawText)
	}
}

func TestParseDropsNarration(t *testing.T) {
	cfg := testConfig()

	raw := strings.Join([]string{
		"Here is your radio script -",
		"Vijay: chalo shuru karte hain",
		"(both hosts settle in)",
		"Neha: bilkul",
	}, "\n")

	turns, err := Parse(raw, cfg)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("Parse returned %d turns, want 2", len(turns))
	}
}

func TestParseUnknownSpeaker(t *testing.T) {
	cfg := testConfig()

	raw := strings.Join([]string{
		"Vijay: pehla line",
		"Ramesh: main bhi bolunga",
	}, "\n")

	_, err := Parse(raw, cfg)
	if !errors.Is(err, core.ErrUnknownSpeaker) {
		t.Fatalf("Parse error = %v, want ErrUnknownSpeaker", err)
	}
}

func TestParseNoTurns(t *testing.T) {
	cfg := testConfig()

	_, err := Parse("just some prose\nwith no dialogue at all\n", cfg)
	if !errors.Is(err, core.ErrScriptEmpty) {
		t.Fatalf("Parse error = %v, want ErrScriptEmpty", err)
	}
}

func TestParseShortTagAliases(t *testing.T) {
	cfg := testConfig()

	turns, err := Parse("A: pehla\nB: doosra\n", cfg)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(turns) != 2 || turns[0].Speaker != core.SpeakerA || turns[1].Speaker != core.SpeakerB {
		t.Fatalf("alias parsing wrong: %+v", turns)
	}
}
