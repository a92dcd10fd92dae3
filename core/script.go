package core

// Speaker identifies one of the two fixed radio hosts.
type Speaker int

const (
	SpeakerA Speaker = iota
	SpeakerB
)

func (s Speaker) String() string {
	switch s {
	case SpeakerA:
		return "A"
	case SpeakerB:
		return "B"
	default:
		return "?"
	}
}

// ScriptTurn is one attributed dialogue line as it appeared in the
// generated script. Turn order is playback order and must be preserved
// through every downstream stage.
type ScriptTurn struct {
	Speaker Speaker
	RawText string
}

// CleanedTurn is a ScriptTurn with its text stripped down to what should
// actually be spoken: no speaker label prefix, no parenthetical stage
// directions, single-spaced.
type CleanedTurn struct {
	Speaker Speaker
	Text    string
}
