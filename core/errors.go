package core

import (
	"errors"
	"fmt"
)

// Every error below is fatal to a pipeline run: no partial artifact is
// ever written. Only the language-model call carries a retry budget;
// all other stages are attempt-once.
var (
	// ErrPageNotFound means the encyclopedia has no page for the topic.
	ErrPageNotFound = errors.New("wikipedia page not found")

	// ErrSourceTooShort means the fetched article (after truncation) is
	// under the configured minimum, typically a stub or disambiguation page.
	ErrSourceTooShort = errors.New("source text too short")

	// ErrGenerationFailed means the language-model call failed on every
	// attempt of the retry budget.
	ErrGenerationFailed = errors.New("script generation failed")

	// ErrScriptTooShort means every attempt produced a script under the
	// minimum length threshold.
	ErrScriptTooShort = errors.New("generated script too short")

	// ErrScriptEmpty means no dialogue turns could be recovered from the
	// raw script. Treated as a generation-quality failure.
	ErrScriptEmpty = errors.New("no dialogue turns in script")

	// ErrUnknownSpeaker means a speaker label outside the fixed two-host
	// set appeared. Schema violation, not recoverable.
	ErrUnknownSpeaker = errors.New("unknown speaker label")

	// ErrNoAudio means synthesis produced zero segments.
	ErrNoAudio = errors.New("no audio produced")

	// ErrNoSegments means the assembler was invoked with an empty segment list.
	ErrNoSegments = errors.New("no segments to assemble")

	// ErrCollaboratorUnavailable wraps transient transport failures from
	// any remote collaborator not otherwise classified.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
)

// SynthesisError reports a failed TTS call for a single turn. A missing
// line is worse than a full failure, so it aborts the whole run.
type SynthesisError struct {
	Turn int // index of the failing turn in the parsed script
	Err  error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesis failed for turn %d: %v", e.Turn, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }
