// Package pipeline orchestrates one content-to-audio run: topic text,
// script generation, per-turn synthesis, assembly, export. Stages run
// strictly sequentially; each consumes the complete output of the
// previous one.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"radiohost/assemble"
	"radiohost/core"
	"radiohost/script"
	"radiohost/source"
	"radiohost/synth"

	"github.com/google/uuid"
)

// Sink receives the encoded artifact. The file sink is the default;
// alternatives can push to object storage or a delivery hook.
type Sink interface {
	Store(path string, data []byte) error
}

// FileSink writes the artifact to the local filesystem.
type FileSink struct{}

func (FileSink) Store(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("sink: write %q: %w", path, err)
	}
	return nil
}

// Collaborators bundles the remote services one run depends on. Each
// run constructs its own set; nothing here is process-wide state.
type Collaborators struct {
	Encyclopedia source.Encyclopedia
	LLM          script.LLM
	TTS          synth.TTS
	Sink         Sink
}

// Result summarizes a completed run.
type Result struct {
	RunID      string
	Topic      string
	OutputPath string
	Turns      int
	Segments   int
	Duration   time.Duration
	Bytes      int
}

// Run executes the full pipeline for one topic. Cancellation is checked
// between stages and, inside synthesis, between per-turn calls; an
// aborted run writes nothing.
func Run(ctx context.Context, topic string, c Collaborators, cfg core.RunConfig, logger *core.Logger) (Result, error) {
	if logger == nil {
		logger = core.GetLogger()
	}
	if c.Sink == nil {
		c.Sink = FileSink{}
	}

	runID := uuid.NewString()
	logger = logger.With(map[string]interface{}{"run_id": runID, "topic": topic})
	started := time.Now()

	logger.Info("pipeline run started")

	// --- Source text ---
	sourceText, err := source.Fetch(ctx, c.Encyclopedia, topic, cfg)
	if err != nil {
		return Result{}, err
	}
	logger.Info("source text ready", "chars", len(sourceText))

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	// --- Script ---
	prompt := script.BuildPrompt(sourceText, cfg)
	raw, err := script.Generate(ctx, c.LLM, prompt, cfg, logger)
	if err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	turns, err := script.Parse(raw, cfg)
	if err != nil {
		return Result{}, err
	}
	cleaned := script.CleanTurns(turns, cfg)
	logger.Info("script parsed", "turns", len(turns))

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	// --- Synthesis ---
	segments, err := synth.Synthesize(ctx, c.TTS, cleaned, cfg, logger)
	if err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	// --- Assembly and export ---
	assembled, err := assemble.Assemble(segments, cfg, logger)
	if err != nil {
		return Result{}, err
	}

	encoded, err := assemble.Encode(assembled, cfg)
	if err != nil {
		return Result{}, err
	}
	if err := c.Sink.Store(cfg.OutputPath, encoded); err != nil {
		return Result{}, err
	}

	result := Result{
		RunID:      runID,
		Topic:      topic,
		OutputPath: cfg.OutputPath,
		Turns:      len(turns),
		Segments:   len(segments),
		Duration:   assembled.Duration(),
		Bytes:      len(encoded),
	}

	logger.Info("pipeline run complete",
		"turns", result.Turns,
		"segments", result.Segments,
		"audio_duration_s", fmt.Sprintf("%.2f", result.Duration.Seconds()),
		"output_bytes", result.Bytes,
		"elapsed", time.Since(started).Round(time.Millisecond).String(),
	)
	return result, nil
}
