// Package synth converts cleaned dialogue turns into per-turn audio
// segments through a TTS collaborator.
package synth

import (
	"context"
	"fmt"
	"sync"

	"radiohost/core"
)

// TTS is the text-to-speech collaborator. The ElevenLabs service is the
// production implementation; Synthesize returns raw 16-bit LE PCM.
type TTS interface {
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
	SampleRate() int
}

// Synthesize produces one audio segment per non-empty cleaned turn, in
// turn order. Voice routing is fixed: speaker A gets cfg.VoiceA, B gets
// cfg.VoiceB; anything else is a schema violation. A turn whose cleaned
// text is empty is skipped without a synthesis call, the only case
// where segment count may drop below turn count. A failed call aborts
// the run carrying the turn index: partial audio with missing lines is
// worse than a full failure.
//
// cfg.SynthWorkers > 1 runs the independent per-turn calls on a bounded
// pool; results are re-ordered back to turn order before returning.
func Synthesize(ctx context.Context, tts TTS, turns []core.CleanedTurn, cfg core.RunConfig, logger *core.Logger) ([]core.AudioSegment, error) {
	if logger == nil {
		logger = core.GetLogger()
	}

	jobs, err := planJobs(turns, cfg, logger)
	if err != nil {
		return nil, err
	}

	var segments []core.AudioSegment
	if cfg.SynthWorkers > 1 && len(jobs) > 1 {
		segments, err = runPooled(ctx, tts, jobs, cfg.SynthWorkers, logger)
	} else {
		segments, err = runSequential(ctx, tts, jobs, logger)
	}
	if err != nil {
		return nil, err
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("synth: %w", core.ErrNoAudio)
	}
	return segments, nil
}

// job is one pending synthesis call.
type job struct {
	turn    int // index in the cleaned turn sequence
	speaker core.Speaker
	text    string
	voice   string
}

// planJobs validates voice routing and drops empty turns up front, so
// both execution paths work from the same list.
func planJobs(turns []core.CleanedTurn, cfg core.RunConfig, logger *core.Logger) ([]job, error) {
	jobs := make([]job, 0, len(turns))
	for i, t := range turns {
		voice := cfg.Voice(t.Speaker)
		if voice == "" {
			return nil, fmt.Errorf("synth: %w: turn %d speaker %v", core.ErrUnknownSpeaker, i, t.Speaker)
		}
		if t.Text == "" {
			logger.Warn("skipping empty turn", "turn", i, "speaker", t.Speaker.String())
			continue
		}
		jobs = append(jobs, job{turn: i, speaker: t.Speaker, text: t.Text, voice: voice})
	}
	return jobs, nil
}

func runSequential(ctx context.Context, tts TTS, jobs []job, logger *core.Logger) ([]core.AudioSegment, error) {
	segments := make([]core.AudioSegment, 0, len(jobs))
	for n, j := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logger.Info("synthesizing line", "line", n+1, "total", len(jobs), "speaker", j.speaker.String(), "text", preview(j.text))

		seg, err := synthesizeOne(ctx, tts, j)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

// runPooled fans the jobs out over a bounded worker pool. Workers share
// nothing but the indexed result slice; ordering is restored by index.
func runPooled(ctx context.Context, tts TTS, jobs []job, workers int, logger *core.Logger) ([]core.AudioSegment, error) {
	if workers > len(jobs) {
		workers = len(jobs)
	}

	poolCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobChan := make(chan int)
	results := make([]core.AudioSegment, len(jobs))

	// The first genuine failure cancels the pool and is the one reported;
	// errors the other workers hit after that are cancellation fallout and
	// must not be attributed to their turns.
	var failOnce sync.Once
	var firstErr error
	fail := func(err error) {
		failOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				if poolCtx.Err() != nil {
					continue
				}
				seg, err := synthesizeOne(poolCtx, tts, jobs[idx])
				if err != nil {
					fail(err)
					continue
				}
				results[idx] = seg
			}
		}()
	}

	for idx := range jobs {
		jobChan <- idx
	}
	close(jobChan)
	wg.Wait()

	// A cancelled caller outranks whatever the workers tripped over while
	// winding down.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}

	logger.Info("pooled synthesis complete", "segments", len(results), "workers", workers)
	return results, nil
}

func synthesizeOne(ctx context.Context, tts TTS, j job) (core.AudioSegment, error) {
	data, err := tts.Synthesize(ctx, j.text, j.voice)
	if err != nil {
		return core.AudioSegment{}, &core.SynthesisError{Turn: j.turn, Err: err}
	}
	if len(data) == 0 {
		return core.AudioSegment{}, &core.SynthesisError{Turn: j.turn, Err: fmt.Errorf("no audio data received")}
	}

	return core.AudioSegment{
		Speaker:    j.speaker,
		Turn:       j.turn,
		Data:       data,
		SampleRate: tts.SampleRate(),
		Channels:   1,
	}, nil
}

// preview truncates text for log lines.
func preview(text string) string {
	const max = 50
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
