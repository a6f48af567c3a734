// Package batch runs the per-file branding loop over a list of sources.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"photo-brander/internal/domain"
	"photo-brander/internal/usecase/processor"

	"github.com/wb-go/wbf/zlog"
)

type Runner struct {
	processor    imageProcessor
	namer        outputNamer
	output       outputRepository
	publisher    resultPublisher
	startCounter int
	logger       *zlog.Zerolog
}

// NewRunner builds a Runner. publisher may be nil when no events are wanted.
func NewRunner(proc imageProcessor, namer outputNamer, output outputRepository, publisher resultPublisher, startCounter int, logger *zlog.Zerolog) *Runner {
	return &Runner{
		processor:    proc,
		namer:        namer,
		output:       output,
		publisher:    publisher,
		startCounter: startCounter,
		logger:       logger,
	}
}

// Run processes sources in order. A failing file is recorded and skipped; its
// counter value goes to the next file that succeeds. When ctx is canceled the
// run stops before the next file and the summary is marked interrupted.
func (r *Runner) Run(ctx context.Context, runID string, sources []string) *domain.Summary {
	summary := &domain.Summary{
		RunID:        runID,
		StartCounter: r.startCounter,
		NextCounter:  r.startCounter,
	}

	if len(sources) == 0 {
		summary.NothingToDo = true
		r.logger.Info().Str("run_id", runID).Msg("Nothing to do")
		return summary
	}

	r.logger.Info().
		Str("run_id", runID).
		Int("sources", len(sources)).
		Int("start_counter", r.startCounter).
		Msg("Batch started")

	counter := r.startCounter
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			summary.Interrupted = true
			r.logger.Warn().Err(err).Str("run_id", runID).Msg("Batch interrupted")
			break
		}

		result := r.safeProcessFile(ctx, runID, source, counter)
		summary.Add(result)

		if result.Succeeded() {
			counter++
			r.logger.Info().
				Str("source", source).
				Str("output", result.Output).
				Int("counter", result.Counter).
				Dur("duration", result.Duration).
				Msg("File processed")
		} else {
			r.logger.Error().
				Err(result.Err).
				Str("source", source).
				Str("stage", string(result.Stage)).
				Msg("File failed")
		}

		r.publish(ctx, runID, domain.Event{Kind: domain.EventFile, File: &result})
	}

	summary.NextCounter = counter

	r.logger.Info().
		Str("run_id", runID).
		Int("processed", summary.Processed).
		Int("failed", summary.Failed).
		Int("next_counter", summary.NextCounter).
		Bool("interrupted", summary.Interrupted).
		Msg("Batch finished")

	r.publish(ctx, runID, domain.Event{Kind: domain.EventSummary, Summary: summary})
	return summary
}

func (r *Runner) safeProcessFile(ctx context.Context, runID, source string, counter int) (result domain.FileResult) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().
				Interface("panic", rec).
				Str("source", source).
				Msg("Panic recovered while processing file")
			result = failedResult(runID, source, "", fmt.Errorf("panic: %v", rec))
		}
		result.Duration = time.Since(start)
	}()
	return r.processFile(ctx, runID, source, counter)
}

func (r *Runner) processFile(ctx context.Context, runID, source string, counter int) domain.FileResult {
	img, err := r.processor.Load(source)
	if err != nil {
		return failedResult(runID, source, domain.StageLoad, err)
	}

	out, err := r.processor.Process(ctx, img)
	if err != nil {
		return failedResult(runID, source, "", err)
	}

	path, err := r.output.Save(ctx, r.namer.Name(counter), out.Data)
	if err != nil {
		return failedResult(runID, source, domain.StageWrite, err)
	}

	return domain.FileResult{
		RunID:     runID,
		Source:    source,
		Output:    path,
		Counter:   counter,
		Status:    domain.StatusCompleted,
		Placement: out.Placement,
	}
}

func failedResult(runID, source string, stage domain.Stage, err error) domain.FileResult {
	if s, ok := processor.StageOf(err); ok {
		stage = s
	}
	err = fmt.Errorf("%w: %s: %w", ErrSourceFile, source, err)

	return domain.FileResult{
		RunID:  runID,
		Source: source,
		Status: domain.StatusFailed,
		Stage:  stage,
		Error:  err.Error(),
		Err:    err,
	}
}

// publish never fails the batch; a broken event sink only costs a log line.
func (r *Runner) publish(ctx context.Context, runID string, event domain.Event) {
	if r.publisher == nil {
		return
	}

	value, err := json.Marshal(event)
	if err != nil {
		r.logger.Error().Err(err).Str("kind", event.Kind).Msg("Failed to marshal event")
		return
	}

	if err := r.publisher.Send(ctx, []byte(runID), value); err != nil {
		r.logger.Error().Err(err).Str("run_id", runID).Str("kind", event.Kind).Msg("Failed to publish event")
	}
}
