package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/JaimeStill/vigil/internal/prompts"
)

// runStage sends prompt to the inference client and parses the completion.
// Transport failures are wrapped with the stage's sentinel; parsing never
// fails.
func runStage[T any](
	ctx context.Context,
	rt *Runtime,
	stage prompts.Stage,
	prompt string,
	parse func(string) T,
	confidence func(T) float64,
) (T, StageResult, error) {
	var zero T

	start := time.Now()
	text, err := rt.Inference.Complete(ctx, prompt)
	if err != nil {
		return zero, StageResult{}, fmt.Errorf("%w: %w", stageErrors[stage], err)
	}

	result := parse(text)
	sr := StageResult{
		Stage:      stage,
		Confidence: confidence(result),
		Duration:   time.Since(start),
	}

	rt.Metrics.ObserveStage(string(stage), sr.Duration, sr.Confidence)
	rt.Logger.InfoContext(ctx, "stage complete",
		"stage", stage,
		"confidence", sr.Confidence,
		"duration", sr.Duration,
	)

	return result, sr, nil
}
