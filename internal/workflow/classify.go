package workflow

import (
	"context"

	"github.com/JaimeStill/vigil/internal/catalog"
	"github.com/JaimeStill/vigil/internal/prompts"
	"github.com/JaimeStill/vigil/internal/responses"
)

// Classify runs the single-pass classification stage over text. The
// synthetic categories are appended to cats before prompting.
func Classify(ctx context.Context, rt *Runtime, text string, cats []catalog.Category, extra []prompts.ExtraField) (responses.Classification, StageResult, error) {
	return runStage(ctx, rt, prompts.StageClassify,
		prompts.Classification(text, catalog.WithSynthetic(cats), extra),
		responses.ParseClassification,
		func(c responses.Classification) float64 { return c.Confidence },
	)
}

// TimelyWarning runs the timely-warning stage over text.
func TimelyWarning(ctx context.Context, rt *Runtime, text string) (responses.TimelyWarning, StageResult, error) {
	return runStage(ctx, rt, prompts.StageWarning,
		prompts.TimelyWarning(text),
		responses.ParseTimelyWarning,
		func(w responses.TimelyWarning) float64 { return w.Confidence },
	)
}

// WarningIfClery runs the timely-warning stage only when isClery is set and
// otherwise returns the inert default with a nil stage result.
func WarningIfClery(ctx context.Context, rt *Runtime, text string, isClery bool) (responses.TimelyWarning, *StageResult, error) {
	if !isClery {
		rt.Logger.InfoContext(ctx, "timely warning skipped", "reason", "not a clery crime")
		return responses.InertTimelyWarning(), nil, nil
	}

	w, sr, err := TimelyWarning(ctx, rt, text)
	if err != nil {
		return responses.TimelyWarning{}, nil, err
	}
	return w, &sr, nil
}
