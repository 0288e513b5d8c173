// Package workflow orchestrates the inference stages that classify an
// incident report: broad triage, detailed classification, location analysis,
// and the conditional timely-warning analysis.
package workflow

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/vigil/internal/catalog"
	"github.com/JaimeStill/vigil/internal/prompts"
	"github.com/JaimeStill/vigil/internal/responses"
	"github.com/JaimeStill/vigil/pkg/formatting"
)

// Execute runs the multi-stage pipeline over text. Detailed classification
// and location analysis are independent and run concurrently once triage
// completes. The timely-warning stage starts only after detailed
// classification reports a Clery crime. Any stage's transport failure aborts
// the run.
func Execute(ctx context.Context, rt *Runtime, text string, cats []catalog.Category) (*Outcome, error) {
	cats = catalog.WithSynthetic(cats)
	out := &Outcome{}

	triage, triageStage, err := runStage(ctx, rt, prompts.StageTriage,
		prompts.Triage(text, cats),
		responses.ParseTriage,
		responses.Triage.Confidence,
	)
	if err != nil {
		return nil, err
	}
	out.Triage = triage

	var detailStage, locationStage StageResult

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		out.Classification, detailStage, err = runStage(gctx, rt, prompts.StageDetail,
			prompts.Detailed(text, cats, triage),
			responses.ParseClassification,
			func(c responses.Classification) float64 { return c.Confidence },
		)
		return err
	})

	g.Go(func() error {
		var err error
		out.Location, locationStage, err = runStage(gctx, rt, prompts.StageLocation,
			prompts.Location(text),
			responses.ParseLocation,
			func(l responses.Location) float64 { return l.Confidence },
		)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Stages = []StageResult{triageStage, detailStage, locationStage}

	warning, warningStage, err := WarningIfClery(ctx, rt, text, out.Classification.IsClery)
	if err != nil {
		return nil, err
	}
	out.TimelyWarning = warning
	if warningStage != nil {
		out.WarningRan = true
		out.Stages = append(out.Stages, *warningStage)
	}

	out.Confidence = Aggregate(
		triageStage.Confidence,
		detailStage.Confidence,
		locationStage.Confidence,
		warning.Confidence,
	)

	rt.Logger.InfoContext(ctx, "pipeline complete",
		"category", out.Classification.Category,
		"is_clery", out.Classification.IsClery,
		"warning_ran", out.WarningRan,
		"confidence", out.Confidence,
	)

	return out, nil
}

// Aggregate returns the minimum of the given confidences clamped to [0,1],
// or 0 when none are given.
func Aggregate(confidences ...float64) float64 {
	if len(confidences) == 0 {
		return 0
	}

	lowest := confidences[0]
	for _, c := range confidences[1:] {
		lowest = min(lowest, c)
	}
	return formatting.Clamp(lowest)
}
