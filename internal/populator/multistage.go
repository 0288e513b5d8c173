package populator

import (
	"context"

	"github.com/JaimeStill/vigil/internal/catalog"
	"github.com/JaimeStill/vigil/internal/responses"
	"github.com/JaimeStill/vigil/internal/workflow"
)

// MultiStage extracts form fields and runs the full triage, detail,
// location, and timely-warning pipeline.
type MultiStage struct {
	extractor  Extractor
	rt         *workflow.Runtime
	casePrefix string
}

// NewMultiStage creates the multi-stage strategy.
func NewMultiStage(extractor Extractor, rt *workflow.Runtime, casePrefix string) *MultiStage {
	return &MultiStage{
		extractor:  extractor,
		rt:         rt,
		casePrefix: casePrefix,
	}
}

func (s *MultiStage) Name() string { return KindMultiStage }

func (s *MultiStage) RunOCR(ctx context.Context, storageKey string) (Extraction, error) {
	fields, err := s.extractor.Analyze(ctx, storageKey)
	if err != nil {
		return Extraction{}, err
	}
	return Extraction{Fields: fields}, nil
}

func (s *MultiStage) PopulateIncidentDetails(ctx context.Context, ex Extraction, inc Incident, cats []catalog.Category) (Fields, error) {
	out, err := workflow.Execute(ctx, s.rt, ex.Flatten(), cats)
	if err != nil {
		return Fields{}, err
	}

	f := fromClassification(out.Classification, s.casePrefix)
	if loc := out.Location.Location; loc != "" && loc != responses.Unknown {
		f.Location = loc
	}
	f.RequiresTimelyWarning = out.TimelyWarning.RequiresWarning
	f.Confidence = out.Confidence

	s.rt.Logger.InfoContext(ctx, "incident details populated",
		"incident_id", inc.ID,
		"category", f.Category,
		"triage", out.Triage.Names(),
		"confidence", f.Confidence,
	)

	return f, nil
}
