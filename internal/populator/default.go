package populator

import (
	"context"

	"github.com/JaimeStill/vigil/internal/catalog"
	"github.com/JaimeStill/vigil/internal/prompts"
	"github.com/JaimeStill/vigil/internal/responses"
	"github.com/JaimeStill/vigil/internal/workflow"
)

// Default extracts form fields and classifies them in a single inference
// pass, followed by the timely-warning stage for Clery crimes.
type Default struct {
	extractor  Extractor
	rt         *workflow.Runtime
	casePrefix string
}

// NewDefault creates the default strategy.
func NewDefault(extractor Extractor, rt *workflow.Runtime, casePrefix string) *Default {
	return &Default{
		extractor:  extractor,
		rt:         rt,
		casePrefix: casePrefix,
	}
}

func (s *Default) Name() string { return KindDefault }

func (s *Default) RunOCR(ctx context.Context, storageKey string) (Extraction, error) {
	fields, err := s.extractor.Analyze(ctx, storageKey)
	if err != nil {
		return Extraction{}, err
	}
	return Extraction{Fields: fields}, nil
}

func (s *Default) PopulateIncidentDetails(ctx context.Context, ex Extraction, inc Incident, cats []catalog.Category) (Fields, error) {
	return classifyDetails(ctx, s.rt, ex, inc, cats, s.casePrefix)
}

// classifyDetails runs the single-pass classification and the gated
// timely-warning stage, then maps both onto the record field set.
func classifyDetails(ctx context.Context, rt *workflow.Runtime, ex Extraction, inc Incident, cats []catalog.Category, casePrefix string) (Fields, error) {
	text := ex.Flatten()

	c, _, err := workflow.Classify(ctx, rt, text, cats, prompts.DefaultExtraFields)
	if err != nil {
		return Fields{}, err
	}

	w, warningStage, err := workflow.WarningIfClery(ctx, rt, text, c.IsClery)
	if err != nil {
		return Fields{}, err
	}

	confidence := c.Confidence
	if warningStage != nil {
		confidence = workflow.Aggregate(c.Confidence, warningStage.Confidence)
	}

	f := fromClassification(c, casePrefix)
	f.RequiresTimelyWarning = w.RequiresWarning
	f.Confidence = confidence

	rt.Logger.InfoContext(ctx, "incident details populated",
		"incident_id", inc.ID,
		"category", f.Category,
		"needs_more_info", f.NeedsMoreInfo,
		"confidence", f.Confidence,
	)

	return f, nil
}

func fromClassification(c responses.Classification, casePrefix string) Fields {
	return Fields{
		Category:      c.Category,
		Location:      c.Location,
		Date:          c.Date,
		Time:          c.Time,
		CaseNumber:    NormalizeCaseNumber(c.Number, c.Date, casePrefix),
		Summary:       c.Summary,
		Explanation:   c.Explanation,
		IsClery:       c.IsClery,
		NeedsMoreInfo: needsMoreInfo(c),
		Status:        StatusPendingReview,
	}
}

func needsMoreInfo(c responses.Classification) bool {
	return c.NeedsMoreInfo ||
		catalog.Is(c.Category, catalog.NeedsMoreInfo) ||
		catalog.Is(c.Category, responses.Unknown)
}
