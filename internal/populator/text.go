package populator

import (
	"context"

	"github.com/JaimeStill/vigil/internal/workflow"
)

// Text is the default strategy over plain detected text instead of form
// fields, for tenants whose reports have no key/value layout.
type Text struct {
	*Default
}

// NewText creates the plain-text strategy.
func NewText(extractor Extractor, rt *workflow.Runtime, casePrefix string) *Text {
	return &Text{Default: NewDefault(extractor, rt, casePrefix)}
}

func (s *Text) Name() string { return KindText }

func (s *Text) RunOCR(ctx context.Context, storageKey string) (Extraction, error) {
	text, err := s.extractor.DetectText(ctx, storageKey)
	if err != nil {
		return Extraction{}, err
	}
	return Extraction{Text: text}, nil
}
