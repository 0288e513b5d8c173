// Package populator combines OCR extraction with the classification stages
// to produce the field set merged into an incident record. Strategies vary
// per tenant and are selected by Factory.
package populator

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/vigil/internal/catalog"
	"github.com/JaimeStill/vigil/internal/ocr"
)

// Incident statuses reported while a document moves through the pipeline.
const (
	StatusUploading     = "processing (upload)"
	StatusClassifying   = "processing (classification)"
	StatusPendingReview = "pending review"
)

// Strategy extracts a document and populates incident details from the
// extraction.
type Strategy interface {
	Name() string
	RunOCR(ctx context.Context, storageKey string) (Extraction, error)
	PopulateIncidentDetails(ctx context.Context, ex Extraction, inc Incident, cats []catalog.Category) (Fields, error)
}

// Extractor performs document recognition. *ocr.Driver satisfies it.
type Extractor interface {
	Analyze(ctx context.Context, raw string) (ocr.FieldMap, error)
	DetectText(ctx context.Context, raw string) (string, error)
}

// Incident identifies the record being populated.
type Incident struct {
	ID         uuid.UUID `json:"id"`
	Tenant     string    `json:"tenant"`
	StorageKey string    `json:"storage_key"`
}

// Extraction is the OCR output of a strategy: either a form-field map or
// plain text.
type Extraction struct {
	Fields ocr.FieldMap `json:"fields,omitempty"`
	Text   string       `json:"text,omitempty"`
}

// Flatten renders the extraction as one text blob. Form fields become
// "key: value" lines sorted by key; otherwise the plain text is returned.
func (e Extraction) Flatten() string {
	if len(e.Fields) == 0 {
		return e.Text
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(lines, "\n")
}

// Fields is the flat field set merged into the incident record.
type Fields struct {
	Category              string  `json:"category"`
	Location              string  `json:"location"`
	Date                  string  `json:"date"`
	Time                  string  `json:"time"`
	CaseNumber            string  `json:"case_number"`
	Summary               string  `json:"summary"`
	Explanation           string  `json:"explanation"`
	IsClery               bool    `json:"is_clery"`
	NeedsMoreInfo         bool    `json:"needs_more_info"`
	RequiresTimelyWarning bool    `json:"requires_timely_warning"`
	Confidence            float64 `json:"confidence"`
	Status                string  `json:"status"`
}

// Map returns the field set keyed by record column name.
func (f Fields) Map() map[string]any {
	return map[string]any{
		"category":                f.Category,
		"location":                f.Location,
		"date":                    f.Date,
		"time":                    f.Time,
		"case_number":             f.CaseNumber,
		"summary":                 f.Summary,
		"explanation":             f.Explanation,
		"is_clery":                f.IsClery,
		"needs_more_info":         f.NeedsMoreInfo,
		"requires_timely_warning": f.RequiresTimelyWarning,
		"confidence":              f.Confidence,
		"status":                  f.Status,
	}
}
