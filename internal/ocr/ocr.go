// Package ocr drives asynchronous document recognition jobs and rebuilds
// key/value form fields from the low-level blocks the service emits.
package ocr

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/textract"
)

// API is the subset of the Textract client the driver depends on.
// *textract.Client satisfies it.
type API interface {
	StartDocumentAnalysis(ctx context.Context, in *textract.StartDocumentAnalysisInput, optFns ...func(*textract.Options)) (*textract.StartDocumentAnalysisOutput, error)
	GetDocumentAnalysis(ctx context.Context, in *textract.GetDocumentAnalysisInput, optFns ...func(*textract.Options)) (*textract.GetDocumentAnalysisOutput, error)
	DetectDocumentText(ctx context.Context, in *textract.DetectDocumentTextInput, optFns ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error)
}

// Status is the lifecycle state of a recognition job.
type Status string

// Job states. SUCCEEDED and FAILED are terminal.
const (
	StatusSubmitted  Status = "SUBMITTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusSucceeded  Status = "SUCCEEDED"
	StatusFailed     Status = "FAILED"
)

// Terminal reports whether no further polling can change the status.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Job is a submitted recognition job as last observed by the driver.
type Job struct {
	ID      string `json:"id"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// BlockKind is the type of a recognition primitive.
type BlockKind string

const (
	BlockKeyValueSet BlockKind = "KEY_VALUE_SET"
	BlockWord        BlockKind = "WORD"
	BlockLine        BlockKind = "LINE"
)

// EntityKind flags a KEY_VALUE_SET block as the key or value half of a pair.
type EntityKind string

const (
	EntityKey   EntityKind = "KEY"
	EntityValue EntityKind = "VALUE"
)

// RelationKind is the type of link between blocks.
type RelationKind string

const (
	RelationChild RelationKind = "CHILD"
	RelationValue RelationKind = "VALUE"
)

// Relation links a block to other blocks by identifier.
type Relation struct {
	Kind RelationKind
	IDs  []string
}

// Block is a single recognition primitive. It is immutable once received and
// only lives long enough to build FormField records.
type Block struct {
	Kind       BlockKind
	ID         string
	Text       string
	Confidence *float64
	Page       *int
	Entities   []EntityKind
	Relations  []Relation
}

// Is reports whether the block carries the given entity flag.
func (b Block) Is(e EntityKind) bool {
	for _, v := range b.Entities {
		if v == e {
			return true
		}
	}
	return false
}

// Related returns the identifiers linked by relations of the given kind.
func (b Block) Related(kind RelationKind) []string {
	var ids []string
	for _, r := range b.Relations {
		if r.Kind == kind {
			ids = append(ids, r.IDs...)
		}
	}
	return ids
}

// FormField is a reconstructed key/value pair. Confidence is the lower of the
// key and value block confidences on the service's 0-100 scale.
type FormField struct {
	Key        string  `json:"key"`
	Value      string  `json:"value"`
	Page       int     `json:"page"`
	Confidence float64 `json:"confidence"`
}

// FieldMap maps key text to value text. It is the only OCR output consumed
// downstream of the driver.
type FieldMap map[string]string
