// Package responses turns free-text model completions into typed stage
// results. Every field is read through the labeled-line grammar in
// pkg/formatting and falls back to a documented default when it is missing
// or malformed; parsing never fails.
package responses

// Labels of the line-oriented response grammar. Prompts instruct the model to
// answer with exactly these labels.
const (
	LabelCategory         = "Classification decision"
	LabelIsClery          = "Is Clery"
	LabelNeedsMoreInfo    = "Needs more info"
	LabelLocation         = "Location"
	LabelDate             = "Date"
	LabelTime             = "Time"
	LabelNumber           = "Report number"
	LabelSummary          = "Summary"
	LabelConfidence       = "Confidence"
	LabelExplanation      = "Explanation"
	LabelIsCleryGeography = "Is Clery geography"
	LabelReasoning        = "Reasoning"
	LabelEvidence         = "Evidence"
	LabelRequiresWarning  = "Requires timely warning"
	LabelTopCategories    = "Top categories"
)

// Defaults applied when a field is absent from a completion.
const (
	Unknown   = "Unknown"
	NoSummary = "No summary provided."
)

var classificationLabels = []string{
	LabelCategory,
	LabelIsClery,
	LabelNeedsMoreInfo,
	LabelLocation,
	LabelDate,
	LabelTime,
	LabelNumber,
	LabelSummary,
	LabelConfidence,
	LabelExplanation,
}

var locationLabels = []string{
	LabelLocation,
	LabelIsCleryGeography,
	LabelConfidence,
	LabelReasoning,
	LabelEvidence,
}

var warningLabels = []string{
	LabelRequiresWarning,
	LabelConfidence,
	LabelEvidence,
	LabelExplanation,
}
