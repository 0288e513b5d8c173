package responses

import "github.com/JaimeStill/vigil/pkg/formatting"

// Classification is the typed result of a classification completion.
type Classification struct {
	Category      string  `json:"category"`
	Explanation   string  `json:"explanation"`
	Location      string  `json:"location"`
	IsClery       bool    `json:"is_clery"`
	NeedsMoreInfo bool    `json:"needs_more_info"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	Number        string  `json:"number"`
	Summary       string  `json:"summary"`
	Confidence    float64 `json:"confidence"`
}

// ParseClassification extracts a Classification from a completion written in
// the labeled-line format. Missing strings become "Unknown", a missing
// summary becomes "No summary provided.", missing booleans are false and a
// missing confidence is 0.
func ParseClassification(text string) Classification {
	return Classification{
		Category:      stringOr(text, LabelCategory, Unknown),
		Explanation:   blockOr(text, LabelExplanation, Unknown, classificationLabels),
		Location:      stringOr(text, LabelLocation, Unknown),
		IsClery:       boolOr(text, LabelIsClery),
		NeedsMoreInfo: boolOr(text, LabelNeedsMoreInfo),
		Date:          stringOr(text, LabelDate, Unknown),
		Time:          stringOr(text, LabelTime, Unknown),
		Number:        stringOr(text, LabelNumber, Unknown),
		Summary:       blockOr(text, LabelSummary, NoSummary, classificationLabels),
		Confidence:    confidenceOr(text, LabelConfidence),
	}
}

func stringOr(text, label, fallback string) string {
	if v, ok := formatting.Field(text, label); ok {
		return v
	}
	return fallback
}

func blockOr(text, label, fallback string, stops []string) string {
	if v, ok := formatting.Block(text, label, stops...); ok {
		return v
	}
	return fallback
}

func boolOr(text, label string) bool {
	v, _ := formatting.Bool(text, label)
	return v
}

func confidenceOr(text, label string) float64 {
	v, _ := formatting.Confidence(text, label)
	return v
}
