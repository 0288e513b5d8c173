package responses

import "github.com/JaimeStill/vigil/pkg/formatting"

// NotApplicable is the explanation carried by the inert timely-warning result.
const NotApplicable = "Not applicable - not a Clery crime"

// TimelyWarning is the typed result of the timely-warning stage.
type TimelyWarning struct {
	RequiresWarning bool     `json:"requires_warning"`
	Confidence      float64  `json:"confidence"`
	Explanation     string   `json:"explanation"`
	Evidence        []string `json:"evidence"`
}

// InertTimelyWarning is the result used when the timely-warning stage does
// not apply because the incident is not a Clery crime.
func InertTimelyWarning() TimelyWarning {
	return TimelyWarning{Explanation: NotApplicable}
}

// ParseTimelyWarningDecision reads only the decision line of a timely-warning
// completion. A missing or malformed decision is false.
func ParseTimelyWarningDecision(text string) bool {
	return boolOr(text, LabelRequiresWarning)
}

// ParseTimelyWarning extracts the full TimelyWarning result.
func ParseTimelyWarning(text string) TimelyWarning {
	return TimelyWarning{
		RequiresWarning: ParseTimelyWarningDecision(text),
		Confidence:      confidenceOr(text, LabelConfidence),
		Explanation:     blockOr(text, LabelExplanation, Unknown, warningLabels),
		Evidence:        listOf(text, LabelEvidence, warningLabels),
	}
}

func listOf(text, label string, stops []string) []string {
	return formatting.List(text, label, stops...)
}
