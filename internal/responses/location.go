package responses

// Location is the typed result of the geography analysis stage.
type Location struct {
	Location         string   `json:"location"`
	IsCleryGeography bool     `json:"is_clery_geography"`
	Confidence       float64  `json:"confidence"`
	Reasoning        string   `json:"reasoning"`
	Evidence         []string `json:"evidence"`
}

// ParseLocation extracts a Location from a geography analysis completion.
func ParseLocation(text string) Location {
	return Location{
		Location:         stringOr(text, LabelLocation, Unknown),
		IsCleryGeography: boolOr(text, LabelIsCleryGeography),
		Confidence:       confidenceOr(text, LabelConfidence),
		Reasoning:        blockOr(text, LabelReasoning, Unknown, locationLabels),
		Evidence:         listOf(text, LabelEvidence, locationLabels),
	}
}
