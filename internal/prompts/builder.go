package prompts

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/vigil/internal/catalog"
	"github.com/JaimeStill/vigil/internal/responses"
)

func compose(instructions, catalogue, context, document, spec string) string {
	var b strings.Builder

	b.WriteString(instructions)
	b.WriteString("\n\n")

	if catalogue != "" {
		b.WriteString("Categories (tab-separated, name: description):\n")
		b.WriteString(catalogue)
		b.WriteString("\n\n")
	}

	if context != "" {
		b.WriteString(context)
		b.WriteString("\n\n")
	}

	b.WriteString("Report:\n\"\"\"\n")
	b.WriteString(strings.TrimSpace(document))
	b.WriteString("\n\"\"\"\n\n")

	b.WriteString(spec)
	return b.String()
}

// Classification renders the single-pass classification prompt. The model is
// asked to answer with the category, Clery, needs-more-info, and location
// lines, then each extra field in order, then confidence and explanation.
func Classification(documentText string, cats []catalog.Category, extra []ExtraField) string {
	return compose(
		classifyInstructions,
		catalog.Render(cats),
		"",
		documentText,
		classificationSpec(extra),
	)
}

// TimelyWarning renders the timely-warning decision prompt.
func TimelyWarning(documentText string) string {
	return compose(warningInstructions, "", "", documentText, warningSpec)
}

// Triage renders the broad triage prompt listing the full catalogue.
func Triage(documentText string, cats []catalog.Category) string {
	return compose(triageInstructions, catalog.Render(cats), "", documentText, triageSpec)
}

// Detailed renders the detailed classification prompt with the triage
// ranking as context. An empty triage omits the context section.
func Detailed(documentText string, cats []catalog.Category, triage responses.Triage) string {
	return compose(
		detailInstructions,
		catalog.Render(cats),
		triageContext(triage),
		documentText,
		classificationSpec(DefaultExtraFields),
	)
}

// Location renders the geography-only analysis prompt.
func Location(documentText string) string {
	return compose(locationInstructions, "", "", documentText, locationSpec)
}

func triageContext(t responses.Triage) string {
	if len(t.Candidates) == 0 {
		return ""
	}

	lines := []string{"Preliminary triage:"}
	for i, c := range t.Candidates {
		entry := fmt.Sprintf("%d. %s | Confidence: %.2f", i+1, c.Category, c.Confidence)
		if len(c.KeyPhrases) > 0 {
			entry += " | Key phrases: " + strings.Join(c.KeyPhrases, ", ")
		}
		lines = append(lines, entry)
	}
	return strings.Join(lines, "\n")
}
