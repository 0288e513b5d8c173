// Package catalog defines the incident category catalogue a tenant
// classifies against, including the synthetic categories appended to every
// catalogue at classification time.
package catalog

import "strings"

// Synthetic category names.
const (
	NeedsMoreInfo  = "Needs More Info"
	NoneOfTheAbove = "None of the Above"
)

// Category is a single catalogue entry. Confidence is only populated while a
// document moves through the classification pipeline.
type Category struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Confidence  *float64 `json:"confidence,omitempty"`
}

// Synthetic returns the categories appended to every tenant catalogue.
func Synthetic() []Category {
	return []Category{
		{
			Name:        NeedsMoreInfo,
			Description: "The report does not contain enough information to choose a category with confidence.",
		},
		{
			Name:        NoneOfTheAbove,
			Description: "The report describes an incident that fits none of the listed categories.",
		},
	}
}

// WithSynthetic returns a copy of cats with the synthetic categories appended.
// A synthetic category the tenant already configured is not duplicated.
func WithSynthetic(cats []Category) []Category {
	out := make([]Category, 0, len(cats)+2)
	out = append(out, cats...)

	for _, s := range Synthetic() {
		if !contains(cats, s.Name) {
			out = append(out, s)
		}
	}
	return out
}

// Render joins the catalogue into the tab-separated "name: description" form
// embedded in prompts.
func Render(cats []Category) string {
	entries := make([]string, 0, len(cats))
	for _, c := range cats {
		entry := strings.TrimSpace(c.Name)
		if d := strings.TrimSpace(c.Description); d != "" {
			entry += ": " + d
		}
		entries = append(entries, entry)
	}
	return strings.Join(entries, "\t")
}

// Is reports whether name refers to target, ignoring case and surrounding
// whitespace.
func Is(name, target string) bool {
	return strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(target))
}

func contains(cats []Category, name string) bool {
	for _, c := range cats {
		if Is(c.Name, name) {
			return true
		}
	}
	return false
}
