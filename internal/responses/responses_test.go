package responses_test

import (
	"reflect"
	"testing"

	"github.com/JaimeStill/vigil/internal/responses"
)

const fullClassification = `Classification decision: Burglary
Is Clery: true
Needs more info: false
Location: Hall B, Room 214
Date: 2023-04-15
Time: 22:30
Report number: 2023-0415-07
Summary: Laptop taken from an unlocked dorm room.
Confidence: 0.82
Explanation: Unlawful entry into a residence hall room with intent to commit theft.`

func TestParseClassificationFull(t *testing.T) {
	got := responses.ParseClassification(fullClassification)

	want := responses.Classification{
		Category:      "Burglary",
		Explanation:   "Unlawful entry into a residence hall room with intent to commit theft.",
		Location:      "Hall B, Room 214",
		IsClery:       true,
		NeedsMoreInfo: false,
		Date:          "2023-04-15",
		Time:          "22:30",
		Number:        "2023-0415-07",
		Summary:       "Laptop taken from an unlocked dorm room.",
		Confidence:    0.82,
	}

	if got != want {
		t.Errorf("ParseClassification:\n got %+v\nwant %+v", got, want)
	}
}

func TestParseClassificationDefaults(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		check func(t *testing.T, c responses.Classification)
	}{
		{
			"empty completion",
			"",
			func(t *testing.T, c responses.Classification) {
				if c.Category != responses.Unknown {
					t.Errorf("category: got %s, want %s", c.Category, responses.Unknown)
				}
				if c.IsClery || c.NeedsMoreInfo {
					t.Error("booleans should default to false")
				}
				if c.Summary != responses.NoSummary {
					t.Errorf("summary: got %s, want %s", c.Summary, responses.NoSummary)
				}
				if c.Confidence != 0 {
					t.Errorf("confidence: got %v, want 0", c.Confidence)
				}
				if c.Location != responses.Unknown || c.Explanation != responses.Unknown {
					t.Error("strings should default to Unknown")
				}
			},
		},
		{
			"partial completion",
			"Classification decision: Theft\nIs Clery: maybe\n",
			func(t *testing.T, c responses.Classification) {
				if c.Category != "Theft" {
					t.Errorf("category: got %s, want Theft", c.Category)
				}
				if c.IsClery {
					t.Error("non-true boolean should be false")
				}
				if c.Date != responses.Unknown || c.Number != responses.Unknown {
					t.Error("missing extra fields should be Unknown")
				}
			},
		},
		{
			"prose without labels",
			"I am unable to classify this document.",
			func(t *testing.T, c responses.Classification) {
				if c.Category != responses.Unknown {
					t.Errorf("category: got %s", c.Category)
				}
			},
		},
		{
			"malformed confidence",
			"Confidence: very high",
			func(t *testing.T, c responses.Classification) {
				if c.Confidence != 0 {
					t.Errorf("confidence: got %v, want 0", c.Confidence)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, responses.ParseClassification(tt.text))
		})
	}
}

func TestParseClassificationExplanationBeforeFields(t *testing.T) {
	text := "Explanation: Items were stolen.\nThe door was forced.\nClassification decision: Burglary\nConfidence: 0.7"

	got := responses.ParseClassification(text)

	if got.Explanation != "Items were stolen.\nThe door was forced." {
		t.Errorf("explanation: got %q", got.Explanation)
	}
	if got.Category != "Burglary" {
		t.Errorf("category: got %s", got.Category)
	}
}

func TestParseTriage(t *testing.T) {
	text := `Top categories:
1. Burglary | Confidence: 0.8 | Key phrases: forced door, missing laptop
2. **Theft** | Confidence: 65% | Key phrases: stolen
this line is commentary
3) Vandalism | Confidence: 0.1
4. Arson | Confidence: 0.05 | Key phrases: smoke`

	got := responses.ParseTriage(text)

	want := []responses.Candidate{
		{Category: "Burglary", Confidence: 0.8, KeyPhrases: []string{"forced door", "missing laptop"}},
		{Category: "Theft", Confidence: 0.65, KeyPhrases: []string{"stolen"}},
		{Category: "Vandalism", Confidence: 0.1},
	}

	if !reflect.DeepEqual(got.Candidates, want) {
		t.Errorf("candidates:\n got %+v\nwant %+v", got.Candidates, want)
	}
	if got.Confidence() != 0.8 {
		t.Errorf("confidence: got %v, want 0.8", got.Confidence())
	}
}

func TestParseTriageNoMatches(t *testing.T) {
	got := responses.ParseTriage("The document is unreadable.")
	if len(got.Candidates) != 0 {
		t.Errorf("candidates: got %d, want 0", len(got.Candidates))
	}
	if got.Confidence() != 0 {
		t.Errorf("confidence: got %v, want 0", got.Confidence())
	}
}

func TestParseLocation(t *testing.T) {
	text := `Location: North parking structure
Is Clery geography: true
Confidence: 0.9
Reasoning: The structure is owned and operated by the institution.
Evidence:
- campus map lists the structure
- report cites campus police response`

	got := responses.ParseLocation(text)

	want := responses.Location{
		Location:         "North parking structure",
		IsCleryGeography: true,
		Confidence:       0.9,
		Reasoning:        "The structure is owned and operated by the institution.",
		Evidence:         []string{"campus map lists the structure", "report cites campus police response"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseLocation:\n got %+v\nwant %+v", got, want)
	}
}

func TestParseTimelyWarning(t *testing.T) {
	text := `Requires timely warning: true
Confidence: 0.75
Evidence: suspect not apprehended; weapon displayed
Explanation: An armed suspect remains at large near campus.`

	got := responses.ParseTimelyWarning(text)

	if !got.RequiresWarning {
		t.Error("requires warning: got false, want true")
	}
	if got.Confidence != 0.75 {
		t.Errorf("confidence: got %v, want 0.75", got.Confidence)
	}
	if got.Explanation != "An armed suspect remains at large near campus." {
		t.Errorf("explanation: got %q", got.Explanation)
	}
	if !reflect.DeepEqual(got.Evidence, []string{"suspect not apprehended", "weapon displayed"}) {
		t.Errorf("evidence: got %#v", got.Evidence)
	}
}

func TestParseTimelyWarningDecision(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Requires timely warning: true", true},
		{"requires TIMELY warning:  True ", true},
		{"Requires timely warning: false", false},
		{"Requires timely warning: yes", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := responses.ParseTimelyWarningDecision(tt.text); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInertTimelyWarning(t *testing.T) {
	got := responses.InertTimelyWarning()
	if got.RequiresWarning || got.Confidence != 0 || got.Explanation != "Not applicable - not a Clery crime" {
		t.Errorf("inert default: got %+v", got)
	}
}
