package responses

import (
	"regexp"
	"strings"

	"github.com/JaimeStill/vigil/pkg/formatting"
)

// MaxCandidates bounds the number of triage candidates kept from a completion.
const MaxCandidates = 3

var candidatePattern = regexp.MustCompile(
	`(?im)^[ \t*_-]*(\d+)[.)][ \t]*(.+?)[ \t]*\|[ \t]*confidence[ \t]*:[ \t]*([^|\r\n]+?)[ \t]*` +
		`(?:\|[ \t]*key[ \t]+phrases[ \t]*:[ \t]*(.*?))?[ \t\r]*$`,
)

// Candidate is one ranked category proposed by broad triage.
type Candidate struct {
	Category   string   `json:"category"`
	Confidence float64  `json:"confidence"`
	KeyPhrases []string `json:"key_phrases"`
}

// Triage holds the ranked candidates of the broad triage stage.
type Triage struct {
	Candidates []Candidate `json:"candidates"`
}

// Confidence returns the confidence of the strongest candidate, or 0 when
// triage produced none.
func (t Triage) Confidence() float64 {
	var best float64
	for _, c := range t.Candidates {
		best = max(best, c.Confidence)
	}
	return best
}

// Names returns the candidate category names in rank order.
func (t Triage) Names() []string {
	names := make([]string, 0, len(t.Candidates))
	for _, c := range t.Candidates {
		names = append(names, c.Category)
	}
	return names
}

// ParseTriage extracts up to MaxCandidates enumerated candidate lines of the
// form "1. <category> | Confidence: <score> | Key phrases: a, b". Lines that
// do not match are skipped.
func ParseTriage(text string) Triage {
	var t Triage

	for _, m := range candidatePattern.FindAllStringSubmatch(text, -1) {
		if len(t.Candidates) == MaxCandidates {
			break
		}

		name := strings.Trim(m[2], "*_` \t\"")
		if name == "" {
			continue
		}

		conf, _ := formatting.ParseConfidence(m[3])

		t.Candidates = append(t.Candidates, Candidate{
			Category:   name,
			Confidence: conf,
			KeyPhrases: splitPhrases(m[4]),
		})
	}

	return t
}

func splitPhrases(raw string) []string {
	var phrases []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.Trim(p, "*_` \t\"'"); p != "" {
			phrases = append(phrases, p)
		}
	}
	return phrases
}
