package prompts

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/vigil/internal/responses"
)

// ExtraField is an additional labeled line requested from the model after the
// location line of a classification answer.
type ExtraField struct {
	Label       string
	Instruction string
}

// DefaultExtraFields are the incident details the default strategy requests
// alongside the classification decision.
var DefaultExtraFields = []ExtraField{
	{Label: responses.LabelDate, Instruction: "date of the incident as written in the report, or Unknown"},
	{Label: responses.LabelTime, Instruction: "time of the incident as written in the report, or Unknown"},
	{Label: responses.LabelNumber, Instruction: "the report or case number, or \"not provided\""},
	{Label: responses.LabelSummary, Instruction: "one sentence summarizing the incident"},
}

const formatPreamble = "Respond using exactly these labeled lines, one label per line, and nothing else:"

func line(label, instruction string) string {
	return fmt.Sprintf("%s: <%s>", label, instruction)
}

func classificationSpec(extra []ExtraField) string {
	lines := []string{
		formatPreamble,
		line(responses.LabelCategory, "exactly one category name from the list"),
		line(responses.LabelIsClery, "true or false"),
		line(responses.LabelNeedsMoreInfo, "true or false"),
		line(responses.LabelLocation, "where the incident occurred, or Unknown"),
	}
	for _, f := range extra {
		lines = append(lines, line(f.Label, f.Instruction))
	}
	lines = append(lines,
		line(responses.LabelConfidence, "a number between 0 and 1"),
		line(responses.LabelExplanation, "at most three sentences justifying the decision"),
	)
	return strings.Join(lines, "\n")
}

var triageSpec = strings.Join([]string{
	"Respond with the heading and exactly three numbered lines, best match first:",
	responses.LabelTopCategories + ":",
	"1. <category name> | Confidence: <a number between 0 and 1> | Key phrases: <comma-separated phrases from the report>",
	"2. <category name> | Confidence: <a number between 0 and 1> | Key phrases: <comma-separated phrases from the report>",
	"3. <category name> | Confidence: <a number between 0 and 1> | Key phrases: <comma-separated phrases from the report>",
}, "\n")

var locationSpec = strings.Join([]string{
	formatPreamble,
	line(responses.LabelLocation, "the most specific location described, or Unknown"),
	line(responses.LabelIsCleryGeography, "true or false"),
	line(responses.LabelConfidence, "a number between 0 and 1"),
	line(responses.LabelReasoning, "at most three sentences"),
	responses.LabelEvidence + ":",
	"- <a phrase from the report supporting the decision>",
}, "\n")

var warningSpec = strings.Join([]string{
	formatPreamble,
	line(responses.LabelRequiresWarning, "true or false"),
	line(responses.LabelConfidence, "a number between 0 and 1"),
	responses.LabelEvidence + ":",
	"- <a phrase from the report supporting the decision>",
	line(responses.LabelExplanation, "at most three sentences"),
}, "\n")

// Spec returns the output format specification for a stage. Classification
// and detail stages use DefaultExtraFields.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	switch stage {
	case StageClassify, StageDetail:
		return classificationSpec(DefaultExtraFields), nil
	case StageTriage:
		return triageSpec, nil
	case StageLocation:
		return locationSpec, nil
	case StageWarning:
		return warningSpec, nil
	default:
		return "", ErrInvalidStage
	}
}
