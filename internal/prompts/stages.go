// Package prompts renders the textual prompts sent to the inference service.
// Each prompt combines stage instructions, the stage's output specification,
// and the document context; all builders are pure functions.
package prompts

import (
	"errors"
	"slices"
)

// ErrInvalidStage is returned for an unrecognized stage name.
var ErrInvalidStage = errors.New("stage must be classify, triage, detail, location, or warning")

// Stage identifies the pipeline stage a prompt targets.
type Stage string

// Pipeline stages.
const (
	StageClassify Stage = "classify"
	StageTriage   Stage = "triage"
	StageDetail   Stage = "detail"
	StageLocation Stage = "location"
	StageWarning  Stage = "warning"
)

var stages = []Stage{
	StageClassify,
	StageTriage,
	StageDetail,
	StageLocation,
	StageWarning,
}

// Stages returns the list of valid stages.
func Stages() []Stage {
	return stages
}

// ParseStage validates a string as a known stage.
func ParseStage(s string) (Stage, error) {
	v := Stage(s)
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}
