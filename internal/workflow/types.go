package workflow

import (
	"time"

	"github.com/JaimeStill/vigil/internal/prompts"
	"github.com/JaimeStill/vigil/internal/responses"
)

// StageResult records one executed stage.
type StageResult struct {
	Stage      prompts.Stage `json:"stage"`
	Confidence float64       `json:"confidence"`
	Duration   time.Duration `json:"duration"`
}

// Outcome is the combined result of the multi-stage pipeline. Confidence is
// the minimum across triage, detailed classification, location analysis, and
// the timely-warning result, where a skipped warning contributes its inert
// confidence of 0.
type Outcome struct {
	Triage         responses.Triage         `json:"triage"`
	Classification responses.Classification `json:"classification"`
	Location       responses.Location       `json:"location"`
	TimelyWarning  responses.TimelyWarning  `json:"timely_warning"`
	WarningRan     bool                     `json:"warning_ran"`
	Stages         []StageResult            `json:"stages"`
	Confidence     float64                  `json:"confidence"`
}
