package workflow

import (
	"errors"

	"github.com/JaimeStill/vigil/internal/prompts"
)

var (
	ErrTriageFailed   = errors.New("triage failed")
	ErrDetailFailed   = errors.New("detailed classification failed")
	ErrLocationFailed = errors.New("location analysis failed")
	ErrWarningFailed  = errors.New("timely warning analysis failed")
	ErrClassifyFailed = errors.New("classification failed")
)

var stageErrors = map[prompts.Stage]error{
	prompts.StageTriage:   ErrTriageFailed,
	prompts.StageDetail:   ErrDetailFailed,
	prompts.StageLocation: ErrLocationFailed,
	prompts.StageWarning:  ErrWarningFailed,
	prompts.StageClassify: ErrClassifyFailed,
}
