package populator

import "errors"

var (
	ErrUnknownStrategy = errors.New("unknown populator strategy")
	ErrMissingDeps     = errors.New("strategy dependencies required")
)
