package inference

import (
	"errors"
	"fmt"
)

var (
	ErrTransport       = errors.New("inference transport failure")
	ErrUnknownProvider = errors.New("unknown inference provider")
)

// TransportError reports a failed call to the inference service. It matches
// both ErrTransport and the underlying cause.
type TransportError struct {
	Provider Provider
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTransport, e.Provider, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}
