package incidents

import (
	"context"
	"errors"
	"net/http"

	"github.com/JaimeStill/vigil/internal/inference"
	"github.com/JaimeStill/vigil/internal/ocr"
	"github.com/JaimeStill/vigil/internal/populator"
)

// Domain errors for incident operations.
var (
	ErrNotFound       = errors.New("incident not found")
	ErrDuplicate      = errors.New("incident already exists")
	ErrInvalidCommand = errors.New("invalid process command")
	ErrInvalidID      = errors.New("invalid incident id")
)

// MapHTTPStatus maps incident and pipeline errors to HTTP status codes.
// Failures of the OCR or inference services surface as gateway errors.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCommand),
		errors.Is(err, ErrInvalidID),
		errors.Is(err, ocr.ErrInvalidLocation),
		errors.Is(err, populator.ErrUnknownStrategy):
		return http.StatusBadRequest
	case errors.Is(err, ocr.ErrJobTimeout),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, ocr.ErrSubmission),
		errors.Is(err, ocr.ErrJobFailed),
		errors.Is(err, inference.ErrTransport):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
