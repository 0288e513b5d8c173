package ocr

import (
	"errors"
	"fmt"
)

var (
	ErrSubmission      = errors.New("ocr job submission failed")
	ErrJobFailed       = errors.New("ocr job failed")
	ErrJobTimeout      = errors.New("ocr job timed out")
	ErrInvalidLocation = errors.New("invalid document location")
)

// DefaultFailureMessage is reported when a failed job carries no message.
const DefaultFailureMessage = "OCR job failed"

// SubmissionError reports a job that could not be created.
type SubmissionError struct {
	Location Location
	Err      error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrSubmission, e.Location, e.Err)
	}
	return fmt.Sprintf("%s: %s: no job identifier returned", ErrSubmission, e.Location)
}

func (e *SubmissionError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrSubmission, e.Err}
	}
	return []error{ErrSubmission}
}

// JobFailedError reports a job the service marked as failed.
type JobFailedError struct {
	JobID   string
	Message string
}

func (e *JobFailedError) Error() string {
	return fmt.Sprintf("job %s: %s", e.JobID, e.Message)
}

func (e *JobFailedError) Unwrap() error { return ErrJobFailed }

// JobTimeoutError reports a job that was still running after every allowed
// poll attempt.
type JobTimeoutError struct {
	JobID    string
	Attempts int
}

func (e *JobTimeoutError) Error() string {
	return fmt.Sprintf("%s: job %s still in progress after %d attempts", ErrJobTimeout, e.JobID, e.Attempts)
}

func (e *JobTimeoutError) Unwrap() error { return ErrJobTimeout }
