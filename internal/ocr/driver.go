package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/JaimeStill/vigil/pkg/metrics"
)

// Driver submits recognition jobs and polls them to completion.
type Driver struct {
	api     API
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Pipeline
}

// New creates a driver. cfg is expected to be finalized.
func New(api API, cfg Config, logger *slog.Logger, m *metrics.Pipeline) *Driver {
	return &Driver{
		api:     api,
		cfg:     cfg,
		logger:  logger.With("system", "ocr"),
		metrics: m,
	}
}

// Resolve parses a raw document location against the configured bucket.
func (d *Driver) Resolve(raw string) (Location, error) {
	return ParseLocation(raw, d.cfg.Bucket)
}

// Submit starts a form-extraction job for the document at loc and returns
// its identifier.
func (d *Driver) Submit(ctx context.Context, loc Location) (string, error) {
	callCtx, cancel := d.callContext(ctx)
	defer cancel()

	out, err := d.api.StartDocumentAnalysis(callCtx, &textract.StartDocumentAnalysisInput{
		DocumentLocation: &types.DocumentLocation{
			S3Object: &types.S3Object{
				Bucket: aws.String(loc.Bucket),
				Name:   aws.String(loc.Key),
			},
		},
		FeatureTypes: []types.FeatureType{types.FeatureTypeForms},
	})
	if err != nil {
		return "", &SubmissionError{Location: loc, Err: err}
	}

	id := aws.ToString(out.JobId)
	if id == "" {
		return "", &SubmissionError{Location: loc}
	}

	d.logger.InfoContext(ctx, "job submitted", "job_id", id, "location", loc.String())
	return id, nil
}

// Poll waits interval, then queries the job, up to maxAttempts times. On
// success it gathers every result page and returns the reconstructed field
// map without further status queries. Transport errors end polling at once.
func (d *Driver) Poll(ctx context.Context, jobID string, maxAttempts int, interval time.Duration) (FieldMap, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := sleep(ctx, interval); err != nil {
			return nil, err
		}

		out, err := d.get(ctx, jobID, nil)
		if err != nil {
			return nil, fmt.Errorf("poll job %s: %w", jobID, err)
		}

		d.metrics.ObservePoll(string(out.JobStatus))

		switch out.JobStatus {
		case types.JobStatusSucceeded, types.JobStatusPartialSuccess:
			if out.JobStatus == types.JobStatusPartialSuccess {
				d.logger.WarnContext(ctx, "job partially succeeded", "job_id", jobID, "message", aws.ToString(out.StatusMessage))
			}

			blocks, err := d.collect(ctx, jobID, out)
			if err != nil {
				return nil, err
			}

			fields := Reconstruct(FromTextract(blocks))
			d.metrics.ObserveJob("succeeded")
			d.logger.InfoContext(ctx, "job succeeded",
				"job_id", jobID,
				"attempts", attempt,
				"blocks", len(blocks),
				"fields", len(fields),
			)
			return Fields(fields), nil

		case types.JobStatusFailed:
			msg := strings.TrimSpace(aws.ToString(out.StatusMessage))
			if msg == "" {
				msg = DefaultFailureMessage
			}
			d.metrics.ObserveJob("failed")
			return nil, &JobFailedError{JobID: jobID, Message: msg}
		}

		d.logger.DebugContext(ctx, "job in progress", "job_id", jobID, "attempt", attempt)
	}

	d.metrics.ObserveJob("timeout")
	return nil, &JobTimeoutError{JobID: jobID, Attempts: maxAttempts}
}

// Analyze submits a form-extraction job for raw and polls it with the
// configured attempt budget.
func (d *Driver) Analyze(ctx context.Context, raw string) (FieldMap, error) {
	loc, err := d.Resolve(raw)
	if err != nil {
		return nil, err
	}

	id, err := d.Submit(ctx, loc)
	if err != nil {
		return nil, err
	}

	return d.Poll(ctx, id, d.cfg.MaxAttempts, d.cfg.PollIntervalDuration())
}

// DetectText runs synchronous plain-text detection and returns the document's
// lines joined by newlines.
func (d *Driver) DetectText(ctx context.Context, raw string) (string, error) {
	loc, err := d.Resolve(raw)
	if err != nil {
		return "", err
	}

	callCtx, cancel := d.callContext(ctx)
	defer cancel()

	out, err := d.api.DetectDocumentText(callCtx, &textract.DetectDocumentTextInput{
		Document: &types.Document{
			S3Object: &types.S3Object{
				Bucket: aws.String(loc.Bucket),
				Name:   aws.String(loc.Key),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("detect text %s: %w", loc, err)
	}

	text := Lines(FromTextract(out.Blocks))
	d.logger.InfoContext(ctx, "text detected", "location", loc.String(), "bytes", len(text))
	return text, nil
}

func (d *Driver) collect(ctx context.Context, jobID string, first *textract.GetDocumentAnalysisOutput) ([]types.Block, error) {
	blocks := append([]types.Block(nil), first.Blocks...)
	token := first.NextToken

	for aws.ToString(token) != "" {
		page, err := d.get(ctx, jobID, token)
		if err != nil {
			return nil, fmt.Errorf("fetch results for job %s: %w", jobID, err)
		}
		blocks = append(blocks, page.Blocks...)
		token = page.NextToken
	}

	return blocks, nil
}

func (d *Driver) get(ctx context.Context, jobID string, token *string) (*textract.GetDocumentAnalysisOutput, error) {
	callCtx, cancel := d.callContext(ctx)
	defer cancel()

	return d.api.GetDocumentAnalysis(callCtx, &textract.GetDocumentAnalysisInput{
		JobId:     aws.String(jobID),
		NextToken: token,
	})
}

func (d *Driver) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if t := d.cfg.TimeoutDuration(); t > 0 {
		return context.WithTimeout(ctx, t)
	}
	return context.WithCancel(ctx)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
