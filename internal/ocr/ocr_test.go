package ocr_test

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/JaimeStill/vigil/internal/ocr"
)

type fakeAPI struct {
	jobID    *string
	startErr error

	statuses []types.JobStatus
	message  *string
	pages    [][]types.Block
	getErr   error

	detect []types.Block

	statusQueries int
	pageQueries   int
	tokens        []string
	started       *textract.StartDocumentAnalysisInput
}

func (f *fakeAPI) StartDocumentAnalysis(_ context.Context, in *textract.StartDocumentAnalysisInput, _ ...func(*textract.Options)) (*textract.StartDocumentAnalysisOutput, error) {
	f.started = in
	if f.startErr != nil {
		return nil, f.startErr
	}
	return &textract.StartDocumentAnalysisOutput{JobId: f.jobID}, nil
}

func (f *fakeAPI) GetDocumentAnalysis(_ context.Context, in *textract.GetDocumentAnalysisInput, _ ...func(*textract.Options)) (*textract.GetDocumentAnalysisOutput, error) {
	if f.getErr != nil {
		f.statusQueries++
		return nil, f.getErr
	}

	if token := aws.ToString(in.NextToken); token != "" {
		f.pageQueries++
		f.tokens = append(f.tokens, token)
		return f.page(f.pageQueries), nil
	}

	status := f.statuses[min(f.statusQueries, len(f.statuses)-1)]
	f.statusQueries++

	out := &textract.GetDocumentAnalysisOutput{JobStatus: status, StatusMessage: f.message}
	if status == types.JobStatusSucceeded {
		first := f.page(0)
		out.Blocks = first.Blocks
		out.NextToken = first.NextToken
	}
	return out, nil
}

func (f *fakeAPI) DetectDocumentText(_ context.Context, _ *textract.DetectDocumentTextInput, _ ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error) {
	return &textract.DetectDocumentTextOutput{Blocks: f.detect}, nil
}

func (f *fakeAPI) page(i int) *textract.GetDocumentAnalysisOutput {
	out := &textract.GetDocumentAnalysisOutput{JobStatus: types.JobStatusSucceeded}
	if i < len(f.pages) {
		out.Blocks = f.pages[i]
	}
	if i+1 < len(f.pages) {
		out.NextToken = aws.String("page-" + string(rune('1'+i)))
	}
	return out
}

func word(id, text string) types.Block {
	return types.Block{BlockType: types.BlockTypeWord, Id: aws.String(id), Text: aws.String(text)}
}

func kv(id string, entity types.EntityType, conf float32, children []string, value string) types.Block {
	b := types.Block{
		BlockType:   types.BlockTypeKeyValueSet,
		Id:          aws.String(id),
		Confidence:  aws.Float32(conf),
		Page:        aws.Int32(1),
		EntityTypes: []types.EntityType{entity},
		Relationships: []types.Relationship{
			{Type: types.RelationshipTypeChild, Ids: children},
		},
	}
	if value != "" {
		b.Relationships = append(b.Relationships, types.Relationship{Type: types.RelationshipTypeValue, Ids: []string{value}})
	}
	return b
}

func incidentDateBlocks() []types.Block {
	return []types.Block{
		kv("k1", types.EntityTypeKey, 95, []string{"w1", "w2"}, "v1"),
		kv("v1", types.EntityTypeValue, 90, []string{"w3", "w4"}, ""),
		word("w1", "Incident"),
		word("w2", "Date"),
		word("w3", "2023-"),
		word("w4", "04-15"),
	}
}

func newDriver(api ocr.API) *ocr.Driver {
	cfg := ocr.Config{Bucket: "reports", MaxAttempts: 5}
	return ocr.New(api, cfg, slog.New(slog.DiscardHandler), nil)
}

func TestReconstructIncidentDate(t *testing.T) {
	fields := ocr.Reconstruct(ocr.FromTextract(incidentDateBlocks()))

	want := []ocr.FormField{{Key: "Incident Date", Value: "2023- 04-15", Page: 1, Confidence: 90}}
	if !reflect.DeepEqual(fields, want) {
		t.Errorf("Reconstruct: got %+v, want %+v", fields, want)
	}
}

func TestReconstructDropsUnpairedKeys(t *testing.T) {
	blocks := []types.Block{
		kv("k1", types.EntityTypeKey, 80, []string{"w1"}, ""),
		word("w1", "Orphan"),
	}

	if fields := ocr.Reconstruct(ocr.FromTextract(blocks)); len(fields) != 0 {
		t.Errorf("unpaired key: got %+v, want none", fields)
	}
}

func TestFieldsLastWriteWins(t *testing.T) {
	m := ocr.Fields([]ocr.FormField{
		{Key: "Name", Value: "first"},
		{Key: "Name", Value: "second"},
		{Key: "Room", Value: "214"},
	})

	want := ocr.FieldMap{"Name": "second", "Room": "214"}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("Fields: got %v, want %v", m, want)
	}
}

func TestPollSucceedsAfterNQueries(t *testing.T) {
	api := &fakeAPI{
		statuses: []types.JobStatus{
			types.JobStatusInProgress,
			types.JobStatusInProgress,
			types.JobStatusSucceeded,
		},
		pages: [][]types.Block{incidentDateBlocks()},
	}

	fields, err := newDriver(api).Poll(context.Background(), "job-1", 5, 0)
	if err != nil {
		t.Fatalf("Poll: unexpected error %v", err)
	}

	if api.statusQueries != 3 {
		t.Errorf("status queries: got %d, want 3", api.statusQueries)
	}
	if fields["Incident Date"] != "2023- 04-15" {
		t.Errorf("fields: got %v", fields)
	}
}

func TestPollCollectsAllPages(t *testing.T) {
	blocks := incidentDateBlocks()
	api := &fakeAPI{
		statuses: []types.JobStatus{types.JobStatusSucceeded},
		pages: [][]types.Block{
			blocks[:2],
			blocks[2:4],
			blocks[4:],
		},
	}

	fields, err := newDriver(api).Poll(context.Background(), "job-1", 5, 0)
	if err != nil {
		t.Fatalf("Poll: unexpected error %v", err)
	}

	if api.statusQueries != 1 {
		t.Errorf("status queries: got %d, want 1", api.statusQueries)
	}
	if !reflect.DeepEqual(api.tokens, []string{"page-1", "page-2"}) {
		t.Errorf("tokens: got %v", api.tokens)
	}
	if fields["Incident Date"] != "2023- 04-15" {
		t.Errorf("fields: got %v", fields)
	}
}

func TestPollTimeout(t *testing.T) {
	api := &fakeAPI{statuses: []types.JobStatus{types.JobStatusInProgress}}

	_, err := newDriver(api).Poll(context.Background(), "job-1", 4, 0)

	var timeout *ocr.JobTimeoutError
	if !errors.As(err, &timeout) {
		t.Fatalf("Poll: got %v, want JobTimeoutError", err)
	}
	if timeout.Attempts != 4 {
		t.Errorf("attempts: got %d, want 4", timeout.Attempts)
	}
	if !errors.Is(err, ocr.ErrJobTimeout) {
		t.Error("timeout error should match ErrJobTimeout")
	}
	if api.statusQueries != 4 {
		t.Errorf("status queries: got %d, want 4", api.statusQueries)
	}
}

func TestPollJobFailed(t *testing.T) {
	tests := []struct {
		name    string
		message *string
		want    string
	}{
		{"service message", aws.String("unsupported document format"), "unsupported document format"},
		{"no message", nil, ocr.DefaultFailureMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{
				statuses: []types.JobStatus{types.JobStatusInProgress, types.JobStatusFailed},
				message:  tt.message,
			}

			_, err := newDriver(api).Poll(context.Background(), "job-1", 5, 0)

			var failed *ocr.JobFailedError
			if !errors.As(err, &failed) {
				t.Fatalf("Poll: got %v, want JobFailedError", err)
			}
			if failed.Message != tt.want {
				t.Errorf("message: got %q, want %q", failed.Message, tt.want)
			}
			if api.statusQueries != 2 {
				t.Errorf("status queries: got %d, want 2", api.statusQueries)
			}
		})
	}
}

func TestPollTransportErrorStopsImmediately(t *testing.T) {
	denied := errors.New("access denied")
	api := &fakeAPI{getErr: denied}

	_, err := newDriver(api).Poll(context.Background(), "job-1", 5, 0)

	if !errors.Is(err, denied) {
		t.Fatalf("Poll: got %v, want wrapped transport error", err)
	}
	if api.statusQueries != 1 {
		t.Errorf("status queries: got %d, want 1", api.statusQueries)
	}
}

func TestPollCancelled(t *testing.T) {
	api := &fakeAPI{statuses: []types.JobStatus{types.JobStatusInProgress}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newDriver(api).Poll(ctx, "job-1", 5, 0)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Poll: got %v, want context.Canceled", err)
	}
	if api.statusQueries != 0 {
		t.Errorf("status queries: got %d, want 0", api.statusQueries)
	}
}

func TestSubmit(t *testing.T) {
	t.Run("returns job id", func(t *testing.T) {
		api := &fakeAPI{jobID: aws.String("job-9")}

		id, err := newDriver(api).Submit(context.Background(), ocr.Location{Bucket: "reports", Key: "a.pdf"})
		if err != nil {
			t.Fatalf("Submit: unexpected error %v", err)
		}
		if id != "job-9" {
			t.Errorf("id: got %s, want job-9", id)
		}
		if !reflect.DeepEqual(api.started.FeatureTypes, []types.FeatureType{types.FeatureTypeForms}) {
			t.Errorf("feature types: got %v", api.started.FeatureTypes)
		}
	})

	t.Run("missing job id", func(t *testing.T) {
		api := &fakeAPI{}

		_, err := newDriver(api).Submit(context.Background(), ocr.Location{Bucket: "reports", Key: "a.pdf"})

		var sub *ocr.SubmissionError
		if !errors.As(err, &sub) {
			t.Fatalf("Submit: got %v, want SubmissionError", err)
		}
		if !errors.Is(err, ocr.ErrSubmission) {
			t.Error("submission error should match ErrSubmission")
		}
	})

	t.Run("service error", func(t *testing.T) {
		throttled := errors.New("throttled")
		api := &fakeAPI{startErr: throttled}

		_, err := newDriver(api).Submit(context.Background(), ocr.Location{Bucket: "reports", Key: "a.pdf"})
		if !errors.Is(err, throttled) || !errors.Is(err, ocr.ErrSubmission) {
			t.Errorf("Submit: got %v, want both submission and cause", err)
		}
	})
}

func TestAnalyze(t *testing.T) {
	api := &fakeAPI{
		jobID:    aws.String("job-1"),
		statuses: []types.JobStatus{types.JobStatusSucceeded},
		pages:    [][]types.Block{incidentDateBlocks()},
	}

	fields, err := newDriver(api).Analyze(context.Background(), "uploads/report.pdf")
	if err != nil {
		t.Fatalf("Analyze: unexpected error %v", err)
	}

	if got := aws.ToString(api.started.DocumentLocation.S3Object.Bucket); got != "reports" {
		t.Errorf("bucket: got %s, want reports", got)
	}
	if len(fields) != 1 {
		t.Errorf("fields: got %v", fields)
	}
}

func TestDetectText(t *testing.T) {
	api := &fakeAPI{detect: []types.Block{
		{BlockType: types.BlockTypePage, Id: aws.String("p")},
		{BlockType: types.BlockTypeLine, Id: aws.String("l1"), Text: aws.String("Incident Report")},
		word("w1", "Incident"),
		{BlockType: types.BlockTypeLine, Id: aws.String("l2"), Text: aws.String("Date: 2023-04-15")},
	}}

	text, err := newDriver(api).DetectText(context.Background(), "s3://other/report.png")
	if err != nil {
		t.Fatalf("DetectText: unexpected error %v", err)
	}
	if text != "Incident Report\nDate: 2023-04-15" {
		t.Errorf("text: got %q", text)
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		raw     string
		bucket  string
		want    ocr.Location
		wantErr bool
	}{
		{"s3://reports/2024/a.pdf", "", ocr.Location{Bucket: "reports", Key: "2024/a.pdf"}, false},
		{"2024/a.pdf", "default", ocr.Location{Bucket: "default", Key: "2024/a.pdf"}, false},
		{"/2024/a.pdf", "default", ocr.Location{Bucket: "default", Key: "2024/a.pdf"}, false},
		{"2024/a.pdf", "", ocr.Location{}, true},
		{"s3://reports", "", ocr.Location{}, true},
		{"  ", "default", ocr.Location{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ocr.ParseLocation(tt.raw, tt.bucket)
			if tt.wantErr {
				if !errors.Is(err, ocr.ErrInvalidLocation) {
					t.Errorf("got %v, want ErrInvalidLocation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Setenv("TEST_OCR_MAX_ATTEMPTS", "12")

	cfg := ocr.Config{}
	if err := cfg.Finalize(&ocr.Env{MaxAttempts: "TEST_OCR_MAX_ATTEMPTS"}); err != nil {
		t.Fatalf("Finalize: unexpected error %v", err)
	}

	if cfg.MaxAttempts != 12 {
		t.Errorf("max attempts: got %d, want 12", cfg.MaxAttempts)
	}
	if cfg.PollIntervalDuration().Seconds() != 5 {
		t.Errorf("poll interval: got %v, want 5s", cfg.PollIntervalDuration())
	}

	bad := ocr.Config{PollInterval: "soon"}
	if err := bad.Finalize(nil); err == nil {
		t.Error("invalid poll interval should fail validation")
	}
}
