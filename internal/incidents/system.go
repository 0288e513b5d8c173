package incidents

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/vigil/internal/populator"
	"github.com/JaimeStill/vigil/pkg/metrics"
)

// System defines the public contract for incident operations.
type System interface {
	Handler() *Handler

	Find(ctx context.Context, id uuid.UUID) (*Incident, error)
	Process(ctx context.Context, id uuid.UUID, cmd ProcessCommand) (*Result, error)
}

type service struct {
	store   Store
	factory *populator.Factory
	logger  *slog.Logger
	metrics *metrics.Pipeline
	timeout time.Duration
}

// New creates the incident System. A positive timeout bounds each pipeline
// run, including every OCR poll and inference call it makes.
func New(
	store Store,
	factory *populator.Factory,
	logger *slog.Logger,
	m *metrics.Pipeline,
	timeout time.Duration,
) System {
	return &service{
		store:   store,
		factory: factory,
		logger:  logger.With("system", "incidents"),
		metrics: m,
		timeout: timeout,
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) Find(ctx context.Context, id uuid.UUID) (*Incident, error) {
	return s.store.Find(ctx, id)
}

// Process extracts and classifies the incident's document with the tenant's
// strategy and merges the resulting fields. On failure the incident keeps the
// status of the last stage it reached.
func (s *service) Process(ctx context.Context, id uuid.UUID, cmd ProcessCommand) (*Result, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	inc := populator.Incident{ID: id, Tenant: cmd.Tenant, StorageKey: cmd.StorageKey}
	strategy := s.factory.For(cmd.Tenant)
	start := time.Now()

	logger := s.logger.With("incident_id", id, "tenant", cmd.Tenant, "strategy", strategy.Name())

	fail := func(stage string, err error) (*Result, error) {
		s.metrics.ObserveRun(strategy.Name(), "failure", time.Since(start))
		logger.ErrorContext(ctx, "incident processing failed", "stage", stage, "error", err)
		return nil, fmt.Errorf("process incident %s: %s: %w", id, stage, err)
	}

	if err := s.store.SetStatus(ctx, inc, populator.StatusUploading); err != nil {
		return fail("upload", err)
	}

	extraction, err := strategy.RunOCR(ctx, cmd.StorageKey)
	if err != nil {
		return fail("ocr", err)
	}

	if err := s.store.SetStatus(ctx, inc, populator.StatusClassifying); err != nil {
		return fail("classification", err)
	}

	fields, err := strategy.PopulateIncidentDetails(ctx, extraction, inc, cmd.Categories)
	if err != nil {
		return fail("classification", err)
	}

	merged, err := s.store.Merge(ctx, id, strategy.Name(), fields)
	if err != nil {
		return fail("merge", err)
	}

	s.metrics.ObserveRun(strategy.Name(), "success", time.Since(start))
	logger.InfoContext(ctx, "incident processed",
		"category", fields.Category,
		"is_clery", fields.IsClery,
		"requires_timely_warning", fields.RequiresTimelyWarning,
		"confidence", fields.Confidence,
		"duration", time.Since(start),
	)

	return &Result{Incident: merged, Fields: fields, Strategy: strategy.Name()}, nil
}
