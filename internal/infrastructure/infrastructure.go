// Package infrastructure provides core service initialization for application startup.
// It assembles the shared dependencies (logging, database, metrics, OCR and
// inference clients) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/JaimeStill/vigil/internal/config"
	"github.com/JaimeStill/vigil/internal/inference"
	"github.com/JaimeStill/vigil/internal/ocr"
	"github.com/JaimeStill/vigil/pkg/database"
	"github.com/JaimeStill/vigil/pkg/lifecycle"
	"github.com/JaimeStill/vigil/pkg/metrics"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Registry  *prometheus.Registry
	Metrics   *metrics.Pipeline
	OCR       *ocr.Driver
	Inference inference.Client

	closeInference func() error
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	awsCfg, err := awsconfig.LoadDefaultConfig(lc.Context(), awsconfig.WithRegion(cfg.OCR.Region))
	if err != nil {
		return nil, fmt.Errorf("aws config init failed: %w", err)
	}
	driver := ocr.New(textract.NewFromConfig(awsCfg), cfg.OCR, logger, m)

	client, closeFn, err := inference.New(lc.Context(), cfg.Inference)
	if err != nil {
		return nil, fmt.Errorf("inference init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle:      lc,
		Logger:         logger,
		Database:       db,
		Registry:       reg,
		Metrics:        m,
		OCR:            driver,
		Inference:      client,
		closeInference: closeFn,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if i.closeInference != nil {
		i.Lifecycle.CloseOnShutdown(i.Logger, "inference", i.closeInference)
	}
	return nil
}
