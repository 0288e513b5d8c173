package workflow

import (
	"log/slog"

	"github.com/JaimeStill/vigil/internal/inference"
	"github.com/JaimeStill/vigil/pkg/metrics"
)

// Runtime bundles the dependencies that pipeline stages require.
// It is constructed by higher-level composition code from Infrastructure.
type Runtime struct {
	Inference inference.Client
	Logger    *slog.Logger
	Metrics   *metrics.Pipeline
}
