package api

import (
	"github.com/JaimeStill/vigil/internal/config"
	"github.com/JaimeStill/vigil/internal/infrastructure"
	"github.com/JaimeStill/vigil/internal/workflow"
)

// Runtime extends Infrastructure with the pipeline settings domain systems
// are built from.
type Runtime struct {
	*infrastructure.Infrastructure
	Pipeline config.PipelineConfig
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	scoped := *infra
	scoped.Logger = infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &scoped,
		Pipeline:       cfg.Pipeline,
	}
}

// Workflow returns the shared collaborators of the classification stages.
func (r *Runtime) Workflow() *workflow.Runtime {
	return &workflow.Runtime{
		Inference: r.Inference,
		Logger:    r.Logger,
		Metrics:   r.Metrics,
	}
}
