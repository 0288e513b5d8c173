package api

import (
	"fmt"

	"github.com/JaimeStill/vigil/internal/incidents"
	"github.com/JaimeStill/vigil/internal/populator"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Incidents incidents.System
}

// NewDomain creates all domain systems from the API runtime. It fails when
// the tenant strategy assignments cannot be resolved.
func NewDomain(runtime *Runtime) (*Domain, error) {
	factory, err := populator.Build(populator.Deps{
		Extractor:  runtime.OCR,
		Runtime:    runtime.Workflow(),
		CasePrefix: runtime.Pipeline.CasePrefix,
	}, runtime.Pipeline.Tenants)
	if err != nil {
		return nil, fmt.Errorf("build strategies: %w", err)
	}

	runtime.Logger.Info("strategies resolved", "tenants", factory.Tenants())

	incidentsSystem := incidents.New(
		incidents.NewStore(runtime.Database.Connection()),
		factory,
		runtime.Logger,
		runtime.Metrics,
		runtime.Pipeline.TimeoutDuration(),
	)

	return &Domain{
		Incidents: incidentsSystem,
	}, nil
}
