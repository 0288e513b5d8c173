package populator

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/JaimeStill/vigil/internal/workflow"
)

// Strategy kinds assignable to tenants in configuration.
const (
	KindDefault    = "default"
	KindMultiStage = "multistage"
	KindText       = "text"
)

// Factory resolves the strategy for a tenant.
type Factory struct {
	fallback   Strategy
	strategies map[string]Strategy
}

// NewFactory creates a factory over tenant-specific strategies. Tenant keys
// are normalized; fallback serves every other tenant.
func NewFactory(fallback Strategy, tenants map[string]Strategy) *Factory {
	strategies := make(map[string]Strategy, len(tenants))
	for tenant, s := range tenants {
		strategies[normalize(tenant)] = s
	}
	return &Factory{fallback: fallback, strategies: strategies}
}

// For returns the strategy registered for tenant, matched after trimming and
// lowercasing, or the default strategy. It never fails.
func (f *Factory) For(tenant string) Strategy {
	if s, ok := f.strategies[normalize(tenant)]; ok {
		return s
	}
	return f.fallback
}

// Tenants returns the normalized tenants with a dedicated strategy.
func (f *Factory) Tenants() []string {
	return slices.Sorted(maps.Keys(f.strategies))
}

// Deps are the collaborators shared by every strategy.
type Deps struct {
	Extractor  Extractor
	Runtime    *workflow.Runtime
	CasePrefix string
}

// Build constructs a factory from a tenant to strategy-kind mapping. An
// unknown kind fails construction.
func Build(deps Deps, tenants map[string]string) (*Factory, error) {
	if deps.Extractor == nil || deps.Runtime == nil {
		return nil, ErrMissingDeps
	}

	fallback := NewDefault(deps.Extractor, deps.Runtime, deps.CasePrefix)

	strategies := make(map[string]Strategy, len(tenants))
	for tenant, kind := range tenants {
		s, err := newStrategy(normalize(kind), deps, fallback)
		if err != nil {
			return nil, fmt.Errorf("tenant %s: %w", tenant, err)
		}
		strategies[tenant] = s
	}

	return NewFactory(fallback, strategies), nil
}

func newStrategy(kind string, deps Deps, fallback *Default) (Strategy, error) {
	switch kind {
	case KindDefault:
		return fallback, nil
	case KindMultiStage:
		return NewMultiStage(deps.Extractor, deps.Runtime, deps.CasePrefix), nil
	case KindText:
		return NewText(deps.Extractor, deps.Runtime, deps.CasePrefix), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, kind)
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
