package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/JaimeStill/vigil/internal/populator"
)

const (
	EnvPipelineTimeout    = "VIGIL_PIPELINE_TIMEOUT"
	EnvPipelineCasePrefix = "VIGIL_PIPELINE_CASE_PREFIX"
	EnvPipelineTenants    = "VIGIL_PIPELINE_TENANTS"
)

// PipelineConfig controls incident processing runs and per-tenant strategy
// selection. Tenants maps a tenant identifier to a strategy kind; tenants
// without an entry use the default strategy.
type PipelineConfig struct {
	Timeout    string            `toml:"timeout"`
	CasePrefix string            `toml:"case_prefix"`
	Tenants    map[string]string `toml:"tenants"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *PipelineConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *PipelineConfig) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. Tenant entries are merged
// key by key.
func (c *PipelineConfig) Merge(overlay *PipelineConfig) {
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.CasePrefix != "" {
		c.CasePrefix = overlay.CasePrefix
	}
	if len(overlay.Tenants) > 0 && c.Tenants == nil {
		c.Tenants = make(map[string]string, len(overlay.Tenants))
	}
	for tenant, kind := range overlay.Tenants {
		c.Tenants[tenant] = kind
	}
}

func (c *PipelineConfig) loadDefaults() {
	if c.Timeout == "" {
		c.Timeout = "15m"
	}
	if c.CasePrefix == "" {
		c.CasePrefix = populator.DefaultCasePrefix
	}
}

// loadEnv reads tenant assignments as comma-separated tenant=kind pairs.
func (c *PipelineConfig) loadEnv() error {
	if v := os.Getenv(EnvPipelineTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvPipelineCasePrefix); v != "" {
		c.CasePrefix = v
	}
	if v := os.Getenv(EnvPipelineTenants); v != "" {
		if c.Tenants == nil {
			c.Tenants = make(map[string]string)
		}
		for pair := range strings.SplitSeq(v, ",") {
			tenant, kind, ok := strings.Cut(strings.TrimSpace(pair), "=")
			if !ok || strings.TrimSpace(tenant) == "" {
				return fmt.Errorf("invalid tenant assignment %q", pair)
			}
			c.Tenants[strings.TrimSpace(tenant)] = strings.TrimSpace(kind)
		}
	}
	return nil
}

func (c *PipelineConfig) validate() error {
	if d, err := time.ParseDuration(c.Timeout); err != nil || d < 0 {
		return fmt.Errorf("invalid timeout %q", c.Timeout)
	}
	for tenant, kind := range c.Tenants {
		switch strings.ToLower(strings.TrimSpace(kind)) {
		case populator.KindDefault, populator.KindText, populator.KindMultiStage:
		default:
			return fmt.Errorf("tenant %s: %w: %s", tenant, populator.ErrUnknownStrategy, kind)
		}
	}
	return nil
}
