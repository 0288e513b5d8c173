package api_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/vigil/internal/api"
	"github.com/JaimeStill/vigil/internal/config"
	"github.com/JaimeStill/vigil/internal/inference"
	"github.com/JaimeStill/vigil/internal/infrastructure"
	"github.com/JaimeStill/vigil/internal/ocr"
	"github.com/JaimeStill/vigil/internal/populator"
	"github.com/JaimeStill/vigil/pkg/database"
	"github.com/JaimeStill/vigil/pkg/middleware"
)

func validConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     "1m",
			WriteTimeout:    "15m",
			ShutdownTimeout: "30s",
		},
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "vigil",
			User:            "vigil",
			Password:        "vigil",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		API: config.APIConfig{
			BasePath:    "/api",
			MetricsPath: "/metrics",
			CORS: middleware.CORSConfig{
				Enabled: false,
			},
		},
		OCR: ocr.Config{
			Region:       "us-east-1",
			Bucket:       "incident-uploads",
			MaxAttempts:  60,
			PollInterval: "5s",
			Timeout:      "30s",
		},
		Inference: inference.Config{
			Provider:  string(inference.ProviderAnthropic),
			Model:     "claude-test",
			APIKey:    "test-key",
			MaxTokens: 1024,
			Delay:     "0s",
			Timeout:   "2m",
		},
		Pipeline: config.PipelineConfig{
			Timeout:    "15m",
			CasePrefix: "IR",
			Tenants:    map[string]string{"state_university": populator.KindMultiStage},
		},
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
	}
}

func setupInfra(t *testing.T) *infrastructure.Infrastructure {
	t.Helper()
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}
	t.Cleanup(func() { infra.Database.Connection().Close() })
	return infra
}

func TestNewModule(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	if m.Prefix() != "/api" {
		t.Errorf("prefix: got %s, want /api", m.Prefix())
	}
}

func TestNewModuleRoutesIncidents(t *testing.T) {
	cfg := validConfig()
	m, err := api.NewModule(cfg, setupInfra(t))
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest("GET", "/api/incidents/not-a-uuid", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestNewRuntime(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)

	runtime := api.NewRuntime(cfg, infra)

	if runtime.Pipeline.CasePrefix != "IR" {
		t.Errorf("case prefix: got %s, want IR", runtime.Pipeline.CasePrefix)
	}
	if runtime.Logger == nil || runtime.Logger == infra.Logger {
		t.Error("runtime logger should be module-scoped")
	}
	if runtime.Database == nil {
		t.Error("runtime database is nil")
	}
	if runtime.Lifecycle == nil {
		t.Error("runtime lifecycle is nil")
	}

	wf := runtime.Workflow()
	if wf.Inference == nil || wf.Metrics == nil {
		t.Errorf("workflow runtime = %+v", wf)
	}
}

func TestNewDomain(t *testing.T) {
	cfg := validConfig()
	runtime := api.NewRuntime(cfg, setupInfra(t))

	domain, err := api.NewDomain(runtime)
	if err != nil {
		t.Fatalf("NewDomain() error = %v", err)
	}
	if domain.Incidents == nil {
		t.Fatal("incidents system is nil")
	}
}

func TestNewDomainUnknownStrategy(t *testing.T) {
	cfg := validConfig()
	cfg.Pipeline.Tenants = map[string]string{"acme": "fancy"}
	runtime := api.NewRuntime(cfg, setupInfra(t))

	if _, err := api.NewDomain(runtime); !errors.Is(err, populator.ErrUnknownStrategy) {
		t.Errorf("NewDomain() error = %v, want ErrUnknownStrategy", err)
	}
}
