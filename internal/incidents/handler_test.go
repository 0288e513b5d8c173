package incidents_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/vigil/internal/incidents"
	"github.com/JaimeStill/vigil/internal/ocr"
	"github.com/JaimeStill/vigil/internal/populator"
)

type mockSystem struct {
	findFn    func(ctx context.Context, id uuid.UUID) (*incidents.Incident, error)
	processFn func(ctx context.Context, id uuid.UUID, cmd incidents.ProcessCommand) (*incidents.Result, error)
}

func (m *mockSystem) Handler() *incidents.Handler {
	return newTestHandler(m)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*incidents.Incident, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Process(ctx context.Context, id uuid.UUID, cmd incidents.ProcessCommand) (*incidents.Result, error) {
	return m.processFn(ctx, id, cmd)
}

func newTestHandler(sys incidents.System) *incidents.Handler {
	return incidents.NewHandler(sys, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupMux(h *incidents.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func TestHandlerRoutes(t *testing.T) {
	group := newTestHandler(&mockSystem{}).Routes()

	if group.Prefix != "/incidents" {
		t.Errorf("prefix = %q, want /incidents", group.Prefix)
	}
	if len(group.Routes) != 2 {
		t.Errorf("routes = %d, want 2", len(group.Routes))
	}
}

func TestHandlerFind(t *testing.T) {
	category := "Burglary"
	sys := &mockSystem{
		findFn: func(_ context.Context, id uuid.UUID) (*incidents.Incident, error) {
			if id != incidentID {
				return nil, incidents.ErrNotFound
			}
			return &incidents.Incident{ID: id, Status: populator.StatusPendingReview, Category: &category}, nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	t.Run("returns incident", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/incidents/"+incidentID.String(), nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var inc incidents.Incident
		if err := json.NewDecoder(rec.Body).Decode(&inc); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if inc.ID != incidentID || inc.Category == nil || *inc.Category != "Burglary" {
			t.Errorf("incident = %+v", inc)
		}
	})

	t.Run("not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/incidents/"+uuid.New().String(), nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/incidents/not-a-uuid", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		assertErrorBody(t, rec.Body, incidents.ErrInvalidID.Error())
	})
}

func assertErrorBody(t *testing.T, body io.Reader, want string) {
	t.Helper()

	var resp map[string]string
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(resp["error"], want) {
		t.Errorf("error body = %q, want prefix %q", resp["error"], want)
	}
}

func TestHandlerProcess(t *testing.T) {
	var captured incidents.ProcessCommand
	sys := &mockSystem{
		processFn: func(_ context.Context, id uuid.UUID, cmd incidents.ProcessCommand) (*incidents.Result, error) {
			captured = cmd
			return &incidents.Result{
				Incident: &incidents.Incident{ID: id},
				Fields:   populator.Fields{Category: "Burglary", Status: populator.StatusPendingReview},
				Strategy: "default",
			}, nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	t.Run("processes incident", func(t *testing.T) {
		body := `{"storage_key":"uploads/report.pdf","tenant":"acme","categories":[{"name":"Burglary","description":"Unlawful entry"}]}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/incidents/"+incidentID.String()+"/process", strings.NewReader(body))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if captured.StorageKey != "uploads/report.pdf" || captured.Tenant != "acme" || len(captured.Categories) != 1 {
			t.Errorf("command = %+v", captured)
		}

		var result incidents.Result
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if result.Strategy != "default" || result.Fields.Category != "Burglary" {
			t.Errorf("result = %+v", result)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/incidents/not-a-uuid/process", strings.NewReader("{}"))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		assertErrorBody(t, rec.Body, incidents.ErrInvalidID.Error())
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/incidents/"+incidentID.String()+"/process", bytes.NewBufferString("{"))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("maps pipeline errors", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
			want int
		}{
			{"job failed", &ocr.JobFailedError{JobID: "j", Message: "bad"}, http.StatusBadGateway},
			{"job timeout", &ocr.JobTimeoutError{JobID: "j", Attempts: 60}, http.StatusGatewayTimeout},
			{"invalid command", incidents.ErrInvalidCommand, http.StatusBadRequest},
			{"internal", errors.New("boom"), http.StatusInternalServerError},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				sys.processFn = func(context.Context, uuid.UUID, incidents.ProcessCommand) (*incidents.Result, error) {
					return nil, tt.err
				}

				rec := httptest.NewRecorder()
				req := httptest.NewRequest("POST", "/incidents/"+incidentID.String()+"/process", strings.NewReader(`{"storage_key":"k"}`))
				mux.ServeHTTP(rec, req)

				if rec.Code != tt.want {
					t.Errorf("status = %d, want %d", rec.Code, tt.want)
				}

				var body map[string]string
				if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if body["error"] == "" {
					t.Error("error message should be present")
				}
			})
		}
	})
}
