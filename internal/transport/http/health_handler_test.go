package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"pgcetcli/internal/services"
	"pgcetcli/internal/shared/testutil"
	"pgcetcli/pkg/contracts"
)

func TestHealthHandler(t *testing.T) {
	notReady := func(ctx context.Context) services.ServiceHealth {
		return services.ServiceHealth{Status: "not_ready", Message: "report directory missing"}
	}

	tests := []struct {
		name       string
		checks     map[string]services.HealthCheckFunc
		route      func(h *HealthHandler) http.HandlerFunc
		wantStatus int
		wantBody   string
	}{
		{
			name:       "health",
			route:      func(h *HealthHandler) http.HandlerFunc { return h.HealthCheck },
			wantStatus: http.StatusOK,
			wantBody:   `"status":"ok"`,
		},
		{
			name:       "liveness",
			route:      func(h *HealthHandler) http.HandlerFunc { return h.LivenessCheck },
			wantStatus: http.StatusOK,
			wantBody:   `"goroutines"`,
		},
		{
			name:       "ready",
			checks:     map[string]services.HealthCheckFunc{"analyzer": services.ReadyCheck("policy loaded")},
			route:      func(h *HealthHandler) http.HandlerFunc { return h.ReadinessCheck },
			wantStatus: http.StatusOK,
			wantBody:   `"status":"ready"`,
		},
		{
			name: "not ready",
			checks: map[string]services.HealthCheckFunc{
				"analyzer": services.ReadyCheck("policy loaded"),
				"reports":  notReady,
			},
			route:      func(h *HealthHandler) http.HandlerFunc { return h.ReadinessCheck },
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `"status":"not_ready"`,
		},
		{
			name:       "version",
			route:      func(h *HealthHandler) http.HandlerFunc { return h.Version },
			wantStatus: http.StatusOK,
			wantBody:   `"version":"` + contracts.Version + `"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			service := services.NewHealthService(contracts.Version, logger)
			for name, check := range tt.checks {
				service.RegisterCheck(name, check)
			}
			handler := NewHealthHandler(service, logger)

			w := httptest.NewRecorder()
			tt.route(handler)(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
