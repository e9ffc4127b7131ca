package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pgcetcli/internal/config"
	apierrors "pgcetcli/internal/errors"
	"pgcetcli/internal/shared/testutil"
)

// createTestLogger creates a logger that discards output for testing
func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// testConfig returns defaults pointed at a temporary report directory
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Export.OutputDir = filepath.Join(t.TempDir(), "reports")
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.ShutdownTimeout = 5 * time.Second
	cfg.Security.RateLimit.Enabled = false
	return cfg
}

func newTestApplication(t *testing.T, cfg *config.Config) *Application {
	t.Helper()
	application, err := NewApplication(cfg, createTestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.OTelProviders.Shutdown(context.Background()) })
	return application
}

func uploadRequest(t *testing.T, path, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	r := httptest.NewRequest(http.MethodPost, path, &buf)
	r.Header.Set("Content-Type", writer.FormDataContentType())
	return r
}

func TestNewApplication(t *testing.T) {
	application := newTestApplication(t, testConfig(t))

	assert.NotNil(t, application.Config)
	assert.NotNil(t, application.Logger)
	assert.NotNil(t, application.Router)
	assert.NotNil(t, application.Server)
	assert.NotNil(t, application.ErrorHandler)
	assert.NotNil(t, application.Metrics)
	require.NotNil(t, application.Services)
	assert.NotNil(t, application.Services.Analysis)
	assert.NotNil(t, application.Services.Health)
	assert.NotNil(t, application.Services.Validator)
	assert.Equal(t, "127.0.0.1:8080", application.Server.Addr)
}

func TestNewApplication_Errors(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewApplication(nil, createTestLogger())
		assert.Error(t, err)
	})

	t.Run("invalid analysis policy", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Analysis.ModerateScore = cfg.Analysis.EfficientScore + 1

		_, err := NewApplication(cfg, createTestLogger())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create analyzer")
	})
}

func TestApplication_AnalyzeUpload(t *testing.T) {
	application := newTestApplication(t, testConfig(t))

	w := httptest.NewRecorder()
	application.Router.ServeHTTP(w, uploadRequest(t, "/api/analysis", "seats.csv", testutil.SampleSeatCSV))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, float64(4), result["record_count"])
	assert.Equal(t, float64(0), result["dropped_rows"])
	assert.Len(t, result["course_stats"], 2)
	assert.Len(t, result["year_stats"], 2)
	assert.NotEmpty(t, result["verdict"])
}

func TestApplication_AnalyzeRawCSV(t *testing.T) {
	application := newTestApplication(t, testConfig(t))

	r := httptest.NewRequest(http.MethodPost, "/api/analysis", strings.NewReader(testutil.DecliningSeatCSV))
	r.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	application.Router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"verdict":"Not Efficient"`)
}

func TestApplication_AnalyzeCostsNearFloatLimit(t *testing.T) {
	application := newTestApplication(t, testConfig(t))

	body := "Year,Course,Total_Seats,Seats_Filled,Avg_Exam_Cost\n" +
		"2023,X,100,90,1e308\n" +
		"2023,X,100,90,1e308\n"
	r := httptest.NewRequest(http.MethodPost, "/api/analysis", strings.NewReader(body))
	r.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	application.Router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var result struct {
		Metrics struct {
			AvgExamCost float64 `json:"avg_exam_cost"`
		} `json:"metrics"`
		Reasons []string `json:"reasons"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.InDelta(t, 1.0, result.Metrics.AvgExamCost/1e308, 1e-12)
	assert.NotEmpty(t, result.Reasons)
}

func TestApplication_ProblemResponses(t *testing.T) {
	tests := []struct {
		name       string
		request    func(t *testing.T) *http.Request
		wantStatus int
		wantType   string
	}{
		{
			name: "header missing fill column",
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, "/api/analysis", "seats.csv", "Year,Course,Total_Seats\n2023,MBA,100\n")
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   apierrors.TypeInvalidFormat,
		},
		{
			name: "every row invalid",
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, "/api/analysis", "seats.csv", "Year,Course,Total_Seats,Seats_Filled\nabc,MBA,100,90\n")
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   apierrors.TypeNoRecords,
		},
		{
			name: "unsupported extension",
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, "/api/analysis", "seats.pdf", testutil.SampleSeatCSV)
			},
			wantStatus: http.StatusUnsupportedMediaType,
			wantType:   apierrors.TypeUnsupportedMedia,
		},
		{
			name: "unknown route",
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodGet, "/api/nope", nil)
			},
			wantStatus: http.StatusNotFound,
			wantType:   apierrors.TypeNotFound,
		},
	}

	application := newTestApplication(t, testConfig(t))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			application.Router.ServeHTTP(w, tt.request(t))

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			var problem map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
			assert.Equal(t, tt.wantType, problem["type"])
			assert.NotEmpty(t, problem["trace_id"])
		})
	}
}

func TestApplication_UploadTooLarge(t *testing.T) {
	cfg := testConfig(t)
	cfg.Upload.MaxBytes = 64
	application := newTestApplication(t, cfg)

	w := httptest.NewRecorder()
	application.Router.ServeHTTP(w, uploadRequest(t, "/api/analysis", "seats.csv", testutil.SampleSeatCSV))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestApplication_ExportReport(t *testing.T) {
	application := newTestApplication(t, testConfig(t))

	w := httptest.NewRecorder()
	application.Router.ServeHTTP(w, uploadRequest(t, "/api/analysis/export?format=csv", "seats.csv", testutil.SampleSeatCSV))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "attachment; filename=seats-report.csv", w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "MBA")
}

func TestApplication_HealthRoutes(t *testing.T) {
	application := newTestApplication(t, testConfig(t))

	for _, path := range []string{"/api/health", "/api/health/live", "/api/health/ready", "/api/version"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			application.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		})
	}
}

func TestApplication_Metrics(t *testing.T) {
	application := newTestApplication(t, testConfig(t))

	w := httptest.NewRecorder()
	application.Router.ServeHTTP(w, uploadRequest(t, "/api/analysis", "seats.csv", testutil.SampleSeatCSV))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	application.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "analyses_total")
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, "system_goroutines")
}

func TestApplication_RateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Security.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1}
	application := newTestApplication(t, cfg)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		application.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestApplication_RunAndStop(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cfg := testConfig(t)
	cfg.Server.Port = port
	application := newTestApplication(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + application.Server.Addr + "/api/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestApplication_RunReportsListenError(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	cfg := testConfig(t)
	cfg.Server.Port = listener.Addr().(*net.TCPAddr).Port
	application := newTestApplication(t, cfg)

	err = application.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server failed")
}
