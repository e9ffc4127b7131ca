package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "plain message",
			err:  New(http.StatusBadRequest, "INVALID_REQUEST", "bad input"),
			want: "bad input",
		},
		{
			name: "message with details",
			err:  NewWithDetails(http.StatusNotFound, "NOT_FOUND", "no such report", "report-1"),
			want: "no such report",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAPIError_Render(t *testing.T) {
	apiErr := New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "slow down")

	r := httptest.NewRequest(http.MethodGet, "/api/analysis", nil)
	w := httptest.NewRecorder()
	render.Render(w, r, apiErr)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", body["error_code"])
	assert.Equal(t, "slow down", body["message"])
	assert.NotContains(t, body, "details")
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *APIError
		wantStatus int
		wantCode   string
	}{
		{"invalid request", ErrInvalidRequest, http.StatusBadRequest, "INVALID_REQUEST"},
		{"missing parameter", ErrMissingParameter, http.StatusBadRequest, "MISSING_PARAMETER"},
		{"not found", ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"rate limit", ErrRateLimitExceeded, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{"internal", ErrInternalServer, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"unavailable", ErrServiceUnavailable, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode)
			assert.Equal(t, tt.wantCode, tt.err.ErrorCode)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestErrorConstructors(t *testing.T) {
	t.Run("invalid request carries the cause", func(t *testing.T) {
		err := InvalidRequestWithError(errors.New("multipart: NextPart: EOF"))
		assert.Equal(t, http.StatusBadRequest, err.StatusCode)
		assert.Equal(t, "multipart: NextPart: EOF", err.Details)
	})

	t.Run("missing parameter quotes the name", func(t *testing.T) {
		err := MissingParameter("file")
		assert.Equal(t, "MISSING_PARAMETER", err.ErrorCode)
		assert.Equal(t, `Required parameter "file" is missing`, err.Message)
	})

	t.Run("wrapped api errors stay matchable", func(t *testing.T) {
		wrapped := errors.Join(errors.New("context"), ErrNotFound)
		var apiErr *APIError
		require.True(t, errors.As(wrapped, &apiErr))
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	problem := NewProblemDetails(http.StatusUnprocessableEntity, TypeNoRecords, "No Records To Analyze", "", "/api/analysis").
		WithExtension("trace_id", "abc123").
		WithExtension("dropped_rows", 4)

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, TypeNoRecords, body["type"])
	assert.Equal(t, float64(http.StatusUnprocessableEntity), body["status"])
	assert.Equal(t, "/api/analysis", body["instance"])
	assert.Equal(t, "abc123", body["trace_id"])
	assert.Equal(t, float64(4), body["dropped_rows"])
	assert.NotContains(t, body, "detail")
}

func TestProblemDetails_ExtensionsCannotOverrideStandardFields(t *testing.T) {
	problem := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Invalid Request", "bad", "/x").
		WithExtension("status", 200)

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, float64(http.StatusBadRequest), body["status"])
}
