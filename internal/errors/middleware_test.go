package errors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"pgcetcli/internal/shared/testutil"
)

func TestRecoveryMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantPanic  bool
	}{
		{
			name: "normal request",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "panic with error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				panic(assert.AnError)
			},
			wantStatus: http.StatusInternalServerError,
			wantPanic:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logHandler := testutil.NewTestLogger(t)
			mw := RecoveryMiddleware(NewErrorHandler(logger, false))

			w := httptest.NewRecorder()
			mw(tt.handler).ServeHTTP(w, requestWithID(http.MethodGet, "/api/health", "req-3"))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantPanic, logHandler.ContainsMessage("panic recovered"))
			if tt.wantPanic {
				body := decodeProblem(t, w)
				assert.Equal(t, "An unexpected error occurred", body["detail"])
			}
		})
	}
}

func TestRecoveryMiddleware_AbortHandlerPropagates(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	mw := RecoveryMiddleware(NewErrorHandler(logger, false))

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), requestWithID(http.MethodGet, "/", "req-4"))
	})
}
