package errors

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *ErrorHandler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewErrorHandler(logger, false)
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return decoded
}

func TestHandleError_APIError(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)

	h.HandleError(rec, req, SessionNotFoundError("gone-42"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	decoded := decodeProblem(t, rec)
	assert.Equal(t, TypeSessionNotFound, decoded["type"])
	assert.Equal(t, "SESSION_NOT_FOUND", decoded["error_code"])
	assert.Equal(t, "/api/analyze", decoded["instance"])
}

func TestHandleError_NilError(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)

	h.HandleError(rec, req, nil)
	assert.Empty(t, rec.Body.String())
}

func TestErrorToProblem(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/preprocess", nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"context deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, TypeTimeout},
		{"context canceled", context.Canceled, http.StatusGatewayTimeout, TypeTimeout},
		{"not found text", errors.New("session not found"), http.StatusNotFound, TypeNotFound},
		{"no relevant reports", errors.New("no motor-related reports after filtering"), http.StatusUnprocessableEntity, TypeNoRelevantReports},
		{"empty dataset", errors.New("dataset is empty"), http.StatusUnprocessableEntity, TypeEmptyDataset},
		{"unknown error", errors.New("something odd"), http.StatusInternalServerError, TypeInternal},
		{"unknown technique api error", UnknownTechniqueError("bert", []string{"lda"}), http.StatusBadRequest, TypeUnknownTechnique},
		{"empty dataset api error", ErrEmptyDataset, http.StatusUnprocessableEntity, TypeEmptyDataset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := h.ErrorToProblem(tt.err, req)
			assert.Equal(t, tt.wantStatus, problem.Status)
			assert.Equal(t, tt.wantType, problem.Type)
			assert.Equal(t, "/api/preprocess", problem.Instance)
		})
	}
}

func TestHandlePanic(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)

	h.HandlePanic(rec, req, "boom")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	decoded := decodeProblem(t, rec)
	assert.Equal(t, TypeInternal, decoded["type"])
	assert.NotContains(t, decoded, "panic")
}

func TestHandlePanic_IncludeStack(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewErrorHandler(logger, true)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)

	h.HandlePanic(rec, req, "boom")

	decoded := decodeProblem(t, rec)
	assert.Equal(t, "boom", decoded["panic"])
	assert.NotEmpty(t, decoded["stack"])
}

func TestNotFoundHandler(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/missing", nil)

	h.NotFound(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	decoded := decodeProblem(t, rec)
	assert.Equal(t, TypeNotFound, decoded["type"])
}

func TestMethodNotAllowedHandler(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/health", nil)

	h.MethodNotAllowed(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	decoded := decodeProblem(t, rec)
	assert.Contains(t, decoded["detail"], "DELETE")
}

func TestMiddleware_RecoversPanic(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/panic", nil)

	handler := h.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("unexpected")
	}))
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMiddleware_PassThrough(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ok", nil)

	handler := h.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
