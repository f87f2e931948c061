package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haideralmesaody/asrspulse/internal/analysis"
	apierrors "github.com/haideralmesaody/asrspulse/internal/errors"
	custommw "github.com/haideralmesaody/asrspulse/internal/middleware"
	"github.com/haideralmesaody/asrspulse/internal/services"
	"github.com/haideralmesaody/asrspulse/pkg/contracts/domain"
)

type stubAnalysisService struct {
	preprocessResult *services.PreprocessResult
	preprocessErr    error
	analyzeResult    *analysis.Comparison
	analyzeErr       error
	analyzedModels   []string
	compareResult    *services.ComparisonView
	compareErr       error
	report           *services.Report
	reportErr        error
	sessions         []services.SessionInfo
}

func (s *stubAnalysisService) AvailableTechniques() []string {
	return []string{"tfidf_svm", "lda", "keywords", "sentiment"}
}

func (s *stubAnalysisService) Preprocess(ctx context.Context, filePath string, textColumns []string) (*services.PreprocessResult, error) {
	return s.preprocessResult, s.preprocessErr
}

func (s *stubAnalysisService) Analyze(ctx context.Context, sessionID, textColumn, targetColumn string, models []string) (*analysis.Comparison, error) {
	s.analyzedModels = models
	return s.analyzeResult, s.analyzeErr
}

func (s *stubAnalysisService) Compare(ctx context.Context, sessionID string) (*services.ComparisonView, error) {
	return s.compareResult, s.compareErr
}

func (s *stubAnalysisService) GenerateReport(ctx context.Context, sessionID string) (*services.Report, error) {
	return s.report, s.reportErr
}

func (s *stubAnalysisService) Sessions(ctx context.Context) []services.SessionInfo {
	return s.sessions
}

type stubUploadService struct {
	result *services.UploadResult
	err    error
}

func (s *stubUploadService) Save(ctx context.Context, filename string, content io.Reader) (*services.UploadResult, error) {
	return s.result, s.err
}

func (s *stubUploadService) MaxBytes() int64 {
	return 1 << 20
}

func newTestHandler(service AnalysisServiceInterface, uploads UploadServiceInterface) *AnalysisHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAnalysisHandler(service, uploads, logger, apierrors.NewErrorHandler(logger, false))
}

func postJSON(t *testing.T, h *AnalysisHandler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func TestUpload_Success(t *testing.T) {
	uploads := &stubUploadService{
		result: &services.UploadResult{
			FilePath: "uploads/abc_reports.csv",
			Filename: "reports.csv",
			Rows:     3,
			Columns:  []string{"narrative", "aircraft_type"},
			SampleData: []domain.Record{
				{"narrative": "engine failure occurred"},
			},
		},
	}
	h := newTestHandler(&stubAnalysisService{}, uploads)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "reports.csv")
	require.NoError(t, err)
	part.Write([]byte("narrative\nengine failure occurred\n"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 3, resp.Data.Rows)
	assert.Equal(t, "reports.csv", resp.Data.Filename)
}

func TestUpload_MissingFilePart(t *testing.T) {
	h := newTestHandler(&stubAnalysisService{}, &stubUploadService{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("other", "value")
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpload_InvalidFileType(t *testing.T) {
	uploads := &stubUploadService{err: services.ErrInvalidFileType}
	h := newTestHandler(&stubAnalysisService{}, uploads)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "image.png")
	part.Write([]byte("not a dataset"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_FILE_TYPE")
}

func TestPreprocess_Success(t *testing.T) {
	service := &stubAnalysisService{
		preprocessResult: &services.PreprocessResult{
			SessionID: "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
			Stats: &domain.Stats{
				OriginalCount: 10,
				FilteredCount: 4,
				FinalCount:    4,
				FilterRatio:   0.4,
			},
		},
	}
	h := newTestHandler(service, &stubUploadService{})

	rec := postJSON(t, h, "/preprocess", `{"filepath":"uploads/reports.csv"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string                     `json:"status"`
		Data   *services.PreprocessResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 4, resp.Data.Stats.FinalCount)
}

func TestPreprocess_MissingFilepath(t *testing.T) {
	h := newTestHandler(&stubAnalysisService{}, &stubUploadService{})

	rec := postJSON(t, h, "/preprocess", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreprocess_FileNotFound(t *testing.T) {
	service := &stubAnalysisService{preprocessErr: services.ErrFileNotFound}
	h := newTestHandler(service, &stubUploadService{})

	rec := postJSON(t, h, "/preprocess", `{"filepath":"uploads/missing.csv"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "FILE_NOT_FOUND")
}

func TestAnalyze_Success(t *testing.T) {
	service := &stubAnalysisService{
		analyzeResult: &analysis.Comparison{
			ModelResults: map[string]analysis.Result{},
		},
	}
	h := newTestHandler(service, &stubUploadService{})

	rec := postJSON(t, h, "/analyze",
		`{"session_id":"abc","models":["tfidf_svm","lda"]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAnalyze_DefaultModels(t *testing.T) {
	service := &stubAnalysisService{
		analyzeResult: &analysis.Comparison{
			ModelResults: map[string]analysis.Result{},
		},
	}
	h := newTestHandler(service, &stubUploadService{})

	rec := postJSON(t, h, "/analyze", `{"session_id":"abc"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"tfidf_svm"}, service.analyzedModels)
}

func TestAnalyze_EmptyModels(t *testing.T) {
	service := &stubAnalysisService{analyzeErr: services.ErrNoModelsSelected}
	h := newTestHandler(service, &stubUploadService{})

	rec := postJSON(t, h, "/analyze", `{"session_id":"abc","models":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_PARAMETER")
	assert.Empty(t, service.analyzedModels)
}

func TestAnalyze_UnknownTechnique(t *testing.T) {
	service := &stubAnalysisService{analyzeErr: services.ErrUnknownTechnique}
	h := newTestHandler(service, &stubUploadService{})

	rec := postJSON(t, h, "/analyze", `{"session_id":"abc","models":["lda"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNKNOWN_TECHNIQUE")
}

func TestAnalyze_SessionNotFound(t *testing.T) {
	service := &stubAnalysisService{analyzeErr: services.ErrSessionNotFound}
	h := newTestHandler(service, &stubUploadService{})

	rec := postJSON(t, h, "/analyze", `{"session_id":"expired","models":["lda"]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "SESSION_NOT_FOUND")
}

func TestCompare_NoAnalysisResults(t *testing.T) {
	service := &stubAnalysisService{compareErr: services.ErrNoAnalysisResults}
	h := newTestHandler(service, &stubUploadService{})

	rec := postJSON(t, h, "/compare", `{"session_id":"abc"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NO_ANALYSIS_RESULTS")
}

func TestCompare_Success(t *testing.T) {
	service := &stubAnalysisService{
		compareResult: &services.ComparisonView{
			ModelPerformance: map[string]services.ModelPerformance{},
			Recommendations:  []string{"TF-IDF + SVM recommended"},
		},
	}
	h := newTestHandler(service, &stubUploadService{})

	rec := postJSON(t, h, "/compare", `{"session_id":"abc"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "recommendations")
}

func TestReport_Success(t *testing.T) {
	service := &stubAnalysisService{
		report: &services.Report{
			Title: "ASRS Engine-Related Incidents - Analysis Report",
		},
	}
	h := newTestHandler(service, &stubUploadService{})

	rec := postJSON(t, h, "/report", `{"session_id":"abc"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Analysis Report")
}

func TestSessions(t *testing.T) {
	service := &stubAnalysisService{
		sessions: []services.SessionInfo{
			{SessionID: "one"},
			{SessionID: "two"},
		},
	}
	h := newTestHandler(service, &stubUploadService{})

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}

func TestTechniques(t *testing.T) {
	h := newTestHandler(&stubAnalysisService{}, &stubUploadService{})

	req := httptest.NewRequest(http.MethodGet, "/techniques", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tfidf_svm")
}

func TestAnalyze_LogsRequestID(t *testing.T) {
	service := &stubAnalysisService{
		analyzeResult: &analysis.Comparison{
			ModelResults: map[string]analysis.Result{},
		},
	}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := NewAnalysisHandler(service, &stubUploadService{}, logger, apierrors.NewErrorHandler(logger, false))

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"session_id":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	custommw.RequestID(h.Routes()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), "request_id=req-42")
}

func TestAnalyze_InvalidJSON(t *testing.T) {
	h := newTestHandler(&stubAnalysisService{}, &stubUploadService{})

	rec := postJSON(t, h, "/analyze", `{bad json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
