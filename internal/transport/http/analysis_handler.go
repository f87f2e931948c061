package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/haideralmesaody/asrspulse/internal/dataprocessing"
	apierrors "github.com/haideralmesaody/asrspulse/internal/errors"
	custommw "github.com/haideralmesaody/asrspulse/internal/middleware"
	"github.com/haideralmesaody/asrspulse/internal/services"
)

// AnalysisHandler handles the analysis workflow HTTP requests with RFC 7807
// compliance: upload, preprocess, analyze, compare and report.
type AnalysisHandler struct {
	service      AnalysisServiceInterface
	uploads      UploadServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validation   *custommw.ValidationMiddleware
	query        *custommw.QueryParamValidator
}

// NewAnalysisHandler creates a new analysis handler with RFC 7807 error handling
func NewAnalysisHandler(service AnalysisServiceInterface, uploads UploadServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalysisHandler {
	return &AnalysisHandler{
		service:      service,
		uploads:      uploads,
		logger:       logger.With(slog.String("component", "analysis_handler")),
		errorHandler: errorHandler,
		validation:   custommw.NewValidationMiddleware(logger, errorHandler),
		query:        custommw.NewQueryParamValidator(logger, errorHandler),
	}
}

// Routes returns the analysis routes with proper Chi patterns
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/upload", h.Upload)
	r.Post("/preprocess", h.Preprocess)
	r.Post("/analyze", h.Analyze)
	r.Post("/compare", h.Compare)
	r.Post("/report", h.Report)
	r.Get("/sessions", h.Sessions)
	r.Get("/techniques", h.Techniques)

	return r
}

// UploadResponse wraps a stored upload for the API
type UploadResponse struct {
	Status string                 `json:"status"`
	Data   *services.UploadResult `json:"data"`
}

// Upload handles POST /api/upload (multipart/form-data with a "file" part)
func (h *AnalysisHandler) Upload(w http.ResponseWriter, r *http.Request) {
	reqID := custommw.GetReqID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.uploads.MaxBytes())
	if err := r.ParseMultipartForm(h.uploads.MaxBytes()); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest,
			"INVALID_REQUEST",
			"Expected multipart/form-data with a file part",
			err.Error(),
		))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "A file part named \"file\" is required"))
		return
	}
	defer file.Close()

	h.logger.InfoContext(r.Context(), "handling upload",
		slog.String("request_id", reqID),
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size),
	)

	result, err := h.uploads.Save(r.Context(), header.Filename, file)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, UploadResponse{Status: "success", Data: result})
}

// PreprocessRequest is the body of POST /api/preprocess
type PreprocessRequest struct {
	Filepath    string   `json:"filepath" validate:"required"`
	TextColumns []string `json:"text_columns,omitempty" validate:"omitempty,dive,min=1"`
}

// Preprocess handles POST /api/preprocess
func (h *AnalysisHandler) Preprocess(w http.ResponseWriter, r *http.Request) {
	var req PreprocessRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	h.logger.InfoContext(r.Context(), "preprocessing dataset",
		slog.String("request_id", custommw.GetReqID(r.Context())),
		slog.String("filepath", req.Filepath),
	)

	result, err := h.service.Preprocess(r.Context(), req.Filepath, req.TextColumns)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

// AnalyzeRequest is the body of POST /api/analyze. An absent models field
// falls back to tfidf_svm; an explicit empty list is rejected.
type AnalyzeRequest struct {
	SessionID    string   `json:"session_id" validate:"required"`
	Models       []string `json:"models" validate:"omitempty,dive,technique"`
	TextColumn   string   `json:"text_column,omitempty"`
	TargetColumn string   `json:"target_column,omitempty"`
}

// Analyze handles POST /api/analyze
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	if req.Models == nil {
		req.Models = []string{"tfidf_svm"}
	}

	h.logger.InfoContext(r.Context(), "running analysis",
		slog.String("request_id", custommw.GetReqID(r.Context())),
		slog.String("session_id", req.SessionID),
		slog.Any("models", req.Models),
	)

	comparison, err := h.service.Analyze(r.Context(), req.SessionID, req.TextColumn, req.TargetColumn, req.Models)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   comparison,
	})
}

// SessionRequest carries a bare session reference
type SessionRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// Compare handles POST /api/compare
func (h *AnalysisHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.service.Compare(r.Context(), req.SessionID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
	})
}

// Report handles POST /api/report
func (h *AnalysisHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	report, err := h.service.GenerateReport(r.Context(), req.SessionID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   report,
	})
}

// Sessions handles GET /api/sessions. Accepts an optional ?limit=N.
func (h *AnalysisHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.query.ValidateInt(w, r, "limit", 1, 1000, 100)
	if !ok {
		return
	}

	sessions := h.service.Sessions(r.Context())
	if len(sessions) > limit {
		sessions = sessions[:limit]
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   sessions,
		"count":  len(sessions),
	})
}

// Techniques handles GET /api/techniques
func (h *AnalysisHandler) Techniques(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   h.service.AvailableTechniques(),
	})
}

// decodeAndValidate binds the JSON body into v and validates struct tags.
// Writes the error response and returns false on failure.
func (h *AnalysisHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return false
	}
	if err := h.validation.ValidateStruct(v); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return false
	}
	return true
}

// handleServiceError maps service sentinel errors onto API errors
func (h *AnalysisHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "service call failed",
		slog.String("error", err.Error()),
		slog.String("request_id", custommw.GetReqID(r.Context())),
	)

	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusNotFound, "SESSION_NOT_FOUND", err.Error()))
	case errors.Is(err, services.ErrFileNotFound):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusNotFound, "FILE_NOT_FOUND", err.Error()))
	case errors.Is(err, services.ErrInvalidFileType):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusBadRequest, "INVALID_FILE_TYPE", err.Error()))
	case errors.Is(err, services.ErrEmptyTable):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusUnprocessableEntity, "EMPTY_DATASET", err.Error()))
	case errors.Is(err, services.ErrNoTextColumns), errors.Is(err, services.ErrTextColumnMissing):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusBadRequest, "VALIDATION_FAILED", err.Error()))
	case errors.Is(err, services.ErrNoModelsSelected):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusBadRequest, "MISSING_PARAMETER", err.Error()))
	case errors.Is(err, services.ErrUnknownTechnique):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusBadRequest, "UNKNOWN_TECHNIQUE", err.Error()))
	case errors.Is(err, services.ErrNoAnalysisResults):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusNotFound, "NO_ANALYSIS_RESULTS", err.Error()))
	case errors.Is(err, dataprocessing.ErrNoRelevantReports):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusUnprocessableEntity, "NO_RELEVANT_REPORTS", err.Error()))
	case errors.Is(err, services.ErrInvalidInput):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", err.Error()))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}
