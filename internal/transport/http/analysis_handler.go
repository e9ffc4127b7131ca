package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "pgcetcli/internal/errors"
	"pgcetcli/internal/exporter"
	custommw "pgcetcli/internal/middleware"
	"pgcetcli/internal/validation"
	"pgcetcli/pkg/contracts/domain"
)

// UploadField is the multipart form field carrying the dataset
const UploadField = "file"

// multipartOverhead is the slack allowed on top of the dataset limit for
// multipart boundaries and part headers
const multipartOverhead = 1 << 20

// defaultReportName is used when the dataset arrived without a file name
const defaultReportName = "pgcet-report"

// AnalysisService defines the analysis operations the handler needs
type AnalysisService interface {
	AnalyzeUpload(ctx context.Context, name string, size int64, r io.Reader) (*domain.AnalysisResult, error)
	AnalyzeText(ctx context.Context, text string) (*domain.AnalysisResult, error)
	ExportReport(ctx context.Context, w io.Writer, format exporter.Format, result *domain.AnalysisResult) error
}

// AnalysisHandler handles dataset uploads with RFC 7807 errors
type AnalysisHandler struct {
	service      AnalysisService
	maxBytes     int64
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewAnalysisHandler creates an analysis handler. maxBytes bounds the
// dataset read from a request body.
func NewAnalysisHandler(service AnalysisService, maxBytes int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalysisHandler {
	return &AnalysisHandler{
		service:      service,
		maxBytes:     maxBytes,
		logger:       logger.With(slog.String("component", "analysis_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(custommw.ContentTypeValidator(h.errorHandler, "multipart/form-data", "text/csv", "text/plain"))

	r.Post("/", h.Analyze)
	r.Post("/export", h.Export)

	return r
}

// Analyze handles POST /api/analysis
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	result, name, err := h.analyze(w, r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "analysis served",
		slog.String("request_id", custommw.GetRequestID(r.Context())),
		slog.String("file", name),
		slog.String("verdict", result.Verdict.String()),
	)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, result)
}

// Export handles POST /api/analysis/export?format=csv|xlsx|txt
func (h *AnalysisHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := exporter.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, name, err := h.analyze(w, r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	// Render into a buffer first so a failed export still gets a problem response
	var buf bytes.Buffer
	if err := h.service.ExportReport(r.Context(), &buf, format, result); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := reportFileName(name, format)
	h.logger.InfoContext(r.Context(), "report exported",
		slog.String("request_id", custommw.GetRequestID(r.Context())),
		slog.String("format", string(format)),
		slog.String("filename", filename),
		slog.Int("bytes", buf.Len()),
	)

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// analyze reads the dataset from a multipart upload or a raw CSV body and
// runs it through the service. It returns the upload's file name, empty
// for a raw body.
func (h *AnalysisHandler) analyze(w http.ResponseWriter, r *http.Request) (*domain.AnalysisResult, string, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, "", apierrors.InvalidRequestWithError(err)
	}

	if mediaType != "multipart/form-data" {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBytes))
		if err != nil {
			return nil, "", bodyError(err, h.maxBytes)
		}
		result, err := h.service.AnalyzeText(r.Context(), string(body))
		return result, "", err
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)
	file, header, err := r.FormFile(UploadField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", apierrors.MissingParameter(UploadField)
		}
		return nil, "", bodyError(err, h.maxBytes)
	}
	defer file.Close()

	h.logger.DebugContext(r.Context(), "upload received",
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size),
	)

	result, err := h.service.AnalyzeUpload(r.Context(), header.Filename, header.Size, file)
	return result, header.Filename, err
}

// bodyError maps a body read failure onto the upload error vocabulary
func bodyError(err error, limit int64) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: body exceeds limit of %d bytes", validation.ErrFileTooLarge, limit)
	}
	return apierrors.InvalidRequestWithError(err)
}

// reportFileName derives the download name from the uploaded file name
func reportFileName(uploaded string, format exporter.Format) string {
	base := strings.TrimSuffix(filepath.Base(uploaded), filepath.Ext(uploaded))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = defaultReportName
	} else {
		base += "-report"
	}
	return base + "." + format.Extension()
}
