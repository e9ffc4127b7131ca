package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"pgcetcli/internal/dataprocessing"
	"pgcetcli/internal/efficiency"
	"pgcetcli/internal/exporter"
	"pgcetcli/internal/infrastructure"
	"pgcetcli/internal/validation"
	"pgcetcli/pkg/contracts/domain"
)

// AnalysisService validates, parses and analyzes seat datasets
type AnalysisService struct {
	validator *validation.FileValidator
	parser    *dataprocessing.Parser
	analyzer  *efficiency.Analyzer
	tracer    trace.Tracer
	metrics   *infrastructure.AnalysisMetrics
	logger    *slog.Logger
}

// NewAnalysisService creates an analysis service. tracer and metrics may
// be nil; the global tracer is used and metrics are skipped.
func NewAnalysisService(
	validator *validation.FileValidator,
	parser *dataprocessing.Parser,
	analyzer *efficiency.Analyzer,
	tracer trace.Tracer,
	metrics *infrastructure.AnalysisMetrics,
	logger *slog.Logger,
) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = otel.Tracer(infrastructure.MeterName)
	}

	logger = logger.With(slog.String("component", "analysis_service"))
	logger.Info("AnalysisService initialized",
		slog.Int64("max_upload_bytes", validator.Rules().MaxBytes),
		slog.String("allowed_extensions", strings.Join(validator.Rules().AllowedExtensions, ",")))

	return &AnalysisService{
		validator: validator,
		parser:    parser,
		analyzer:  analyzer,
		tracer:    tracer,
		metrics:   metrics,
		logger:    logger,
	}
}

// AnalyzeUpload analyzes an uploaded dataset. name selects the reader by
// extension; size is the declared length, or -1 when unknown.
func (s *AnalysisService) AnalyzeUpload(ctx context.Context, name string, size int64, r io.Reader) (*domain.AnalysisResult, error) {
	ctx, span := s.tracer.Start(ctx, "analysis.upload", trace.WithAttributes(
		attribute.String("file.name", name),
		attribute.Int64("file.size", size),
	))
	defer span.End()

	if name == "" {
		return nil, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}

	format, err := s.validator.ValidateUpload(name, size)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	data, err := s.readLimited(r)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	return s.run(ctx, format, bytes.NewReader(data))
}

// AnalyzeText analyzes CSV text
func (s *AnalysisService) AnalyzeText(ctx context.Context, text string) (*domain.AnalysisResult, error) {
	ctx, span := s.tracer.Start(ctx, "analysis.text", trace.WithAttributes(
		attribute.Int("text.length", len(text)),
	))
	defer span.End()

	if limit := s.validator.Rules().MaxBytes; int64(len(text)) > limit {
		err := fmt.Errorf("%w: %d bytes exceeds limit of %d", validation.ErrFileTooLarge, len(text), limit)
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	return s.run(ctx, validation.InputCSV, strings.NewReader(text))
}

// AnalyzeFile analyzes a dataset on disk
func (s *AnalysisService) AnalyzeFile(ctx context.Context, path string) (*domain.AnalysisResult, error) {
	ctx, span := s.tracer.Start(ctx, "analysis.file", trace.WithAttributes(
		attribute.String("file.path", path),
	))
	defer span.End()

	format, err := s.validator.ValidateFile(path)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	return s.run(ctx, format, file)
}

// ExportReport renders result in format onto w
func (s *AnalysisService) ExportReport(ctx context.Context, w io.Writer, format exporter.Format, result *domain.AnalysisResult) error {
	ctx, span := s.tracer.Start(ctx, "analysis.export", trace.WithAttributes(
		attribute.String("report.format", string(format)),
	))
	defer span.End()

	err := exporter.Write(w, format, result)
	infrastructure.RecordReportExport(ctx, s.metrics, string(format), err)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.logger.ErrorContext(ctx, "Report export failed",
			slog.String("format", string(format)),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

// run parses r with the reader for format and analyzes the records
func (s *AnalysisService) run(ctx context.Context, format validation.InputFormat, r io.Reader) (*domain.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	var (
		report *domain.ParseReport
		result *domain.AnalysisResult
		err    error
	)

	switch format {
	case validation.InputWorkbook:
		report, err = s.parser.ParseWorkbookReader(r)
	default:
		report, err = s.parser.ParseReader(r)
	}
	if err == nil {
		infrastructure.AddSpanEvent(ctx, "analysis.parsed", map[string]interface{}{
			"records":      len(report.Records),
			"dropped_rows": report.DroppedCount(),
		})
		result, err = s.analyzer.AnalyzeReport(report)
	}

	duration := time.Since(start)
	infrastructure.RecordAnalysis(ctx, s.metrics, string(format), duration, result, err)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.logger.WarnContext(ctx, "Analysis failed",
			slog.String("source", string(format)),
			slog.String("error", err.Error()),
			slog.Duration("duration", duration))
		return nil, err
	}

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("analysis.records", result.RecordCount),
		attribute.Int("analysis.dropped_rows", result.DroppedRows),
		attribute.Float64("analysis.score", result.EfficiencyScore),
		attribute.String("analysis.verdict", result.Verdict.String()),
	)

	s.logger.InfoContext(ctx, "Analysis completed",
		slog.String("source", string(format)),
		slog.Int("records", result.RecordCount),
		slog.Int("dropped_rows", result.DroppedRows),
		slog.Float64("score", result.EfficiencyScore),
		slog.String("verdict", result.Verdict.String()),
		slog.Duration("duration", duration))

	return result, nil
}

// readLimited reads r up to the configured limit
func (s *AnalysisService) readLimited(r io.Reader) ([]byte, error) {
	limit := s.validator.Rules().MaxBytes
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: body exceeds limit of %d bytes", validation.ErrFileTooLarge, limit)
	}
	return data, nil
}
