package efficiency

import (
	"fmt"
	"log/slog"

	"pgcetcli/pkg/contracts/domain"
)

// Analyzer turns seat records into an AnalysisResult. It holds only its
// policy and logger, so one Analyzer may serve concurrent callers.
type Analyzer struct {
	policy Policy
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer after validating policy
func NewAnalyzer(policy Policy, logger *slog.Logger) (*Analyzer, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		policy: policy,
		logger: logger.With(slog.String("component", "efficiency_analyzer")),
	}, nil
}

// Analyze runs records through the default policy
func Analyze(records []domain.SeatRecord) (*domain.AnalysisResult, error) {
	analyzer, err := NewAnalyzer(DefaultPolicy(), nil)
	if err != nil {
		return nil, fmt.Errorf("default policy: %w", err)
	}
	return analyzer.Analyze(records)
}

// Policy returns the policy the analyzer applies
func (a *Analyzer) Policy() Policy {
	return a.policy
}

// Analyze aggregates records by course and year, derives metrics and
// findings, and scores the result
func (a *Analyzer) Analyze(records []domain.SeatRecord) (*domain.AnalysisResult, error) {
	if len(records) == 0 {
		return nil, &EmptyInputError{}
	}

	courses := aggregateCourses(records)
	years := aggregateYears(records)
	metrics := deriveMetrics(records, years)
	reasons := generateFindings(metrics, courses, a.policy)
	score := computeScore(metrics, courses, a.policy)
	verdict := verdictFor(score, a.policy)

	a.logger.Debug("Analysis complete",
		slog.Int("records", len(records)),
		slog.Int("courses", len(courses)),
		slog.Int("years", len(years)),
		slog.Float64("score", score),
		slog.String("verdict", verdict.String()))

	return &domain.AnalysisResult{
		EfficiencyScore: score,
		Verdict:         verdict,
		Reasons:         reasons,
		CourseStats:     courses,
		YearStats:       years,
		Metrics:         metrics,
		RecordCount:     len(records),
	}, nil
}

// AnalyzeReport analyzes the records of a parse report and carries its
// dropped-row count into the result
func (a *Analyzer) AnalyzeReport(report *domain.ParseReport) (*domain.AnalysisResult, error) {
	if report == nil || len(report.Records) == 0 {
		return nil, &EmptyInputError{DroppedRows: report.DroppedCount()}
	}

	result, err := a.Analyze(report.Records)
	if err != nil {
		return nil, err
	}
	result.DroppedRows = report.DroppedCount()

	if result.DroppedRows > 0 {
		a.logger.Info("Rows dropped before analysis",
			slog.Int("dropped_rows", result.DroppedRows),
			slog.Int("records", result.RecordCount))
	}

	return result, nil
}
