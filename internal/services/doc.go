// Package services implements the business logic layer between the HTTP
// handlers and CLI commands and the parsing, analysis and export packages.
//
// # Services
//
//	AnalysisService  validates a dataset, parses it as CSV or XLSX,
//	                 analyzes the records and renders reports
//	HealthService    liveness, readiness and version information
//
// Services take their collaborators through constructors and log through
// an injected *slog.Logger tagged with a component attribute. Every
// public operation accepts a context.Context carrying the request's trace.
//
// # Error Handling
//
// Services return the sentinel and typed errors of the packages they call
// unchanged, so callers can match them with errors.Is and errors.As:
//
//	result, err := svc.AnalyzeUpload(ctx, "seats.csv", size, body)
//	var formatErr *dataprocessing.FormatError
//	if errors.As(err, &formatErr) {
//	    // header or line-count problem
//	}
//
// The HTTP layer maps these errors onto RFC 7807 problem responses.
package services
