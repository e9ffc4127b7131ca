// Package app wires the seat efficiency service together: configuration,
// logging, OpenTelemetry, the analysis pipeline, HTTP middleware and routes.
//
// # Initialization Flow
//
//	1. The caller loads configuration and builds the logger
//	2. NewTelemetry initializes tracing, Prometheus metrics and runtime gauges
//	3. NewAnalysisService wires the file validator, parser and analyzer
//	4. Health checks are registered for the analyzer and the report directory
//	5. The chi router is assembled with middleware and API routes
//	6. The HTTP server is created
//
// The CLI reuses NewTelemetry and NewAnalysisService so that commands and
// the server share one pipeline.
//
// # Usage
//
//	application, err := app.NewApplication(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
//
// # Graceful Shutdown
//
// Run returns after SIGINT, SIGTERM or cancellation of its context. Active
// requests are drained within the configured shutdown timeout and telemetry
// is flushed. The package never calls os.Exit.
package app
