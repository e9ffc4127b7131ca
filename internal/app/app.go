package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pgcetcli/internal/config"
	"pgcetcli/internal/dataprocessing"
	"pgcetcli/internal/efficiency"
	apierrors "pgcetcli/internal/errors"
	"pgcetcli/internal/infrastructure"
	custommw "pgcetcli/internal/middleware"
	"pgcetcli/internal/services"
	handlers "pgcetcli/internal/transport/http"
	"pgcetcli/internal/validation"
	"pgcetcli/pkg/contracts"
)

// AppName is the human-readable application name
const AppName = "PGCET Seat Efficiency Analyzer"

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	Services      *ServiceContainer
	ErrorHandler  *apierrors.ErrorHandler
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.AnalysisMetrics
	StartTime     time.Time
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	Analysis  *services.AnalysisService
	Health    *services.HealthService
	Validator *validation.FileValidator
}

// Telemetry bundles the OpenTelemetry providers with the shared instruments
type Telemetry struct {
	Providers *infrastructure.OTelProviders
	Metrics   *infrastructure.AnalysisMetrics
}

// NewTelemetry initializes OpenTelemetry from cfg. Exported spans go to
// traceWriter so command output can stay clean.
func NewTelemetry(cfg *config.Config, logger *slog.Logger, traceWriter io.Writer, startTime time.Time) (*Telemetry, error) {
	otelCfg := infrastructure.NewOTelConfig(cfg.Telemetry)
	otelCfg.TraceWriter = traceWriter

	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateAnalysisMetrics(providers.Meter)
	if err != nil {
		_ = providers.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to create analysis metrics: %w", err)
	}

	if err := infrastructure.RegisterRuntimeMetrics(providers.Meter, startTime); err != nil {
		_ = providers.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to register runtime metrics: %w", err)
	}

	return &Telemetry{Providers: providers, Metrics: metrics}, nil
}

// NewAnalysisService wires the validator, parser and analyzer configured by cfg
func NewAnalysisService(cfg *config.Config, telemetry *Telemetry, logger *slog.Logger) (*services.AnalysisService, *validation.FileValidator, error) {
	validator := validation.NewFileValidator(validation.UploadRules{
		AllowedExtensions: cfg.Upload.AllowedExtensions,
		MaxBytes:          cfg.Upload.MaxBytes,
	}, logger)

	analyzer, err := efficiency.NewAnalyzer(cfg.Analysis, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create analyzer: %w", err)
	}

	parser := dataprocessing.NewParser(logger)

	service := services.NewAnalysisService(validator, parser, analyzer, telemetry.Providers.Tracer, telemetry.Metrics, logger)
	return service, validator, nil
}

// NewApplication creates a new application instance with dependency injection
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", contracts.Version))

	app := &Application{
		Config:    cfg,
		Logger:    logger,
		StartTime: time.Now(),
	}

	telemetry, err := NewTelemetry(cfg, logger, os.Stdout, app.StartTime)
	if err != nil {
		return nil, err
	}
	app.OTelProviders = telemetry.Providers
	app.Metrics = telemetry.Metrics

	if err := app.initializeServices(telemetry); err != nil {
		_ = telemetry.Providers.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := app.setupRouter(); err != nil {
		_ = telemetry.Providers.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to setup router: %w", err)
	}

	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices(telemetry *Telemetry) error {
	analysis, validator, err := NewAnalysisService(a.Config, telemetry, a.Logger)
	if err != nil {
		return err
	}

	health := services.NewHealthService(contracts.Version, a.Logger)
	health.RegisterCheck("analyzer", services.ReadyCheck("Analysis policy loaded"))
	health.RegisterCheck("reports", services.OutputDirCheck(validator, a.Config.Export.OutputDir))

	a.Services = &ServiceContainer{
		Analysis:  analysis,
		Health:    health,
		Validator: validator,
	}
	a.ErrorHandler = apierrors.NewErrorHandler(a.Logger, a.Config.Logging.Level == "debug")

	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() error {
	r := chi.NewRouter()

	// RequestID → RealIP → OTel → Logger → Recoverer → headers → rate limit
	r.Use(custommw.RequestID)
	r.Use(middleware.RealIP)

	otelMiddleware, err := custommw.NewOTelMiddleware(a.OTelProviders, a.Metrics)
	if err != nil {
		return err
	}
	r.Use(otelMiddleware.Handler)

	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.ErrorHandler))
	r.Use(custommw.SecurityHeaders)
	r.Use(custommw.CORS(custommw.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		Logger:         a.Logger,
	}))

	if a.Config.Security.RateLimit.Enabled {
		r.Use(custommw.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	a.setupAPIRoutes(r)

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
	return nil
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(custommw.Timeout(a.Config.Server.RequestTimeout, a.Logger))

		healthHandler := handlers.NewHealthHandler(a.Services.Health, a.Logger)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		analysisHandler := handlers.NewAnalysisHandler(
			a.Services.Analysis,
			a.Config.Upload.MaxBytes,
			a.Logger,
			a.ErrorHandler,
		)
		r.Mount("/analysis", analysisHandler.Routes())
	})
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Server.Address(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start starts the HTTP server in the background. The returned channel
// yields the server error, if any, and is closed when the server stops.
func (a *Application) Start(ctx context.Context) <-chan error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", AppName),
		slog.String("version", contracts.Version),
		slog.String("address", a.Server.Addr),
		slog.String("level", a.Config.Logging.Level))

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			errCh <- err
		}
	}()

	return errCh
}

// Stop gracefully shuts the application down
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until ctx is cancelled or an interrupt arrives
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := a.Start(ctx)

	select {
	case err := <-errCh:
		if err != nil {
			_ = a.Stop(context.Background())
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		a.Logger.InfoContext(ctx, "Received shutdown signal")
	}

	return a.Stop(context.Background())
}
