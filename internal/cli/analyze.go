package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"pgcetcli/internal/app"
	"pgcetcli/internal/exporter"
	"pgcetcli/internal/files"
	"pgcetcli/internal/infrastructure"
	"pgcetcli/internal/services"
)

// Output modes for the analyze command
const (
	OutputText = "text"
	OutputJSON = "json"
)

type analyzeOptions struct {
	output    string
	exportDir string
	parallel  int
}

func newAnalyzeCommand(env *environment) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze FILE|DIR|GLOB...",
		Short: "Analyze one or more seat allocation datasets",
		Long: `Analyze PGCET seat allocation datasets and print an efficiency report per file.

Directories are searched for .csv and .xlsx datasets and glob patterns are
expanded. Files are analyzed concurrently. A file that fails does not stop the others;
the command exits non-zero when any file failed.`,
		Example: `  pgcet analyze seats_2023.csv
  pgcet analyze --output json seats_2022.csv seats_2023.xlsx
  pgcet analyze --export reports/ seats_2023.csv
  pgcet analyze 'data/pgcet_*.csv'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, env, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", OutputText, "output format (text, json)")
	flags.StringVar(&opts.exportDir, "export", "", "also write CSV, XLSX and text reports into this directory")
	flags.IntVar(&opts.parallel, "parallel", runtime.NumCPU(), "maximum files analyzed at once")

	return cmd
}

func runAnalyze(cmd *cobra.Command, env *environment, opts *analyzeOptions, paths []string) error {
	if opts.output != OutputText && opts.output != OutputJSON {
		return fmt.Errorf("unknown output format %q (want %s or %s)", opts.output, OutputText, OutputJSON)
	}
	if opts.parallel < 1 {
		opts.parallel = 1
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	// One trace ID correlates every log line of this run
	ctx = infrastructure.EnsureTraceID(ctx)

	telemetry, err := app.NewTelemetry(env.cfg, env.logger, cmd.ErrOrStderr(), time.Now())
	if err != nil {
		return err
	}
	defer func() { _ = telemetry.Providers.Shutdown(context.Background()) }()

	service, validator, err := app.NewAnalysisService(env.cfg, telemetry, env.logger)
	if err != nil {
		return err
	}

	var reportExporter *exporter.ReportExporter
	if opts.exportDir != "" {
		if err := validator.ValidateOutputDirectory(opts.exportDir); err != nil {
			return err
		}
		reportExporter = exporter.NewReportExporter(opts.exportDir, env.logger)
	}

	paths, err = files.NewDiscovery(env.cfg.Upload.AllowedExtensions, env.logger).Expand(paths)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no datasets to analyze")
	}

	reports := analyzeFiles(ctx, service, opts.parallel, paths)

	if reportExporter != nil {
		exportReports(ctx, reportExporter, telemetry.Metrics, reports)
	}

	if opts.output == OutputJSON {
		if err := writeJSON(cmd.OutOrStdout(), reports); err != nil {
			return err
		}
	} else {
		if err := writeText(cmd.OutOrStdout(), reports); err != nil {
			return err
		}
	}

	failed := 0
	for _, report := range reports {
		if report.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %v\n", errorLabel(), report.Path, report.Err)
		}
	}
	for _, report := range reports {
		for _, path := range report.Exports {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(reports))
	}
	return nil
}

// analyzeFiles runs every path through the service with at most limit
// analyses in flight. Reports keep the order of paths.
func analyzeFiles(ctx context.Context, service *services.AnalysisService, limit int, paths []string) []fileReport {
	reports := make([]fileReport, len(paths))

	var g errgroup.Group
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			reports[i].Path = path
			if err := ctx.Err(); err != nil {
				reports[i].Err = err
				return nil
			}
			result, err := service.AnalyzeFile(ctx, path)
			reports[i].Result = result
			reports[i].Err = err
			return nil
		})
	}

	// Per-file failures are recorded on the report, never returned
	_ = g.Wait()
	return reports
}

// exportReports writes every successful result in all report formats
func exportReports(ctx context.Context, reportExporter *exporter.ReportExporter, metrics *infrastructure.AnalysisMetrics, reports []fileReport) {
	for i := range reports {
		if reports[i].Result == nil {
			continue
		}

		paths, err := reportExporter.ExportAll(reportStem(reports[i].Path), reports[i].Result)
		for _, path := range paths {
			infrastructure.RecordReportExport(ctx, metrics, strings.TrimPrefix(filepath.Ext(path), "."), nil)
		}
		reports[i].Exports = paths
		if err != nil {
			infrastructure.RecordReportExport(ctx, metrics, "unknown", err)
			reports[i].Err = err
		}
	}
}

// reportStem is the dataset's file name without its extension
func reportStem(path string) string {
	base := filepath.Base(path)
	if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" {
		return stem
	}
	return "pgcet"
}
