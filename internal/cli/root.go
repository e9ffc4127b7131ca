package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"pgcetcli/internal/config"
	"pgcetcli/internal/infrastructure"
	"pgcetcli/pkg/contracts"
)

// environment carries the configuration and logger shared by subcommands.
// It is populated once the root command's flags are parsed.
type environment struct {
	envFile  string
	logLevel string
	noColor  bool

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand builds the pgcet command tree
func NewRootCommand() *cobra.Command {
	env := &environment{}

	root := &cobra.Command{
		Use:   "pgcet",
		Short: "PGCET seat efficiency analyzer",
		Long: `pgcet analyzes PGCET seat allocation datasets (CSV or XLSX) and reports
fill rates, vacancy, cost and stress indicators with an overall efficiency verdict.

Configuration is read from PGCET_* environment variables, an optional YAML file
(PGCET_CONFIG_FILE, config.yaml or configs/config.yaml) and a .env file.`,
		Version:       contracts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.load(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return infrastructure.CloseLogFile()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&env.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.StringVar(&env.logLevel, "log-level", "", "log level (debug, info, warn, error), overrides PGCET_LOGGING_LEVEL")
	flags.BoolVar(&env.noColor, "no-color", false, "disable coloured output")

	root.AddCommand(
		newAnalyzeCommand(env),
		newServeCommand(env),
		newVersionCommand(),
	)

	return root
}

// Execute runs the root command with ctx
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// load reads the dotenv file and configuration and builds the logger.
// Logs go to stderr so stdout carries only command output.
func (e *environment) load(cmd *cobra.Command) error {
	if err := godotenv.Load(e.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", e.envFile, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if e.logLevel != "" {
		cfg.Logging.Level = e.logLevel
	}

	logger, err := infrastructure.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if e.noColor {
		color.NoColor = true
	}

	slog.SetDefault(logger)
	e.cfg = cfg
	e.logger = logger
	return nil
}
