package cli

import (
	"github.com/spf13/cobra"

	"pgcetcli/internal/app"
)

func newServeCommand(env *environment) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP analysis server",
		Long: `Start the HTTP server exposing POST /api/analysis, POST /api/analysis/export,
the health endpoints and Prometheus metrics on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("host") {
				env.cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				env.cfg.Server.Port = port
			}

			application, err := app.NewApplication(env.cfg, env.logger)
			if err != nil {
				return err
			}
			return application.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host, overrides PGCET_SERVER_HOST")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port, overrides PGCET_SERVER_PORT")
	return cmd
}
