package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"uncertainty-gin/internal/config"
	"uncertainty-gin/internal/server"
)

func newServeCommand(state *cliState) *cobra.Command {
	var port string
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculation form and JSON API",
		Long: `Serve the calculation form and JSON API over HTTP.

Configuration comes from environment variables, optionally read from an env file:
  LISTEN_PORT         port to listen on (8080)
  GIN_MODE            debug, release or test (release)
  DEFAULT_LANGUAGE    tr or en (tr)
  CORS_ALLOW_ORIGINS  comma separated origins (*)
  SESSIONS, REPEATS   form layout (3 x 5)
  MAX_SESSIONS        sessions accepted by the API (20)
  LOG_LEVEL           zap log level (info)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if envFile != "" {
				files = append(files, envFile)
			}
			cfg, err := config.LoadConfig(files...)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.ListenPort = port
			}
			if err := state.buildLogger(cfg.LogLevel); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx, cfg, state.logger)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides LISTEN_PORT)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "Env file to load before reading the environment (default .env)")

	return cmd
}
