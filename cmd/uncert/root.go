package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"uncertainty-gin/internal/logging"
)

var version = "dev"

// cliState is shared by the subcommands of one root command.
type cliState struct {
	debug  bool
	logger *zap.Logger
}

// buildLogger replaces the no-op logger; --debug wins over level.
func (s *cliState) buildLogger(level string) error {
	if s.debug {
		level = "debug"
	}
	logger, err := logging.New(level)
	if err != nil {
		return err
	}
	s.logger = logger
	return nil
}

func newRootCommand() *cobra.Command {
	state := &cliState{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "uncert",
		Short: "Measurement uncertainty calculator",
		Long: `uncert computes the average, standard uncertainty, expanded uncertainty (k=2)
and repeatability of repeated measurements taken over several sessions (days),
per session and for all sessions together, and draws an error-bar chart.

Run "uncert serve" for the web form or "uncert calc" to evaluate a file.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = state.logger.Sync()
		},
	}

	cmd.PersistentFlags().BoolVar(&state.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newServeCommand(state))
	cmd.AddCommand(newCalcCommand(state))

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}
