package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	dataDir  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:           "roster",
		Short:         "Duty roster administration tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "data", "Directory containing units.csv, personnel.csv, duty_types.csv, roles.csv")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: error|warn|info|debug")

	cmd.AddCommand(newValidateCmd(&opts))
	cmd.AddCommand(newScopeCmd(&opts))
	cmd.AddCommand(newFairnessCmd(&opts))
	cmd.AddCommand(newStandbyCmd(&opts))
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return 1
}
