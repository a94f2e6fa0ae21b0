// Package cmd defines and implements the CLI commands for the frontierd
// executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frontierd",
		Short: "A shared crawl frontier backed by Redis.",
		Long: `frontierd coordinates work distribution for a fleet of independent
crawl workers. It keeps one deduplicated queue of pending requests in a
shared Redis instance, so any number of workers can push candidates and
pop work without ever duplicating effort, and a crashed worker loses
nothing that must be recovered.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional; env vars use the FRONTIER_ prefix)")

	cmd.AddCommand(newServeCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "frontierd: %v\n", err)
		os.Exit(1)
	}
}
