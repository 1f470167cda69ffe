// Package cmd holds the command-line interface.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Ddoupal/IPMonitor/internal/consts"
	"github.com/Ddoupal/IPMonitor/internal/logger"
)

var (
	logLevel string
	logFile  string
)

var rootCmd = &cobra.Command{
	Use:   "ipmonitor",
	Short: "Measure network availability of a set of targets",
	Long: `ipmonitor probes a set of targets concurrently for a fixed duration,
persists every probe outcome, and reports per-target availability
percentages once the run finishes.`,
	Version: consts.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logLevel, logFile)
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "diagnostics log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write diagnostics to this file")
}
