package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Ddoupal/IPMonitor/internal/app"
	"github.com/Ddoupal/IPMonitor/internal/config"
)

var (
	runDuration    int
	runTargets     []string
	runTargetsFile string
	runInterval    time.Duration
	runTimeout     time.Duration
	runProtocol    string
	runStore       string
	runOutput      string
	runPrivileged  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an availability test",
	Long: `Probe every target concurrently for the configured duration. Each
probe outcome is persisted as it happens; per-target availability is
computed from the persisted data once the run ends.

When duration or targets are not given and stdin is a terminal, they
are asked for interactively.`,
	Example: `  ipmonitor run --duration 30 --targets example.com --targets 10.0.0.1
  ipmonitor run --targets-file targets.yaml --protocol tcp --store csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		os.Exit(app.Run(ctx, cfg))
		return nil
	},
}

// buildConfig layers the configuration sources: defaults and environment,
// then the targets file, then explicit flags, then interactive prompts
// for whatever is still missing.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Load()

	if runTargetsFile != "" {
		if err := cfg.ApplyTargetsFile(runTargetsFile); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("duration") {
		cfg.DurationSeconds = runDuration
	}
	if cmd.Flags().Changed("targets") {
		cfg.Targets = runTargets
	}
	if cmd.Flags().Changed("interval") {
		cfg.Interval = runInterval
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = runTimeout
	}
	if cmd.Flags().Changed("protocol") {
		cfg.Protocol = runProtocol
	}
	if cmd.Flags().Changed("store") {
		cfg.StoreBackend = runStore
	}
	if cmd.Flags().Changed("output") {
		cfg.StorePath = runOutput
	}
	if cmd.Flags().Changed("privileged") {
		cfg.Privileged = runPrivileged
	}

	if cfg.DurationSeconds <= 0 || len(cfg.Targets) == 0 {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, fmt.Errorf("duration and targets are required when stdin is not a terminal")
		}
		if err := app.PromptMissing(cfg, os.Stdin, os.Stdout); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func init() {
	runCmd.Flags().IntVarP(&runDuration, "duration", "d", 0, "test duration in seconds")
	runCmd.Flags().StringSliceVarP(&runTargets, "targets", "t", nil, "addresses to probe (repeatable)")
	runCmd.Flags().StringVarP(&runTargetsFile, "targets-file", "f", "", "YAML file with duration and targets")
	runCmd.Flags().DurationVar(&runInterval, "interval", config.DefaultInterval, "pacing interval between probes of one target")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", config.DefaultTimeout, "per-probe timeout")
	runCmd.Flags().StringVar(&runProtocol, "protocol", config.ProtocolICMP, "probe protocol (icmp or tcp)")
	runCmd.Flags().StringVar(&runStore, "store", "", "store backend (xml, csv or sqlite)")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "store file path")
	runCmd.Flags().BoolVar(&runPrivileged, "privileged", false, "send raw ICMP packets (requires elevated privileges)")

	rootCmd.AddCommand(runCmd)
}
