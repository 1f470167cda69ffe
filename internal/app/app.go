// Package app wires one availability test run together: probers feeding
// the sink, the persistence drain, and the post-run aggregation pass.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gookit/color"
	"github.com/sirupsen/logrus"

	"github.com/Ddoupal/IPMonitor/internal/config"
	"github.com/Ddoupal/IPMonitor/internal/logger"
	"github.com/Ddoupal/IPMonitor/internal/probe"
	"github.com/Ddoupal/IPMonitor/internal/report"
	"github.com/Ddoupal/IPMonitor/internal/sink"
	"github.com/Ddoupal/IPMonitor/internal/stats"
	"github.com/Ddoupal/IPMonitor/internal/storage"
)

// Run executes one availability test run and returns an exit code. The
// config must already be validated.
func Run(ctx context.Context, cfg *config.Config) int {
	store, err := storage.Open(cfg.StoreBackend, cfg.StorePath)
	if err != nil {
		logger.Errorf("open store: %v", err)
		return 1
	}

	resultSink := sink.New()
	drain := storage.NewDrain(store, resultSink)

	// done is closed only after every prober has finished, which together
	// with an empty sink is the drain's sole termination condition.
	done := make(chan struct{})
	drainErr := make(chan error, 1)
	go func() {
		drainErr <- drain.Run(ctx, done)
	}()

	coordinator := probe.NewCoordinator(
		buildPingers(cfg),
		cfg.Duration(),
		probe.WithInterval(cfg.Interval),
	)

	color.LightCyan.Printf("probing %d target(s) for %d second(s), results in %s\n",
		len(cfg.Targets), cfg.DurationSeconds, cfg.StorePath)

	start := time.Now()
	coordinator.Run(ctx, resultSink)
	end := time.Now()

	close(done)

	compromised := false
	if err := <-drainErr; err != nil && !errors.Is(err, context.Canceled) {
		compromised = true
		logger.WithFields(logrus.Fields{"phase": "persist"}).
			Errorf("persistence aborted, statistics for this run are partial: %v", err)
	}
	if err := store.Close(); err != nil {
		compromised = true
		logger.WithFields(logrus.Fields{"phase": "persist"}).
			Errorf("finalize store: %v", err)
	}

	summaries, readErr := aggregateStore(cfg)
	if readErr != nil {
		logger.WithFields(logrus.Fields{"phase": "read"}).
			Errorf("store read failed, reporting whatever was readable: %v", readErr)
	}

	report.Report{
		Summaries:   summaries,
		Targets:     cfg.Targets,
		Start:       start,
		End:         end,
		Compromised: compromised || readErr != nil,
	}.Print()

	if compromised {
		return 1
	}
	return 0
}

// aggregateStore replays the finalized store and folds it into per-target
// summaries. A read failure yields the records decoded before it.
func aggregateStore(cfg *config.Config) (map[string]stats.Summary, error) {
	reader, err := storage.OpenReader(cfg.StoreBackend, cfg.StorePath)
	if err != nil {
		return map[string]stats.Summary{}, fmt.Errorf("open store for aggregation: %w", err)
	}

	records, err := reader.Records()
	return stats.Aggregate(records), err
}

func buildPingers(cfg *config.Config) []probe.Pinger {
	pingers := make([]probe.Pinger, 0, len(cfg.Targets))
	for _, target := range cfg.Targets {
		switch cfg.Protocol {
		case config.ProtocolTCP:
			pingers = append(pingers, probe.NewTCPPinger(target, cfg.Timeout))
		default:
			pingers = append(pingers, probe.NewICMPPinger(target, cfg.Timeout, cfg.Privileged))
		}
	}
	return pingers
}
