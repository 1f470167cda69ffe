package probe

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ddoupal/IPMonitor/internal/logger"
	"github.com/Ddoupal/IPMonitor/internal/result"
	"github.com/Ddoupal/IPMonitor/internal/sink"
)

const (
	// DefaultInterval is the target cadence between consecutive probes of
	// one target.
	DefaultInterval = 100 * time.Millisecond

	// DefaultTimeout is the per-probe timeout.
	DefaultTimeout = 300 * time.Millisecond
)

// Prober runs the paced probe loop for a single target. One prober owns
// exactly one target for the lifetime of a run.
type Prober struct {
	pinger   Pinger
	interval time.Duration
	duration time.Duration
}

// ProberOption configures a Prober.
type ProberOption func(*Prober)

// WithInterval overrides the pacing interval between probes.
func WithInterval(interval time.Duration) ProberOption {
	return func(p *Prober) {
		p.interval = interval
	}
}

// NewProber creates a prober that checks the pinger's target once per
// interval for the given test duration.
func NewProber(pinger Pinger, duration time.Duration, opts ...ProberOption) *Prober {
	p := &Prober{
		pinger:   pinger,
		interval: DefaultInterval,
		duration: duration,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run issues one check per pacing interval until the test duration has
// elapsed or ctx is canceled, pushing one record per clean outcome into
// the sink. The sleep between iterations is shortened by the time the
// check itself took, so the long-run cadence stays close to the interval;
// lost cycles are never made up with bursts. A transport error is logged
// and skips that iteration only; it never stops the loop.
func (p *Prober) Run(ctx context.Context, s *sink.Sink) {
	deadline := time.Now().Add(p.duration)

	for time.Now().Before(deadline) {
		start := time.Now()

		success, err := p.pinger.Check(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			logger.WithFields(logrus.Fields{
				"target": p.pinger.Target(),
				"phase":  "probe",
			}).Warnf("probe attempt failed: %v", err)
		} else {
			s.Put(result.Record{
				Target:     p.pinger.Target(),
				ObservedAt: time.Now(),
				Success:    success,
			})
		}

		if wait := p.interval - time.Since(start); wait > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
		}
	}
}
