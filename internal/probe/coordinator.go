package probe

import (
	"context"
	"sync"
	"time"

	"github.com/Ddoupal/IPMonitor/internal/sink"
)

// Coordinator fans out one prober per target and runs them concurrently.
// Targets are probed independently: one target's transport errors never
// affect another's cadence.
type Coordinator struct {
	probers []*Prober
}

// NewCoordinator builds a coordinator with one prober per pinger, all
// sharing the same pacing interval and test duration.
func NewCoordinator(pingers []Pinger, duration time.Duration, opts ...ProberOption) *Coordinator {
	probers := make([]*Prober, 0, len(pingers))
	for _, pinger := range pingers {
		probers = append(probers, NewProber(pinger, duration, opts...))
	}
	return &Coordinator{probers: probers}
}

// Run starts every prober in its own goroutine and returns only once all
// of them have reached their terminal state, whether by duration expiry or
// cancellation.
func (c *Coordinator) Run(ctx context.Context, s *sink.Sink) {
	var wg sync.WaitGroup

	for _, p := range c.probers {
		wg.Add(1)
		go func(p *Prober) {
			defer wg.Done()
			p.Run(ctx, s)
		}(p)
	}

	wg.Wait()
}
