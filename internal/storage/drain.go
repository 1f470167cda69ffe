package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ddoupal/IPMonitor/internal/logger"
	"github.com/Ddoupal/IPMonitor/internal/sink"
)

// DefaultPollInterval is how long the drain sleeps when the sink is empty.
const DefaultPollInterval = 100 * time.Millisecond

// Drain is the single consumer that moves records from the sink into the
// durable store. It owns exclusive write access to the store for the run.
type Drain struct {
	store Store
	sink  *sink.Sink
	poll  time.Duration
}

// DrainOption configures a Drain.
type DrainOption func(*Drain)

// WithPollInterval overrides the sleep between empty-sink polls.
func WithPollInterval(poll time.Duration) DrainOption {
	return func(d *Drain) {
		d.poll = poll
	}
}

// NewDrain creates a drain that moves records from s into store.
func NewDrain(store Store, s *sink.Sink, opts ...DrainOption) *Drain {
	d := &Drain{
		store: store,
		sink:  s,
		poll:  DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run dequeues until done is closed and the sink is empty, appending
// records in dequeue order. done must only be closed once every producer
// has finished; the final flush after done then cannot race with a Put.
// An append failure aborts persistence for the rest of the run and is
// returned; nothing is retried. On ctx cancellation the drain flushes
// whatever is already enqueued before stopping.
func (d *Drain) Run(ctx context.Context, done <-chan struct{}) error {
	for {
		if err := d.flush(); err != nil {
			return err
		}

		select {
		case <-done:
			return d.flush()
		case <-ctx.Done():
			if err := d.flush(); err != nil {
				return err
			}
			return ctx.Err()
		case <-time.After(d.poll):
		}
	}
}

func (d *Drain) flush() error {
	for _, r := range d.sink.TakeAll() {
		if err := d.store.Append(r); err != nil {
			logger.WithFields(logrus.Fields{
				"target": r.Target,
				"phase":  "persist",
			}).Errorf("store write failed: %v", err)
			return fmt.Errorf("persist record for %s: %w", r.Target, err)
		}
	}
	return nil
}
