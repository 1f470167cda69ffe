// Package sink provides the in-memory hand-off queue between the probers
// and the persistence drain.
package sink

import (
	"sync"

	"github.com/Ddoupal/IPMonitor/internal/result"
)

// Sink is an unbounded multi-producer/single-consumer queue of records.
// Put is safe to call from any number of goroutines; TakeAll must only be
// called from the single drain goroutine. Every record put is returned by
// exactly one TakeAll call.
type Sink struct {
	mu      sync.Mutex
	records []result.Record
}

// New creates an empty sink.
func New() *Sink {
	return &Sink{}
}

// Put enqueues a record.
func (s *Sink) Put(r result.Record) {
	s.mu.Lock()
	s.records = append(s.records, r)
	s.mu.Unlock()
}

// TakeAll removes and returns every record currently queued, in enqueue
// order. The returned slice is owned by the caller.
func (s *Sink) TakeAll() []result.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	taken := s.records
	s.records = nil
	return taken
}

// Len reports the number of records currently queued.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
