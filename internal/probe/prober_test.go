package probe_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Ddoupal/IPMonitor/internal/probe"
	"github.com/Ddoupal/IPMonitor/internal/sink"
)

// mockPinger implements the Pinger interface for testing.
type mockPinger struct {
	mu      sync.Mutex
	target  string
	success bool
	err     error
	calls   int
}

func (m *mockPinger) Check(ctx context.Context) (bool, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.success, m.err
}

func (m *mockPinger) Target() string {
	return m.target
}

func (m *mockPinger) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestProberProducesPacedRecords(t *testing.T) {
	pinger := &mockPinger{target: "example.com", success: true}
	s := sink.New()

	p := probe.NewProber(pinger, 300*time.Millisecond, probe.WithInterval(50*time.Millisecond))
	p.Run(testContext(t), s)

	records := s.TakeAll()
	// floor(300/50) = 6, allow generous jitter either way
	assert.GreaterOrEqual(t, len(records), 3)
	assert.LessOrEqual(t, len(records), 8)

	for _, r := range records {
		assert.Equal(t, "example.com", r.Target)
		assert.True(t, r.Success)
		assert.False(t, r.ObservedAt.IsZero())
	}
}

func TestProberRecordsFailuresAsData(t *testing.T) {
	pinger := &mockPinger{target: "unreachable.invalid", success: false}
	s := sink.New()

	p := probe.NewProber(pinger, 150*time.Millisecond, probe.WithInterval(50*time.Millisecond))
	p.Run(testContext(t), s)

	records := s.TakeAll()
	assert.NotEmpty(t, records)
	for _, r := range records {
		assert.False(t, r.Success)
	}
}

func TestProberSkipsRecordOnTransportError(t *testing.T) {
	pinger := &mockPinger{target: "example.com", err: errors.New("socket: operation not permitted")}
	s := sink.New()

	p := probe.NewProber(pinger, 150*time.Millisecond, probe.WithInterval(50*time.Millisecond))
	p.Run(testContext(t), s)

	// The loop kept going despite the errors but produced no records.
	assert.Greater(t, pinger.callCount(), 1)
	assert.Empty(t, s.TakeAll())
}

func TestProberStopsOnCancellation(t *testing.T) {
	pinger := &mockPinger{target: "example.com", success: true}
	s := sink.New()

	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	p := probe.NewProber(pinger, time.Hour, probe.WithInterval(50*time.Millisecond))

	doneCh := make(chan struct{})
	go func() {
		p.Run(ctx, s)
		close(doneCh)
	}()

	select {
	case <-doneCh:
	case <-time.After(time.Second):
		t.Fatal("prober did not stop after cancellation")
	}
}
