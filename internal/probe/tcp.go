package probe

import (
	"context"
	"net"
	"time"
)

const defaultTCPPort = "80"

// TCPPinger probes reachability by opening and immediately closing a TCP
// connection. Targets without an explicit port are probed on port 80.
type TCPPinger struct {
	dialer *net.Dialer
	target string
}

// NewTCPPinger creates a TCP pinger for the given target with the given
// per-probe timeout.
func NewTCPPinger(target string, timeout time.Duration) *TCPPinger {
	return &TCPPinger{
		target: target,
		dialer: &net.Dialer{Timeout: timeout},
	}
}

// Target implements Pinger.
func (t *TCPPinger) Target() string {
	return t.target
}

func (t *TCPPinger) address() string {
	if _, _, err := net.SplitHostPort(t.target); err == nil {
		return t.target
	}
	return net.JoinHostPort(t.target, defaultTCPPort)
}

// Check implements Pinger. A refused or timed-out dial is a valid negative
// outcome; only context cancellation counts as a transport error.
func (t *TCPPinger) Check(ctx context.Context) (bool, error) {
	conn, err := t.dialer.DialContext(ctx, "tcp", t.address())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		return false, nil
	}
	conn.Close()
	return true, nil
}
