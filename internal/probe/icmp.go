package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/go-ping/ping"
)

// ICMPPinger probes reachability with a single ICMP echo request.
type ICMPPinger struct {
	target     string
	timeout    time.Duration
	privileged bool
}

// NewICMPPinger creates an ICMP pinger for the given target. privileged
// selects raw ICMP sockets, which most systems require root for;
// unprivileged mode uses UDP datagram sockets instead.
func NewICMPPinger(target string, timeout time.Duration, privileged bool) *ICMPPinger {
	return &ICMPPinger{
		target:     target,
		timeout:    timeout,
		privileged: privileged,
	}
}

// Target implements Pinger.
func (p *ICMPPinger) Target() string {
	return p.target
}

// Check implements Pinger. It sends one echo request and reports whether a
// reply arrived within the timeout. Socket or resolution failures are
// transport errors, not negative outcomes.
func (p *ICMPPinger) Check(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	pinger, err := ping.NewPinger(p.target)
	if err != nil {
		return false, fmt.Errorf("create pinger for %s: %w", p.target, err)
	}

	pinger.SetPrivileged(p.privileged)
	pinger.Count = 1
	pinger.Timeout = p.timeout

	if err := pinger.Run(); err != nil {
		return false, fmt.Errorf("ping %s: %w", p.target, err)
	}

	return pinger.Statistics().PacketsRecv > 0, nil
}
