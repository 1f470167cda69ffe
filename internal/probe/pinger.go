// Package probe implements the reachability checks and the paced
// per-target probe loops.
package probe

import "context"

// Pinger performs a single reachability check against one target.
type Pinger interface {
	// Check runs one probe. A clean negative outcome (no reply within the
	// timeout, connection refused) is (false, nil). A non-nil error means
	// the attempt produced no usable outcome at all and contributes no
	// record.
	Check(ctx context.Context) (bool, error)
	// Target returns the probed address.
	Target() string
}
