package probe_test

import (
	"context"
	"testing"
)

// testContext mirrors Go 1.24's t.Context for older toolchains: it returns a
// context that is canceled when the test ends.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
