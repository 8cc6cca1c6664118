package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds a single test's run, collection, or store work.
const DefaultTimeout = 5 * time.Second

// Context returns a context that expires after timeout, or DefaultTimeout
// when timeout is not positive. It never outlives the test deadline.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if dt, ok := t.(interface{ Deadline() (time.Time, bool) }); ok {
		if deadline, ok := dt.Deadline(); ok {
			if remaining := time.Until(deadline) - time.Second; remaining > 0 && remaining < timeout {
				timeout = remaining
			}
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// CancelledContext returns a context that is already cancelled, for
// exercising interrupted runs.
func CancelledContext(t testing.TB) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}
