package internal

import (
	"context"
	"errors"
	"time"
)

// ErrWaitTimeout is returned by WaitUntil when the condition did not become
// true within the timeout.
var ErrWaitTimeout = errors.New("wait condition timeout exceeded")

// WaitUntil polls condition at the given interval until it reports true,
// the timeout elapses, or ctx is cancelled. The condition is checked once
// immediately before any sleep.
func WaitUntil(ctx context.Context, condition func() bool, interval, timeout time.Duration) error {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if condition() {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrWaitTimeout
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
