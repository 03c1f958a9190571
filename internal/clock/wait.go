// Package clock provides helpers for time-related operations.
package clock

import (
	"context"
	"time"
)

// WaitForSignal waits for the duration, a value on signal, or context cancellation, whichever
// comes first. A nil signal never fires.
func WaitForSignal(ctx context.Context, d time.Duration, signal <-chan struct{}) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-signal:
		return nil
	case <-timer.C:
		return nil
	}
}
