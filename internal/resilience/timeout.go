package resilience

import (
	"context"
	"time"
)

// WithTimeout races op against a timer. If the timer fires first the
// call returns a *TimeoutError carrying the duration and the optional
// message; otherwise op's own outcome is returned. The operation's
// context is cancelled on timeout so a well-behaved op can stop early,
// but its result is discarded either way.
func WithTimeout(ctx context.Context, timeout time.Duration, message string, op func(context.Context) error) error {
	opCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- Normalize(r)
			}
		}()
		done <- op(opCtx)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return &TimeoutError{After: timeout, Message: message}
	}
}
