package resilience

import (
	"context"
	"time"
)

// RetryOptions configures WithRetry.
type RetryOptions struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int
	// RetryDelay is the base wait between attempts.
	RetryDelay time.Duration
	// ExponentialBackoff doubles the wait per failed attempt
	// (RetryDelay × 2^attemptIndex).
	ExponentialBackoff bool
	// OnRetry observes each retry (not the terminal failure). Attempt
	// numbering starts at 1 for the first retry.
	OnRetry func(err error, attempt int)
	// ShouldRetry decides whether a failure is worth retrying. Nil
	// means always retry.
	ShouldRetry func(err error) bool
}

// WithRetry attempts op up to MaxRetries+1 times. On exhaustion the last
// error is returned unchanged so callers can inspect its original kind.
// The context cancels waits between attempts.
func WithRetry(ctx context.Context, op func(context.Context) error, opts RetryOptions) error {
	var lastErr error

	for attempt := 0; ; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt >= opts.MaxRetries {
			return lastErr
		}
		if opts.ShouldRetry != nil && !opts.ShouldRetry(err) {
			return lastErr
		}
		if opts.OnRetry != nil {
			opts.OnRetry(err, attempt+1)
		}

		delay := opts.RetryDelay
		if opts.ExponentialBackoff {
			delay = opts.RetryDelay << attempt
		}
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
}
