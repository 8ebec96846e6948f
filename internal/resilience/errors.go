// Package resilience provides the retry, timeout, and circuit-breaking
// primitives that wrap every call to the automation target. Keystroke
// automation fails in bursts (compositor lag, focus races, a busy
// terminal), so transient failures are retried locally and only a
// terminal ScriptError surfaces to callers.
package resilience

import (
	"fmt"
	"time"
)

// TimeoutError reports that an operation exceeded its allotted duration.
type TimeoutError struct {
	After   time.Duration
	Message string
}

func (e *TimeoutError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: timed out after %dms", e.Message, e.After.Milliseconds())
	}
	return fmt.Sprintf("Operation timed out after %dms", e.After.Milliseconds())
}

// ScriptError is the terminal failure kind for an engine step: a
// primitive gave up after exhausting its retry budget. Script carries
// the literal text that was being injected, for diagnostics.
type ScriptError struct {
	Script  string
	Retries int
	Err     error
}

func (e *ScriptError) Error() string {
	if e.Script != "" {
		return fmt.Sprintf("script execution failed after %d retries: %v (script: %q)", e.Retries, e.Err, e.Script)
	}
	return fmt.Sprintf("script execution failed after %d retries: %v", e.Retries, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// CircuitOpenError reports that the breaker refused the call outright;
// unlike ScriptError, no attempt was made at all.
type CircuitOpenError struct {
	LastFailure time.Time
}

func (e *CircuitOpenError) Error() string {
	return "circuit breaker is open"
}

// Normalize coerces any recovered or thrown value into a proper error so
// downstream handling can rely on a single shape.
func Normalize(v any) error {
	switch err := v.(type) {
	case nil:
		return nil
	case error:
		return err
	default:
		return fmt.Errorf("%v", v)
	}
}
