package resilience

import (
	"context"
	"sync"
	"time"
)

// BreakerState is the circuit breaker state.
type BreakerState string

const (
	StateClosed   BreakerState = "closed"
	StateOpen     BreakerState = "open"
	StateHalfOpen BreakerState = "half-open"
)

// BreakerConfig configures a CircuitBreaker.
type BreakerConfig struct {
	// FailureThreshold is the consecutive-failure count that opens the
	// circuit while closed.
	FailureThreshold int
	// ResetTimeout is how long the circuit stays open before a trial
	// call is allowed through (half-open).
	ResetTimeout time.Duration
	// HalfOpenMaxAttempts is the number of consecutive successful trial
	// calls required to close the circuit again.
	HalfOpenMaxAttempts int
}

// DefaultBreakerConfig returns the channel-level defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold:    5,
		ResetTimeout:        30 * time.Second,
		HalfOpenMaxAttempts: 3,
	}
}

// CircuitBreaker guards the automation channel: once the target fails
// persistently, further calls are refused until a cool-down elapses,
// instead of hammering a dead target with keystrokes. Per-call retries
// and timeouts remain the first line of defense; the breaker sits above
// them at the channel level.
type CircuitBreaker struct {
	mu                sync.Mutex
	cfg               BreakerConfig
	state             BreakerState
	failures          int
	lastFailure       time.Time
	halfOpenSuccesses int

	// now is swappable in tests.
	now func() time.Time
}

// NewCircuitBreaker creates a closed breaker. Zero-value config fields
// fall back to DefaultBreakerConfig.
func NewCircuitBreaker(cfg BreakerConfig) *CircuitBreaker {
	def := DefaultBreakerConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = def.ResetTimeout
	}
	if cfg.HalfOpenMaxAttempts <= 0 {
		cfg.HalfOpenMaxAttempts = def.HalfOpenMaxAttempts
	}
	return &CircuitBreaker{
		cfg:   cfg,
		state: StateClosed,
		now:   time.Now,
	}
}

// Execute runs op through the breaker. While open it returns
// *CircuitOpenError without invoking op, unless the reset timeout has
// elapsed, in which case the call proceeds as a half-open trial.
func (b *CircuitBreaker) Execute(ctx context.Context, op func(context.Context) error) error {
	b.mu.Lock()
	if b.state == StateOpen {
		if b.now().Sub(b.lastFailure) >= b.cfg.ResetTimeout {
			b.state = StateHalfOpen
			b.halfOpenSuccesses = 0
		} else {
			last := b.lastFailure
			b.mu.Unlock()
			return &CircuitOpenError{LastFailure: last}
		}
	}
	b.mu.Unlock()

	err := op(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.onFailure()
		return err
	}
	b.onSuccess()
	return nil
}

func (b *CircuitBreaker) onFailure() {
	b.failures++
	b.lastFailure = b.now()

	if b.state == StateHalfOpen {
		// A failing trial reopens immediately.
		b.state = StateOpen
		b.halfOpenSuccesses = 0
		return
	}
	if b.failures >= b.cfg.FailureThreshold {
		b.state = StateOpen
	}
}

func (b *CircuitBreaker) onSuccess() {
	if b.state == StateHalfOpen {
		b.halfOpenSuccesses++
		if b.halfOpenSuccesses >= b.cfg.HalfOpenMaxAttempts {
			b.state = StateClosed
			b.failures = 0
			b.halfOpenSuccesses = 0
		}
		return
	}
	// One failure does not accumulate across unrelated successful calls.
	b.failures = 0
}

// State returns the current breaker state.
func (b *CircuitBreaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// BreakerStats is a read-only snapshot for diagnostics.
type BreakerStats struct {
	State             BreakerState
	Failures          int
	LastFailure       time.Time
	HalfOpenSuccesses int
}

// Stats returns a snapshot of the breaker state.
func (b *CircuitBreaker) Stats() BreakerStats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return BreakerStats{
		State:             b.state,
		Failures:          b.failures,
		LastFailure:       b.lastFailure,
		HalfOpenSuccesses: b.halfOpenSuccesses,
	}
}

// Reset forces the breaker closed and clears all counters.
func (b *CircuitBreaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failures = 0
	b.halfOpenSuccesses = 0
	b.lastFailure = time.Time{}
}
