// Package timing provides self-tuning wait durations for keystroke
// automation. Simulated input has no completion acknowledgement, so the
// only lever is how long to pause between steps: a responsive target
// earns shorter pauses, a flaky or loaded one earns longer ones.
package timing

import (
	"context"
	"sync"
	"time"
)

// Config bounds an adaptive delay.
type Config struct {
	Base time.Duration // starting delay, restored on Reset
	Min  time.Duration // floor after repeated successes
	Max  time.Duration // ceiling after repeated failures
}

// DefaultConfig returns the delay bounds used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Base: 100 * time.Millisecond,
		Min:  50 * time.Millisecond,
		Max:  1000 * time.Millisecond,
	}
}

const (
	historySize      = 10
	successThreshold = 3
	failureThreshold = 2
	streakCap        = 10
	shrinkFactor     = 0.8
	growthFactor     = 1.5
)

// AdaptiveDelay tracks a current wait duration that shrinks toward Min
// on sustained success and grows toward Max on sustained failure.
type AdaptiveDelay struct {
	mu            sync.Mutex
	cfg           Config
	current       time.Duration
	successStreak int
	failureStreak int
	history       []time.Duration

	// sleep is swappable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewAdaptiveDelay creates a delay starting at cfg.Base. Zero-value
// fields fall back to DefaultConfig.
func NewAdaptiveDelay(cfg Config) *AdaptiveDelay {
	def := DefaultConfig()
	if cfg.Base <= 0 {
		cfg.Base = def.Base
	}
	if cfg.Min <= 0 {
		cfg.Min = def.Min
	}
	if cfg.Max <= 0 {
		cfg.Max = def.Max
	}
	return &AdaptiveDelay{
		cfg:     cfg,
		current: cfg.Base,
		sleep:   sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Wait suspends for the current delay, then records the realized value
// in the history buffer. Concurrent waits are independent; the mutex is
// not held while sleeping.
func (d *AdaptiveDelay) Wait(ctx context.Context) error {
	d.mu.Lock()
	wait := d.current
	sleep := d.sleep
	d.mu.Unlock()

	if err := sleep(ctx, wait); err != nil {
		return err
	}

	d.mu.Lock()
	d.history = append(d.history, wait)
	if len(d.history) > historySize {
		d.history = d.history[1:]
	}
	d.mu.Unlock()
	return nil
}

// RecordSuccess notes a successful step. Once the success streak reaches
// the threshold the current delay shrinks toward Min.
func (d *AdaptiveDelay) RecordSuccess() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.successStreak < streakCap {
		d.successStreak++
	}
	if d.failureStreak > 0 {
		d.failureStreak--
	}

	if d.successStreak >= successThreshold {
		d.current = clamp(time.Duration(float64(d.current)*shrinkFactor), d.cfg.Min, d.cfg.Max)
	}
}

// RecordFailure notes a failed step. Once the failure streak reaches the
// threshold the current delay grows toward Max.
func (d *AdaptiveDelay) RecordFailure() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.failureStreak < streakCap {
		d.failureStreak++
	}
	if d.successStreak > 0 {
		d.successStreak--
	}

	if d.failureStreak >= failureThreshold {
		d.current = clamp(time.Duration(float64(d.current)*growthFactor), d.cfg.Min, d.cfg.Max)
	}
}

// Reset restores the base delay and clears streaks and history.
func (d *AdaptiveDelay) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = d.cfg.Base
	d.successStreak = 0
	d.failureStreak = 0
	d.history = nil
}

// Current returns the delay the next Wait will use.
func (d *AdaptiveDelay) Current() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// Average returns the mean realized delay, or Base when no waits have
// happened yet.
func (d *AdaptiveDelay) Average() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.history) == 0 {
		return d.cfg.Base
	}
	var total time.Duration
	for _, v := range d.history {
		total += v
	}
	return total / time.Duration(len(d.history))
}

// Stats is a read-only snapshot for diagnostics.
type Stats struct {
	Current       time.Duration
	Average       time.Duration
	SuccessStreak int
	FailureStreak int
	Samples       int
}

// Stats returns a snapshot of the delay state.
func (d *AdaptiveDelay) Stats() Stats {
	avg := d.Average()
	d.mu.Lock()
	defer d.mu.Unlock()
	return Stats{
		Current:       d.current,
		Average:       avg,
		SuccessStreak: d.successStreak,
		FailureStreak: d.failureStreak,
		Samples:       len(d.history),
	}
}

func clamp(v, min, max time.Duration) time.Duration {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
