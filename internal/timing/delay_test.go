package timing

import (
	"context"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		Base: 100 * time.Millisecond,
		Min:  50 * time.Millisecond,
		Max:  1000 * time.Millisecond,
	}
}

// instant replaces the sleep so tests never block.
func instant(d *AdaptiveDelay) {
	d.sleep = func(ctx context.Context, _ time.Duration) error {
		return ctx.Err()
	}
}

func TestSuccessShrinksTowardMin(t *testing.T) {
	d := NewAdaptiveDelay(testConfig())

	d.RecordSuccess()
	d.RecordSuccess()
	if got := d.Current(); got != 100*time.Millisecond {
		t.Errorf("Current after 2 successes = %v, want unchanged 100ms", got)
	}

	d.RecordSuccess()
	got := d.Current()
	if got >= 100*time.Millisecond {
		t.Errorf("Current after 3 successes = %v, want < 100ms", got)
	}
	if got < 50*time.Millisecond {
		t.Errorf("Current = %v, want >= min 50ms", got)
	}

	// Keep succeeding; current must clamp at min, never below.
	for i := 0; i < 30; i++ {
		d.RecordSuccess()
	}
	if got := d.Current(); got != 50*time.Millisecond {
		t.Errorf("Current after many successes = %v, want clamped to 50ms", got)
	}
}

func TestFailureGrowsTowardMax(t *testing.T) {
	d := NewAdaptiveDelay(testConfig())

	d.RecordFailure()
	if got := d.Current(); got != 100*time.Millisecond {
		t.Errorf("Current after 1 failure = %v, want unchanged 100ms", got)
	}

	d.RecordFailure()
	d.RecordFailure()
	got := d.Current()
	if got <= 100*time.Millisecond {
		t.Errorf("Current after 3 failures = %v, want > 100ms", got)
	}
	if got > 1000*time.Millisecond {
		t.Errorf("Current = %v, want <= max 1000ms", got)
	}

	for i := 0; i < 30; i++ {
		d.RecordFailure()
	}
	if got := d.Current(); got != 1000*time.Millisecond {
		t.Errorf("Current after many failures = %v, want clamped to 1000ms", got)
	}
}

func TestStreaksDecayEachOther(t *testing.T) {
	d := NewAdaptiveDelay(testConfig())

	// Two successes, then a failure: the failure decays the success
	// streak, so a following success must not trigger a shrink.
	d.RecordSuccess()
	d.RecordSuccess()
	d.RecordFailure()
	d.RecordSuccess()
	if got := d.Current(); got != 100*time.Millisecond {
		t.Errorf("Current = %v, want 100ms (streak decayed by failure)", got)
	}
}

func TestReset(t *testing.T) {
	d := NewAdaptiveDelay(testConfig())
	instant(d)

	for i := 0; i < 5; i++ {
		d.RecordFailure()
	}
	if err := d.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	d.Reset()
	s := d.Stats()
	if s.Current != 100*time.Millisecond {
		t.Errorf("Current after Reset = %v, want exactly 100ms", s.Current)
	}
	if s.SuccessStreak != 0 || s.FailureStreak != 0 {
		t.Errorf("streaks after Reset = %d/%d, want 0/0", s.SuccessStreak, s.FailureStreak)
	}
	if s.Samples != 0 {
		t.Errorf("Samples after Reset = %d, want 0", s.Samples)
	}
}

func TestWaitRecordsHistory(t *testing.T) {
	d := NewAdaptiveDelay(Config{Base: time.Millisecond, Min: time.Millisecond, Max: 10 * time.Millisecond})

	for i := 0; i < historySize+5; i++ {
		if err := d.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}

	s := d.Stats()
	if s.Samples != historySize {
		t.Errorf("Samples = %d, want capped at %d", s.Samples, historySize)
	}
	if s.Average != time.Millisecond {
		t.Errorf("Average = %v, want 1ms", s.Average)
	}
}

func TestAverageEmptyHistoryReturnsBase(t *testing.T) {
	d := NewAdaptiveDelay(testConfig())
	if got := d.Average(); got != 100*time.Millisecond {
		t.Errorf("Average with empty history = %v, want base 100ms", got)
	}
}

func TestWaitHonorsCancellation(t *testing.T) {
	d := NewAdaptiveDelay(Config{Base: time.Minute, Min: time.Second, Max: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Wait(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Wait() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not return after cancellation")
	}

	if s := d.Stats(); s.Samples != 0 {
		t.Errorf("cancelled wait recorded history: %d samples", s.Samples)
	}
}
