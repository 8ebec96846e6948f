package timing

import (
	"context"
	"testing"
	"time"
)

func TestContextsAreIsolated(t *testing.T) {
	c := NewContextual(testConfig())

	for i := 0; i < 5; i++ {
		c.RecordSuccess("a")
	}

	if got := c.Current("a"); got >= 100*time.Millisecond {
		t.Errorf("Current(a) = %v, want shrunk below 100ms", got)
	}
	if got := c.Current("b"); got != 100*time.Millisecond {
		t.Errorf("Current(b) = %v, want untouched 100ms", got)
	}
	if got := c.Current(""); got != 100*time.Millisecond {
		t.Errorf("Current(base) = %v, want untouched 100ms", got)
	}
}

func TestEmptyTagAddressesBaseInstance(t *testing.T) {
	c := NewContextual(testConfig())

	for i := 0; i < 3; i++ {
		c.RecordFailure("")
	}
	if got := c.Current(""); got <= 100*time.Millisecond {
		t.Errorf("Current(base) = %v, want grown above 100ms", got)
	}
	if got := c.Current("split"); got != 100*time.Millisecond {
		t.Errorf("Current(split) = %v, want untouched", got)
	}
}

func TestResetAll(t *testing.T) {
	c := NewContextual(testConfig())

	for i := 0; i < 4; i++ {
		c.RecordFailure("split")
		c.RecordFailure("")
	}
	c.ResetAll()

	if got := c.Current(""); got != 100*time.Millisecond {
		t.Errorf("base Current after ResetAll = %v, want 100ms", got)
	}
	if got := c.Current("split"); got != 100*time.Millisecond {
		t.Errorf("split Current after ResetAll = %v, want 100ms", got)
	}
}

func TestContextualWaitCreatesLazily(t *testing.T) {
	c := NewContextual(Config{Base: time.Millisecond, Min: time.Millisecond, Max: 5 * time.Millisecond})

	if err := c.Wait(context.Background(), "navigate"); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	stats := c.AllStats()
	if _, ok := stats["navigate"]; !ok {
		t.Error("AllStats() missing lazily created navigate context")
	}
	if stats["navigate"].Samples != 1 {
		t.Errorf("navigate Samples = %d, want 1", stats["navigate"].Samples)
	}
	if stats[""].Samples != 0 {
		t.Errorf("base Samples = %d, want 0", stats[""].Samples)
	}
}
