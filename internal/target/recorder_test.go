package target

import (
	"context"
	"errors"
	"testing"

	"github.com/1broseidon/paneweave/internal/layout"
)

func TestRecorderRecordsActionsInOrder(t *testing.T) {
	rec := NewRecorder("kitty")
	ctx := context.Background()

	_ = rec.Activate(ctx)
	_ = rec.SendText(ctx, "echo hi")
	_ = rec.PressEnter(ctx)
	_ = rec.Split(ctx, layout.DirectionVertical)
	_ = rec.Navigate(ctx, NavRight)

	want := []string{"activate", "sendText(echo hi)", "enter", "split(vertical)", "navigate(right)"}
	got := rec.CallStrings()
	if len(got) != len(want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRecorderScriptedFailures(t *testing.T) {
	rec := NewRecorder("kitty")
	failure := errors.New("nope")
	rec.FailOn("split", failure, 2)

	ctx := context.Background()
	if err := rec.Split(ctx, layout.DirectionVertical); err != failure {
		t.Errorf("first split err = %v, want scripted failure", err)
	}
	if err := rec.Split(ctx, layout.DirectionVertical); err != failure {
		t.Errorf("second split err = %v, want scripted failure", err)
	}
	if err := rec.Split(ctx, layout.DirectionVertical); err != nil {
		t.Errorf("third split err = %v, want nil", err)
	}
	// Failed attempts are still recorded.
	if n := len(rec.Calls()); n != 3 {
		t.Errorf("recorded %d calls, want 3", n)
	}
}

func TestRecorderReadsDoNotAppearInCalls(t *testing.T) {
	rec := NewRecorder("kitty")
	ctx := context.Background()

	name, err := rec.FrontmostAppName(ctx)
	if err != nil || name != "kitty" {
		t.Errorf("FrontmostAppName() = %q, %v", name, err)
	}
	if n := len(rec.Calls()); n != 0 {
		t.Errorf("recorded %d calls, want 0 for reads", n)
	}
	if rec.FrontmostReads() != 1 {
		t.Errorf("FrontmostReads() = %d, want 1", rec.FrontmostReads())
	}
}

func TestRecorderHonorsContext(t *testing.T) {
	rec := NewRecorder("kitty")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := rec.Activate(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Activate() = %v, want context.Canceled", err)
	}
	if n := len(rec.Calls()); n != 0 {
		t.Errorf("recorded %d calls after cancellation, want 0", n)
	}
}
