package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/1broseidon/paneweave/internal/layout"
	"github.com/1broseidon/paneweave/internal/resilience"
	"github.com/1broseidon/paneweave/internal/target"
)

// longRunningMarkers identify commands whose first attempt may simply
// still be working when the timeout fires. Retrying those would type a
// second install on top of a running one.
var longRunningMarkers = []string{
	"npm install",
	"npm ci",
	"yarn install",
	"pnpm install",
	"pip install",
	"cargo install",
	"go install",
	"apt install",
	"apt-get install",
	"brew install",
}

func isLongRunning(command string) bool {
	lower := strings.ToLower(command)
	for _, marker := range longRunningMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// quoteDir double-quotes a directory for the shell, escaping the
// characters the shell would otherwise interpret inside quotes.
func quoteDir(dir string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range dir {
		switch r {
		case '"', '\\', '$', '`':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// buildScript composes the one-liner typed into the pane.
func buildScript(pane *layout.Pane, root string) string {
	dir := layout.ResolveDir(root, pane.Directory)
	if dir == "" {
		return pane.Command
	}
	return fmt.Sprintf("cd %s && %s", quoteDir(dir), pane.Command)
}

// runCommand types a pane's command and presses enter, with a per
// attempt timeout and a bounded retry budget. Timed-out long-running
// commands are not retried.
func (e *Engine) runCommand(ctx context.Context, pane *layout.Pane, root string) error {
	script := buildScript(pane, root)

	err := resilience.WithRetry(ctx, func(ctx context.Context) error {
		return resilience.WithTimeout(ctx, e.opts.CommandTimeout, "command execution", func(ctx context.Context) error {
			return e.deliverCommand(ctx, script)
		})
	}, resilience.RetryOptions{
		MaxRetries:         e.opts.CommandRetries,
		RetryDelay:         e.opts.CommandRetryDelay,
		ExponentialBackoff: true,
		ShouldRetry: func(err error) bool {
			var te *resilience.TimeoutError
			if errors.As(err, &te) && isLongRunning(pane.Command) {
				e.logger.Warn("not retrying timed-out long-running command", "command", pane.Command)
				return false
			}
			return true
		},
		OnRetry: func(err error, attempt int) {
			e.logger.Warn("retrying command", "attempt", attempt, "command", pane.Command, "error", err)
			e.delays.RecordFailure("command")
			e.assured = false
		},
	})
	if err != nil {
		e.delays.RecordFailure("command")
		return &resilience.ScriptError{Script: script, Retries: e.opts.CommandRetries, Err: err}
	}
	if err := e.delays.Wait(ctx, "command"); err != nil {
		return err
	}
	e.delays.RecordSuccess("command")
	return nil
}

// deliverCommand is one attempt: type the script, settle, press enter.
func (e *Engine) deliverCommand(ctx context.Context, script string) error {
	e.assureFocus(ctx)
	if err := e.guard(ctx, func(ctx context.Context) error {
		return e.target.SendText(ctx, script)
	}); err != nil {
		return fmt.Errorf("send command text: %w", err)
	}
	if err := e.delays.Wait(ctx, "command-enter"); err != nil {
		return err
	}
	if err := e.guard(ctx, e.target.PressEnter); err != nil {
		return fmt.Errorf("press enter: %w", err)
	}
	return nil
}

// createSplit issues the split chord with its own shorter timeout and
// retry budget.
func (e *Engine) createSplit(ctx context.Context, direction layout.Direction) error {
	err := resilience.WithRetry(ctx, func(ctx context.Context) error {
		return resilience.WithTimeout(ctx, e.opts.SplitTimeout, "split creation", func(ctx context.Context) error {
			e.assureFocus(ctx)
			if err := e.guard(ctx, func(ctx context.Context) error {
				return e.target.Split(ctx, direction)
			}); err != nil {
				return err
			}
			return e.delays.Wait(ctx, "split")
		})
	}, resilience.RetryOptions{
		MaxRetries:         e.opts.SplitRetries,
		RetryDelay:         e.opts.SplitRetryDelay,
		ExponentialBackoff: true,
		OnRetry: func(err error, attempt int) {
			e.logger.Warn("retrying split", "attempt", attempt, "direction", direction, "error", err)
			e.delays.RecordFailure("split")
			e.assured = false
		},
	})
	if err != nil {
		e.delays.RecordFailure("split")
		return fmt.Errorf("create %s split: %w", direction, err)
	}
	e.delays.RecordSuccess("split")
	return nil
}

// navigate moves pane focus. There is no retry here: a navigation that
// landed but reported an error would move focus twice on retry and
// scramble every pane that follows.
func (e *Engine) navigate(ctx context.Context, direction target.NavDirection) error {
	e.assureFocus(ctx)
	if err := e.guard(ctx, func(ctx context.Context) error {
		return e.target.Navigate(ctx, direction)
	}); err != nil {
		e.delays.RecordFailure("navigate")
		return fmt.Errorf("navigate %s: %w", direction, err)
	}
	if err := e.delays.Wait(ctx, "navigate"); err != nil {
		return err
	}
	e.delays.RecordSuccess("navigate")
	return nil
}
