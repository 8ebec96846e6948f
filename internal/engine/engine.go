// Package engine walks a layout tree and drives a target terminal
// through the keystroke sequence that reproduces it: run the first
// pane's command, split, navigate into the new pane, recurse, then
// navigate back so sibling splits land where the layout says they
// should.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/1broseidon/paneweave/internal/layout"
	"github.com/1broseidon/paneweave/internal/resilience"
	"github.com/1broseidon/paneweave/internal/target"
	"github.com/1broseidon/paneweave/internal/timing"
)

// Options tunes the engine's timeouts and retry budgets.
type Options struct {
	// CommandTimeout bounds one delivery attempt of a pane command.
	CommandTimeout time.Duration
	// CommandRetries is the retry budget per pane command.
	CommandRetries int
	// CommandRetryDelay is the base backoff between command retries;
	// backoff doubles per attempt.
	CommandRetryDelay time.Duration

	// SplitTimeout bounds one split-creation attempt.
	SplitTimeout time.Duration
	SplitRetries int
	// SplitRetryDelay is the base backoff between split retries.
	SplitRetryDelay time.Duration

	// Timing bounds the adaptive inter-keystroke delays.
	Timing timing.Config

	// Breaker optionally guards the whole automation channel. Nil means
	// no breaker; per-call retries and timeouts still apply.
	Breaker *resilience.CircuitBreaker

	Logger *slog.Logger
}

// DefaultOptions returns the engine defaults. Commands get the longer
// budget; a split either takes or it doesn't.
func DefaultOptions() Options {
	return Options{
		CommandTimeout:    10 * time.Second,
		CommandRetries:    2,
		CommandRetryDelay: time.Second,
		SplitTimeout:      5 * time.Second,
		SplitRetries:      2,
		SplitRetryDelay:   500 * time.Millisecond,
		Timing:            timing.DefaultConfig(),
	}
}

// Engine executes layouts against a target. Not safe for concurrent
// use; run one layout at a time.
type Engine struct {
	target target.Target
	delays *timing.ContextualDelay
	opts   Options
	logger *slog.Logger

	// assured is true once focus was verified during this execution.
	// Any primitive failure clears it so the retry re-asserts focus.
	assured bool
}

// New creates an engine driving t. Zero-value option fields fall back
// to DefaultOptions.
func New(t target.Target, opts Options) *Engine {
	def := DefaultOptions()
	if opts.CommandTimeout <= 0 {
		opts.CommandTimeout = def.CommandTimeout
	}
	if opts.CommandRetries < 0 {
		opts.CommandRetries = def.CommandRetries
	}
	if opts.CommandRetryDelay <= 0 {
		opts.CommandRetryDelay = def.CommandRetryDelay
	}
	if opts.SplitTimeout <= 0 {
		opts.SplitTimeout = def.SplitTimeout
	}
	if opts.SplitRetries < 0 {
		opts.SplitRetries = def.SplitRetries
	}
	if opts.SplitRetryDelay <= 0 {
		opts.SplitRetryDelay = def.SplitRetryDelay
	}
	if opts.Timing == (timing.Config{}) {
		opts.Timing = def.Timing
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		target: t,
		delays: timing.NewContextual(opts.Timing),
		opts:   opts,
		logger: logger,
	}
}

// Delays exposes the adaptive delay state for diagnostics.
func (e *Engine) Delays() *timing.ContextualDelay { return e.delays }

// Prepare optionally opens a fresh tab or window to hold the layout,
// leaving the current one untouched. useCurrentTab skips the tab; a new
// window always wins over both.
func (e *Engine) Prepare(ctx context.Context, newWindow, useCurrentTab bool) error {
	if !newWindow && useCurrentTab {
		return nil
	}
	e.assureFocus(ctx)
	if newWindow {
		if err := e.guard(ctx, e.target.NewWindow); err != nil {
			return fmt.Errorf("open new window: %w", err)
		}
	} else {
		if err := e.guard(ctx, e.target.NewTab); err != nil {
			return fmt.Errorf("open new tab: %w", err)
		}
	}
	return e.delays.Wait(ctx, "new-tab")
}

// Execute runs the layout against the target. rootDir, when non-empty,
// overrides the layout's own root directory. The layout is validated
// first; nothing is typed into the terminal for an invalid tree.
func (e *Engine) Execute(ctx context.Context, l *layout.Layout, rootDir string) error {
	if err := layout.ValidateLayout(l); err != nil {
		return err
	}

	root := l.Root
	if rootDir != "" {
		root = rootDir
	}

	e.assured = false
	e.ensureFrontmost(ctx)

	if err := e.delays.Wait(ctx, "structure-start"); err != nil {
		return err
	}
	e.delays.RecordSuccess("structure-start")

	e.logger.Info("executing layout", "layout", l.Name, "panes", layout.PaneCount(l.Tree.Node), "root", root)
	if err := e.executeNode(ctx, l.Tree.Node, root); err != nil {
		return fmt.Errorf("layout %q: %w", l.Name, err)
	}
	e.logger.Info("layout complete", "layout", l.Name)
	return nil
}

// executeNode processes one subtree with focus on its first pane's
// position. On return, focus is back where it started.
func (e *Engine) executeNode(ctx context.Context, node layout.Node, root string) error {
	switch n := node.(type) {
	case *layout.Pane:
		if err := e.runCommand(ctx, n, root); err != nil {
			return err
		}
		if err := e.delays.Wait(ctx, "pane-command"); err != nil {
			return err
		}
		e.delays.RecordSuccess("pane-command")
		return nil

	case *layout.Split:
		forward, back := navDirections(n.Direction)
		for i, child := range n.Panes {
			if i > 0 {
				if err := e.createSplit(ctx, n.Direction); err != nil {
					return err
				}
				if err := e.navigate(ctx, forward); err != nil {
					return err
				}
			}
			if err := e.executeNode(ctx, child, root); err != nil {
				return err
			}
		}
		// Walk focus back to the split's first pane so the caller's
		// position bookkeeping holds.
		for i := 1; i < len(n.Panes); i++ {
			if err := e.navigate(ctx, back); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown node type %T", node)
	}
}

// navDirections maps a split direction to the focus moves that enter
// the new pane and return from it. A vertical split puts the new pane
// to the right; a horizontal split puts it below.
func navDirections(d layout.Direction) (forward, back target.NavDirection) {
	if d == layout.DirectionHorizontal {
		return target.NavDown, target.NavUp
	}
	return target.NavRight, target.NavLeft
}

// guard routes op through the circuit breaker when one is configured.
func (e *Engine) guard(ctx context.Context, op func(context.Context) error) error {
	if e.opts.Breaker == nil {
		return op(ctx)
	}
	return e.opts.Breaker.Execute(ctx, op)
}
