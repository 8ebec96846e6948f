package engine

import (
	"context"
	"strings"
)

// assureFocus verifies focus once per execution; primitives call it
// before touching the target and failures clear the flag so the next
// attempt re-asserts.
func (e *Engine) assureFocus(ctx context.Context) {
	if e.assured {
		return
	}
	e.ensureFrontmost(ctx)
}

// ensureFrontmost activates the target and verifies it actually is the
// frontmost application, with at most one corrective activation. All
// errors are logged and swallowed: focus assurance is best effort, and
// aborting a layout over a flaky frontmost report would do more damage
// than a keystroke landing in the wrong window might.
func (e *Engine) ensureFrontmost(ctx context.Context) {
	if err := e.target.Activate(ctx); err != nil {
		e.logger.Warn("activate failed", "target", e.target.Name(), "error", err)
		return
	}
	if err := e.delays.Wait(ctx, "frontmost"); err != nil {
		return
	}

	if e.verifyFrontmost(ctx) {
		e.delays.RecordSuccess("frontmost")
		e.assured = true
		return
	}
	e.delays.RecordFailure("frontmost")

	// One corrective activation, then trust whatever state we are in.
	if err := e.target.Activate(ctx); err != nil {
		e.logger.Warn("corrective activate failed", "target", e.target.Name(), "error", err)
		return
	}
	if err := e.delays.Wait(ctx, "retry-frontmost"); err != nil {
		return
	}
	if e.verifyFrontmost(ctx) {
		e.assured = true
		return
	}
	e.logger.Warn("target not frontmost after retry", "target", e.target.Name())
}

func (e *Engine) verifyFrontmost(ctx context.Context) bool {
	name, err := e.target.FrontmostAppName(ctx)
	if err != nil {
		e.logger.Warn("frontmost query failed", "error", err)
		return false
	}
	return strings.EqualFold(name, e.target.Name())
}
