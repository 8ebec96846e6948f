// Package target defines the capability surface the layout engine needs
// from the controlled terminal application, together with its two
// implementations: an X11 keystroke-injection transport and an
// in-memory recorder used for tests and dry-run planning.
package target

import (
	"context"

	"github.com/1broseidon/paneweave/internal/layout"
)

// NavDirection is a focus-movement direction inside the terminal.
type NavDirection string

const (
	NavLeft  NavDirection = "left"
	NavRight NavDirection = "right"
	NavUp    NavDirection = "up"
	NavDown  NavDirection = "down"
)

// Target is the automation contract. Every operation is asynchronous
// from the terminal's point of view: the call returns once the input
// was delivered, not once the terminal acted on it. Only the window
// and process readers return values.
//
// Implementations must not assume a particular transport; the engine
// never does.
type Target interface {
	// Name returns the application name the engine compares the
	// frontmost process against (e.g. the WM_CLASS of the terminal).
	Name() string

	Activate(ctx context.Context) error
	NewTab(ctx context.Context) error
	NewWindow(ctx context.Context) error
	Split(ctx context.Context, direction layout.Direction) error
	Navigate(ctx context.Context, direction NavDirection) error
	SendText(ctx context.Context, text string) error
	PressEnter(ctx context.Context) error

	FrontmostAppName(ctx context.Context) (string, error)
	WindowTitle(ctx context.Context) (string, error)
	WindowDescription(ctx context.Context) (string, error)
	WindowName(ctx context.Context) (string, error)
}
