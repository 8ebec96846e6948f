package target

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/paneweave/internal/layout"
	"github.com/1broseidon/paneweave/internal/x11"
)

// KeyBindings holds the key chords that drive a particular terminal
// emulator, in the same "Control-Shift-t" syntax the config file uses.
// An empty chord means the terminal does not support that action.
type KeyBindings struct {
	NewTab          string
	NewWindow       string
	SplitVertical   string
	SplitHorizontal string
	NavigateLeft    string
	NavigateRight   string
	NavigateUp      string
	NavigateDown    string
}

// X11Target drives a terminal emulator over X11: EWMH for window lookup
// and activation, XTest keystroke injection for everything else. The
// terminal is identified by its WM_CLASS.
type X11Target struct {
	conn   *x11.Connection
	class  string
	keys   KeyBindings
	logger *slog.Logger

	// win caches the terminal window after the first lookup.
	win xproto.Window
}

// NewX11Target returns a target driving the terminal with the given
// WM_CLASS through the supplied key bindings.
func NewX11Target(conn *x11.Connection, class string, keys KeyBindings, logger *slog.Logger) *X11Target {
	if logger == nil {
		logger = slog.Default()
	}
	return &X11Target{
		conn:   conn,
		class:  class,
		keys:   keys,
		logger: logger,
	}
}

func (t *X11Target) Name() string { return t.class }

func (t *X11Target) window() (xproto.Window, error) {
	if t.win != 0 {
		return t.win, nil
	}
	win, err := t.conn.FindWindowByClass(t.class)
	if err != nil {
		return 0, err
	}
	t.win = win
	return win, nil
}

func (t *X11Target) Activate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	win, err := t.window()
	if err != nil {
		return err
	}
	if err := t.conn.ActivateWindow(win); err != nil {
		// The cached window may have been closed; retry the lookup once.
		t.win = 0
		if win, err = t.window(); err != nil {
			return err
		}
		return t.conn.ActivateWindow(win)
	}
	return nil
}

func (t *X11Target) chord(ctx context.Context, chord, action string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if chord == "" {
		return fmt.Errorf("terminal %q has no key binding for %s", t.class, action)
	}
	t.logger.Debug("injecting chord", "action", action, "chord", chord)
	return t.conn.PressChord(chord)
}

func (t *X11Target) NewTab(ctx context.Context) error {
	return t.chord(ctx, t.keys.NewTab, "new tab")
}

func (t *X11Target) NewWindow(ctx context.Context) error {
	return t.chord(ctx, t.keys.NewWindow, "new window")
}

func (t *X11Target) Split(ctx context.Context, direction layout.Direction) error {
	switch direction {
	case layout.DirectionVertical:
		return t.chord(ctx, t.keys.SplitVertical, "vertical split")
	case layout.DirectionHorizontal:
		return t.chord(ctx, t.keys.SplitHorizontal, "horizontal split")
	default:
		return fmt.Errorf("unknown split direction %q", direction)
	}
}

func (t *X11Target) Navigate(ctx context.Context, direction NavDirection) error {
	switch direction {
	case NavLeft:
		return t.chord(ctx, t.keys.NavigateLeft, "navigate left")
	case NavRight:
		return t.chord(ctx, t.keys.NavigateRight, "navigate right")
	case NavUp:
		return t.chord(ctx, t.keys.NavigateUp, "navigate up")
	case NavDown:
		return t.chord(ctx, t.keys.NavigateDown, "navigate down")
	default:
		return fmt.Errorf("unknown navigate direction %q", direction)
	}
}

func (t *X11Target) SendText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.conn.TypeText(text)
}

func (t *X11Target) PressEnter(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.conn.PressEnter()
}

func (t *X11Target) FrontmostAppName(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	win, err := t.conn.ActiveWindow()
	if err != nil {
		return "", err
	}
	return t.conn.WindowClass(win)
}

func (t *X11Target) WindowTitle(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	win, err := t.conn.ActiveWindow()
	if err != nil {
		return "", err
	}
	return t.conn.WindowTitle(win)
}

func (t *X11Target) WindowDescription(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	win, err := t.window()
	if err != nil {
		return "", err
	}
	return t.conn.WindowTitle(win)
}

func (t *X11Target) WindowName(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	win, err := t.conn.ActiveWindow()
	if err != nil {
		return "", err
	}
	return t.conn.WindowInstance(win)
}

var _ Target = (*X11Target)(nil)
