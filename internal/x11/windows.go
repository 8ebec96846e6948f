package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// ActiveWindow returns the currently focused window.
func (c *Connection) ActiveWindow() (xproto.Window, error) {
	win, err := ewmh.ActiveWindowGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("query active window: %w", err)
	}
	if win == 0 {
		return 0, fmt.Errorf("no active window")
	}
	return win, nil
}

// ActivateWindow asks the window manager to raise and focus win.
func (c *Connection) ActivateWindow(win xproto.Window) error {
	return ewmh.ActiveWindowReq(c.XUtil, win)
}

// WindowClass returns the WM_CLASS class of win.
func (c *Connection) WindowClass(win xproto.Window) (string, error) {
	wmClass, err := icccm.WmClassGet(c.XUtil, win)
	if err != nil {
		return "", fmt.Errorf("get WM_CLASS: %w", err)
	}
	return wmClass.Class, nil
}

// WindowInstance returns the WM_CLASS instance of win.
func (c *Connection) WindowInstance(win xproto.Window) (string, error) {
	wmClass, err := icccm.WmClassGet(c.XUtil, win)
	if err != nil {
		return "", fmt.Errorf("get WM_CLASS: %w", err)
	}
	return wmClass.Instance, nil
}

// WindowTitle returns the window title, trying _NET_WM_NAME first and
// falling back to the legacy WM_NAME property.
func (c *Connection) WindowTitle(win xproto.Window) (string, error) {
	title, err := ewmh.WmNameGet(c.XUtil, win)
	if err != nil || title == "" {
		title, err = icccm.WmNameGet(c.XUtil, win)
		if err != nil {
			return "", fmt.Errorf("get window title: %w", err)
		}
	}
	return title, nil
}

// FindWindowByClass scans the window manager's client list for the
// first window whose WM_CLASS class or instance matches, ignoring case.
func (c *Connection) FindWindowByClass(class string) (xproto.Window, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("query client list: %w", err)
	}
	for _, win := range clients {
		wmClass, err := icccm.WmClassGet(c.XUtil, win)
		if err != nil {
			continue
		}
		if strings.EqualFold(wmClass.Class, class) || strings.EqualFold(wmClass.Instance, class) {
			return win, nil
		}
	}
	return 0, fmt.Errorf("no window with class %q", class)
}
