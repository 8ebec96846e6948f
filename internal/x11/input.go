package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
	"github.com/BurntSushi/xgbutil/keybind"
)

// modifierKeysyms maps chord modifier tokens (lowercased) to the keysym
// name injected for that modifier.
var modifierKeysyms = map[string]string{
	"shift":   "Shift_L",
	"control": "Control_L",
	"ctrl":    "Control_L",
	"alt":     "Alt_L",
	"mod1":    "Alt_L",
	"super":   "Super_L",
	"mod4":    "Super_L",
	"meta":    "Alt_L",
}

// asciiKeysyms names the keysyms for ASCII punctuation. Letters and
// digits use the character itself as the keysym name.
var asciiKeysyms = map[rune]string{
	' ':  "space",
	'!':  "exclam",
	'"':  "quotedbl",
	'#':  "numbersign",
	'$':  "dollar",
	'%':  "percent",
	'&':  "ampersand",
	'\'': "apostrophe",
	'(':  "parenleft",
	')':  "parenright",
	'*':  "asterisk",
	'+':  "plus",
	',':  "comma",
	'-':  "minus",
	'.':  "period",
	'/':  "slash",
	':':  "colon",
	';':  "semicolon",
	'<':  "less",
	'=':  "equal",
	'>':  "greater",
	'?':  "question",
	'@':  "at",
	'[':  "bracketleft",
	'\\': "backslash",
	']':  "bracketright",
	'^':  "asciicircum",
	'_':  "underscore",
	'`':  "grave",
	'{':  "braceleft",
	'|':  "bar",
	'}':  "braceright",
	'~':  "asciitilde",
	'\n': "Return",
	'\t': "Tab",
}

func keysymNameFor(r rune) (string, error) {
	if name, ok := asciiKeysyms[r]; ok {
		return name, nil
	}
	if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
		return string(r), nil
	}
	return "", fmt.Errorf("character %q has no keysym mapping", r)
}

func (c *Connection) keycodeFor(name string) (xproto.Keycode, error) {
	for _, code := range keybind.StrToKeycodes(c.XUtil, name) {
		if code != 0 {
			return code, nil
		}
	}
	return 0, fmt.Errorf("keysym %q is not mapped on this keyboard", name)
}

func (c *Connection) fakeKey(event byte, code xproto.Keycode) error {
	return xtest.FakeInputChecked(c.XUtil.Conn(), event, byte(code), 0, c.Root, 0, 0, 0).Check()
}

// injectKey presses the modifiers, taps the key, then releases the
// modifiers in reverse order.
func (c *Connection) injectKey(code xproto.Keycode, mods []xproto.Keycode) error {
	for _, m := range mods {
		if err := c.fakeKey(xproto.KeyPress, m); err != nil {
			return fmt.Errorf("press modifier: %w", err)
		}
	}
	if err := c.fakeKey(xproto.KeyPress, code); err != nil {
		return fmt.Errorf("press key: %w", err)
	}
	if err := c.fakeKey(xproto.KeyRelease, code); err != nil {
		return fmt.Errorf("release key: %w", err)
	}
	for i := len(mods) - 1; i >= 0; i-- {
		if err := c.fakeKey(xproto.KeyRelease, mods[i]); err != nil {
			return fmt.Errorf("release modifier: %w", err)
		}
	}
	c.XUtil.Sync()
	return nil
}

// PressChord injects a key chord written in the same syntax the config
// uses for hotkeys, e.g. "Control-Shift-t" or "Alt-Right". The final
// token is the key, everything before it a modifier.
func (c *Connection) PressChord(chord string) error {
	chord = strings.TrimSpace(chord)
	if chord == "" {
		return fmt.Errorf("empty key chord")
	}

	parts := strings.Split(chord, "-")
	key := parts[len(parts)-1]
	if key == "" {
		return fmt.Errorf("chord %q has no key", chord)
	}

	mods := make([]xproto.Keycode, 0, len(parts)-1)
	for _, part := range parts[:len(parts)-1] {
		name, ok := modifierKeysyms[strings.ToLower(part)]
		if !ok {
			return fmt.Errorf("unknown modifier %q in chord %q", part, chord)
		}
		code, err := c.keycodeFor(name)
		if err != nil {
			return err
		}
		mods = append(mods, code)
	}

	code, err := c.keycodeFor(key)
	if err != nil {
		return err
	}
	return c.injectKey(code, mods)
}

// TypeText injects text one character at a time, holding Shift for
// characters that live in the shifted column of their keycode.
func (c *Connection) TypeText(text string) error {
	var shift xproto.Keycode
	for _, r := range text {
		name, err := keysymNameFor(r)
		if err != nil {
			return err
		}
		code, err := c.keycodeFor(name)
		if err != nil {
			return err
		}

		var mods []xproto.Keycode
		if c.needsShift(code, name) {
			if shift == 0 {
				if shift, err = c.keycodeFor("Shift_L"); err != nil {
					return err
				}
			}
			mods = append(mods, shift)
		}
		if err := c.injectKey(code, mods); err != nil {
			return fmt.Errorf("typing %q: %w", r, err)
		}
	}
	return nil
}

// PressEnter injects a bare Return keypress.
func (c *Connection) PressEnter() error {
	code, err := c.keycodeFor("Return")
	if err != nil {
		return err
	}
	return c.injectKey(code, nil)
}

// needsShift reports whether the keysym sits in the shifted column of
// the keycode's mapping.
func (c *Connection) needsShift(code xproto.Keycode, name string) bool {
	return keybind.KeysymToStr(keybind.KeysymGet(c.XUtil, code, 0)) != name
}
