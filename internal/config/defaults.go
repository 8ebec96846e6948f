package config

// DefaultConfig returns the built-in configuration: known terminals
// with their stock key bindings, and the engine's default tuning.
func DefaultConfig() *Config {
	return &Config{
		Terminal:  "kitty",
		Terminals: builtinTerminals(),
		Timing: TimingConfig{
			BaseDelayMs: 100,
			MinDelayMs:  50,
			MaxDelayMs:  1000,
		},
		Resilience: ResilienceConfig{
			CommandTimeoutMs:    10000,
			CommandRetries:      2,
			CommandRetryDelayMs: 1000,
			SplitTimeoutMs:      5000,
			SplitRetries:        2,
			SplitRetryDelayMs:   500,
			Breaker: BreakerConfig{
				Enabled:             false,
				FailureThreshold:    5,
				ResetTimeoutMs:      30000,
				HalfOpenMaxAttempts: 3,
			},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// builtinTerminals carries the stock chords for terminals we know.
// Kitty needs the matching map lines in kitty.conf; the others ship
// these bindings out of the box.
func builtinTerminals() map[string]TerminalConfig {
	return map[string]TerminalConfig{
		"kitty": {
			KeyBindings: KeyBindings{
				NewTab:          "Control-Shift-t",
				NewWindow:       "Control-Shift-n",
				SplitVertical:   "Control-Shift-backslash",
				SplitHorizontal: "Control-Shift-minus",
				NavigateLeft:    "Control-Shift-Left",
				NavigateRight:   "Control-Shift-Right",
				NavigateUp:      "Control-Shift-Up",
				NavigateDown:    "Control-Shift-Down",
			},
		},
		"tilix": {
			KeyBindings: KeyBindings{
				NewTab:          "Control-Shift-t",
				NewWindow:       "Control-Shift-n",
				SplitVertical:   "Control-Alt-r",
				SplitHorizontal: "Control-Alt-d",
				NavigateLeft:    "Alt-Left",
				NavigateRight:   "Alt-Right",
				NavigateUp:      "Alt-Up",
				NavigateDown:    "Alt-Down",
			},
		},
		"terminator": {
			KeyBindings: KeyBindings{
				NewTab:          "Control-Shift-t",
				NewWindow:       "Control-Shift-i",
				SplitVertical:   "Control-Shift-e",
				SplitHorizontal: "Control-Shift-o",
				NavigateLeft:    "Alt-Left",
				NavigateRight:   "Alt-Right",
				NavigateUp:      "Alt-Up",
				NavigateDown:    "Alt-Down",
			},
		},
		"wezterm": {
			KeyBindings: KeyBindings{
				NewTab:          "Control-Shift-t",
				NewWindow:       "Control-Shift-n",
				SplitVertical:   "Control-Shift-Alt-percent",
				SplitHorizontal: "Control-Shift-Alt-quotedbl",
				NavigateLeft:    "Control-Shift-Left",
				NavigateRight:   "Control-Shift-Right",
				NavigateUp:      "Control-Shift-Up",
				NavigateDown:    "Control-Shift-Down",
			},
		},
	}
}
