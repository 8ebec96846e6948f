// Package config loads and validates paneweave's yaml configuration:
// which terminal to drive, the key chords that drive it, and the timing
// and resilience tuning the engine runs with.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// KeyBindings are the chords a terminal understands, in
// "Control-Shift-t" syntax. NewTab and NewWindow may be empty for
// terminals without tabs; the split and navigation chords are required.
type KeyBindings struct {
	NewTab          string `yaml:"new_tab,omitempty"`
	NewWindow       string `yaml:"new_window,omitempty"`
	SplitVertical   string `yaml:"split_vertical"`
	SplitHorizontal string `yaml:"split_horizontal"`
	NavigateLeft    string `yaml:"navigate_left"`
	NavigateRight   string `yaml:"navigate_right"`
	NavigateUp      string `yaml:"navigate_up"`
	NavigateDown    string `yaml:"navigate_down"`
}

// TerminalConfig describes one terminal emulator, keyed by its WM_CLASS.
type TerminalConfig struct {
	KeyBindings KeyBindings `yaml:"key_bindings"`
}

// TimingConfig bounds the adaptive inter-keystroke delays.
type TimingConfig struct {
	BaseDelayMs int `yaml:"base_delay_ms"`
	MinDelayMs  int `yaml:"min_delay_ms"`
	MaxDelayMs  int `yaml:"max_delay_ms"`
}

// BreakerConfig configures the optional channel-level circuit breaker.
type BreakerConfig struct {
	Enabled             bool `yaml:"enabled"`
	FailureThreshold    int  `yaml:"failure_threshold,omitempty"`
	ResetTimeoutMs      int  `yaml:"reset_timeout_ms,omitempty"`
	HalfOpenMaxAttempts int  `yaml:"half_open_max_attempts,omitempty"`
}

// ResilienceConfig tunes per-operation timeouts and retry budgets.
type ResilienceConfig struct {
	CommandTimeoutMs    int           `yaml:"command_timeout_ms"`
	CommandRetries      int           `yaml:"command_retries"`
	CommandRetryDelayMs int           `yaml:"command_retry_delay_ms"`
	SplitTimeoutMs      int           `yaml:"split_timeout_ms"`
	SplitRetries        int           `yaml:"split_retries"`
	SplitRetryDelayMs   int           `yaml:"split_retry_delay_ms"`
	Breaker             BreakerConfig `yaml:"breaker"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Config is the effective paneweave configuration.
type Config struct {
	// Terminal is the WM_CLASS of the terminal to drive. Must have an
	// entry in Terminals.
	Terminal   string                    `yaml:"terminal"`
	Terminals  map[string]TerminalConfig `yaml:"terminals"`
	Timing     TimingConfig              `yaml:"timing"`
	Resilience ResilienceConfig          `yaml:"resilience"`
	// LayoutsDir overrides where named layouts are read from.
	LayoutsDir string        `yaml:"layouts_dir,omitempty"`
	Logging    LoggingConfig `yaml:"logging"`
}

// ValidationError reports an invalid config value and its yaml path.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Bindings returns the key bindings for the named terminal.
func (c *Config) Bindings(terminal string) (KeyBindings, bool) {
	tc, ok := c.Terminals[terminal]
	return tc.KeyBindings, ok
}

// CommandTimeout returns the command delivery timeout as a duration.
func (c *ResilienceConfig) CommandTimeout() time.Duration {
	return time.Duration(c.CommandTimeoutMs) * time.Millisecond
}

func (c *ResilienceConfig) CommandRetryDelay() time.Duration {
	return time.Duration(c.CommandRetryDelayMs) * time.Millisecond
}

func (c *ResilienceConfig) SplitTimeout() time.Duration {
	return time.Duration(c.SplitTimeoutMs) * time.Millisecond
}

func (c *ResilienceConfig) SplitRetryDelay() time.Duration {
	return time.Duration(c.SplitRetryDelayMs) * time.Millisecond
}

func (c *BreakerConfig) ResetTimeout() time.Duration {
	return time.Duration(c.ResetTimeoutMs) * time.Millisecond
}

// SlogLevel maps the configured level to slog. Unknown levels were
// rejected by Validate, so this only sees the valid set.
func (c *LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate checks the config for values the engine cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Terminal) == "" {
		return &ValidationError{Path: "terminal", Err: fmt.Errorf("terminal is required")}
	}
	if _, ok := c.Terminals[c.Terminal]; !ok {
		return &ValidationError{Path: "terminal", Err: fmt.Errorf("terminal %q has no entry under terminals", c.Terminal)}
	}

	for name, tc := range c.Terminals {
		kb := tc.KeyBindings
		required := map[string]string{
			"split_vertical":   kb.SplitVertical,
			"split_horizontal": kb.SplitHorizontal,
			"navigate_left":    kb.NavigateLeft,
			"navigate_right":   kb.NavigateRight,
			"navigate_up":      kb.NavigateUp,
			"navigate_down":    kb.NavigateDown,
		}
		for field, chord := range required {
			if strings.TrimSpace(chord) == "" {
				return &ValidationError{
					Path: fmt.Sprintf("terminals.%s.key_bindings.%s", name, field),
					Err:  fmt.Errorf("chord is required"),
				}
			}
		}
	}

	t := c.Timing
	if t.MinDelayMs <= 0 {
		return &ValidationError{Path: "timing.min_delay_ms", Err: fmt.Errorf("must be positive")}
	}
	if t.BaseDelayMs < t.MinDelayMs {
		return &ValidationError{Path: "timing.base_delay_ms", Err: fmt.Errorf("must be >= min_delay_ms")}
	}
	if t.MaxDelayMs < t.BaseDelayMs {
		return &ValidationError{Path: "timing.max_delay_ms", Err: fmt.Errorf("must be >= base_delay_ms")}
	}

	r := c.Resilience
	if r.CommandTimeoutMs <= 0 {
		return &ValidationError{Path: "resilience.command_timeout_ms", Err: fmt.Errorf("must be positive")}
	}
	if r.SplitTimeoutMs <= 0 {
		return &ValidationError{Path: "resilience.split_timeout_ms", Err: fmt.Errorf("must be positive")}
	}
	if r.CommandRetries < 0 {
		return &ValidationError{Path: "resilience.command_retries", Err: fmt.Errorf("must not be negative")}
	}
	if r.SplitRetries < 0 {
		return &ValidationError{Path: "resilience.split_retries", Err: fmt.Errorf("must not be negative")}
	}
	if r.Breaker.Enabled {
		if r.Breaker.FailureThreshold < 0 {
			return &ValidationError{Path: "resilience.breaker.failure_threshold", Err: fmt.Errorf("must not be negative")}
		}
		if r.Breaker.ResetTimeoutMs < 0 {
			return &ValidationError{Path: "resilience.breaker.reset_timeout_ms", Err: fmt.Errorf("must not be negative")}
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("unknown level %q", c.Logging.Level)}
	}

	return nil
}
