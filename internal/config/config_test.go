package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestDefaultConfigKnowsCommonTerminals(t *testing.T) {
	cfg := DefaultConfig()
	for _, name := range []string{"kitty", "tilix", "terminator", "wezterm"} {
		if _, ok := cfg.Bindings(name); !ok {
			t.Errorf("no builtin bindings for %q", name)
		}
	}
}

func TestLoadFromPathOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
terminal: tilix
timing:
  base_delay_ms: 200
  min_delay_ms: 100
  max_delay_ms: 2000
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Terminal != "tilix" {
		t.Errorf("Terminal = %q, want tilix", cfg.Terminal)
	}
	if cfg.Timing.BaseDelayMs != 200 {
		t.Errorf("BaseDelayMs = %d, want 200", cfg.Timing.BaseDelayMs)
	}
	// Untouched sections keep their defaults.
	if cfg.Resilience.CommandTimeoutMs != 10000 {
		t.Errorf("CommandTimeoutMs = %d, want default 10000", cfg.Resilience.CommandTimeoutMs)
	}
	if _, ok := cfg.Bindings("kitty"); !ok {
		t.Error("builtin terminals should survive a partial config")
	}
}

func TestLoadFromPathAddsTerminal(t *testing.T) {
	path := writeConfig(t, `
terminal: foot
terminals:
  foot:
    key_bindings:
      split_vertical: Control-Shift-v
      split_horizontal: Control-Shift-h
      navigate_left: Alt-Left
      navigate_right: Alt-Right
      navigate_up: Alt-Up
      navigate_down: Alt-Down
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	kb, ok := cfg.Bindings("foot")
	if !ok {
		t.Fatal("foot terminal not found")
	}
	if kb.SplitVertical != "Control-Shift-v" {
		t.Errorf("SplitVertical = %q", kb.SplitVertical)
	}
	if kb.NewTab != "" {
		t.Errorf("NewTab = %q, want empty (optional binding)", kb.NewTab)
	}
}

func TestLoadFromPathRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
terminal: kitty
keyboard_layout: qwerty
`)

	if _, err := LoadFromPath(path); err == nil {
		t.Error("unknown key should be rejected")
	}
}

func TestValidateRejectsUnknownTerminal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Terminal = "alacritty"

	var verr *ValidationError
	if err := cfg.Validate(); !errors.As(err, &verr) {
		t.Fatalf("Validate() = %v, want *ValidationError", err)
	} else if verr.Path != "terminal" {
		t.Errorf("Path = %q, want terminal", verr.Path)
	}
}

func TestValidateRejectsMissingChord(t *testing.T) {
	cfg := DefaultConfig()
	tc := cfg.Terminals["kitty"]
	tc.KeyBindings.NavigateLeft = ""
	cfg.Terminals["kitty"] = tc

	err := cfg.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() = %v, want *ValidationError", err)
	}
	if !strings.Contains(verr.Path, "navigate_left") {
		t.Errorf("Path = %q, want it to name the missing chord", verr.Path)
	}
}

func TestValidateTimingBounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero min", func(c *Config) { c.Timing.MinDelayMs = 0 }},
		{"base below min", func(c *Config) { c.Timing.BaseDelayMs = 10 }},
		{"max below base", func(c *Config) { c.Timing.MaxDelayMs = 60 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if cfg.Validate() == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestValidateLoggingLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "verbose"
	if cfg.Validate() == nil {
		t.Error("unknown logging level should be rejected")
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		lc := LoggingConfig{Level: tt.level}
		if got := lc.SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
