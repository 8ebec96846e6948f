package engine

import (
	"time"

	"github.com/1broseidon/paneweave/internal/config"
	"github.com/1broseidon/paneweave/internal/resilience"
	"github.com/1broseidon/paneweave/internal/timing"
)

// OptionsFromConfig maps the loaded configuration onto engine options,
// constructing the circuit breaker when one is enabled.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()

	r := cfg.Resilience
	opts.CommandTimeout = r.CommandTimeout()
	opts.CommandRetries = r.CommandRetries
	opts.CommandRetryDelay = r.CommandRetryDelay()
	opts.SplitTimeout = r.SplitTimeout()
	opts.SplitRetries = r.SplitRetries
	opts.SplitRetryDelay = r.SplitRetryDelay()

	opts.Timing = timing.Config{
		Base: time.Duration(cfg.Timing.BaseDelayMs) * time.Millisecond,
		Min:  time.Duration(cfg.Timing.MinDelayMs) * time.Millisecond,
		Max:  time.Duration(cfg.Timing.MaxDelayMs) * time.Millisecond,
	}

	if r.Breaker.Enabled {
		opts.Breaker = resilience.NewCircuitBreaker(resilience.BreakerConfig{
			FailureThreshold:    r.Breaker.FailureThreshold,
			ResetTimeout:        r.Breaker.ResetTimeout(),
			HalfOpenMaxAttempts: r.Breaker.HalfOpenMaxAttempts,
		})
	}
	return opts
}
