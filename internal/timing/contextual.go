package timing

import (
	"context"
	"sync"
	"time"
)

// ContextualDelay partitions adaptive delay state by operation tag.
// Activating a window and typing a long command have wildly different
// natural latencies; one shared delay would over- or under-wait for
// some class of step. Each tag gets an independent AdaptiveDelay sharing
// the same bounds; the empty tag addresses the base instance.
type ContextualDelay struct {
	mu       sync.Mutex
	cfg      Config
	base     *AdaptiveDelay
	contexts map[string]*AdaptiveDelay
}

// NewContextual creates a contextual delay with the given shared bounds.
func NewContextual(cfg Config) *ContextualDelay {
	return &ContextualDelay{
		cfg:      cfg,
		base:     NewAdaptiveDelay(cfg),
		contexts: make(map[string]*AdaptiveDelay),
	}
}

// delay returns the instance for tag, creating it lazily.
func (c *ContextualDelay) delay(tag string) *AdaptiveDelay {
	if tag == "" {
		return c.base
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.contexts[tag]
	if !ok {
		d = NewAdaptiveDelay(c.cfg)
		c.contexts[tag] = d
	}
	return d
}

// Wait suspends for the tag's current delay.
func (c *ContextualDelay) Wait(ctx context.Context, tag string) error {
	return c.delay(tag).Wait(ctx)
}

// RecordSuccess records a success against the tag's delay.
func (c *ContextualDelay) RecordSuccess(tag string) {
	c.delay(tag).RecordSuccess()
}

// RecordFailure records a failure against the tag's delay.
func (c *ContextualDelay) RecordFailure(tag string) {
	c.delay(tag).RecordFailure()
}

// Current returns the delay the next Wait for tag would use.
func (c *ContextualDelay) Current(tag string) time.Duration {
	return c.delay(tag).Current()
}

// ResetAll restores the base instance and every context instance.
func (c *ContextualDelay) ResetAll() {
	c.base.Reset()
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.contexts {
		d.Reset()
	}
}

// AllStats returns a snapshot per tag; the base instance appears under
// the empty key.
func (c *ContextualDelay) AllStats() map[string]Stats {
	out := map[string]Stats{"": c.base.Stats()}
	c.mu.Lock()
	tags := make([]string, 0, len(c.contexts))
	for tag := range c.contexts {
		tags = append(tags, tag)
	}
	delays := make(map[string]*AdaptiveDelay, len(tags))
	for _, tag := range tags {
		delays[tag] = c.contexts[tag]
	}
	c.mu.Unlock()

	for tag, d := range delays {
		out[tag] = d.Stats()
	}
	return out
}
