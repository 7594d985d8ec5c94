// Package clock provides the simulated day counter that drives all
// scheduling. Time never advances on its own: the current day is a
// persisted integer, starting at 0, that only moves forward when the
// learner explicitly advances it.
package clock

import (
	"context"
	"fmt"
	"sync"
)

// Store persists the current day across runs.
type Store interface {
	// CurrentDay returns the persisted day counter, or 0 if none was saved.
	CurrentDay(ctx context.Context) (int, error)

	// SetCurrentDay persists the day counter.
	SetCurrentDay(ctx context.Context, day int) error
}

// Simulated is the process-wide simulated clock. Advance is the only
// mutation; reads and writes are serialized with a mutex since the TUI and
// CLI paths share one instance.
type Simulated struct {
	mu    sync.Mutex
	day   int
	store Store
}

// Load creates a clock initialized from persisted state. A nil store yields
// an in-memory clock starting at day 0 (used in tests).
func Load(ctx context.Context, store Store) (*Simulated, error) {
	c := &Simulated{store: store}
	if store == nil {
		return c, nil
	}
	day, err := store.CurrentDay(ctx)
	if err != nil {
		return nil, fmt.Errorf("load current day: %w", err)
	}
	if day < 0 {
		day = 0
	}
	c.day = day
	return c, nil
}

// Today returns the current simulated day.
func (c *Simulated) Today() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.day
}

// Advance moves the clock forward by exactly one day, persists the new
// value, and returns it. The in-memory counter only advances if the
// persist succeeds, so the clock never runs ahead of the store.
func (c *Simulated) Advance(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.day + 1
	if c.store != nil {
		if err := c.store.SetCurrentDay(ctx, next); err != nil {
			return c.day, fmt.Errorf("persist current day: %w", err)
		}
	}
	c.day = next
	return next, nil
}
