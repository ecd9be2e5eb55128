package utils

import (
	"sync"
	"time"
)

// Cooldown is a shared rate limiter for the public info commands: one
// invocation per interval across all callers.
type Cooldown struct {
	mu       sync.Mutex
	last     time.Time
	interval time.Duration
	now      func() time.Time
}

func NewCooldown(interval time.Duration) *Cooldown {
	return &Cooldown{interval: interval, now: time.Now}
}

// Allow reports whether a command may run now and, if so, consumes the slot.
func (c *Cooldown) Allow() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.Sub(c.last) < c.interval {
		return false
	}
	c.last = now
	return true
}

// Remaining returns how long until the next invocation is allowed.
func (c *Cooldown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	remaining := c.interval - c.now().Sub(c.last)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SetClock overrides the time source. Tests only.
func (c *Cooldown) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
