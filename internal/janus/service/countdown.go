package service

import (
	"sync"
	"time"
)

// countdown drives a single pass toward expiry. It ticks at the given
// resolution and invokes onExpire once when the deadline is reached.
// Stop is idempotent and never blocks; a late onExpire racing with Stop
// is harmless because the controller re-checks pass state before
// transitioning.
type countdown struct {
	deadline time.Time
	interval time.Duration
	onExpire func()

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// newCountdown starts the background tick loop immediately.
// A non-positive interval falls back to one second.
func newCountdown(deadline time.Time, interval time.Duration, onExpire func()) *countdown {
	if interval <= 0 {
		interval = time.Second
	}
	c := &countdown{
		deadline: deadline,
		interval: interval,
		onExpire: onExpire,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go c.loop()
	return c
}

// Remaining returns whole seconds until the deadline, rounded up, never
// negative.
func (c *countdown) Remaining() int64 {
	rem := time.Until(c.deadline)
	if rem <= 0 {
		return 0
	}
	return int64((rem + time.Second - 1) / time.Second)
}

// Stop signals the loop to exit. Safe to call multiple times and from
// any goroutine, including while the loop is firing onExpire.
func (c *countdown) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *countdown) loop() {
	defer close(c.done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			if !now.Before(c.deadline) {
				c.onExpire()
				return
			}
		}
	}
}
