package cli

import (
	"sync"
	"time"
)

// Countdown tracks the seconds left before the backend accepts requests
// again after a 429. At most one ticker runs per Countdown.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	stop      chan struct{}

	interval time.Duration
	onTick   func(remaining int)
}

// NewCountdown returns an idle countdown. onTick, if set, runs on the
// ticker goroutine after every decrement.
func NewCountdown(onTick func(remaining int)) *Countdown {
	return &Countdown{interval: time.Second, onTick: onTick}
}

// Start (re)starts the countdown from seconds. A non-positive value only
// cancels the running one.
func (c *Countdown) Start(seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLocked()
	if seconds <= 0 {
		c.remaining = 0
		return
	}

	c.remaining = seconds
	stop := make(chan struct{})
	c.stop = stop
	go c.run(stop)
}

// Dismiss stops the countdown and zeroes it.
func (c *Countdown) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLocked()
	c.remaining = 0
}

func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Active reports whether a ticker is running.
func (c *Countdown) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

func (c *Countdown) cancelLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

func (c *Countdown) run(stop chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.stop != stop {
				c.mu.Unlock()
				return
			}
			c.remaining--
			left := c.remaining
			if left <= 0 {
				c.remaining = 0
				left = 0
				c.stop = nil
			}
			c.mu.Unlock()

			if c.onTick != nil {
				c.onTick(left)
			}
			if left == 0 {
				return
			}
		}
	}
}
