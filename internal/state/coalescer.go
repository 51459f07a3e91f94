package state

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// RefreshFunc re-synchronizes the view with the filesystem. scope is the
// folder every change of the burst happened in, or "" when the changes were
// spread over several folders. A returned error is logged; the next
// notification retries.
type RefreshFunc func(scope string) error

// CoalescerStats is a snapshot of the coalescer counters.
type CoalescerStats struct {
	Events    int
	Flushes   int
	Pending   int
	LastFlush time.Time
	LastErr   error
}

// Coalescer turns a burst of change notifications into a single refresh.
// The first notification arms a timer for the window; notifications that
// arrive while it is armed are absorbed. Once the timer fires the next
// notification arms a new window.
type Coalescer struct {
	window  time.Duration
	refresh RefreshFunc
	log     *logrus.Entry
	now     func() time.Time

	mu     sync.Mutex
	timer  *time.Timer
	scope  string
	mixed  bool
	stats  CoalescerStats
	closed bool
}

func NewCoalescer(window time.Duration, refresh RefreshFunc, logger *logrus.Entry) *Coalescer {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	return &Coalescer{
		window:  window,
		refresh: refresh,
		log:     logger.WithField("component", "coalescer"),
		now:     time.Now,
	}
}

// Notify records a change inside dir and arms the window if needed.
func (c *Coalescer) Notify(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.stats.Events++
	c.stats.Pending++
	if c.timer != nil {
		if dir != c.scope {
			c.mixed = true
		}
		return
	}
	c.scope = dir
	c.mixed = false
	c.timer = time.AfterFunc(c.window, c.flush)
}

func (c *Coalescer) flush() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	absorbed := c.stats.Pending
	scope := c.scope
	if c.mixed {
		scope = ""
	}
	c.timer = nil
	c.stats.Pending = 0
	c.stats.Flushes++
	c.stats.LastFlush = c.now()
	c.mu.Unlock()

	err := c.refresh(scope)

	c.mu.Lock()
	c.stats.LastErr = err
	c.mu.Unlock()

	if err != nil {
		c.log.WithError(err).Warn("refresh failed, waiting for the next change")
		return
	}
	c.log.WithFields(logrus.Fields{"events": absorbed, "scope": scope}).Debug("refreshed tree")
}

func (c *Coalescer) Stats() CoalescerStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Stop cancels a pending flush. Later notifications are ignored.
func (c *Coalescer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
