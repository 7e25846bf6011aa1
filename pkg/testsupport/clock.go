package testsupport

import (
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-formstate/pkg/debounce"
)

// FakeClock is a manually advanced debounce.Clock. Timers only fire from
// Advance, on the goroutine that calls it.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *FakeClock
	at      time.Duration
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

var _ debounce.Clock = (*FakeClock)(nil)

// NewFakeClock returns a clock positioned at zero.
func NewFakeClock() *FakeClock {
	return &FakeClock{}
}

// AfterFunc registers fn to run once the clock has been advanced by d.
func (c *FakeClock) AfterFunc(d time.Duration, fn func()) debounce.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	timer := &fakeTimer{clock: c, at: c.now + d, seq: c.seq, fn: fn}
	c.timers = append(c.timers, timer)
	return timer
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves the clock forward and fires every timer that falls due, in
// deadline order. Timers scheduled by those callbacks fire too when they land
// inside the window. It returns the number of callbacks that ran.
func (c *FakeClock) Advance(d time.Duration) int {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	fired := 0
	for {
		c.mu.Lock()
		next := c.nextDueLocked(target)
		if next == nil {
			c.now = target
			c.pruneLocked()
			c.mu.Unlock()
			return fired
		}
		c.now = next.at
		next.fired = true
		c.mu.Unlock()

		next.fn()
		fired++
	}
}

// Now reports how far the clock has been advanced.
func (c *FakeClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending returns the number of timers that are neither stopped nor fired.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, timer := range c.timers {
		if !timer.stopped && !timer.fired {
			count++
		}
	}
	return count
}

func (c *FakeClock) nextDueLocked(target time.Duration) *fakeTimer {
	var due []*fakeTimer
	for _, timer := range c.timers {
		if timer.stopped || timer.fired || timer.at > target {
			continue
		}
		due = append(due, timer)
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at == due[j].at {
			return due[i].seq < due[j].seq
		}
		return due[i].at < due[j].at
	})
	return due[0]
}

func (c *FakeClock) pruneLocked() {
	live := c.timers[:0]
	for _, timer := range c.timers {
		if timer.stopped || timer.fired {
			continue
		}
		live = append(live, timer)
	}
	c.timers = live
}
