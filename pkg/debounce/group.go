package debounce

import (
	"sort"
	"sync"
	"time"
)

// Option configures a Group or Debouncer.
type Option func(*config)

type config struct {
	clock Clock
}

// WithClock overrides the clock used to schedule trailing calls.
func WithClock(clock Clock) Option {
	return func(cfg *config) {
		if clock != nil {
			cfg.clock = clock
		}
	}
}

// Group debounces calls per key. Scheduling a key that already has a pending
// call stops the old timer and replaces its callback, so only the latest
// callback for a key ever runs.
type Group[K comparable] struct {
	mu    sync.Mutex
	delay time.Duration
	clock Clock
	slots map[K]*slot
	gen   uint64
}

type slot struct {
	gen   uint64
	timer Timer
	fn    func()
}

// NewGroup constructs a Group that waits delay before running a callback.
// Negative delays are treated as zero.
func NewGroup[K comparable](delay time.Duration, options ...Option) *Group[K] {
	cfg := config{clock: SystemClock()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if delay < 0 {
		delay = 0
	}
	return &Group[K]{
		delay: delay,
		clock: cfg.clock,
		slots: make(map[K]*slot),
	}
}

// Delay reports the configured debounce window.
func (g *Group[K]) Delay() time.Duration {
	return g.delay
}

// Schedule arranges for fn to run once the delay elapses without another
// Schedule call for the same key.
func (g *Group[K]) Schedule(key K, fn func()) {
	if fn == nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.slots[key]; ok && existing.timer != nil {
		existing.timer.Stop()
	}

	g.gen++
	gen := g.gen
	s := &slot{gen: gen, fn: fn}
	g.slots[key] = s
	s.timer = g.clock.AfterFunc(g.delay, func() {
		g.fire(key, gen)
	})
}

// fire runs the slot callback unless it was replaced or cancelled after the
// timer had already been handed to its goroutine.
func (g *Group[K]) fire(key K, gen uint64) {
	g.mu.Lock()
	s, ok := g.slots[key]
	if !ok || s.gen != gen {
		g.mu.Unlock()
		return
	}
	delete(g.slots, key)
	g.mu.Unlock()

	s.fn()
}

// Cancel drops the pending call for key. It reports whether one was pending.
func (g *Group[K]) Cancel(key K) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	s, ok := g.slots[key]
	if !ok {
		return false
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	delete(g.slots, key)
	return true
}

// CancelAll drops every pending call and returns how many were dropped.
func (g *Group[K]) CancelAll() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	count := len(g.slots)
	for key, s := range g.slots {
		if s.timer != nil {
			s.timer.Stop()
		}
		delete(g.slots, key)
	}
	return count
}

// Flush runs the pending call for key immediately on the calling goroutine.
func (g *Group[K]) Flush(key K) bool {
	g.mu.Lock()
	s, ok := g.slots[key]
	if !ok {
		g.mu.Unlock()
		return false
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	delete(g.slots, key)
	g.mu.Unlock()

	s.fn()
	return true
}

// FlushAll runs every pending call immediately, in scheduling order, and
// returns how many ran.
func (g *Group[K]) FlushAll() int {
	g.mu.Lock()
	pending := make([]*slot, 0, len(g.slots))
	for key, s := range g.slots {
		if s.timer != nil {
			s.timer.Stop()
		}
		pending = append(pending, s)
		delete(g.slots, key)
	}
	g.mu.Unlock()

	sortSlots(pending)
	for _, s := range pending {
		s.fn()
	}
	return len(pending)
}

// Pending reports whether key has a scheduled call.
func (g *Group[K]) Pending(key K) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.slots[key]
	return ok
}

// Len returns the number of keys with a scheduled call.
func (g *Group[K]) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.slots)
}

func sortSlots(slots []*slot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].gen < slots[j].gen
	})
}
