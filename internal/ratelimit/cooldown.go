// ABOUTME: Thread-safe per-key cooldown table shared by both rate limiters.
// ABOUTME: Records the last admission time per key and admits at most once per cooldown.

package ratelimit

import (
	"sync"
	"time"
)

// Decision is the outcome of one admission attempt.
type Decision struct {
	Admitted bool
	// Remaining is how long the key stays cooling. Zero when admitted.
	Remaining time.Duration
}

// Table tracks the last admission time for every key it has seen.
// Entries are added on first sight and never removed unless a sweep is enabled,
// in which case only entries whose cooldown has fully elapsed are dropped.
type Table struct {
	mu       sync.Mutex
	last     map[string]time.Time
	cooldown time.Duration
	now      func() time.Time
	done     chan struct{}
	closed   bool
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithClock overrides the time source. Used by tests to step through cooldowns.
func WithClock(now func() time.Time) TableOption {
	return func(t *Table) { t.now = now }
}

// NewTable creates a cooldown table with the given cooldown.
func NewTable(cooldown time.Duration, opts ...TableOption) *Table {
	t := &Table{
		last:     make(map[string]time.Time),
		cooldown: cooldown,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Cooldown returns the configured cooldown.
func (t *Table) Cooldown() time.Duration {
	return t.cooldown
}

// Admit atomically checks whether key is cooling and records an admission if not.
// The lookup, comparison and write share one critical section so two concurrent
// callers can never both observe the key as available.
func (t *Table) Admit(key string) Decision {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Read the clock under the lock so recorded times never go backwards.
	now := t.now()

	if t.last == nil {
		panic("ratelimit: cooldown table state is corrupted")
	}

	if last, ok := t.last[key]; ok {
		if elapsed := now.Sub(last); elapsed < t.cooldown {
			return Decision{Admitted: false, Remaining: t.cooldown - elapsed}
		}
	}

	t.last[key] = now
	return Decision{Admitted: true}
}

// Len returns the number of tracked keys.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.last)
}

// StartSweep runs a background goroutine that drops entries whose cooldown
// has elapsed. Such entries behave exactly like unseen keys, so sweeping
// bounds memory without changing admission decisions. Stop it with Close.
func (t *Table) StartSweep(interval time.Duration) {
	if interval <= 0 {
		return
	}
	go t.sweepLoop(interval)
}

func (t *Table) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.sweep()
		case <-t.done:
			return
		}
	}
}

// sweep removes all entries whose cooldown has fully elapsed.
func (t *Table) sweep() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	removed := 0
	for key, last := range t.last {
		if now.Sub(last) >= t.cooldown {
			delete(t.last, key)
			removed++
		}
	}
	return removed
}

// Close stops the background sweeper. It is safe to call multiple times.
func (t *Table) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.closed {
		close(t.done)
		t.closed = true
	}
}
