package service

import (
	"sync"
	"time"
)

type statusEntry struct {
	status CalculationStatus
	gen    uint64
	timer  *time.Timer
}

// statusTracker keeps the idle -> calculating -> done -> idle state per
// valuation. A valuation without an entry is idle.
type statusTracker struct {
	mu      sync.Mutex
	delay   time.Duration
	entries map[string]*statusEntry
}

func newStatusTracker(displayDelay time.Duration) *statusTracker {
	return &statusTracker{
		delay:   displayDelay,
		entries: make(map[string]*statusEntry),
	}
}

// begin marks the valuation as calculating and returns a generation token.
// Only the latest generation may finish the calculation.
func (t *statusTracker) begin(id string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[id]
	if !ok {
		e = &statusEntry{}
		t.entries[id] = e
	}
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.gen++
	e.status = StatusCalculating
	return e.gen
}

// finish moves a successful calculation to done, and back to idle after the
// display delay. A failed calculation goes straight back to idle.
func (t *statusTracker) finish(id string, gen uint64, succeeded bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[id]
	if !ok || e.gen != gen {
		return
	}
	if !succeeded || t.delay <= 0 {
		delete(t.entries, id)
		return
	}

	e.status = StatusDone
	e.timer = time.AfterFunc(t.delay, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if cur, ok := t.entries[id]; ok && cur.gen == gen {
			delete(t.entries, id)
		}
	})
}

func (t *statusTracker) get(id string) CalculationStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	if e, ok := t.entries[id]; ok {
		return e.status
	}
	return StatusIdle
}
