// Package watcher implements file system watching for continuous sync mode.
package watcher

import (
	"sync"
	"time"
	"unique"

	"go.trai.ch/psync/internal/core/ports"
)

// Debouncer coalesces rapid file system events into batched sync runs. Events
// are keyed by path; when a path fires more than once within the window, only
// the most recent operation survives.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[unique.Handle[string]]ports.WatchOp
	timer    *time.Timer
	window   time.Duration
	callback func(events []ports.WatchEvent)
}

// NewDebouncer creates a new debouncer with the given time window and callback.
func NewDebouncer(window time.Duration, callback func(events []ports.WatchEvent)) *Debouncer {
	return &Debouncer{
		pending:  make(map[unique.Handle[string]]ports.WatchOp),
		window:   window,
		callback: callback,
	}
}

// Add records an event and restarts the debounce window.
func (d *Debouncer) Add(event ports.WatchEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Interned handles deduplicate paths; the latest operation wins.
	handle := unique.Make(event.Path)
	d.pending[handle] = event.Op

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire is called when the debounce window expires.
func (d *Debouncer) fire() {
	d.mu.Lock()

	// Protects against a race with Flush draining the set first.
	if len(d.pending) == 0 {
		d.timer = nil
		d.mu.Unlock()
		return
	}

	events := d.drainLocked()
	d.timer = nil
	d.mu.Unlock()

	// The callback runs on its own goroutine, outside the lock.
	if len(events) > 0 && d.callback != nil {
		go d.callback(events)
	}
}

// Flush immediately triggers the debounce callback with all pending events.
// It blocks until the callback completes, making it suitable for graceful
// shutdown where outstanding work must finish before proceeding.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			// Timer already fired, let it complete rather than processing twice.
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}

	events := d.drainLocked()
	d.mu.Unlock()

	if len(events) > 0 && d.callback != nil {
		d.callback(events)
	}
}

// drainLocked empties the pending set and returns its events. The caller must
// hold d.mu.
func (d *Debouncer) drainLocked() []ports.WatchEvent {
	events := make([]ports.WatchEvent, 0, len(d.pending))
	for handle, op := range d.pending {
		events = append(events, ports.WatchEvent{Path: handle.Value(), Op: op})
	}
	d.pending = make(map[unique.Handle[string]]ports.WatchOp)
	return events
}
