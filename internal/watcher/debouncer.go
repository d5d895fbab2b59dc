package watcher

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid triggers into a single signal emitted after a
// quiet period. A multi-file drop produces one refresh, not one per file.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	out     chan struct{}
}

// NewDebouncer creates a Debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay: delay,
		out:   make(chan struct{}, 1),
	}
}

// Events returns the channel of debounced signals.
func (d *Debouncer) Events() <-chan struct{} {
	return d.out
}

// Trigger schedules a signal after the quiet period, resetting the timer
// if one is already pending.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.emit)
}

func (d *Debouncer) emit() {
	d.mu.Lock()
	stopped := d.stopped
	d.mu.Unlock()
	if stopped {
		return
	}
	// Drop the signal if one is already queued; the reader refreshes once.
	select {
	case d.out <- struct{}{}:
	default:
	}
}

// Stop cancels any pending signal. The events channel stays open; readers
// are expected to select against their own done channel.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
