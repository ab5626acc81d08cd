package controllers

import (
	"sync"
	"time"
)

// Debouncer delays a callback until its input has stopped changing for a
// fixed interval. Only the settled value is delivered.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func(value string)
	timer *time.Timer
	seq   uint64
}

// NewDebouncer creates a debouncer delivering settled values to fn
func NewDebouncer(delay time.Duration, fn func(value string)) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Push records a new input value and restarts the settling interval
func (d *Debouncer) Push(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(seq, value)
	})
}

// Stop cancels any pending delivery
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire(seq uint64, value string) {
	d.mu.Lock()
	// A timer that already fired cannot be stopped; the sequence check drops it
	if seq != d.seq {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn(value)
}
