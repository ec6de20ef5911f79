package search

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet interval of live search.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer delays fire until Push has not been called for delay. Every Push
// cancels the pending callback, so only the last value of a burst fires.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	clock   Clock
	fire    func(string)
	timer   Timer
	seq     uint64
	stopped bool
}

func NewDebouncer(delay time.Duration, clock Clock, fire func(string)) *Debouncer {
	if clock == nil {
		clock = SystemClock
	}
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, clock: clock, fire: fire}
}

// Push schedules value, replacing any pending one.
func (d *Debouncer) Push(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = d.clock.AfterFunc(d.delay, func() { d.run(seq, value) })
}

// run fires value unless a newer Push or Stop superseded it. A timer whose
// Stop lost the race with expiry lands here and is dropped by the seq check.
func (d *Debouncer) run(seq uint64, value string) {
	d.mu.Lock()
	if d.stopped || seq != d.seq {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fire(value)
}

// Pending reports whether a value is waiting to fire.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels any pending value and ignores later pushes.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
