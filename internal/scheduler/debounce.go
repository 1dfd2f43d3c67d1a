package scheduler

import "time"

// DefaultQuiet is the resize quiet window.
const DefaultQuiet = 250 * time.Millisecond

// Debouncer collapses a burst of resize events into one, delivered once no
// new event has arrived for the quiet window. It is polled from the frame
// loop rather than driven by timers, so it never fires mid-frame.
type Debouncer struct {
	quiet   time.Duration
	pending bool
	last    time.Time
	w, h    int
}

// NewDebouncer returns a debouncer with the given quiet window.
func NewDebouncer(quiet time.Duration) *Debouncer {
	return &Debouncer{quiet: quiet}
}

// Trigger records a resize to w x h at now. It replaces any pending size
// and restarts the quiet window.
func (d *Debouncer) Trigger(now time.Time, w, h int) {
	d.pending = true
	d.last = now
	d.w, d.h = w, h
}

// Poll returns the latest pending size once the quiet window has passed.
func (d *Debouncer) Poll(now time.Time) (w, h int, ok bool) {
	if !d.pending || now.Sub(d.last) < d.quiet {
		return 0, 0, false
	}
	d.pending = false
	return d.w, d.h, true
}

// Pending reports whether a resize is waiting for its quiet window.
func (d *Debouncer) Pending() bool { return d.pending }
