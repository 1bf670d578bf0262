package selectbox

import "time"

// Debouncer is the owned handle for a debounced request. It records only the
// latest trigger; the timer that eventually reports DebounceElapsed belongs
// to whoever executes ArmDebounce effects.
type Debouncer struct {
	Delay   time.Duration
	gen     uint64
	pending string
	armed   bool
}

// Trigger records url as the request to issue and returns the ticket the
// timer must present when it fires.
func (d Debouncer) Trigger(url string) (Debouncer, uint64) {
	d.gen++
	d.pending = url
	d.armed = true
	return d, d.gen
}

// Fire redeems a ticket. Only the most recent ticket of an armed handle
// yields a request.
func (d Debouncer) Fire(gen uint64) (Debouncer, string, bool) {
	if !d.armed || gen != d.gen {
		return d, "", false
	}
	url := d.pending
	d.armed = false
	d.pending = ""
	return d, url, true
}

// Cancel drops any pending request.
func (d Debouncer) Cancel() Debouncer {
	d.armed = false
	d.pending = ""
	return d
}

// Armed reports whether a request is waiting for its timer.
func (d Debouncer) Armed() bool { return d.armed }
