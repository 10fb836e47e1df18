// Package clock wraps the simulator's single wall-clock reference point.
// Every event-log line timestamps itself as seconds elapsed since the
// clock's Start call; no event-log line is timestamped any other way,
// which keeps the event log reproducible in relative terms
// even though absolute run time varies with scheduling jitter.
package clock

import "time"

// Clock measures elapsed real time since Start.
type Clock struct {
	start time.Time
}

// New returns a Clock that has not yet been started.
func New() *Clock {
	return &Clock{}
}

// Start records the zero point. Calling it again resets the reference.
func (c *Clock) Start() {
	c.start = time.Now()
}

// Elapsed returns seconds since Start, as a float suitable for the
// "%.6f - message" event log format.
func (c *Clock) Elapsed() float64 {
	return time.Since(c.start).Seconds()
}
