// Package metrics holds the metric interfaces instrumented code depends on.
// Backends live in subpackages; the runtime uses prometheus when a debug
// listener is configured and discard otherwise.
package metrics

import "time"

// Counter describes a metric that accumulates values monotonically.
// An example of a counter is the number of fired timers.
type Counter interface {
	With(labelValues ...string) Counter
	Add(delta float64)
}

// Gauge describes a metric that takes specific values over time.
// An example of a gauge is the number of pending timers and fetches.
type Gauge interface {
	With(labelValues ...string) Gauge
	Set(value float64)
	Add(delta float64)
}

// Histogram describes a metric that takes repeated observations of the same
// kind of thing, and produces a statistical summary of those observations.
// An example of a histogram is fetch latency.
type Histogram interface {
	With(labelValues ...string) Histogram
	Observe(value float64)
}

// Timer observes the elapsed time since its creation, in seconds, into a
// Histogram.
type Timer struct {
	h     Histogram
	begin time.Time
	since func(time.Time) time.Duration
}

// NewTimer starts a Timer observing into h.
func NewTimer(h Histogram) *Timer {
	return &Timer{h: h, begin: time.Now(), since: time.Since}
}

// ObserveDuration records the elapsed time. Negative durations, from a clock
// stepping backwards, are recorded as zero.
func (t *Timer) ObserveDuration() {
	d := t.since(t.begin).Seconds()
	if d < 0 {
		d = 0
	}
	t.h.Observe(d)
}
