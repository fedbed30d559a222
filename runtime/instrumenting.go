package runtime

import (
	"github.com/kitrun/kitrun/metrics"
	"github.com/kitrun/kitrun/metrics/discard"
)

// Instrumenting holds the loop's metrics.
type Instrumenting struct {
	// TimersFired counts timer callbacks run, labeled by kind (timeout or
	// interval).
	TimersFired metrics.Counter

	// Unhandled counts unhandled errors, labeled by source (task, timeout,
	// interval or then).
	Unhandled metrics.Counter

	// Pending tracks armed timers plus in-flight fetches.
	Pending metrics.Gauge
}

func (i Instrumenting) withDefaults() Instrumenting {
	if i.TimersFired == nil {
		i.TimersFired = discard.NewCounter()
	}
	if i.Unhandled == nil {
		i.Unhandled = discard.NewCounter()
	}
	if i.Pending == nil {
		i.Pending = discard.NewGauge()
	}
	return i
}
