package runtime

import (
	"time"

	"github.com/kitrun/kitrun/log/level"
)

// TimerID identifies a timer armed by SetTimeout or SetInterval. IDs start
// at 1 and are never reused within a run.
type TimerID uint64

// minInterval is what non-positive interval periods are clamped to.
const minInterval = time.Millisecond

type timer struct {
	cb       Callback
	period   time.Duration
	interval bool
	t        *time.Timer
}

func (t *timer) stop() { t.t.Stop() }

func (t *timer) kind() string {
	if t.interval {
		return "interval"
	}
	return "timeout"
}

// SetTimeout arms a one-shot timer: cb runs once, no earlier than d from
// now. A negative d is treated as zero.
func (rt *Runtime) SetTimeout(cb Callback, d time.Duration) TimerID {
	if d < 0 {
		d = 0
	}
	return rt.arm(&timer{cb: cb, period: d})
}

// SetInterval arms a repeating timer: cb runs every d, the first time d from
// now, until the timer is cleared. A non-positive d is clamped to one
// millisecond.
func (rt *Runtime) SetInterval(cb Callback, d time.Duration) TimerID {
	if d <= 0 {
		d = minInterval
	}
	return rt.arm(&timer{cb: cb, period: d, interval: true})
}

// ClearTimer disarms a timeout or an interval. Once it returns, the timer's
// callback does not run again. Unknown, fired and already cleared IDs are
// ignored.
func (rt *Runtime) ClearTimer(id TimerID) {
	t, ok := rt.timers[id]
	if !ok {
		return
	}
	t.stop()
	delete(rt.timers, id)
	rt.updatePending()
	level.Debug(rt.logger).Log("msg", "timer cleared", "id", id, "kind", t.kind())
}

func (rt *Runtime) arm(t *timer) TimerID {
	rt.nextTimer++
	id := rt.nextTimer
	rt.timers[id] = t
	rt.schedule(id, t)
	rt.updatePending()
	level.Debug(rt.logger).Log("msg", "timer scheduled", "id", id, "kind", t.kind(), "period", t.period)
	return id
}

func (rt *Runtime) schedule(id TimerID, t *timer) {
	t.t = time.AfterFunc(t.period, func() {
		rt.post(func() { rt.fire(id) })
	})
}

// fire runs on the loop goroutine. A timer cleared after its time.Timer
// went off is no longer in the map, and is skipped.
func (rt *Runtime) fire(id TimerID) {
	t, ok := rt.timers[id]
	if !ok {
		return
	}
	if t.interval {
		rt.schedule(id, t)
	} else {
		delete(rt.timers, id)
	}
	rt.updatePending()
	rt.loop.inst.TimersFired.With("kind", t.kind()).Add(1)
	level.Debug(rt.logger).Log("msg", "timer fired", "id", id, "kind", t.kind())
	if err := t.cb(rt); err != nil {
		rt.unhandled(t.kind(), err)
	}
}
