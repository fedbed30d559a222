package runtime

import (
	"context"
	"fmt"

	"github.com/kitrun/kitrun/log"
	"github.com/kitrun/kitrun/log/level"
)

// Runtime is the view of a running loop handed to its task and callbacks.
// Its methods must only be called from the goroutine running them.
type Runtime struct {
	ctx    context.Context
	loop   *Loop
	logger log.Logger

	completions chan func()
	done        chan struct{}

	nextTimer TimerID
	timers    map[TimerID]*timer

	nextFetch uint64
	inflight  map[uint64]context.CancelFunc

	err     error // first unhandled error
	stopped error // cause the loop stopped early
}

func newRuntime(ctx context.Context, l *Loop) *Runtime {
	return &Runtime{
		ctx:         ctx,
		loop:        l,
		logger:      log.With(l.logger, "component", "loop"),
		completions: make(chan func()),
		done:        make(chan struct{}),
		timers:      map[TimerID]*timer{},
		inflight:    map[uint64]context.CancelFunc{},
	}
}

// Context returns the loop's context. It is canceled when the loop stops.
func (rt *Runtime) Context() context.Context {
	return rt.ctx
}

// Print writes args to the console as one line, separated by spaces.
func (rt *Runtime) Print(args ...interface{}) {
	if _, err := fmt.Fprintln(rt.loop.console, args...); err != nil {
		level.Error(rt.logger).Log("msg", "console write failed", "err", err)
	}
}

func (rt *Runtime) pending() int {
	return len(rt.timers) + len(rt.inflight)
}

func (rt *Runtime) updatePending() {
	rt.loop.inst.Pending.Set(float64(rt.pending()))
}

// post delivers a completion from a background goroutine. After the loop
// has closed it is dropped.
func (rt *Runtime) post(c func()) {
	select {
	case rt.completions <- c:
	case <-rt.done:
	}
}

// dispatch runs one completion, or stops the loop if its context is done
// or it was shut down.
func (rt *Runtime) dispatch() {
	if rt.stopped != nil {
		return
	}
	select {
	case c := <-rt.completions:
		c()
	case <-rt.ctx.Done():
		rt.stop(rt.ctx.Err())
	case <-rt.loop.shutdown:
		rt.stop(ErrShutdown)
	}
}

func (rt *Runtime) stop(cause error) {
	rt.stopped = cause
	for id, t := range rt.timers {
		t.stop()
		delete(rt.timers, id)
	}
	for id, cancel := range rt.inflight {
		cancel()
		delete(rt.inflight, id)
	}
	rt.updatePending()
}

func (rt *Runtime) close() {
	if rt.stopped == nil && rt.pending() > 0 {
		rt.stop(context.Canceled)
	}
	close(rt.done)
}

// unhandled records err as an unhandled error of source. The first one is
// what Run returns.
func (rt *Runtime) unhandled(source string, err error) {
	level.Error(rt.logger).Log("msg", "unhandled error", "source", source, "err", err)
	rt.loop.inst.Unhandled.With("source", source).Add(1)
	if rt.err == nil {
		rt.err = err
	}
}
