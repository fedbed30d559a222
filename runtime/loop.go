package runtime

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/kitrun/kitrun/fetch"
	"github.com/kitrun/kitrun/log"
	"github.com/kitrun/kitrun/log/level"
)

var (
	// ErrAlreadyRun is returned by Run when the loop has run before.
	ErrAlreadyRun = errors.New("loop already run")

	// ErrShutdown is returned by Run, and by pending Awaits, after Shutdown.
	ErrShutdown = errors.New("loop shut down")

	// ErrUnsettled is returned by Await for a promise that nothing pending
	// can settle.
	ErrUnsettled = errors.New("promise can never settle")
)

// Task is the main unit of work of a loop.
type Task func(ctx context.Context, rt *Runtime) error

// Callback is the unit of work of a timer.
type Callback func(rt *Runtime) error

// Loop runs a Task and everything it schedules.
type Loop struct {
	fetcher fetch.Fetcher
	console io.Writer
	logger  log.Logger
	inst    Instrumenting

	mu       sync.Mutex
	ran      bool
	shutdown chan struct{}
	once     sync.Once
}

// Option sets an optional parameter for loops.
type Option func(*Loop)

// WithFetcher sets the fetcher used by Runtime.Fetch. By default, a plain
// fetch.HTTPFetcher is used.
func WithFetcher(f fetch.Fetcher) Option {
	return func(l *Loop) { l.fetcher = f }
}

// WithConsole sets the writer Runtime.Print writes to. By default, os.Stdout.
func WithConsole(w io.Writer) Option {
	return func(l *Loop) { l.console = w }
}

// WithLogger sets the logger for loop diagnostics. By default, nothing is
// logged.
func WithLogger(logger log.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// WithInstrumenting sets the loop's metrics. Nil members are discarded.
func WithInstrumenting(inst Instrumenting) Option {
	return func(l *Loop) { l.inst = inst }
}

// New returns a loop ready to Run.
func New(options ...Option) *Loop {
	l := &Loop{
		fetcher:  fetch.NewHTTPFetcher(),
		console:  os.Stdout,
		logger:   log.NewNopLogger(),
		shutdown: make(chan struct{}),
	}
	for _, option := range options {
		option(l)
	}
	l.inst = l.inst.withDefaults()
	return l
}

// Shutdown stops a running loop: timers are stopped, in-flight fetches are
// canceled, and Run returns ErrShutdown. It is safe to call from any
// goroutine, more than once, and before Run.
func (l *Loop) Shutdown() {
	l.once.Do(func() { close(l.shutdown) })
}

// Run runs main on the calling goroutine, then dispatches completions until
// the loop is idle. It returns the first unhandled error of the task or of
// a callback. If ctx is canceled or Shutdown is called first, Run stops all
// pending work and returns that cause instead.
func (l *Loop) Run(ctx context.Context, main Task) error {
	l.mu.Lock()
	if l.ran {
		l.mu.Unlock()
		return ErrAlreadyRun
	}
	l.ran = true
	l.mu.Unlock()

	select {
	case <-l.shutdown:
		return ErrShutdown
	default:
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rt := newRuntime(ctx, l)
	defer rt.close()

	level.Debug(rt.logger).Log("msg", "loop started")
	if err := main(ctx, rt); err != nil {
		rt.unhandled("task", err)
	}
	for rt.stopped == nil && rt.pending() > 0 {
		rt.dispatch()
	}
	if rt.stopped != nil {
		level.Debug(rt.logger).Log("msg", "loop stopped", "cause", rt.stopped)
		return rt.stopped
	}
	level.Debug(rt.logger).Log("msg", "loop idle")
	return rt.err
}
