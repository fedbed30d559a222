package runtime

// Promise holds the eventual result of an asynchronous operation. It is
// settled exactly once, on the loop goroutine.
type Promise[T any] struct {
	settled bool
	value   T
	err     error
	then    []func(*Runtime, T, error) error
}

// Settled reports whether the promise holds a result.
func (p *Promise[T]) Settled() bool {
	return p.settled
}

// Then registers fn to run on the loop once the promise settles. If it
// already has, fn runs at once. An error returned by fn is an unhandled
// error of the loop.
func (p *Promise[T]) Then(rt *Runtime, fn func(rt *Runtime, value T, err error) error) {
	if p.settled {
		if err := fn(rt, p.value, p.err); err != nil {
			rt.unhandled("then", err)
		}
		return
	}
	p.then = append(p.then, fn)
}

func (p *Promise[T]) settle(rt *Runtime, value T, err error) {
	if p.settled {
		return
	}
	p.settled, p.value, p.err = true, value, err
	then := p.then
	p.then = nil
	for _, fn := range then {
		if err := fn(rt, value, err); err != nil {
			rt.unhandled("then", err)
		}
	}
}

// Await suspends the caller until p settles and returns its result. While
// p is pending, other completions are dispatched on the calling goroutine.
// If the loop stops first, the stop cause is returned.
func Await[T any](rt *Runtime, p *Promise[T]) (T, error) {
	for !p.settled {
		if rt.stopped == nil && rt.pending() == 0 {
			var zero T
			return zero, ErrUnsettled
		}
		rt.dispatch()
		if rt.stopped != nil && !p.settled {
			var zero T
			return zero, rt.stopped
		}
	}
	return p.value, p.err
}
