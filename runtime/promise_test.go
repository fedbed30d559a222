package runtime

import (
	"context"
	"testing"
)

func TestAwaitUnsettled(t *testing.T) {
	loop := New()
	var awaitErr error
	err := loop.Run(context.Background(), func(ctx context.Context, rt *Runtime) error {
		_, awaitErr = Await(rt, &Promise[int]{})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if want, have := ErrUnsettled, awaitErr; want != have {
		t.Errorf("want %v, have %v", want, have)
	}
}

func TestSettleOnce(t *testing.T) {
	rt := newRuntime(context.Background(), New())
	defer rt.close()

	var calls int
	p := &Promise[int]{}
	p.Then(rt, func(_ *Runtime, v int, err error) error { calls++; return nil })
	p.settle(rt, 1, nil)
	p.settle(rt, 2, nil)

	if want, have := 1, calls; want != have {
		t.Errorf("want %d calls, have %d", want, have)
	}
	if !p.Settled() {
		t.Fatal("want settled")
	}
	if want, have := 1, p.value; want != have {
		t.Errorf("want %d, have %d", want, have)
	}
}
