package runtime

import (
	"context"

	"github.com/kitrun/kitrun/fetch"
	"github.com/kitrun/kitrun/log/level"
)

// Fetch starts a GET of url on a background goroutine and returns a
// promise settled, on the loop, with the response or the transport error.
// The request is canceled if the loop stops first.
func (rt *Runtime) Fetch(url string) *Promise[*fetch.Response] {
	p := &Promise[*fetch.Response]{}

	rt.nextFetch++
	id := rt.nextFetch
	ctx, cancel := context.WithCancel(rt.ctx)
	rt.inflight[id] = cancel
	rt.updatePending()
	level.Debug(rt.logger).Log("msg", "fetch started", "id", id, "url", url)

	go func() {
		resp, err := rt.loop.fetcher.Fetch(ctx, url)
		rt.post(func() {
			if _, ok := rt.inflight[id]; !ok {
				return // canceled by stop
			}
			cancel()
			delete(rt.inflight, id)
			rt.updatePending()
			if err != nil {
				level.Debug(rt.logger).Log("msg", "fetch failed", "id", id, "err", err)
			} else if resp != nil {
				level.Debug(rt.logger).Log("msg", "fetch done", "id", id, "status", resp.Status)
			}
			p.settle(rt, resp, err)
		})
	}()

	return p
}
