package fetch

import (
	"context"
	"strconv"
	"time"

	"github.com/kitrun/kitrun/endpoint"
	"github.com/kitrun/kitrun/log"
	"github.com/kitrun/kitrun/log/level"
	"github.com/kitrun/kitrun/metrics"
)

// LoggingMiddleware logs every fetch at debug level, and failed ones at
// error level.
func LoggingMiddleware(logger log.Logger) endpoint.Middleware[Request, *Response] {
	return func(next endpoint.Endpoint[Request, *Response]) endpoint.Endpoint[Request, *Response] {
		return func(ctx context.Context, request Request) (resp *Response, err error) {
			defer func(begin time.Time) {
				if err != nil || resp == nil {
					level.Error(logger).Log("method", "fetch", "url", request.URL, "took", time.Since(begin), "err", err)
					return
				}
				level.Debug(logger).Log("method", "fetch", "url", request.URL, "status", resp.Status, "bytes", len(resp.Body), "took", time.Since(begin))
			}(time.Now())
			return next(ctx, request)
		}
	}
}

// InstrumentingMiddleware counts fetches and observes their duration, both
// labeled by status code, or "error" for transport failures.
func InstrumentingMiddleware(requests metrics.Counter, duration metrics.Histogram) endpoint.Middleware[Request, *Response] {
	return func(next endpoint.Endpoint[Request, *Response]) endpoint.Endpoint[Request, *Response] {
		return func(ctx context.Context, request Request) (resp *Response, err error) {
			defer func(begin time.Time) {
				status := "error"
				if err == nil && resp != nil {
					status = strconv.Itoa(resp.Status)
				}
				requests.With("status", status).Add(1)
				duration.With("status", status).Observe(time.Since(begin).Seconds())
			}(time.Now())
			return next(ctx, request)
		}
	}
}
