package addsvc

import (
	"context"
	"time"

	"github.com/kitrun/kitrun/log"
	"github.com/kitrun/kitrun/log/level"
	"github.com/kitrun/kitrun/metrics"
)

// Middleware describes a service (as opposed to endpoint) middleware.
type Middleware func(Service) Service

// LoggingMiddleware takes a logger as a dependency
// and returns a service Middleware.
func LoggingMiddleware(logger log.Logger) Middleware {
	return func(next Service) Service {
		return loggingMiddleware{logger, next}
	}
}

type loggingMiddleware struct {
	logger log.Logger
	next   Service
}

func (mw loggingMiddleware) Sum(ctx context.Context, a, b float64) (v float64) {
	defer func(begin time.Time) {
		level.Debug(mw.logger).Log("method", "sum", "a", a, "b", b, "v", v, "took", time.Since(begin))
	}(time.Now())
	return mw.next.Sum(ctx, a, b)
}

// InstrumentingMiddleware returns a service middleware that counts calls
// and observes their results.
func InstrumentingMiddleware(calls metrics.Counter, results metrics.Histogram) Middleware {
	return func(next Service) Service {
		return instrumentingMiddleware{
			calls:   calls,
			results: results,
			next:    next,
		}
	}
}

type instrumentingMiddleware struct {
	calls   metrics.Counter
	results metrics.Histogram
	next    Service
}

func (mw instrumentingMiddleware) Sum(ctx context.Context, a, b float64) float64 {
	v := mw.next.Sum(ctx, a, b)
	mw.calls.With("method", "sum").Add(1)
	mw.results.With("method", "sum").Observe(v)
	return v
}
