package endpoint

import (
	"context"
)

// Endpoint is the fundamental building block of the runtime's collaborators.
// It represents a single operation, such as one fetch or one sum, with
// typed request and response values.
type Endpoint[Request, Response any] func(ctx context.Context, request Request) (response Response, err error)

// Nop is an endpoint that does nothing and returns the zero response and a
// nil error. Useful for tests.
func Nop[Request, Response any](context.Context, Request) (Response, error) {
	var zero Response
	return zero, nil
}

// Middleware is a chainable behavior modifier for endpoints.
type Middleware[Request, Response any] func(Endpoint[Request, Response]) Endpoint[Request, Response]

// Chain is a helper function for composing middlewares. Requests will
// traverse them in the order they're declared. That is, the first middleware
// is treated as the outermost middleware.
func Chain[Request, Response any](outer Middleware[Request, Response], others ...Middleware[Request, Response]) Middleware[Request, Response] {
	return func(next Endpoint[Request, Response]) Endpoint[Request, Response] {
		for i := len(others) - 1; i >= 0; i-- { // reverse
			next = others[i](next)
		}
		return outer(next)
	}
}

// Failer may be implemented by response types that hold business errors,
// to keep them apart from transport errors. Middlewares can test whether a
// response failed and report upon it.
type Failer interface {
	Failed() error
}

type contextKey int

const (
	// ContextKeyEndpointName is populated in the context by
	// NameMiddleware. The value is a string.
	ContextKeyEndpointName contextKey = iota
)

// NameMiddleware populates the context with ContextKeyEndpointName, so
// downstream middlewares and loggers can tell endpoints apart.
func NameMiddleware[Request, Response any](name string) Middleware[Request, Response] {
	return func(next Endpoint[Request, Response]) Endpoint[Request, Response] {
		return func(ctx context.Context, request Request) (Response, error) {
			ctx = context.WithValue(ctx, ContextKeyEndpointName, name)
			return next(ctx, request)
		}
	}
}

// NameFrom returns the endpoint name stored by NameMiddleware, or the empty
// string.
func NameFrom(ctx context.Context) string {
	name, _ := ctx.Value(ContextKeyEndpointName).(string)
	return name
}
