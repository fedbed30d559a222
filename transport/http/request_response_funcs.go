package http

import (
	"context"
	"net/http"
)

// RequestFunc may take information from an HTTP request and put it into a
// request context. In clients, RequestFuncs are executed after creating the
// request but prior to invoking the HTTP client.
type RequestFunc func(context.Context, *http.Request) context.Context

// ClientResponseFunc may take information from an HTTP response and make the
// response available for consumption. ClientResponseFuncs are only executed
// in clients, after a request has been made, but prior to it being decoded.
type ClientResponseFunc func(context.Context, *http.Response) context.Context

// ClientFinalizerFunc can be used to perform work at the end of a client HTTP
// request, after the response is returned. The principal intended use is
// for error logging. err is the error returned by the endpoint, if any.
type ClientFinalizerFunc func(ctx context.Context, err error)

// SetRequestHeader returns a RequestFunc that sets the given header.
func SetRequestHeader(key, val string) RequestFunc {
	return func(ctx context.Context, r *http.Request) context.Context {
		r.Header.Set(key, val)
		return ctx
	}
}

type contextKey int

const (
	// ContextKeyResponseHeaders is populated in the context whenever a
	// ClientFinalizerFunc is specified. Its value is of type http.Header, and
	// is captured only once the entire response has been written.
	ContextKeyResponseHeaders contextKey = iota

	// ContextKeyResponseSize is populated in the context whenever a
	// ClientFinalizerFunc is specified. Its value is of type int64.
	ContextKeyResponseSize
)
