package http

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/kitrun/kitrun/endpoint"
)

// HTTPClient is an interface that models *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client wraps a request constructor and a response decoder, and provides
// a method that implements endpoint.Endpoint.
type Client[Request, Response any] struct {
	client         HTTPClient
	req            CreateRequestFunc[Request]
	dec            DecodeResponseFunc[Response]
	before         []RequestFunc
	after          []ClientResponseFunc
	finalizer      []ClientFinalizerFunc
	bufferedStream bool
}

// NewClient constructs a usable Client for a single remote method with a
// fixed target.
func NewClient[Request, Response any](
	method string,
	tgt *url.URL,
	enc EncodeRequestFunc[Request],
	dec DecodeResponseFunc[Response],
	options ...ClientOption[Request, Response],
) *Client[Request, Response] {
	return NewExplicitClient(makeCreateRequestFunc(method, tgt, enc), dec, options...)
}

// NewExplicitClient is like NewClient but uses a CreateRequestFunc instead
// of a method, target URL, and EncodeRequestFunc, which allows for the
// target to be chosen per request.
func NewExplicitClient[Request, Response any](
	req CreateRequestFunc[Request],
	dec DecodeResponseFunc[Response],
	options ...ClientOption[Request, Response],
) *Client[Request, Response] {
	c := &Client[Request, Response]{
		client: http.DefaultClient,
		req:    req,
		dec:    dec,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// ClientOption sets an optional parameter for clients.
type ClientOption[Request, Response any] func(*Client[Request, Response])

// SetClient sets the underlying HTTP client used for requests.
// By default, http.DefaultClient is used.
func SetClient[Request, Response any](client HTTPClient) ClientOption[Request, Response] {
	return func(c *Client[Request, Response]) { c.client = client }
}

// ClientBefore adds one or more RequestFuncs to be applied to the outgoing
// HTTP request before it's invoked.
func ClientBefore[Request, Response any](before ...RequestFunc) ClientOption[Request, Response] {
	return func(c *Client[Request, Response]) { c.before = append(c.before, before...) }
}

// ClientAfter adds one or more ClientResponseFuncs, which are applied to the
// incoming HTTP response prior to it being decoded.
func ClientAfter[Request, Response any](after ...ClientResponseFunc) ClientOption[Request, Response] {
	return func(c *Client[Request, Response]) { c.after = append(c.after, after...) }
}

// ClientFinalizer adds one or more ClientFinalizerFuncs to be executed at the
// end of every HTTP request.
func ClientFinalizer[Request, Response any](f ...ClientFinalizerFunc) ClientOption[Request, Response] {
	return func(c *Client[Request, Response]) { c.finalizer = append(c.finalizer, f...) }
}

// BufferedStream sets whether the HTTP response body is left open, allowing
// it to be read from later. The body must then be closed by the caller to
// end the request.
func BufferedStream[Request, Response any](buffered bool) ClientOption[Request, Response] {
	return func(c *Client[Request, Response]) { c.bufferedStream = buffered }
}

// Endpoint returns a usable endpoint that invokes the remote endpoint.
func (c Client[Request, Response]) Endpoint() endpoint.Endpoint[Request, Response] {
	return func(ctx context.Context, request Request) (response Response, err error) {
		ctx, cancel := context.WithCancel(ctx)

		var resp *http.Response
		if c.finalizer != nil {
			defer func() {
				if resp != nil {
					ctx = context.WithValue(ctx, ContextKeyResponseHeaders, resp.Header)
					ctx = context.WithValue(ctx, ContextKeyResponseSize, resp.ContentLength)
				}
				for _, f := range c.finalizer {
					f(ctx, err)
				}
			}()
		}

		req, err := c.req(ctx, request)
		if err != nil {
			cancel()
			if _, ok := err.(TransportError); !ok {
				err = TransportError{DomainNewRequest, err}
			}
			return response, err
		}

		for _, f := range c.before {
			ctx = f(ctx, req)
		}

		resp, err = c.client.Do(req.WithContext(ctx))
		if err != nil {
			cancel()
			return response, TransportError{DomainDo, err}
		}

		// A buffered stream keeps the context alive until the body is closed.
		if c.bufferedStream {
			resp.Body = bodyWithCancel{ReadCloser: resp.Body, cancel: cancel}
		} else {
			defer resp.Body.Close()
			defer cancel()
		}

		for _, f := range c.after {
			ctx = f(ctx, resp)
		}

		response, err = c.dec(ctx, resp)
		if err != nil {
			return response, TransportError{DomainDecode, err}
		}

		return response, nil
	}
}

// bodyWithCancel is a wrapper for an io.ReadCloser which also has a cancel
// function which is called when the Close function is called.
type bodyWithCancel struct {
	io.ReadCloser

	cancel context.CancelFunc
}

// Close closes the underlying io.ReadCloser and calls cancel.
func (bwc bodyWithCancel) Close() error {
	bwc.ReadCloser.Close()
	bwc.cancel()
	return nil
}

func makeCreateRequestFunc[Request any](method string, target *url.URL, enc EncodeRequestFunc[Request]) CreateRequestFunc[Request] {
	return func(ctx context.Context, request Request) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, method, target.String(), nil)
		if err != nil {
			return nil, err
		}
		if err = enc(ctx, req, request); err != nil {
			return nil, TransportError{DomainEncode, err}
		}
		return req, nil
	}
}
