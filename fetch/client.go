package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/kitrun/kitrun/endpoint"
	httptransport "github.com/kitrun/kitrun/transport/http"
)

// DefaultMaxBodyBytes bounds how much of a response body is read.
const DefaultMaxBodyBytes = 10 << 20

// ErrBodyTooLarge is returned when a response body exceeds the configured
// maximum.
var ErrBodyTooLarge = errors.New("response body too large")

// HTTPFetcher fetches over HTTP through a transport/http client endpoint.
type HTTPFetcher struct {
	endpoint endpoint.Endpoint[Request, *Response]
}

type options struct {
	client       httptransport.HTTPClient
	timeout      time.Duration
	userAgent    string
	maxBodyBytes int64
	middlewares  []endpoint.Middleware[Request, *Response]
}

// Option sets an optional parameter for NewHTTPFetcher.
type Option func(*options)

// WithHTTPClient sets the client requests are sent with. By default,
// http.DefaultClient is used.
func WithHTTPClient(client httptransport.HTTPClient) Option {
	return func(o *options) { o.client = client }
}

// WithTimeout bounds each fetch, including reading the body. Zero means no
// bound beyond the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithUserAgent sets the User-Agent header. Empty leaves Go's default.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// WithMaxBodyBytes bounds the body size. Non-positive values restore the
// default.
func WithMaxBodyBytes(n int64) Option {
	return func(o *options) { o.maxBodyBytes = n }
}

// WithMiddleware adds endpoint middlewares. The first one added is the
// outermost.
func WithMiddleware(mw ...endpoint.Middleware[Request, *Response]) Option {
	return func(o *options) { o.middlewares = append(o.middlewares, mw...) }
}

// NewHTTPFetcher returns a Fetcher issuing plain GET requests. It never
// retries.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	o := options{client: http.DefaultClient}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxBodyBytes <= 0 {
		o.maxBodyBytes = DefaultMaxBodyBytes
	}

	var clientOptions []httptransport.ClientOption[Request, *Response]
	clientOptions = append(clientOptions, httptransport.SetClient[Request, *Response](o.client))
	if o.userAgent != "" {
		clientOptions = append(clientOptions, httptransport.ClientBefore[Request, *Response](
			httptransport.SetRequestHeader("User-Agent", o.userAgent),
		))
	}

	var e endpoint.Endpoint[Request, *Response]
	e = httptransport.NewExplicitClient(createRequest, decodeResponse(o.maxBodyBytes), clientOptions...).Endpoint()
	if o.timeout > 0 {
		e = timeoutMiddleware(o.timeout)(e)
	}
	for i := len(o.middlewares) - 1; i >= 0; i-- {
		e = o.middlewares[i](e)
	}
	e = endpoint.NameMiddleware[Request, *Response]("fetch")(e)

	return &HTTPFetcher{endpoint: e}
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Response, error) {
	return f.endpoint(ctx, Request{URL: url})
}

// Endpoint returns the fetch endpoint with all middlewares applied.
func (f *HTTPFetcher) Endpoint() endpoint.Endpoint[Request, *Response] {
	return f.endpoint
}

func createRequest(ctx context.Context, request Request) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, http.MethodGet, request.URL, nil)
}

func decodeResponse(max int64) httptransport.DecodeResponseFunc[*Response] {
	return func(_ context.Context, r *http.Response) (*Response, error) {
		body, err := io.ReadAll(io.LimitReader(r.Body, max+1))
		if err != nil {
			return nil, errors.Wrap(err, "reading body")
		}
		if int64(len(body)) > max {
			return nil, errors.Wrapf(ErrBodyTooLarge, "more than %d bytes", max)
		}
		url := ""
		if r.Request != nil && r.Request.URL != nil {
			url = r.Request.URL.String()
		}
		return &Response{
			URL:    url,
			Status: r.StatusCode,
			OK:     r.StatusCode >= 200 && r.StatusCode < 300,
			Header: r.Header,
			Body:   body,
		}, nil
	}
}

func timeoutMiddleware(d time.Duration) endpoint.Middleware[Request, *Response] {
	return func(next endpoint.Endpoint[Request, *Response]) endpoint.Endpoint[Request, *Response] {
		return func(ctx context.Context, request Request) (*Response, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(ctx, request)
		}
	}
}
