package fetch

import (
	"context"
	"net/http"
)

// Fetcher performs one GET of url.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Response, error)
}

// FetcherFunc is an adapter to allow use of ordinary functions as Fetchers.
type FetcherFunc func(ctx context.Context, url string) (*Response, error)

// Fetch implements Fetcher by calling f(ctx, url).
func (f FetcherFunc) Fetch(ctx context.Context, url string) (*Response, error) {
	return f(ctx, url)
}

// Request is the input of the fetch endpoint.
type Request struct {
	URL string
}

// Response is the output of the fetch endpoint.
type Response struct {
	URL    string
	Status int
	OK     bool
	Header http.Header
	Body   []byte
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// JSON decodes the body as a JSON Document.
func (r *Response) JSON() (*Document, error) {
	return ParseDocument(r.Body)
}
