package http

import (
	"context"
	"net/http"
)

// CreateRequestFunc creates an outgoing HTTP request based on the passed
// request object. It's designed to be used in HTTP clients whose target
// is part of the request, such as a fetch of an arbitrary URL. It's a more
// powerful version of EncodeRequestFunc.
type CreateRequestFunc[Request any] func(context.Context, Request) (*http.Request, error)

// EncodeRequestFunc encodes the passed request object into the HTTP request
// object. It's designed to be used in HTTP clients with a fixed target.
type EncodeRequestFunc[Request any] func(context.Context, *http.Request, Request) error

// DecodeResponseFunc extracts a user-domain response object from an HTTP
// response object. The body is closed by the client after it returns,
// unless BufferedStream is set.
type DecodeResponseFunc[Response any] func(context.Context, *http.Response) (response Response, err error)
