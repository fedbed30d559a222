package http

import (
	"fmt"
)

// These are the phases a client request passes through. A TransportError
// names the one it failed in.
const (
	// DomainNewRequest represents an error at the request generation phase.
	DomainNewRequest = "NewRequest"

	// DomainEncode represents an error that has occurred while encoding the
	// request.
	DomainEncode = "Encode"

	// DomainDo represents an error that has occurred at the Do, or
	// execution phase of the request.
	DomainDo = "Do"

	// DomainDecode represents an error that has occurred at the Decode
	// phase of the request.
	DomainDecode = "Decode"
)

// TransportError represents an error that occurred in the client transport.
type TransportError struct {
	// Domain is the phase in which the error was generated.
	Domain string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e TransportError) Error() string {
	return fmt.Sprintf("%s: %s", e.Domain, e.Err)
}

// Cause returns the underlying error, for github.com/pkg/errors.Cause.
func (e TransportError) Cause() error { return e.Err }

// Unwrap returns the underlying error, for errors.Is and errors.As.
func (e TransportError) Unwrap() error { return e.Err }
