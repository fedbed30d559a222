// Package fetch is the runtime's network collaborator: one GET of a URL,
// returning the status, headers and body. Only transport failures are
// errors; a non-2xx status is reported through Response.OK.
//
// The response body can be read as a JSON Document whose indented rendering
// keeps the remote key order.
package fetch
