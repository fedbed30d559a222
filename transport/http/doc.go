// Package http provides the client side of an HTTP transport for typed
// endpoints. The fetch package builds its GET endpoint from it.
package http
