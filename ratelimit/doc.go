// Package ratelimit provides endpoint middlewares that reject or delay
// fetches exceeding a configured rate. The command wires
// golang.org/x/time/rate limiters into them.
package ratelimit
