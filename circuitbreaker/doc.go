// Package circuitbreaker implements the circuit breaker pattern for the
// fetch endpoint.
//
// A breaker is only useful when a program fetches repeatedly, for example
// from an interval callback. With the single fetch of the default program it
// stays closed. Two implementations are available, selected by
// configuration: sony/gobreaker and afex/hystrix-go.
package circuitbreaker
