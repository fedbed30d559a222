package circuitbreaker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kitrun/kitrun/endpoint"
)

func testFailingEndpoint(t *testing.T, breaker endpoint.Middleware[string, int], primeWith int, shouldPass func(int) bool, requestDelay time.Duration, openCircuitError string) {
	// Create a mock endpoint and wrap it with the breaker.
	m := mock{}
	var e endpoint.Endpoint[string, int]
	e = m.endpoint
	e = breaker(e)

	// Prime the endpoint with successful requests.
	for i := 0; i < primeWith; i++ {
		v, err := e(context.Background(), "https://ipinfo.io/json")
		if err != nil {
			t.Fatalf("during priming, got error: %v", err)
		}
		if want, have := 200, v; want != have {
			t.Fatalf("during priming, want %d, have %d", want, have)
		}
		time.Sleep(requestDelay)
	}

	// Switch the endpoint to start throwing errors.
	m.err = errors.New("tragedy+disaster")
	m.thru = 0

	// The first several should be allowed through and yield our error.
	for i := 0; shouldPass(i); i++ {
		if _, err := e(context.Background(), "https://ipinfo.io/json"); err != m.err {
			t.Fatalf("want %v, have %v", m.err, err)
		}
		time.Sleep(requestDelay)
	}
	thru := m.thru

	// But the rest should be blocked by an open circuit.
	for i := 0; i < 10; i++ {
		if _, err := e(context.Background(), "https://ipinfo.io/json"); err == nil || err.Error() != openCircuitError {
			t.Fatalf("want %q, have %v", openCircuitError, err)
		}
		time.Sleep(requestDelay)
	}

	// Make sure none of those got through.
	if want, have := thru, m.thru; want != have {
		t.Errorf("want %d, have %d", want, have)
	}
}

type mock struct {
	thru int
	err  error
}

func (m *mock) endpoint(context.Context, string) (int, error) {
	m.thru++
	if m.err != nil {
		return 0, m.err
	}
	return 200, nil
}
