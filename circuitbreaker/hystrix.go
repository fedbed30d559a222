package circuitbreaker

import (
	"context"

	"github.com/afex/hystrix-go/hystrix"

	"github.com/kitrun/kitrun/endpoint"
)

// Hystrix returns an endpoint.Middleware that implements the circuit
// breaker pattern using the afex/hystrix-go package. Commands are
// configured separately, with hystrix.ConfigureCommand. The caller's context
// bounds the command: canceling it ends the wait with the context's error.
func Hystrix[Request, Response any](commandName string) endpoint.Middleware[Request, Response] {
	return func(next endpoint.Endpoint[Request, Response]) endpoint.Endpoint[Request, Response] {
		return func(ctx context.Context, request Request) (Response, error) {
			var resp Response
			if err := hystrix.DoC(ctx, commandName, func(ctx context.Context) (err error) {
				resp, err = next(ctx, request)
				return err
			}, nil); err != nil {
				var zero Response
				return zero, err
			}
			return resp, nil
		}
	}
}
