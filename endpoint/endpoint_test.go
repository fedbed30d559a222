package endpoint_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/kitrun/kitrun/endpoint"
)

func TestNameMiddleware(t *testing.T) {
	var name string

	ep := func(ctx context.Context, request string) (int, error) {
		name = endpoint.NameFrom(ctx)
		return len(request), nil
	}

	n, err := endpoint.NameMiddleware[string, int]("fetch")(ep)(context.Background(), "abc")
	if err != nil {
		t.Fatal(err)
	}
	if want, have := "fetch", name; want != have {
		t.Fatalf("want %q, have %q", want, have)
	}
	if want, have := 3, n; want != have {
		t.Errorf("want %d, have %d", want, have)
	}
}

func TestNameFromEmptyContext(t *testing.T) {
	if have := endpoint.NameFrom(context.Background()); have != "" {
		t.Errorf("want empty name, have %q", have)
	}
}

func TestNop(t *testing.T) {
	resp, err := endpoint.Nop[struct{}, *int](context.Background(), struct{}{})
	if err != nil {
		t.Fatal(err)
	}
	if resp != nil {
		t.Errorf("want nil response, have %v", resp)
	}
}

func ExampleChain() {
	e := endpoint.Chain(
		annotate("first"),
		annotate("second"),
		annotate("third"),
	)(myEndpoint)

	if _, err := e(context.Background(), struct{}{}); err != nil {
		panic(err)
	}

	// Output:
	// first pre
	// second pre
	// third pre
	// my endpoint!
	// third post
	// second post
	// first post
}

func annotate(s string) endpoint.Middleware[struct{}, struct{}] {
	return func(next endpoint.Endpoint[struct{}, struct{}]) endpoint.Endpoint[struct{}, struct{}] {
		return func(ctx context.Context, request struct{}) (struct{}, error) {
			fmt.Println(s, "pre")
			defer fmt.Println(s, "post")
			return next(ctx, request)
		}
	}
}

func myEndpoint(context.Context, struct{}) (struct{}, error) {
	fmt.Println("my endpoint!")
	return struct{}{}, nil
}
