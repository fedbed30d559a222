package script_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/kitrun/kitrun/addsvc"
	"github.com/kitrun/kitrun/fetch"
	"github.com/kitrun/kitrun/modules"
	"github.com/kitrun/kitrun/runtime"
	"github.com/kitrun/kitrun/script"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func imports(t *testing.T) *modules.Registry {
	t.Helper()
	r := modules.NewRegistry()
	if err := addsvc.Register(r, addsvc.NewBasicService()); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestMainEndToEnd(t *testing.T) {
	var (
		console    syncBuffer
		atFetch    string
		fetchedURL string
		delay      = 30 * time.Millisecond
	)
	fetcher := fetch.FetcherFunc(func(ctx context.Context, url string) (*fetch.Response, error) {
		atFetch = console.String()
		fetchedURL = url
		return &fetch.Response{Status: 200, OK: true, Body: []byte(`{"ip": "1.2.3.4"}`)}, nil
	})

	loop := runtime.New(runtime.WithConsole(&console), runtime.WithFetcher(fetcher))
	begin := time.Now()
	if err := loop.Run(context.Background(), script.Main(imports(t), script.Options{Delay: delay})); err != nil {
		t.Fatal(err)
	}
	elapsed := time.Since(begin)

	want := strings.Join([]string{
		"Hello from JS Module!",
		"{\n  \"ip\": \"1.2.3.4\"\n}",
		"Let us add!",
		"10 + 20 = 30",
	}, "\n") + "\n"
	if have := console.String(); want != have {
		t.Errorf("want %q, have %q", want, have)
	}
	if want, have := "Hello from JS Module!\n", atFetch; want != have {
		t.Errorf("at fetch time: want %q, have %q", want, have)
	}
	if want, have := script.DefaultURL, fetchedURL; want != have {
		t.Errorf("want %q, have %q", want, have)
	}
	if elapsed < delay {
		t.Errorf("finished after %v, before the %v delay", elapsed, delay)
	}
}

func TestMainFetchFailureStillAdds(t *testing.T) {
	var (
		console syncBuffer
		boom    = errors.New("dial tcp: connection refused")
	)
	fetcher := fetch.FetcherFunc(func(context.Context, string) (*fetch.Response, error) { return nil, boom })

	loop := runtime.New(runtime.WithConsole(&console), runtime.WithFetcher(fetcher))
	err := loop.Run(context.Background(), script.Main(imports(t), script.Options{Delay: 10 * time.Millisecond}))
	if want, have := boom, pkgerrors.Cause(err); want != have {
		t.Errorf("want %v, have %v", want, have)
	}
	if want, have := "Hello from JS Module!\nLet us add!\n10 + 20 = 30\n", console.String(); want != have {
		t.Errorf("want %q, have %q", want, have)
	}
}

func TestMainNonJSONBody(t *testing.T) {
	var console syncBuffer
	fetcher := fetch.FetcherFunc(func(context.Context, string) (*fetch.Response, error) {
		return &fetch.Response{Status: 502, Body: []byte("<html>bad gateway</html>")}, nil
	})

	loop := runtime.New(runtime.WithConsole(&console), runtime.WithFetcher(fetcher))
	err := loop.Run(context.Background(), script.Main(imports(t), script.Options{Delay: 10 * time.Millisecond}))
	if want, have := fetch.ErrInvalidJSON, pkgerrors.Cause(err); want != have {
		t.Errorf("want %v, have %v", want, have)
	}
	if want, have := "Hello from JS Module!\nLet us add!\n10 + 20 = 30\n", console.String(); want != have {
		t.Errorf("want %q, have %q", want, have)
	}
}

func TestMainMissingHelper(t *testing.T) {
	var (
		console syncBuffer
		fetched bool
	)
	fetcher := fetch.FetcherFunc(func(context.Context, string) (*fetch.Response, error) {
		fetched = true
		return nil, errors.New("unexpected fetch")
	})

	loop := runtime.New(runtime.WithConsole(&console), runtime.WithFetcher(fetcher))
	err := loop.Run(context.Background(), script.Main(modules.NewRegistry(), script.Options{}))
	if want, have := modules.ErrNotFound, pkgerrors.Cause(err); want != have {
		t.Errorf("want %v, have %v", want, have)
	}
	if have := console.String(); have != "" {
		t.Errorf("want no output, have %q", have)
	}
	if fetched {
		t.Error("fetch issued without the helper")
	}
}

func TestMainCustomOperands(t *testing.T) {
	var (
		console syncBuffer
		a, b    = -5.0, 5.0
	)
	fetcher := fetch.FetcherFunc(func(context.Context, string) (*fetch.Response, error) {
		return &fetch.Response{Status: 200, OK: true, Body: []byte(`[]`)}, nil
	})

	loop := runtime.New(runtime.WithConsole(&console), runtime.WithFetcher(fetcher))
	opts := script.Options{URL: "http://localhost/x", Delay: time.Millisecond, A: &a, B: &b}
	if err := loop.Run(context.Background(), script.Main(imports(t), opts)); err != nil {
		t.Fatal(err)
	}
	if want, have := "Hello from JS Module!\n[]\nLet us add!\n-5 + 5 = 0\n", console.String(); want != have {
		t.Errorf("want %q, have %q", want, have)
	}
}

func TestSumLine(t *testing.T) {
	if want, have := "10 + 20 = 30", script.SumLine(10, 20, 30); want != have {
		t.Errorf("want %q, have %q", want, have)
	}
}
