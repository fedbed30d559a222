// Package script is the program kitrun hosts: greet, fetch a JSON document
// and print it indented, and after a delay print a sum computed by the
// imported math helper.
package script

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/kitrun/kitrun/modules"
	"github.com/kitrun/kitrun/runtime"
)

// Defaults of the program.
const (
	DefaultURL   = "https://ipinfo.io/json"
	DefaultDelay = 3 * time.Second
	DefaultA     = 10
	DefaultB     = 20

	Greeting = "Hello from JS Module!"
	AddIntro = "Let us add!"
)

const (
	mainModule = "/main.js"
	mathModule = "./math.js"
)

// Options parameterize the program. Zero fields take their defaults.
type Options struct {
	URL   string
	Delay time.Duration
	A, B  *float64
}

func (o Options) withDefaults() Options {
	if o.URL == "" {
		o.URL = DefaultURL
	}
	if o.Delay == 0 {
		o.Delay = DefaultDelay
	}
	if o.A == nil {
		a := float64(DefaultA)
		o.A = &a
	}
	if o.B == nil {
		b := float64(DefaultB)
		o.B = &b
	}
	return o
}

// Main returns the program as a runtime task importing its helpers from
// imports.
//
// The timeout is armed before the fetch is awaited, so the sum is printed
// whatever the fetch outcome. A failed fetch, a body that is not JSON, or a
// missing helper fails the task; nothing is retried.
func Main(imports *modules.Registry, opts Options) runtime.Task {
	opts = opts.withDefaults()
	return func(ctx context.Context, rt *runtime.Runtime) error {
		math, err := imports.Import(mainModule, mathModule)
		if err != nil {
			return err
		}
		sum, err := math.Func2("sum")
		if err != nil {
			return errors.Wrap(err, mathModule)
		}

		rt.Print(Greeting)

		pending := rt.Fetch(opts.URL)

		a, b := *opts.A, *opts.B
		rt.SetTimeout(func(rt *runtime.Runtime) error {
			rt.Print(AddIntro)
			rt.Print(SumLine(a, b, sum(a, b)))
			return nil
		}, opts.Delay)

		resp, err := runtime.Await(rt, pending)
		if err != nil {
			return errors.Wrapf(err, "fetch %s", opts.URL)
		}
		doc, err := resp.JSON()
		if err != nil {
			return errors.Wrapf(err, "decode %s", opts.URL)
		}
		rt.Print(doc.Indent())
		return nil
	}
}

// SumLine renders the result line, "10 + 20 = 30" for the defaults.
func SumLine(a, b, sum float64) string {
	return fmt.Sprintf("%v + %v = %v", a, b, sum)
}
