package modules

import (
	"testing"

	"github.com/pkg/errors"
)

func TestResolve(t *testing.T) {
	for _, testcase := range []struct {
		base, specifier, want string
	}{
		{"/main.js", "./math.js", "/math.js"},
		{"/main.js", "./math", "/math.js"},
		{"/lib/main.js", "../math.js", "/math.js"},
		{"/lib/main.js", "./util/sum.js", "/lib/util/sum.js"},
		{"/main.js", "/abs/math.js", "/abs/math.js"},
		{"/main.js", "math", "math.js"},
	} {
		have, err := Resolve(testcase.base, testcase.specifier)
		if err != nil {
			t.Errorf("%s from %s: %v", testcase.specifier, testcase.base, err)
			continue
		}
		if want := testcase.want; want != have {
			t.Errorf("%s from %s: want %q, have %q", testcase.specifier, testcase.base, want, have)
		}
	}
}

func TestResolveEmpty(t *testing.T) {
	if _, err := Resolve("/main.js", ""); err == nil {
		t.Error("want error for empty specifier")
	}
}

func TestRegistryImport(t *testing.T) {
	r := NewRegistry()
	sum := func(a, b float64) float64 { return a + b }
	if err := r.Register("math", Exports{"sum": sum, "pi": 3.14}); err != nil {
		t.Fatal(err)
	}

	for _, specifier := range []string{"./math.js", "./math", "/math.js"} {
		exports, err := r.Import("/main.js", specifier)
		if err != nil {
			t.Fatalf("%s: %v", specifier, err)
		}
		f, err := exports.Func2("sum")
		if err != nil {
			t.Fatal(err)
		}
		if want, have := 30.0, f(10, 20); want != have {
			t.Errorf("want %v, have %v", want, have)
		}
	}

	exports, _ := r.Import("/main.js", "./math.js")
	if _, err := exports.Func2("product"); errors.Cause(err) != ErrNoExport {
		t.Errorf("want %v, have %v", ErrNoExport, err)
	}
	if _, err := exports.Func2("pi"); errors.Cause(err) != ErrBadExport {
		t.Errorf("want %v, have %v", ErrBadExport, err)
	}
}

func TestRegistryNotFound(t *testing.T) {
	_, err := NewRegistry().Import("/main.js", "./math.js")
	if want, have := ErrNotFound, errors.Cause(err); want != have {
		t.Errorf("want %v, have %v", want, have)
	}
}
