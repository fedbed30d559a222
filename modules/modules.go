// Package modules resolves import specifiers such as "./math.js" to
// registered Go exports. A program imports its helpers through a Registry,
// so a missing helper is an error of the program rather than of the build.
package modules

import (
	"path"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned by Import when no module is registered at the
	// resolved path.
	ErrNotFound = errors.New("module not found")

	// ErrNoExport is returned when a module does not export a name.
	ErrNoExport = errors.New("no such export")

	// ErrBadExport is returned when an export has an unexpected type.
	ErrBadExport = errors.New("export has unexpected type")
)

// Extension is appended to specifiers that lack it.
const Extension = ".js"

// Resolve returns the module path specifier refers to, from the module at
// base. Relative specifiers resolve against the directory of base; others
// are only cleaned. A missing extension is added.
func Resolve(base, specifier string) (string, error) {
	if specifier == "" {
		return "", errors.New("empty module specifier")
	}
	var p string
	if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") {
		p = path.Join(path.Dir(base), specifier)
	} else {
		p = path.Clean(specifier)
	}
	if path.Ext(p) != Extension {
		p += Extension
	}
	return p, nil
}

// Exports are the named values a module provides.
type Exports map[string]interface{}

// Func2 returns the export name as a two-argument numeric function.
func (e Exports) Func2(name string) (func(a, b float64) float64, error) {
	v, ok := e[name]
	if !ok {
		return nil, errors.Wrapf(ErrNoExport, "%q", name)
	}
	f, ok := v.(func(a, b float64) float64)
	if !ok {
		return nil, errors.Wrapf(ErrBadExport, "%q is %T", name, v)
	}
	return f, nil
}

// Registry maps module paths to their exports. It is safe for concurrent
// use.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Exports
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: map[string]Exports{}}
}

// Register makes exports importable at path. The path is resolved as a
// non-relative specifier first, so "math" and "/math.js" both register
// "/math.js". Registering a path twice replaces its exports.
func (r *Registry) Register(p string, exports Exports) error {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	resolved, err := Resolve("/", p)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules[resolved] = exports
	return nil
}

// Import resolves specifier from the module at base and returns its exports.
func (r *Registry) Import(base, specifier string) (Exports, error) {
	resolved, err := Resolve(base, specifier)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(resolved, "/") {
		resolved = "/" + resolved
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	exports, ok := r.modules[resolved]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%q from %q", specifier, base)
	}
	return exports, nil
}
