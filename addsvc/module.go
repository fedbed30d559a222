package addsvc

import (
	"context"

	"github.com/kitrun/kitrun/modules"
)

// ModulePath is where Register makes the helper importable.
const ModulePath = "/math.js"

// Exports returns the module exports of svc: "sum", a two-argument numeric
// function.
func Exports(svc Service) modules.Exports {
	return modules.Exports{
		"sum": func(a, b float64) float64 { return svc.Sum(context.Background(), a, b) },
	}
}

// Register registers the exports of svc at ModulePath.
func Register(r *modules.Registry, svc Service) error {
	return r.Register(ModulePath, Exports(svc))
}
