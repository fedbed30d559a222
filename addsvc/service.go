// Package addsvc is the arithmetic helper programs import as "./math.js".
package addsvc

import (
	"context"
)

// Service describes the arithmetic the helper module provides.
type Service interface {
	Sum(ctx context.Context, a, b float64) float64
}

// Sum returns a + b.
func Sum(a, b float64) float64 { return a + b }

// NewBasicService returns a naïve, stateless implementation of Service.
func NewBasicService() Service {
	return basicService{}
}

type basicService struct{}

func (basicService) Sum(_ context.Context, a, b float64) float64 { return Sum(a, b) }
