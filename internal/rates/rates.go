// Package rates supplies USD to PKR conversion rates for new entries.
package rates

import (
	"context"
	"errors"
)

// ErrNoRate is returned when no rate is configured.
var ErrNoRate = errors.New("no USD to PKR rate available")

// Provider returns the current USD to PKR rate.
type Provider interface {
	USDToPKR(ctx context.Context) (float64, error)
}

// Static is a Provider with a fixed, configured rate.
type Static struct {
	Rate float64
}

// NewStatic creates a fixed-rate provider.
func NewStatic(rate float64) *Static {
	return &Static{Rate: rate}
}

// USDToPKR implements Provider.
func (s *Static) USDToPKR(ctx context.Context) (float64, error) {
	if s.Rate <= 0 {
		return 0, ErrNoRate
	}
	return s.Rate, nil
}

// Ensure Static implements Provider.
var _ Provider = (*Static)(nil)
