package services

import (
	"context"
	"time"
)

// Charger authorizes a payment with an external gateway. The checkout
// pipeline calls it exactly once per attempt, before any record is written.
// A real gateway integration should make Authorize idempotent per attempt.
type Charger interface {
	Authorize(ctx context.Context, method string, amount float64) error
}

// SimulatedCharger stands in for a gateway round-trip with a fixed delay
// and always authorizes.
type SimulatedCharger struct {
	Delay time.Duration
}

// Authorize waits out the configured delay, honoring context cancellation.
func (c *SimulatedCharger) Authorize(ctx context.Context, method string, amount float64) error {
	if c.Delay <= 0 {
		return nil
	}

	timer := time.NewTimer(c.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
