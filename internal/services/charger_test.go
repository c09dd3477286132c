package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedChargerZeroDelay(t *testing.T) {
	charger := &SimulatedCharger{}

	require.NoError(t, charger.Authorize(context.Background(), "creditcard", 10))
}

func TestSimulatedChargerHonorsCancellation(t *testing.T) {
	charger := &SimulatedCharger{Delay: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := charger.Authorize(ctx, "creditcard", 10)
	assert.ErrorIs(t, err, context.Canceled)
}
