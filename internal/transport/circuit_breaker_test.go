package transport_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionfleet/fleetctl/internal/domain/shared"
	"github.com/ionfleet/fleetctl/internal/transport"
)

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Now())
	cb := transport.NewCircuitBreaker(3, 10*time.Second, clock)
	failing := func() error { return errors.New("boom") }

	// Act
	for i := 0; i < 3; i++ {
		_ = cb.Call(failing)
	}

	// Assert
	assert.Equal(t, transport.CircuitOpen, cb.State())

	// Act - call while open
	err := cb.Call(func() error { return nil })

	// Assert
	require.ErrorIs(t, err, transport.ErrCircuitOpen)
}

func TestCircuitBreaker_HalfOpenAfterTimeout(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Now())
	cb := transport.NewCircuitBreaker(1, 5*time.Second, clock)
	_ = cb.Call(func() error { return errors.New("boom") })
	require.Equal(t, transport.CircuitOpen, cb.State())

	// Act - advance clock past timeout and succeed
	clock.Advance(6 * time.Second)
	err := cb.Call(func() error { return nil })

	// Assert
	require.NoError(t, err)
	assert.Equal(t, transport.CircuitClosed, cb.State())
	assert.Equal(t, 0, cb.FailureCount())
}

func TestCircuitBreaker_ReopenOnHalfOpenFailure(t *testing.T) {
	clock := shared.NewMockClock(time.Now())
	cb := transport.NewCircuitBreaker(1, 5*time.Second, clock)
	_ = cb.Call(func() error { return errors.New("boom") })
	clock.Advance(6 * time.Second)

	err := cb.Call(func() error { return errors.New("still broken") })

	require.Error(t, err)
	assert.Equal(t, transport.CircuitOpen, cb.State())
}
