package transport_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionfleet/fleetctl/internal/domain/shared"
	"github.com/ionfleet/fleetctl/internal/transport"
)

func TestClient_GetAgent_Success(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"symbol": "AGENT-1", "credits": 100000},
		})
	}))
	defer srv.Close()

	client := transport.NewClient("test-token", transport.WithBaseURL(srv.URL), transport.WithClock(shared.NewMockClock(time.Now())))

	// Act
	agent, err := client.GetAgent(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "AGENT-1", agent.Symbol)
	assert.Equal(t, 100000, agent.Credits)
}

func TestClient_RetriesOn503ThenSucceeds(t *testing.T) {
	// Arrange
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"symbol": "AGENT-1"}})
	}))
	defer srv.Close()

	client := transport.NewClient("tok", transport.WithBaseURL(srv.URL), transport.WithClock(shared.NewMockClock(time.Now())))

	// Act
	agent, err := client.GetAgent(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "AGENT-1", agent.Symbol)
	assert.EqualValues(t, 3, atomic.LoadInt32(&attempts))
}

func TestClient_FatalErrorCodeInvokesHandlerAndDoesNotExitInTest(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": transport.FatalCode, "message": "token reset mismatch"},
		})
	}))
	defer srv.Close()

	var handled *transport.FatalError
	client := transport.NewClient("tok", transport.WithBaseURL(srv.URL),
		transport.WithClock(shared.NewMockClock(time.Now())),
		transport.WithFatalHandler(func(err *transport.FatalError) { handled = err }))

	// Act
	_, err := client.GetAgent(context.Background())

	// Assert
	require.Error(t, err)
	require.NotNil(t, handled)
	assert.Contains(t, handled.Error(), "token reset mismatch")
}

func TestClient_LogicalErrorCodeReturnedToCaller(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": transport.InsufficientFuelCode, "message": "insufficient fuel"},
		})
	}))
	defer srv.Close()

	client := transport.NewClient("tok", transport.WithBaseURL(srv.URL), transport.WithClock(shared.NewMockClock(time.Now())))

	// Act
	_, err := client.NavigateShip(context.Background(), "SHIP-1", "X1-A1")

	// Assert
	require.Error(t, err)
	var apiErr *transport.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, transport.InsufficientFuelCode, apiErr.Code)
}

func TestClient_RateLimiterCapsDispatchRate(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"symbol": "A"}})
	}))
	defer srv.Close()

	client := transport.NewClient("tok", transport.WithBaseURL(srv.URL))

	// Act
	start := time.Now()
	for i := 0; i < 10; i++ {
		_, err := client.GetAgent(context.Background())
		require.NoError(t, err)
	}
	elapsed := time.Since(start)

	// Assert - 10 requests at 2/s should take at least ~4s (first 2 free on burst)
	assert.GreaterOrEqual(t, elapsed, 3500*time.Millisecond)
}
