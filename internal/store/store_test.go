package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionfleet/fleetctl/internal/domain/ledger"
	"github.com/ionfleet/fleetctl/internal/domain/market"
	"github.com/ionfleet/fleetctl/internal/domain/shared"
	"github.com/ionfleet/fleetctl/internal/store"
)

func newTestStore(t *testing.T, clock shared.Clock) *store.Store {
	t.Helper()
	db, err := store.Open(":memory:")
	require.NoError(t, err)
	return store.New(db, clock, 2)
}

func TestStore_InsertAndFetchLatestPricesByWaypoint(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Now())
	s := newTestStore(t, clock)

	older := market.Observation{Ts: clock.Now(), SystemSymbol: "X1", WaypointSymbol: "X1-A1", Good: "IRON_ORE", BuyPrice: 10, SellPrice: 8}
	clock.Advance(time.Minute)
	newer := market.Observation{Ts: clock.Now(), SystemSymbol: "X1", WaypointSymbol: "X1-A1", Good: "IRON_ORE", BuyPrice: 12, SellPrice: 9}

	// Act
	require.NoError(t, s.InsertMarketObservation(older))
	require.NoError(t, s.InsertMarketObservation(newer))
	latest, err := s.FetchLatestPricesByWaypoint()

	// Assert
	require.NoError(t, err)
	wp, ok := latest["X1-A1"]
	require.True(t, ok)
	require.Len(t, wp.Goods, 1)
	assert.Equal(t, 12, wp.Goods[0].BuyPrice)
}

func TestStore_InsertTransaction(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Now())
	s := newTestStore(t, clock)
	tx := ledger.Transaction{
		Ts: clock.Now(), Ship: "SHIP-1", Waypoint: "X1-A1",
		Action: ledger.ActionSell, Symbol: "IRON_ORE", Units: 10,
		UnitPrice: 8, TotalPrice: 80, CreditsAfter: 1080,
	}

	// Act
	err := s.InsertTransaction(tx)

	// Assert
	require.NoError(t, err)
}

func TestStore_RetentionDeletesOldObservations(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Now())
	s := newTestStore(t, clock)
	old := market.Observation{Ts: clock.Now(), SystemSymbol: "X1", WaypointSymbol: "X1-A1", Good: "IRON_ORE", BuyPrice: 10, SellPrice: 8}
	require.NoError(t, s.InsertMarketObservation(old))

	// Act - advance well past retention and past the hourly throttle, then write again
	clock.Advance(3*24*time.Hour + time.Hour)
	fresh := market.Observation{Ts: clock.Now(), SystemSymbol: "X1", WaypointSymbol: "X1-A1", Good: "IRON_ORE", BuyPrice: 11, SellPrice: 9}
	require.NoError(t, s.InsertMarketObservation(fresh))

	latest, err := s.FetchLatestPricesByWaypoint()

	// Assert - only the fresh observation survives
	require.NoError(t, err)
	require.Len(t, latest["X1-A1"].Goods, 1)
	assert.Equal(t, 11, latest["X1-A1"].Goods[0].BuyPrice)
}
