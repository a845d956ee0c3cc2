package warehouse_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionfleet/fleetctl/internal/domain/market"
	"github.com/ionfleet/fleetctl/internal/domain/shared"
	"github.com/ionfleet/fleetctl/internal/domain/ship"
	"github.com/ionfleet/fleetctl/internal/warehouse"
)

type fakeRecorder struct {
	inserted []market.Observation
}

func (f *fakeRecorder) InsertMarketObservation(o market.Observation) error {
	f.inserted = append(f.inserted, o)
	return nil
}

func TestWarehouse_UpsertMarketSnapshot_SingleWriter(t *testing.T) {
	// Arrange
	w := warehouse.New(&fakeRecorder{}, nil)
	goods := []market.TradeGood{{Symbol: "IRON_ORE", PurchasePrice: 10, SellPrice: 8}}
	snapshot := market.NewSnapshot("X1", "X1-A1", goods, time.Now())

	// Act
	w.UpsertMarketSnapshot(snapshot)
	got, ok := w.MarketSnapshot("X1-A1")

	// Assert
	require.True(t, ok)
	assert.Equal(t, snapshot.TradeGoods, got.TradeGoods)
}

func TestWarehouse_RecordGoodObservation_AppendMonotonicity(t *testing.T) {
	// Arrange
	rec := &fakeRecorder{}
	w := warehouse.New(rec, nil)

	// Act
	require.NoError(t, w.RecordGoodObservation(market.Observation{Good: "IRON_ORE", Ts: time.Now()}))
	lenAfterFirst := len(w.GoodObservations("IRON_ORE"))
	require.NoError(t, w.RecordGoodObservation(market.Observation{Good: "IRON_ORE", Ts: time.Now()}))
	lenAfterSecond := len(w.GoodObservations("IRON_ORE"))

	// Assert
	assert.GreaterOrEqual(t, lenAfterSecond, lenAfterFirst)
	assert.Len(t, rec.inserted, 2)
}

func TestWarehouse_TargetMarketClaimedUniqueness(t *testing.T) {
	// Arrange
	w := warehouse.New(&fakeRecorder{}, nil)
	fuel := mustFuel(t)
	cargo := mustCargo(t)
	nav := ship.Nav{SystemSymbol: "X1", WaypointSymbol: "X1-A1", Status: ship.NavStatusDocked}
	sh1, err := ship.NewShip("SHIP-1", ship.RoleSatellite, nav, 10, fuel, 0, cargo)
	require.NoError(t, err)
	sh2, err := ship.NewShip("SHIP-2", ship.RoleSatellite, nav, 10, fuel, 0, cargo)
	require.NoError(t, err)
	w.UpsertShip(sh1)
	w.UpsertShip(sh2)

	rt1, _ := w.Runtime("SHIP-1")
	rt1.Context.TargetMarket = "X1-B1"

	// Act
	claimedForShip2 := w.TargetMarketClaimed("X1-B1", "SHIP-2")
	claimedForShip1 := w.TargetMarketClaimed("X1-B1", "SHIP-1")

	// Assert
	assert.True(t, claimedForShip2)
	assert.False(t, claimedForShip1)
}

func mustFuel(t *testing.T) shared.Fuel {
	t.Helper()
	f, err := shared.NewFuel(100, 100)
	require.NoError(t, err)
	return *f
}

func mustCargo(t *testing.T) shared.Cargo {
	t.Helper()
	c, err := shared.NewCargo(0, 0, nil)
	require.NoError(t, err)
	return *c
}
