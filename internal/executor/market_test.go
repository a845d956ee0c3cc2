package executor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionfleet/fleetctl/internal/domain/shared"
	"github.com/ionfleet/fleetctl/internal/domain/ship"
)

// TestExecutor_ProbeVisitMarket_FetchesAndRecordsThenGoesIdle: a satellite
// already at its target fetches the market, caches a snapshot, and
// releases back to IDLE without selling.
func TestExecutor_ProbeVisitMarket_FetchesAndRecordsThenGoesIdle(t *testing.T) {
	// Arrange
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/systems/X1/waypoints/X1-MARKET/market", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"symbol": "X1-MARKET",
				"tradeGoods": []map[string]any{
					{"symbol": "IRON_ORE", "purchasePrice": 20, "sellPrice": 15, "tradeVolume": 100, "supply": "ABUNDANT", "activity": "STRONG"},
				},
			},
		})
	})

	nav := ship.Nav{SystemSymbol: "X1", WaypointSymbol: "X1-MARKET", Status: ship.NavStatusInOrbit}
	sh := mustShip(t, "PROBE-1", ship.RoleSatellite, nav, mustFuel(t, 100, 100), 0, mustCargo(t, 0, 0, nil))
	f.wh.UpsertShip(sh)
	rt, ok := f.wh.Runtime("PROBE-1")
	require.True(t, ok)
	rt.Context.TargetMarket = "X1-MARKET"
	rt.State = ship.StateNavigating

	// Act
	result := f.ex.Execute(context.Background(), ship.Decision{Ship: "PROBE-1", Action: ship.ActionProbeVisitMarket})

	// Assert
	require.Equal(t, "OK", result.String())
	snap, ok := f.wh.MarketSnapshot("X1-MARKET")
	require.True(t, ok)
	good, ok := snap.Good("IRON_ORE")
	require.True(t, ok)
	assert.Equal(t, 15, good.SellPrice)

	rt, ok = f.wh.Runtime("PROBE-1")
	require.True(t, ok)
	assert.Equal(t, ship.StateIdle, rt.State)
	assert.Empty(t, rt.Context.TargetMarket)
}

// TestExecutor_ProbeVisitMarket_ExcavatorSellsCargoThenReturnsToOrbit
// covers the dock-sell-refuel-orbit flow for a selling excavator already
// parked at its claimed market.
func TestExecutor_ProbeVisitMarket_ExcavatorSellsCargoThenReturnsToOrbit(t *testing.T) {
	// Arrange
	var docked, sold, orbited bool
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/my/ships/MINER-1/dock":
			docked = true
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"nav": map[string]any{"status": "DOCKED"}}})
		case r.Method == http.MethodGet && r.URL.Path == "/systems/X1/waypoints/X1-MARKET/market":
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"symbol": "X1-MARKET",
					"tradeGoods": []map[string]any{
						{"symbol": "IRON_ORE", "purchasePrice": 20, "sellPrice": 15, "tradeVolume": 100, "supply": "ABUNDANT", "activity": "STRONG"},
					},
				},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/my/ships/MINER-1/sell":
			sold = true
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"agent": map[string]any{"symbol": "AGENT-1", "credits": 100150},
					"cargo": map[string]any{"capacity": 40, "units": 0, "inventory": []map[string]any{}},
					"transaction": map[string]any{"units": 10, "pricePerUnit": 15, "totalPrice": 150},
				},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/my/ships/MINER-1/orbit":
			orbited = true
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"nav": map[string]any{"status": "IN_ORBIT"}}})
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	})

	nav := ship.Nav{SystemSymbol: "X1", WaypointSymbol: "X1-MARKET", Status: ship.NavStatusInOrbit}
	sh := mustShip(t, "MINER-1", ship.RoleExcavator, nav, mustFuel(t, 100, 100), 40, mustCargo(t, 40, 10, []shared.CargoItem{{Symbol: "IRON_ORE", Units: 10}}))
	f.wh.UpsertShip(sh)
	rt, ok := f.wh.Runtime("MINER-1")
	require.True(t, ok)
	rt.Context.TargetMarket = "X1-MARKET"
	rt.Context.Selling = true
	rt.State = ship.StateNavigating

	// Act
	result := f.ex.Execute(context.Background(), ship.Decision{Ship: "MINER-1", Action: ship.ActionProbeVisitMarket})

	// Assert
	require.Equal(t, "OK", result.String())
	assert.True(t, docked)
	assert.True(t, sold)
	assert.True(t, orbited)

	updated, ok := f.wh.Ship("MINER-1")
	require.True(t, ok)
	assert.Equal(t, 0, updated.Cargo.Units)
	assert.Equal(t, ship.NavStatusInOrbit, updated.Nav.Status)
	assert.Equal(t, 100150, f.wh.Agent().Credits)

	rt, ok = f.wh.Runtime("MINER-1")
	require.True(t, ok)
	assert.False(t, rt.Context.Selling)
	assert.Equal(t, ship.StateIdle, rt.State)
}
