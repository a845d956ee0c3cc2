package dispatcher_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionfleet/fleetctl/internal/dispatcher"
	"github.com/ionfleet/fleetctl/internal/domain/market"
	"github.com/ionfleet/fleetctl/internal/domain/shared"
	"github.com/ionfleet/fleetctl/internal/domain/ship"
	"github.com/ionfleet/fleetctl/internal/domain/system"
	"github.com/ionfleet/fleetctl/internal/warehouse"
)

type fakeRecorder struct{}

func (fakeRecorder) InsertMarketObservation(o market.Observation) error { return nil }

func mustFuel(t *testing.T, current, capacity int) shared.Fuel {
	t.Helper()
	f, err := shared.NewFuel(current, capacity)
	require.NoError(t, err)
	return *f
}

func mustCargo(t *testing.T, capacity, units int, inventory []shared.CargoItem) shared.Cargo {
	t.Helper()
	c, err := shared.NewCargo(capacity, units, inventory)
	require.NoError(t, err)
	return *c
}

func newSystemWithWaypoints(t *testing.T, symbol string, refs ...shared.WaypointRef) *system.System {
	t.Helper()
	sys, err := system.NewSystem(symbol, "X1", "RED_STAR", 0, 0)
	require.NoError(t, err)
	for _, r := range refs {
		sys.UpsertWaypoint(r)
	}
	return sys
}

// TestDispatcher_IdleSatelliteChoosesNearestUnvisitedMarket: a full-tank
// probe at the origin picks whichever cached marketplace is nearer,
// ignoring one that's farther even if unvisited too.
func TestDispatcher_IdleSatelliteChoosesNearestUnvisitedMarket(t *testing.T) {
	wh := warehouse.New(fakeRecorder{}, nil)
	origin := shared.WaypointRef{Symbol: "X1-HOME", Type: "PLANET", X: 0, Y: 0}
	near := shared.WaypointRef{Symbol: "X1-NEAR", Type: "PLANET", X: 1, Y: 0}
	far := shared.WaypointRef{Symbol: "X1-FAR", Type: "PLANET", X: 10, Y: 0}
	sys := newSystemWithWaypoints(t, "X1", origin, near, far)
	wh.UpsertSystem(sys)
	wh.UpsertWaypointDetail("X1", shared.WaypointDetail{WaypointRef: origin})
	wh.UpsertWaypointDetail("X1", shared.WaypointDetail{WaypointRef: near, Traits: []shared.Trait{shared.TraitMarketplace}})
	wh.UpsertWaypointDetail("X1", shared.WaypointDetail{WaypointRef: far, Traits: []shared.Trait{shared.TraitMarketplace}})

	nav := ship.Nav{SystemSymbol: "X1", WaypointSymbol: "X1-HOME", Status: ship.NavStatusDocked}
	fuel := mustFuel(t, 100, 100)
	cargo := mustCargo(t, 0, 0, nil)
	sh, err := ship.NewShip("PROBE-1", ship.RoleSatellite, nav, 10, fuel, 0, cargo)
	require.NoError(t, err)
	wh.UpsertShip(sh)

	d := dispatcher.New(wh, shared.NewRealClock())
	decision := d.Decide("PROBE-1")

	assert.Equal(t, ship.ActionProbeVisitMarket, decision.Action)
	assert.Equal(t, "X1-NEAR", decision.Destination)
}

// TestDispatcher_IdleRefuelGatedByCachedSnapshot confirms the ship is
// dispatched to REFUEL only when the warehouse already has a market
// snapshot at the current waypoint that sells FUEL.
func TestDispatcher_IdleRefuelGatedByCachedSnapshot(t *testing.T) {
	wh := warehouse.New(fakeRecorder{}, nil)
	home := shared.WaypointRef{Symbol: "X1-HOME", Type: "PLANET", X: 0, Y: 0}
	sys := newSystemWithWaypoints(t, "X1", home)
	wh.UpsertSystem(sys)

	nav := ship.Nav{SystemSymbol: "X1", WaypointSymbol: "X1-HOME", Status: ship.NavStatusDocked}
	fuel := mustFuel(t, 10, 100)
	cargo := mustCargo(t, 0, 0, nil)
	sh, err := ship.NewShip("PROBE-1", ship.RoleSatellite, nav, 10, fuel, 0, cargo)
	require.NoError(t, err)
	wh.UpsertShip(sh)

	d := dispatcher.New(wh, shared.NewRealClock())

	// No snapshot cached yet: dispatcher must not demand a refuel.
	decision := d.Decide("PROBE-1")
	assert.NotEqual(t, ship.ActionRefuel, decision.Action)

	// Cache a snapshot that sells fuel: now REFUEL should fire.
	snap := market.NewSnapshot("X1", "X1-HOME", []market.TradeGood{{Symbol: "FUEL", PurchasePrice: 5, SellPrice: 3}}, time.Now())
	wh.UpsertMarketSnapshot(snap)
	decision = d.Decide("PROBE-1")
	assert.Equal(t, ship.ActionRefuel, decision.Action)
}

// TestDispatcher_IdleExcavatorCargoFullRoutesToNearestKnownBuyer: a
// full-cargo excavator picks the nearest cached marketplace whose snapshot
// clears the sell-price threshold.
func TestDispatcher_IdleExcavatorCargoFullRoutesToNearestKnownBuyer(t *testing.T) {
	wh := warehouse.New(fakeRecorder{}, nil)
	origin := shared.WaypointRef{Symbol: "X1-HOME", Type: "PLANET", X: 0, Y: 0}
	near := shared.WaypointRef{Symbol: "X1-NEAR", Type: "PLANET", X: 1, Y: 0}
	far := shared.WaypointRef{Symbol: "X1-FAR", Type: "PLANET", X: 10, Y: 0}
	sys := newSystemWithWaypoints(t, "X1", origin, near, far)
	wh.UpsertSystem(sys)

	wh.UpsertMarketSnapshot(market.NewSnapshot("X1", "X1-NEAR", []market.TradeGood{{Symbol: "IRON_ORE", SellPrice: 15}}, time.Now()))
	wh.UpsertMarketSnapshot(market.NewSnapshot("X1", "X1-FAR", []market.TradeGood{{Symbol: "IRON_ORE", SellPrice: 50}}, time.Now()))

	nav := ship.Nav{SystemSymbol: "X1", WaypointSymbol: "X1-HOME", Status: ship.NavStatusDocked}
	fuel := mustFuel(t, 100, 100)
	cargo := mustCargo(t, 10, 10, []shared.CargoItem{{Symbol: "IRON_ORE", Units: 10}})
	sh, err := ship.NewShip("MINER-1", ship.RoleExcavator, nav, 10, fuel, 10, cargo)
	require.NoError(t, err)
	wh.UpsertShip(sh)

	d := dispatcher.New(wh, shared.NewRealClock())
	decision := d.Decide("MINER-1")

	assert.Equal(t, ship.ActionProbeVisitMarket, decision.Action)
	assert.Equal(t, "X1-NEAR", decision.Destination)

	rt, ok := wh.Runtime("MINER-1")
	require.True(t, ok)
	assert.True(t, rt.Context.Selling)
	assert.Equal(t, "X1-NEAR", rt.Context.TargetMarket)
}

// TestDispatcher_IdleExcavatorCargoNotFullNavigatesToMineAndJettisonsUnworthy
// covers the jettison-then-mine branch of the excavator decision tree.
func TestDispatcher_IdleExcavatorCargoNotFullNavigatesToMineAndJettisonsUnworthy(t *testing.T) {
	wh := warehouse.New(fakeRecorder{}, nil)
	origin := shared.WaypointRef{Symbol: "X1-HOME", Type: "PLANET", X: 0, Y: 0}
	mine := shared.WaypointRef{Symbol: "X1-BELT", Type: "ASTEROID", X: 3, Y: 4}
	sys := newSystemWithWaypoints(t, "X1", origin, mine)
	wh.UpsertSystem(sys)
	wh.UpsertWaypointDetail("X1", shared.WaypointDetail{WaypointRef: mine, Traits: []shared.Trait{shared.TraitIceCrystals}})

	nav := ship.Nav{SystemSymbol: "X1", WaypointSymbol: "X1-HOME", Status: ship.NavStatusDocked}
	fuel := mustFuel(t, 100, 100)
	cargo := mustCargo(t, 10, 3, []shared.CargoItem{{Symbol: "JUNK", Units: 3}})
	sh, err := ship.NewShip("MINER-2", ship.RoleExcavator, nav, 10, fuel, 10, cargo)
	require.NoError(t, err)
	wh.UpsertShip(sh)

	d := dispatcher.New(wh, shared.NewRealClock())
	decision := d.Decide("MINER-2")

	assert.Equal(t, ship.ActionNavigateToMine, decision.Action)
	assert.Equal(t, "X1-BELT", decision.Destination)
	assert.Contains(t, decision.JettisonSymbols, "JUNK")
}

// TestDispatcher_NavigatingArrivalDetectionIgnoresStaleNavStatus exercises
// effectivelyInTransit indirectly: once now passes the cached route
// arrival, a NAVIGATING ship whose nav.status still reads IN_TRANSIT (never
// refreshed by an eager GET) must still be treated as arrived.
func TestDispatcher_NavigatingArrivalDetectionIgnoresStaleNavStatus(t *testing.T) {
	wh := warehouse.New(fakeRecorder{}, nil)
	mine := shared.WaypointRef{Symbol: "X1-BELT", Type: "ASTEROID", X: 0, Y: 0}
	sys := newSystemWithWaypoints(t, "X1", mine)
	wh.UpsertSystem(sys)
	wh.UpsertWaypointDetail("X1", shared.WaypointDetail{WaypointRef: mine, Traits: []shared.Trait{shared.TraitIceCrystals}})

	clock := &shared.MockClock{CurrentTime: time.Date(2024, 1, 1, 0, 1, 0, 0, time.UTC)}
	nav := ship.Nav{
		SystemSymbol:   "X1",
		WaypointSymbol: "X1-BELT",
		Status:         ship.NavStatusInTransit,
		Route: &ship.Route{
			Origin:      "X1-HOME",
			Destination: "X1-BELT",
			Arrival:     time.Date(2024, 1, 1, 0, 0, 30, 0, time.UTC),
		},
	}
	fuel := mustFuel(t, 100, 100)
	cargo := mustCargo(t, 10, 0, nil)
	sh, err := ship.NewShip("MINER-3", ship.RoleExcavator, nav, 10, fuel, 10, cargo)
	require.NoError(t, err)
	wh.UpsertShip(sh)
	rt, _ := wh.Runtime("MINER-3")
	rt.State = ship.StateNavigating
	rt.Context.Destination = ship.DestinationMine
	rt.Context.MineTarget = "X1-BELT"

	d := dispatcher.New(wh, clock)
	decision := d.Decide("MINER-3")

	assert.Equal(t, ship.ActionExtractMinerals, decision.Action)
}

// TestDispatcher_MiningExtractsUntilCargoFull covers the MINING branch.
func TestDispatcher_MiningExtractsUntilCargoFull(t *testing.T) {
	wh := warehouse.New(fakeRecorder{}, nil)
	nav := ship.Nav{SystemSymbol: "X1", WaypointSymbol: "X1-BELT", Status: ship.NavStatusInOrbit}

	notFull, err := shared.NewCargo(10, 5, []shared.CargoItem{{Symbol: "ICE_WATER", Units: 5}})
	require.NoError(t, err)
	fuel := mustFuel(t, 100, 100)
	sh, err := ship.NewShip("MINER-4", ship.RoleExcavator, nav, 10, fuel, 10, *notFull)
	require.NoError(t, err)
	wh.UpsertShip(sh)
	rt, _ := wh.Runtime("MINER-4")
	rt.State = ship.StateMining

	d := dispatcher.New(wh, shared.NewRealClock())
	decision := d.Decide("MINER-4")
	assert.Equal(t, ship.ActionExtractMinerals, decision.Action)

	full, err := shared.NewCargo(10, 10, []shared.CargoItem{{Symbol: "ICE_WATER", Units: 10}})
	require.NoError(t, err)
	sh2, err := ship.NewShip("MINER-4", ship.RoleExcavator, nav, 10, fuel, 10, *full)
	require.NoError(t, err)
	wh.UpsertShip(sh2)
	decision = d.Decide("MINER-4")
	assert.Equal(t, ship.ActionNoop, decision.Action)
}

// TestDispatcher_DecideNeverMutatesShip asserts the dispatcher purity
// property: Decide must not change the cached Ship, only Runtime.Context.
func TestDispatcher_DecideNeverMutatesShip(t *testing.T) {
	wh := warehouse.New(fakeRecorder{}, nil)
	origin := shared.WaypointRef{Symbol: "X1-HOME", Type: "PLANET", X: 0, Y: 0}
	near := shared.WaypointRef{Symbol: "X1-NEAR", Type: "PLANET", X: 1, Y: 0}
	sys := newSystemWithWaypoints(t, "X1", origin, near)
	wh.UpsertSystem(sys)
	wh.UpsertWaypointDetail("X1", shared.WaypointDetail{WaypointRef: near, Traits: []shared.Trait{shared.TraitMarketplace}})

	nav := ship.Nav{SystemSymbol: "X1", WaypointSymbol: "X1-HOME", Status: ship.NavStatusDocked}
	fuel := mustFuel(t, 100, 100)
	cargo := mustCargo(t, 0, 0, nil)
	sh, err := ship.NewShip("PROBE-9", ship.RoleSatellite, nav, 10, fuel, 0, cargo)
	require.NoError(t, err)
	wh.UpsertShip(sh)

	before, _ := wh.Ship("PROBE-9")
	beforeCopy := *before

	d := dispatcher.New(wh, shared.NewRealClock())
	_ = d.Decide("PROBE-9")

	after, _ := wh.Ship("PROBE-9")
	assert.Equal(t, beforeCopy, *after)
}
