package executor_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ionfleet/fleetctl/internal/domain/agent"
	"github.com/ionfleet/fleetctl/internal/domain/market"
	"github.com/ionfleet/fleetctl/internal/domain/shared"
	"github.com/ionfleet/fleetctl/internal/domain/ship"
	"github.com/ionfleet/fleetctl/internal/domain/system"
	"github.com/ionfleet/fleetctl/internal/executor"
	"github.com/ionfleet/fleetctl/internal/store"
	"github.com/ionfleet/fleetctl/internal/transport"
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

// testFixture wires a warehouse, store and transport client against an
// httptest server, mirroring the transport package's own test style.
type testFixture struct {
	wh    *warehouse.Warehouse
	st    *store.Store
	clock *shared.MockClock
	ex    *executor.Executor
	srv   *httptest.Server
}

func newFixture(t *testing.T, handler http.HandlerFunc) *testFixture {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	clock := shared.NewMockClock(time.Now())
	wh := warehouse.New(fakeRecorder{}, nil)
	wh.LoadAgentData(mustAgent(t))

	db, err := store.Open(":memory:")
	require.NoError(t, err)
	st := store.New(db, clock, 2)

	client := transport.NewClient("test-token", transport.WithBaseURL(srv.URL), transport.WithClock(clock))
	ex := executor.New(client, wh, st, clock)

	return &testFixture{wh: wh, st: st, clock: clock, ex: ex, srv: srv}
}

func mustAgent(t *testing.T) *agent.Agent {
	t.Helper()
	a, err := agent.NewAgent("ACC-1", "AGENT-1", "X1-HOME", 100000, "COSMIC", 1)
	require.NoError(t, err)
	return a
}

func mustShip(t *testing.T, symbol string, role ship.Role, nav ship.Nav, fuel shared.Fuel, cargoCapacity int, cargo shared.Cargo) *ship.Ship {
	t.Helper()
	sh, err := ship.NewShip(symbol, role, nav, 10, fuel, cargoCapacity, cargo)
	require.NoError(t, err)
	return sh
}
