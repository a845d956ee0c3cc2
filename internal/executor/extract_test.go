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

// TestExecutor_ExtractMinerals_AppliesCargoAndSchedulesWakeupAtCooldown
// covers EXTRACT_MINERALS: cargo and cooldown are reconciled from the
// response and the runtime moves to MINING with NextWakeup at expiration.
func TestExecutor_ExtractMinerals_AppliesCargoAndSchedulesWakeupAtCooldown(t *testing.T) {
	// Arrange
	expiration := "2024-01-01T00:01:10.000Z"
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/my/ships/MINER-1/extract", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"extraction": map[string]any{"yield": map[string]any{"symbol": "IRON_ORE", "units": 10}},
				"cooldown":   map[string]any{"totalSeconds": 70, "remainingSeconds": 70, "expiration": expiration},
				"cargo":      map[string]any{"capacity": 40, "units": 10, "inventory": []map[string]any{{"symbol": "IRON_ORE", "units": 10}}},
			},
		})
	})

	nav := ship.Nav{SystemSymbol: "X1", WaypointSymbol: "X1-BELT", Status: ship.NavStatusInOrbit}
	sh := mustShip(t, "MINER-1", ship.RoleExcavator, nav, mustFuel(t, 100, 100), 40, mustCargo(t, 40, 0, nil))
	f.wh.UpsertShip(sh)

	// Act
	result := f.ex.Execute(context.Background(), ship.Decision{Ship: "MINER-1", Action: ship.ActionExtractMinerals})

	// Assert
	require.Equal(t, "OK", result.String())
	updated, ok := f.wh.Ship("MINER-1")
	require.True(t, ok)
	assert.Equal(t, 10, updated.Cargo.Units)
	assert.Equal(t, 10, updated.Cargo.UnitsOf("IRON_ORE"))

	rt, ok := f.wh.Runtime("MINER-1")
	require.True(t, ok)
	assert.Equal(t, ship.StateMining, rt.State)
	want, err := shared.ParseISO(expiration)
	require.NoError(t, err)
	assert.True(t, rt.NextWakeup.Equal(want))
}
