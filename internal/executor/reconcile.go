package executor

import (
	"time"

	"github.com/ionfleet/fleetctl/internal/domain/shared"
	"github.com/ionfleet/fleetctl/internal/domain/ship"
	"github.com/ionfleet/fleetctl/internal/transport"
)

// applyCargo rebuilds a shared.Cargo from a transport cargo payload,
// defaulting to an empty-but-valid cargo on any construction error (the
// remote API is the source of truth, so a mismatch here is never expected).
func applyCargo(capacity, units int, items []transport.CargoItemResponse) shared.Cargo {
	inventory := make([]shared.CargoItem, 0, len(items))
	for _, it := range items {
		inventory = append(inventory, shared.CargoItem{Symbol: it.Symbol, Units: it.Units})
	}
	cargo, err := shared.NewCargo(capacity, units, inventory)
	if err != nil {
		cargo, _ = shared.NewCargo(capacity, 0, nil)
	}
	return *cargo
}

func applyCooldownFields(totalSeconds, remainingSeconds int, expiration string) ship.Cooldown {
	exp, _ := shared.ParseISO(expiration)
	return ship.Cooldown{TotalSeconds: totalSeconds, RemainingSeconds: remainingSeconds, Expiration: exp}
}

// applyNav mutates sh's nav status/waypoint/route in place from a response,
// applying the response fields directly rather than re-fetching with an
// eager follow-up GET. sh is the warehouse's live pointer, so this is the
// full reconciliation for that field group.
func applyNav(sh *ship.Ship, status ship.NavStatus, waypointSymbol string, route *ship.Route) {
	sh.Nav.Status = status
	if waypointSymbol != "" {
		sh.Nav.WaypointSymbol = waypointSymbol
	}
	sh.Nav.Route = route
}

func routeFromNavigateResponse(origin string, resp *transport.NavigateResponse) *ship.Route {
	departure, _ := shared.ParseISO(resp.Nav.Route.DepartureTime)
	arrival, _ := shared.ParseISO(resp.Nav.Route.Arrival)
	return &ship.Route{
		Origin:        origin,
		Destination:   resp.Nav.WaypointSymbol,
		DepartureTime: departure,
		Arrival:       arrival,
	}
}

func routeFromWarpJumpResponse(origin string, resp *transport.WarpJumpResponse) *ship.Route {
	departure, _ := shared.ParseISO(resp.Nav.Route.DepartureTime)
	arrival, _ := shared.ParseISO(resp.Nav.Route.Arrival)
	return &ship.Route{
		Origin:        origin,
		Destination:   resp.Nav.WaypointSymbol,
		DepartureTime: departure,
		Arrival:       arrival,
	}
}

// arrivalOrFallback returns route.Arrival if known, else now+fallback.
func arrivalOrFallback(route *ship.Route, now time.Time, fallback time.Duration) time.Time {
	if route != nil && !route.Arrival.IsZero() {
		return route.Arrival
	}
	return now.Add(fallback)
}
