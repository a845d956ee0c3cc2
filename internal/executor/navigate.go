package executor

import (
	"context"
	"sort"
	"time"

	"github.com/ionfleet/fleetctl/internal/domain/shared"
	"github.com/ionfleet/fleetctl/internal/domain/ship"
)

const navigateFallbackWakeup = 10 * time.Second

// mineCandidate is one ranked mineable waypoint, nearest first.
type mineCandidate struct {
	ref      shared.WaypointRef
	distance float64
}

// rankCandidates orders refs nearest-to-farthest from origin.
func rankCandidates(origin *shared.WaypointRef, refs []shared.WaypointRef) []mineCandidate {
	out := make([]mineCandidate, 0, len(refs))
	for _, r := range refs {
		r := r
		out = append(out, mineCandidate{ref: r, distance: origin.DistanceTo(&r)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].distance < out[j].distance })
	return out
}

// executeNavigateToMine implements the NAVIGATE_TO_MINE action: rank
// mineable waypoints by distance, CRUISE to the first one affordable
// on current fuel, falling back to DRIFT on insufficient-fuel and then to
// the nearest known refuel waypoint, and finally to a 30s backoff.
func (e *Executor) executeNavigateToMine(ctx context.Context, decision ship.Decision) Result {
	sh, ok := e.wh.Ship(decision.Ship)
	if !ok {
		e.backoff(decision.Ship, "navigate_to_mine: ship not in warehouse")
		return ResultRetryable
	}

	for _, symbol := range decision.JettisonSymbols {
		units := sh.Cargo.UnitsOf(symbol)
		if units <= 0 {
			continue
		}
		if err := e.client.JettisonCargo(ctx, decision.Ship, symbol, units); err != nil {
			e.logger.Warn("executor: jettison failed", "ship", decision.Ship, "symbol", symbol, "error", err)
			continue
		}
		e.removeCargo(sh, symbol, units)
		e.logger.Info("executor: jettisoned unworthy cargo", "ship", decision.Ship, "symbol", symbol, "units", units)
	}

	origin, ok := e.currentWaypointRef(sh.Nav.SystemSymbol, sh.Nav.WaypointSymbol)
	if !ok {
		e.backoff(decision.Ship, "navigate_to_mine: unknown origin coordinates")
		return ResultRetryable
	}

	mineable := e.wh.MineableWaypointsInSystem(sh.Nav.SystemSymbol)
	candidates := rankCandidates(origin, mineable)
	if len(candidates) == 0 {
		e.backoff(decision.Ship, "navigate_to_mine: no known mineable waypoint")
		return ResultRetryable
	}

	target, ok := e.pickAffordableCandidate(sh, candidates)
	if ok {
		if e.tryNavigate(ctx, decision.Ship, sh, origin, target.ref, ship.DestinationMine) {
			return ResultOK
		}
	}

	// No candidate was affordable under CRUISE, or both CRUISE and DRIFT to
	// the first affordable candidate failed; try DRIFT to the single nearest
	// candidate.
	nearest := candidates[0]
	if e.tryNavigateMode(ctx, decision.Ship, sh, origin, nearest.ref, ship.DestinationMine, shared.FlightModeDrift) {
		return ResultOK
	}

	if e.tryNavigateToRefuelWaypoint(ctx, decision.Ship, sh, origin) {
		return ResultOK
	}

	e.backoff(decision.Ship, "navigate_to_mine: all navigate attempts failed")
	return ResultRetryable
}

// pickAffordableCandidate returns the first candidate whose CRUISE fuel
// cost (distance rounded up) does not exceed current fuel.
func (e *Executor) pickAffordableCandidate(sh *ship.Ship, candidates []mineCandidate) (mineCandidate, bool) {
	for _, c := range candidates {
		if shared.FlightModeCruise.FuelCost(c.distance) <= sh.Fuel.Current {
			return c, true
		}
	}
	return mineCandidate{}, false
}

// tryNavigateToRefuelWaypoint attempts CRUISE-or-DRIFT to the nearest
// cached marketplace known to sell fuel, the navigate fallback of last
// resort.
func (e *Executor) tryNavigateToRefuelWaypoint(ctx context.Context, shipSymbol string, sh *ship.Ship, origin *shared.WaypointRef) bool {
	refuelWaypoints := e.refuelWaypointsInSystem(sh.Nav.SystemSymbol)
	if len(refuelWaypoints) == 0 {
		return false
	}
	candidates := rankCandidates(origin, refuelWaypoints)
	nearest := candidates[0]
	if e.tryNavigate(ctx, shipSymbol, sh, origin, nearest.ref, ship.DestinationRefuel) {
		return true
	}
	return e.tryNavigateMode(ctx, shipSymbol, sh, origin, nearest.ref, ship.DestinationRefuel, shared.FlightModeDrift)
}

// refuelWaypointsInSystem returns cached marketplace waypoints in
// systemSymbol whose latest snapshot sells fuel.
func (e *Executor) refuelWaypointsInSystem(systemSymbol string) []shared.WaypointRef {
	var out []shared.WaypointRef
	for _, ref := range e.wh.MarketplacesInSystem(systemSymbol) {
		snap, ok := e.wh.MarketSnapshot(ref.Symbol)
		if ok && snap.SellsFuelAt() > 0 {
			out = append(out, ref)
		}
	}
	return out
}

// tryNavigate attempts a CRUISE navigate to target, falling back to DRIFT
// whenever the CRUISE attempt fails, insufficient fuel (error code 4203)
// included.
func (e *Executor) tryNavigate(ctx context.Context, shipSymbol string, sh *ship.Ship, origin *shared.WaypointRef, target shared.WaypointRef, tag ship.DestinationTag) bool {
	if e.tryNavigateMode(ctx, shipSymbol, sh, origin, target, tag, shared.FlightModeCruise) {
		return true
	}
	return e.tryNavigateMode(ctx, shipSymbol, sh, origin, target, tag, shared.FlightModeDrift)
}

// tryNavigateMode issues one navigate attempt in the given flight mode and,
// on success, reconciles nav/fuel and advances the runtime to NAVIGATING.
func (e *Executor) tryNavigateMode(ctx context.Context, shipSymbol string, sh *ship.Ship, origin *shared.WaypointRef, target shared.WaypointRef, tag ship.DestinationTag, mode shared.FlightMode) bool {
	if sh.Nav.FlightMode != mode {
		if _, err := e.client.SetFlightMode(ctx, shipSymbol, mode.String()); err != nil {
			e.classifyError(shipSymbol, err)
			return false
		}
		sh.Nav.FlightMode = mode
	}

	resp, err := e.client.NavigateShip(ctx, shipSymbol, target.Symbol)
	if err != nil {
		e.classifyError(shipSymbol, err)
		return false
	}

	route := routeFromNavigateResponse(sh.Nav.WaypointSymbol, resp)
	applyNav(sh, ship.NavStatusInTransit, sh.Nav.WaypointSymbol, route)
	sh.Fuel.Current = resp.Fuel.Current
	sh.Fuel.Capacity = resp.Fuel.Capacity

	rt, ok := e.wh.Runtime(shipSymbol)
	if !ok {
		return true
	}
	rt.State = ship.StateNavigating
	rt.Context.Destination = tag
	if tag == ship.DestinationMine {
		rt.Context.MineTarget = target.Symbol
	}
	rt.NextWakeup = arrivalOrFallback(route, e.clock.Now(), navigateFallbackWakeup)
	e.logger.Info("executor: navigating", "ship", shipSymbol, "destination", target.Symbol, "mode", mode.String(), "tag", tag)
	return true
}

// removeCargo decrements sh's cached cargo after a successful jettison.
func (e *Executor) removeCargo(sh *ship.Ship, symbol string, units int) {
	inventory := make([]shared.CargoItem, 0, len(sh.Cargo.Inventory))
	for _, item := range sh.Cargo.Inventory {
		if item.Symbol == symbol {
			remaining := item.Units - units
			if remaining > 0 {
				inventory = append(inventory, shared.CargoItem{Symbol: symbol, Units: remaining})
			}
			continue
		}
		inventory = append(inventory, item)
	}
	cargo, err := shared.NewCargo(sh.Cargo.Capacity, sh.Cargo.Units-units, inventory)
	if err != nil {
		return
	}
	sh.Cargo = *cargo
}

// currentWaypointRef resolves sh's current waypoint to a coordinate-bearing
// WaypointRef, mirroring the dispatcher's lookup.
func (e *Executor) currentWaypointRef(systemSymbol, waypointSymbol string) (*shared.WaypointRef, bool) {
	s, ok := e.wh.System(systemSymbol)
	if !ok {
		return nil, false
	}
	return s.WaypointBySymbol(waypointSymbol)
}
