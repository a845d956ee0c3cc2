package dispatcher

import (
	"time"

	"github.com/ionfleet/fleetctl/internal/domain/ship"
)

// decideIdle implements the IDLE state's decision branch.
func (d *Dispatcher) decideIdle(sh *ship.Ship, rt *ship.Runtime, now time.Time) ship.Decision {
	if d.needsRefuel(sh) {
		return ship.Decision{Ship: sh.Symbol, Action: ship.ActionRefuel}
	}

	switch sh.Role {
	case ship.RoleSatellite:
		return d.decideIdleSatellite(sh, rt)
	case ship.RoleExcavator:
		return d.decideIdleExcavator(sh, rt)
	default:
		return ship.Noop(sh.Symbol)
	}
}

// needsRefuel covers step 1: fuel not full, current waypoint's cached
// snapshot sells FUEL at purchasePrice>0, and the ship is not IN_TRANSIT.
func (d *Dispatcher) needsRefuel(sh *ship.Ship) bool {
	if sh.Fuel.IsFull() {
		return false
	}
	if sh.Nav.Status == ship.NavStatusInTransit {
		return false
	}
	snap, ok := d.wh.MarketSnapshot(sh.Nav.WaypointSymbol)
	if !ok {
		return false
	}
	return snap.SellsFuelAt() > 0
}

// decideIdleSatellite implements step 2: probe/SATELLITE marketplace pick.
func (d *Dispatcher) decideIdleSatellite(sh *ship.Ship, rt *ship.Runtime) ship.Decision {
	origin, ok := d.currentWaypointRef(sh.Nav.SystemSymbol, sh.Nav.WaypointSymbol)
	if !ok {
		return ship.Noop(sh.Symbol)
	}

	target, found := d.nearestUnvisitedMarketplace(origin, sh.Nav.SystemSymbol, sh.Symbol)
	if !found {
		target, found = d.oldestSeenMarketplace(sh.Nav.SystemSymbol, sh.Symbol)
	}
	if !found {
		target, found = d.nearestMarketplace(origin, sh.Nav.SystemSymbol)
	}
	if !found {
		return ship.Noop(sh.Symbol)
	}

	rt.Context.TargetMarket = target.Symbol
	return ship.Decision{Ship: sh.Symbol, Action: ship.ActionProbeVisitMarket, Destination: target.Symbol}
}

// decideIdleExcavator implements step 3: the excavator mine/sell cycle.
func (d *Dispatcher) decideIdleExcavator(sh *ship.Ship, rt *ship.Runtime) ship.Decision {
	origin, hasOrigin := d.currentWaypointRef(sh.Nav.SystemSymbol, sh.Nav.WaypointSymbol)

	if rt.Context.Selling && sh.Cargo.Units > 0 {
		if hasOrigin {
			target, found := d.nearestBuyerForCargo(origin, sh.Nav.SystemSymbol, sh.Cargo.Symbols(), d.minSellPrice, true)
			if found {
				rt.Context.TargetMarket = target.Symbol
				return ship.Decision{Ship: sh.Symbol, Action: ship.ActionProbeVisitMarket, Destination: target.Symbol}
			}
		}
		return d.navigateToMineDecision(sh, rt, nil)
	}

	if !sh.Cargo.IsFull() {
		unworthy := d.unworthyCargoSymbols(&sh.Cargo, d.minSellPrice)
		return d.navigateToMineDecision(sh, rt, unworthy)
	}

	if hasOrigin {
		target, found := d.nearestBuyerForCargo(origin, sh.Nav.SystemSymbol, sh.Cargo.Symbols(), d.minSellPrice, false)
		if found {
			rt.Context.Selling = true
			rt.Context.RemainingCargoSymbols = sh.Cargo.Symbols()
			rt.Context.TargetMarket = target.Symbol
			return ship.Decision{Ship: sh.Symbol, Action: ship.ActionProbeVisitMarket, Destination: target.Symbol}
		}
	}

	unworthy := d.unworthyCargoSymbols(&sh.Cargo, d.minSellPrice)
	return d.navigateToMineDecision(sh, rt, unworthy)
}

// navigateToMineDecision picks the nearest known mineable waypoint in the
// ship's system and returns NAVIGATE_TO_MINE, carrying jettisonSymbols for
// the executor to drop before departure. If no mineable waypoint is known,
// the excavator has nothing useful to do and NOOPs.
func (d *Dispatcher) navigateToMineDecision(sh *ship.Ship, rt *ship.Runtime, jettisonSymbols []string) ship.Decision {
	origin, ok := d.currentWaypointRef(sh.Nav.SystemSymbol, sh.Nav.WaypointSymbol)
	if !ok {
		return ship.Noop(sh.Symbol)
	}
	mineable := d.wh.MineableWaypointsInSystem(sh.Nav.SystemSymbol)
	target, found := nearestOf(origin, mineable)
	if !found {
		return ship.Noop(sh.Symbol)
	}

	rt.Context.MineTarget = target.Symbol
	rt.Context.Destination = ship.DestinationMine
	return ship.Decision{
		Ship:            sh.Symbol,
		Action:          ship.ActionNavigateToMine,
		Destination:     target.Symbol,
		JettisonSymbols: jettisonSymbols,
	}
}
