package dispatcher

import (
	"time"

	"github.com/ionfleet/fleetctl/internal/domain/ship"
)

// decideNavigating implements the NAVIGATING state's decision branch. On
// arrival at a MINE-tagged destination it re-emits an extract action; on
// arrival at a PROBE_MARKET-tagged destination it re-emits the market probe
// so the executor's "already at target and not IN_TRANSIT" check has
// something to act on.
func (d *Dispatcher) decideNavigating(sh *ship.Ship, rt *ship.Runtime, now time.Time) ship.Decision {
	if effectivelyInTransit(sh, now) {
		return ship.Noop(sh.Symbol)
	}

	switch rt.Context.Destination {
	case ship.DestinationMine:
		if rt.Context.MineTarget != "" && rt.Context.MineTarget == sh.Nav.WaypointSymbol && d.wh.IsMineable(sh.Nav.WaypointSymbol) {
			return ship.Decision{Ship: sh.Symbol, Action: ship.ActionExtractMinerals}
		}
	case ship.DestinationProbeMarket:
		if rt.Context.TargetMarket != "" && rt.Context.TargetMarket == sh.Nav.WaypointSymbol {
			return ship.Decision{Ship: sh.Symbol, Action: ship.ActionProbeVisitMarket, Destination: sh.Nav.WaypointSymbol}
		}
	}

	return ship.Noop(sh.Symbol)
}
