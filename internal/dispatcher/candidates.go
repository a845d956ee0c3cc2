package dispatcher

import (
	"github.com/ionfleet/fleetctl/internal/domain/market"
	"github.com/ionfleet/fleetctl/internal/domain/shared"
)

// currentWaypointRef resolves the ship's current waypoint to a WaypointRef
// with coordinates, for distance calculations.
func (d *Dispatcher) currentWaypointRef(systemSymbol, waypointSymbol string) (*shared.WaypointRef, bool) {
	s, ok := d.wh.System(systemSymbol)
	if !ok {
		return nil, false
	}
	return s.WaypointBySymbol(waypointSymbol)
}

// nearestOf returns the candidate in refs closest to origin by Euclidean
// distance, or false if refs is empty.
func nearestOf(origin *shared.WaypointRef, refs []shared.WaypointRef) (shared.WaypointRef, bool) {
	if len(refs) == 0 {
		return shared.WaypointRef{}, false
	}
	best := refs[0]
	bestDist := origin.DistanceTo(&best)
	for _, r := range refs[1:] {
		r := r
		dist := origin.DistanceTo(&r)
		if dist < bestDist {
			best = r
			bestDist = dist
		}
	}
	return best, true
}

// nearestUnvisitedMarketplace returns the nearest marketplace in the system
// that has no cached snapshot yet, excluding any waypoint already claimed
// as a target market by another runtime.
func (d *Dispatcher) nearestUnvisitedMarketplace(origin *shared.WaypointRef, systemSymbol, excludeShip string) (shared.WaypointRef, bool) {
	marketplaces := d.wh.MarketplacesInSystem(systemSymbol)
	var unvisited []shared.WaypointRef
	for _, m := range marketplaces {
		if d.wh.TargetMarketClaimed(m.Symbol, excludeShip) {
			continue
		}
		if _, seen := d.wh.MarketSnapshot(m.Symbol); seen {
			continue
		}
		unvisited = append(unvisited, m)
	}
	return nearestOf(origin, unvisited)
}

// oldestSeenMarketplace returns the marketplace whose cached snapshot has
// the oldest SeenAt timestamp, excluding claimed targets. Used as a
// satellite's fallback once every marketplace has already been visited.
func (d *Dispatcher) oldestSeenMarketplace(systemSymbol, excludeShip string) (shared.WaypointRef, bool) {
	marketplaces := d.wh.MarketplacesInSystem(systemSymbol)
	var oldest *shared.WaypointRef
	var oldestSeenAt int64
	found := false
	for _, m := range marketplaces {
		if d.wh.TargetMarketClaimed(m.Symbol, excludeShip) {
			continue
		}
		snap, ok := d.wh.MarketSnapshot(m.Symbol)
		if !ok {
			continue
		}
		ts := snap.SeenAt.UnixNano()
		if !found || ts < oldestSeenAt {
			m := m
			oldest = &m
			oldestSeenAt = ts
			found = true
		}
	}
	if !found {
		return shared.WaypointRef{}, false
	}
	return *oldest, true
}

// nearestMarketplace returns the nearest marketplace in the system
// regardless of claim/visited state. The satellite's last-resort fallback
// when every marketplace is either claimed or already seen.
func (d *Dispatcher) nearestMarketplace(origin *shared.WaypointRef, systemSymbol string) (shared.WaypointRef, bool) {
	return nearestOf(origin, d.wh.MarketplacesInSystem(systemSymbol))
}

// nearestBuyerForCargo returns the nearest marketplace, among cached
// snapshots in systemSymbol, that sells at least one of cargoSymbols at a
// sellPrice clearing threshold — strictly greater when strict is true,
// or at least the threshold otherwise. The strict/non-strict split lets an
// active sell cycle require a genuine improvement over the threshold while
// the initial cargo-full pick only needs to clear it.
func (d *Dispatcher) nearestBuyerForCargo(origin *shared.WaypointRef, systemSymbol string, cargoSymbols []string, threshold int, strict bool) (shared.WaypointRef, bool) {
	waypoints := d.wh.GetWaypointsInSystem(systemSymbol)
	var candidates []shared.WaypointRef
	for _, m := range waypoints {
		snap, ok := d.wh.MarketSnapshot(m.Symbol)
		if !ok {
			continue
		}
		if sellsAnyAboveThreshold(snap, cargoSymbols, threshold, strict) {
			candidates = append(candidates, m)
		}
	}
	return nearestOf(origin, candidates)
}

func sellsAnyAboveThreshold(snap *market.Snapshot, cargoSymbols []string, threshold int, strict bool) bool {
	for _, symbol := range cargoSymbols {
		tg, ok := snap.Good(symbol)
		if !ok {
			continue
		}
		if strict && tg.SellPrice > threshold {
			return true
		}
		if !strict && tg.SellPrice >= threshold {
			return true
		}
	}
	return false
}

// unworthyCargoSymbols returns the cargo symbols with no known buyer
// anywhere, or whose best known sellPrice does not clear threshold. These
// are the symbols an excavator jettisons rather than hauls to a buyer.
func (d *Dispatcher) unworthyCargoSymbols(cargo *shared.Cargo, threshold int) []string {
	var out []string
	for _, symbol := range cargo.Symbols() {
		best, ok := d.wh.GetBestSellObservation(symbol)
		if !ok || best.SellPrice <= threshold {
			out = append(out, symbol)
		}
	}
	return out
}
