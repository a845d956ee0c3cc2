package warehouse

import "github.com/ionfleet/fleetctl/internal/domain/shared"

// MarketplacesInSystem returns the cached WaypointRefs in systemSymbol whose
// detail is known and carries the MARKETPLACE trait. Waypoints whose detail
// hasn't been fetched yet are skipped rather than assumed non-marketplace.
func (w *Warehouse) MarketplacesInSystem(systemSymbol string) []shared.WaypointRef {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, ok := w.systems[systemSymbol]
	if !ok {
		return nil
	}
	var out []shared.WaypointRef
	for _, ref := range s.Waypoints {
		detail, ok := w.waypointDetail[ref.Symbol]
		if !ok || !detail.IsMarketplace() {
			continue
		}
		out = append(out, ref)
	}
	return out
}

// MineableWaypointsInSystem returns the cached WaypointRefs in systemSymbol
// whose detail carries one of the mineable traits, the candidate set for
// NAVIGATE_TO_MINE ranking.
func (w *Warehouse) MineableWaypointsInSystem(systemSymbol string) []shared.WaypointRef {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, ok := w.systems[systemSymbol]
	if !ok {
		return nil
	}
	var out []shared.WaypointRef
	for _, ref := range s.Waypoints {
		detail, ok := w.waypointDetail[ref.Symbol]
		if !ok || !detail.IsMineable() {
			continue
		}
		out = append(out, ref)
	}
	return out
}

// IsMarketplace reports whether symbol's cached detail carries the
// MARKETPLACE trait. Unknown waypoints report false.
func (w *Warehouse) IsMarketplace(symbol string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	d, ok := w.waypointDetail[symbol]
	return ok && d.IsMarketplace()
}

// IsMineable reports whether symbol's cached detail carries a mineable
// trait. Unknown waypoints report false.
func (w *Warehouse) IsMineable(symbol string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	d, ok := w.waypointDetail[symbol]
	return ok && d.IsMineable()
}
