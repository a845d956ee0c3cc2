// Package warehouse is the in-memory cache of everything the dispatcher and
// executor read: agent, systems, ships, runtimes, and market snapshots.
// Ship and Runtime accessors return the cached pointers themselves; the
// executor reconciles API responses into those ships and the dispatcher
// writes its picks into Runtime.Context through them.
package warehouse

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/ionfleet/fleetctl/internal/domain/agent"
	"github.com/ionfleet/fleetctl/internal/domain/market"
	"github.com/ionfleet/fleetctl/internal/domain/shared"
	"github.com/ionfleet/fleetctl/internal/domain/ship"
	"github.com/ionfleet/fleetctl/internal/domain/system"
)

// ObservationRecorder persists one good observation; satisfied by
// *store.Store. Kept as an interface so tests can stub it out.
type ObservationRecorder interface {
	InsertMarketObservation(o market.Observation) error
}

// Warehouse holds all cached game state behind a single mutex. It is not
// safe to read fields directly from outside the package; use the
// accessor/mutator methods, which is what keeps the dispatcher's view of
// the world self-consistent across a scheduling tick.
type Warehouse struct {
	mu sync.RWMutex

	agent   *agent.Agent
	systems map[string]*system.System
	ships   map[string]*ship.Ship
	runtime map[string]*ship.Runtime

	waypointDetail map[string]*shared.WaypointDetail
	shipyard       map[string]*ShipyardListing

	marketByWaypoint map[string]*market.Snapshot
	observationsByGood map[string][]market.Observation

	recorder ObservationRecorder
	logger   *slog.Logger
}

func New(recorder ObservationRecorder, logger *slog.Logger) *Warehouse {
	if logger == nil {
		logger = slog.Default()
	}
	return &Warehouse{
		systems:            make(map[string]*system.System),
		ships:              make(map[string]*ship.Ship),
		runtime:            make(map[string]*ship.Runtime),
		waypointDetail:     make(map[string]*shared.WaypointDetail),
		shipyard:           make(map[string]*ShipyardListing),
		marketByWaypoint:   make(map[string]*market.Snapshot),
		observationsByGood: make(map[string][]market.Observation),
		recorder:           recorder,
		logger:             logger,
	}
}

func (w *Warehouse) LoadAgentData(a *agent.Agent) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.agent = a
}

func (w *Warehouse) Agent() *agent.Agent {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.agent
}

func (w *Warehouse) UpsertSystem(s *system.System) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.systems[s.Symbol] = s
}

func (w *Warehouse) UpsertSystems(systems []*system.System) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, s := range systems {
		w.systems[s.Symbol] = s
	}
}

func (w *Warehouse) System(symbol string) (*system.System, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, ok := w.systems[symbol]
	return s, ok
}

// UpsertWaypointDetail replaces the cached detail for one waypoint and
// refreshes the parent system's WaypointRef entry for it.
func (w *Warehouse) UpsertWaypointDetail(systemSymbol string, detail shared.WaypointDetail) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.waypointDetail[detail.Symbol] = &detail
	s, ok := w.systems[systemSymbol]
	if !ok {
		return
	}
	s.UpsertWaypoint(detail.WaypointRef)
}

// WaypointDetail returns the cached detail for a waypoint, if it has been
// fetched. Dispatcher mineable/marketplace checks read through this.
func (w *Warehouse) WaypointDetail(symbol string) (*shared.WaypointDetail, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	d, ok := w.waypointDetail[symbol]
	return d, ok
}

// ShipyardListing is a cached shipyard read for one waypoint: the set of
// ship types and prices offered there the last time it was queried.
type ShipyardListing struct {
	WaypointSymbol string
	Ships          []ShipyardShipOption
}

type ShipyardShipOption struct {
	Type          string
	PurchasePrice int
}

// UpsertShipyardListing caches the latest shipyard read for a waypoint.
func (w *Warehouse) UpsertShipyardListing(listing *ShipyardListing) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.shipyard[listing.WaypointSymbol] = listing
}

// GetShipyardListings returns the cached shipyard listing for a waypoint.
func (w *Warehouse) GetShipyardListings(waypoint string) (*ShipyardListing, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	l, ok := w.shipyard[waypoint]
	return l, ok
}

func (w *Warehouse) UpsertShip(sh *ship.Ship) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ships[sh.Symbol] = sh
	if _, ok := w.runtime[sh.Symbol]; !ok {
		w.runtime[sh.Symbol] = ship.NewRuntime(sh.Symbol)
	}
}

// UpsertFleet upserts every ship in the given list, as if it were the
// `data` array of a list-ships response. Cached ships absent from the list
// are left in place.
func (w *Warehouse) UpsertFleet(ships []*ship.Ship) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, sh := range ships {
		w.ships[sh.Symbol] = sh
		if _, ok := w.runtime[sh.Symbol]; !ok {
			w.runtime[sh.Symbol] = ship.NewRuntime(sh.Symbol)
		}
	}
}

func (w *Warehouse) Ship(symbol string) (*ship.Ship, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, ok := w.ships[symbol]
	return s, ok
}

func (w *Warehouse) Runtime(symbol string) (*ship.Runtime, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	r, ok := w.runtime[symbol]
	return r, ok
}

func (w *Warehouse) AllShipSymbols() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, 0, len(w.ships))
	for symbol := range w.ships {
		out = append(out, symbol)
	}
	sort.Strings(out)
	return out
}

// TargetMarketClaimed reports whether any runtime other than excludeSymbol
// already has waypoint claimed as its context.target_market, enforcing
// that at most one ship targets a given market at a time.
func (w *Warehouse) TargetMarketClaimed(waypoint, excludeSymbol string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for symbol, r := range w.runtime {
		if symbol == excludeSymbol {
			continue
		}
		if r.Context.TargetMarket == waypoint {
			return true
		}
	}
	return false
}

// GetWaypointsInSystem returns every cached waypoint ref for a system.
func (w *Warehouse) GetWaypointsInSystem(systemSymbol string) []shared.WaypointRef {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, ok := w.systems[systemSymbol]
	if !ok {
		return nil
	}
	return s.Waypoints
}

func (w *Warehouse) GetChildren(symbol string) []shared.WaypointRef {
	w.mu.RLock()
	defer w.mu.RUnlock()
	systemSymbol := shared.SystemSymbolOf(symbol)
	s, ok := w.systems[systemSymbol]
	if !ok {
		return nil
	}
	return s.Children(symbol)
}

func (w *Warehouse) GetParent(symbol string) (shared.WaypointRef, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	systemSymbol := shared.SystemSymbolOf(symbol)
	s, ok := w.systems[systemSymbol]
	if !ok {
		return shared.WaypointRef{}, false
	}
	p, ok := s.Parent(symbol)
	if !ok {
		return shared.WaypointRef{}, false
	}
	return *p, true
}

func (w *Warehouse) MarketSnapshot(waypoint string) (*market.Snapshot, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, ok := w.marketByWaypoint[waypoint]
	return s, ok
}

func (w *Warehouse) GoodObservations(good string) []market.Observation {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]market.Observation(nil), w.observationsByGood[good]...)
}
