// Package dispatcher is the pure decision layer: given a ship symbol, it
// reads the warehouse and returns exactly one ShipAction. It never calls
// the remote API and never mutates anything but the publishing fields of
// the ship's runtime Context — state transitions and all I/O belong to the
// executor.
package dispatcher

import (
	"log/slog"
	"time"

	"github.com/ionfleet/fleetctl/internal/domain/shared"
	"github.com/ionfleet/fleetctl/internal/domain/ship"
	"github.com/ionfleet/fleetctl/internal/warehouse"
)

// DefaultMinSellPrice is the jettison/sell threshold used when the operator
// does not configure one.
const DefaultMinSellPrice = 10

// Dispatcher is a pure function object: Decide and ShipReadiness read the
// warehouse but issue no API calls and perform no blocking I/O.
type Dispatcher struct {
	wh           *warehouse.Warehouse
	clock        shared.Clock
	logger       *slog.Logger
	minSellPrice int
}

type Option func(*Dispatcher)

func WithMinSellPrice(p int) Option {
	return func(d *Dispatcher) { d.minSellPrice = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

func New(wh *warehouse.Warehouse, clock shared.Clock, opts ...Option) *Dispatcher {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	d := &Dispatcher{wh: wh, clock: clock, logger: slog.Default(), minSellPrice: DefaultMinSellPrice}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decide maps a ship's current state to exactly one action. On any local
// invariant violation (missing ship, missing runtime) it
// returns NOOP rather than erroring — the dispatcher never throws.
func (d *Dispatcher) Decide(shipSymbol string) ship.Decision {
	sh, ok := d.wh.Ship(shipSymbol)
	if !ok {
		d.logger.Warn("dispatcher: unknown ship", "ship", shipSymbol)
		return ship.Noop(shipSymbol)
	}
	rt, ok := d.wh.Runtime(shipSymbol)
	if !ok {
		d.logger.Warn("dispatcher: missing runtime", "ship", shipSymbol)
		return ship.Noop(shipSymbol)
	}

	now := d.clock.Now()
	d.logger.Debug("dispatcher: deciding",
		"ship", shipSymbol, "runtime_state", rt.State, "nav_status", sh.Nav.Status,
		"fuel", sh.Fuel.Current, "cargo", sh.Cargo.Units)

	switch rt.State {
	case ship.StateIdle:
		return d.decideIdle(sh, rt, now)
	case ship.StateNavigating:
		return d.decideNavigating(sh, rt, now)
	case ship.StateMining:
		return d.decideMining(sh, rt)
	default:
		return ship.Noop(shipSymbol)
	}
}

// ShipReadiness computes the priority a ship should be re-enqueued under:
// the later of its explicit next wakeup (if set) and now, otherwise the
// later of route arrival / cooldown expiration and now.
func (d *Dispatcher) ShipReadiness(shipSymbol string) time.Time {
	now := d.clock.Now()
	rt, ok := d.wh.Runtime(shipSymbol)
	if ok && rt.HasWakeup() {
		return maxTime(rt.NextWakeup, now)
	}
	sh, ok := d.wh.Ship(shipSymbol)
	if !ok {
		return now
	}
	candidate := now
	if sh.Nav.Route != nil {
		candidate = maxTime(candidate, sh.Nav.Route.Arrival)
	}
	if !sh.Cooldown.IsZero() {
		candidate = maxTime(candidate, sh.Cooldown.Expiration)
	}
	return candidate
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// effectivelyInTransit treats a ship as still in transit only while now is
// before its cached route arrival, even though the cached nav.Status field
// (set from the navigate response at departure time) still reads
// IN_TRANSIT until the next API call refreshes it. Without this the
// dispatcher could never observe "arrived" without an extra GET that would
// burn rate-limit budget for no new information.
func effectivelyInTransit(sh *ship.Ship, now time.Time) bool {
	if sh.Nav.Status != ship.NavStatusInTransit {
		return false
	}
	if sh.Nav.Route == nil {
		return false
	}
	return now.Before(sh.Nav.Route.Arrival)
}
