package dispatcher

import "github.com/ionfleet/fleetctl/internal/domain/ship"

// decideMining implements the MINING state's decision branch:
// EXTRACT_MINERALS while the hold has room, NOOP once it is full. The
// executor sets MINING after every extraction, including one that fills the
// hold, and this branch does not move the ship back to IDLE.
func (d *Dispatcher) decideMining(sh *ship.Ship, rt *ship.Runtime) ship.Decision {
	if !sh.Cargo.IsFull() {
		return ship.Decision{Ship: sh.Symbol, Action: ship.ActionExtractMinerals}
	}
	return ship.Noop(sh.Symbol)
}
