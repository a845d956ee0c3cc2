package executor

import (
	"context"

	"github.com/google/uuid"

	"github.com/ionfleet/fleetctl/internal/domain/ledger"
	"github.com/ionfleet/fleetctl/internal/domain/ship"
	"github.com/ionfleet/fleetctl/internal/metrics"
)

// executeRefuel implements the REFUEL action: ensure DOCKED, refuel, apply
// the response, log a BUY transaction, and return to IDLE.
func (e *Executor) executeRefuel(ctx context.Context, decision ship.Decision) Result {
	sh, ok := e.wh.Ship(decision.Ship)
	if !ok {
		e.backoff(decision.Ship, "refuel: ship not in warehouse")
		return ResultRetryable
	}

	if sh.Nav.Status != ship.NavStatusDocked {
		if _, err := e.client.DockShip(ctx, decision.Ship); err != nil {
			return e.classifyError(decision.Ship, err)
		}
		sh.Nav.Status = ship.NavStatusDocked
	}

	resp, err := e.client.RefuelShip(ctx, decision.Ship, nil)
	if err != nil {
		return e.classifyError(decision.Ship, err)
	}

	sh.Fuel.Current = resp.Fuel.Current
	sh.Fuel.Capacity = resp.Fuel.Capacity
	e.wh.Agent().SetCredits(resp.Agent.Credits)

	tx := ledger.Transaction{
		Ts:           e.clock.Now(),
		Ship:         decision.Ship,
		Waypoint:     sh.Nav.WaypointSymbol,
		Action:       ledger.ActionBuy,
		Symbol:       "FUEL",
		Units:        resp.Transaction.Units,
		UnitPrice:    resp.Transaction.PricePerUnit,
		TotalPrice:   resp.Transaction.TotalPrice,
		CreditsAfter: resp.Agent.Credits,
	}
	e.recordTransaction(tx)

	rt, ok := e.wh.Runtime(decision.Ship)
	if ok {
		rt.State = ship.StateIdle
	}
	e.logger.Info("executor: refueled", "ship", decision.Ship, "units", resp.Transaction.Units, "total_price", resp.Transaction.TotalPrice)
	return ResultOK
}

// recordTransaction persists tx to the store and the human-readable trade
// log, and pushes financial metrics.
func (e *Executor) recordTransaction(tx ledger.Transaction) {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if err := e.store.InsertTransaction(tx); err != nil {
		e.logger.Error("executor: persist transaction failed", "ship", tx.Ship, "error", err)
	}
	if e.tradeLog != nil {
		e.tradeLog.RecordTransaction(tx)
	}
	category := "fuel"
	if tx.Symbol != "FUEL" {
		category = "cargo"
	}
	amount := tx.TotalPrice
	if tx.Action == ledger.ActionBuy {
		amount = -amount
	}
	metrics.RecordTransaction(string(tx.Action), category, amount, tx.CreditsAfter)
}
