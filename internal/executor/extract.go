package executor

import (
	"context"
	"time"

	"github.com/ionfleet/fleetctl/internal/domain/ship"
)

const extractFallbackWakeup = 5 * time.Second

// executeExtract implements the EXTRACT_MINERALS action: call extract at
// the ship's current waypoint, apply the returned cooldown and cargo, and
// set runtime state=MINING with next wakeup at cooldown expiry.
func (e *Executor) executeExtract(ctx context.Context, decision ship.Decision) Result {
	sh, ok := e.wh.Ship(decision.Ship)
	if !ok {
		e.backoff(decision.Ship, "extract: ship not in warehouse")
		return ResultRetryable
	}

	resp, err := e.client.ExtractResources(ctx, decision.Ship)
	if err != nil {
		return e.classifyError(decision.Ship, err)
	}

	sh.Cooldown = applyCooldownFields(resp.Cooldown.TotalSeconds, resp.Cooldown.RemainingSeconds, resp.Cooldown.Expiration)
	sh.Cargo = applyCargo(sh.Cargo.Capacity, resp.Cargo.Units, resp.Cargo.Inventory)

	rt, ok := e.wh.Runtime(decision.Ship)
	if ok {
		rt.State = ship.StateMining
		rt.NextWakeup = e.extractWakeup(sh.Cooldown)
	}

	e.logger.Info("executor: extracted",
		"ship", decision.Ship, "yield_symbol", resp.Extraction.Yield.Symbol,
		"yield_units", resp.Extraction.Yield.Units, "cargo_units", sh.Cargo.Units)
	return ResultOK
}

// extractWakeup picks the next wakeup for a freshly-extracted ship:
// cooldown expiration if known, else now+remainingSeconds, else a 5s
// fallback.
func (e *Executor) extractWakeup(cd ship.Cooldown) time.Time {
	now := e.clock.Now()
	if !cd.Expiration.IsZero() {
		return cd.Expiration
	}
	if cd.RemainingSeconds > 0 {
		return now.Add(time.Duration(cd.RemainingSeconds) * time.Second)
	}
	return now.Add(extractFallbackWakeup)
}
