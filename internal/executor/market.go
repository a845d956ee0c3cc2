package executor

import (
	"context"
	"time"

	"github.com/ionfleet/fleetctl/internal/domain/ledger"
	"github.com/ionfleet/fleetctl/internal/domain/market"
	"github.com/ionfleet/fleetctl/internal/domain/shared"
	"github.com/ionfleet/fleetctl/internal/domain/ship"
	"github.com/ionfleet/fleetctl/internal/metrics"
)

// executeProbeVisitMarket implements the PROBE_VISIT_MARKET action:
// navigate to the claimed target if not yet there, or visit the market
// and, for a selling excavator, run the dock-and-sell-all flow.
func (e *Executor) executeProbeVisitMarket(ctx context.Context, decision ship.Decision) Result {
	sh, ok := e.wh.Ship(decision.Ship)
	if !ok {
		e.backoff(decision.Ship, "probe_visit_market: ship not in warehouse")
		return ResultRetryable
	}
	rt, ok := e.wh.Runtime(decision.Ship)
	if !ok {
		e.backoff(decision.Ship, "probe_visit_market: missing runtime")
		return ResultRetryable
	}

	target := rt.Context.TargetMarket
	if target == "" {
		target = decision.Destination
	}
	if target == "" {
		e.backoff(decision.Ship, "probe_visit_market: no target market set")
		return ResultRetryable
	}

	if sh.Nav.WaypointSymbol == target && sh.Nav.Status != ship.NavStatusInTransit {
		return e.visitMarketAtCurrentWaypoint(ctx, sh, rt)
	}

	return e.navigateToMarketTarget(ctx, sh, rt, target)
}

// visitMarketAtCurrentWaypoint fetches the market at sh's current waypoint,
// records observations, runs the excavator sell flow when selling, and
// returns the runtime to IDLE.
func (e *Executor) visitMarketAtCurrentWaypoint(ctx context.Context, sh *ship.Ship, rt *ship.Runtime) Result {
	if err := e.fetchAndRecordMarket(ctx, sh.Nav.SystemSymbol, sh.Nav.WaypointSymbol); err != nil {
		return e.classifyError(sh.Symbol, err)
	}

	if sh.Role == ship.RoleExcavator && rt.Context.Selling {
		result := e.dockAndSellAll(ctx, sh, rt)
		if result != ResultOK {
			return result
		}
		if sh.Cargo.Units == 0 {
			rt.Context.Selling = false
			rt.Context.RemainingCargoSymbols = nil
		}
	}

	rt.Context.ClearTarget()
	rt.Context.Destination = ship.DestinationNone
	rt.State = ship.StateIdle
	rt.NextWakeup = time.Time{}
	return ResultOK
}

// navigateToMarketTarget moves sh toward target: a warp (falling back to a
// jump) across systems, or an in-system CRUISE-then-DRIFT navigate,
// matching NAVIGATE_TO_MINE's fallback shape.
func (e *Executor) navigateToMarketTarget(ctx context.Context, sh *ship.Ship, rt *ship.Runtime, target string) Result {
	origin, ok := e.currentWaypointRef(sh.Nav.SystemSymbol, sh.Nav.WaypointSymbol)
	if !ok {
		e.backoff(sh.Symbol, "probe_visit_market: unknown origin coordinates")
		return ResultRetryable
	}

	targetSystem := shared.SystemSymbolOf(target)
	if targetSystem != sh.Nav.SystemSymbol {
		if e.tryWarpOrJump(ctx, sh, rt, target) {
			return ResultOK
		}
		e.backoff(sh.Symbol, "probe_visit_market: warp and jump both failed")
		return ResultRetryable
	}

	targetRef, ok := origin, true
	if s, sok := e.wh.System(sh.Nav.SystemSymbol); sok {
		if ref, rok := s.WaypointBySymbol(target); rok {
			targetRef, ok = ref, true
		} else {
			ok = false
		}
	}
	if !ok {
		e.backoff(sh.Symbol, "probe_visit_market: unknown target coordinates")
		return ResultRetryable
	}

	if e.tryNavigate(ctx, sh.Symbol, sh, origin, *targetRef, ship.DestinationProbeMarket) {
		return ResultOK
	}
	e.backoff(sh.Symbol, "probe_visit_market: navigate failed")
	return ResultRetryable
}

// tryWarpOrJump attempts an inter-system warp, falling back to a jump.
func (e *Executor) tryWarpOrJump(ctx context.Context, sh *ship.Ship, rt *ship.Runtime, target string) bool {
	if resp, err := e.client.WarpShip(ctx, sh.Symbol, target); err == nil {
		route := routeFromWarpJumpResponse(sh.Nav.WaypointSymbol, resp)
		applyNav(sh, ship.NavStatusInTransit, sh.Nav.WaypointSymbol, route)
		sh.Fuel.Current = resp.Fuel.Current
		sh.Fuel.Capacity = resp.Fuel.Capacity
		rt.State = ship.StateNavigating
		rt.Context.Destination = ship.DestinationProbeMarket
		rt.NextWakeup = arrivalOrFallback(route, e.clock.Now(), navigateFallbackWakeup)
		e.logger.Info("executor: warped", "ship", sh.Symbol, "destination", target)
		return true
	} else {
		e.classifyError(sh.Symbol, err)
	}

	resp, err := e.client.JumpShip(ctx, sh.Symbol, target)
	if err != nil {
		e.classifyError(sh.Symbol, err)
		return false
	}
	applyNav(sh, ship.NavStatus(resp.Nav.Status), resp.Nav.WaypointSymbol, nil)
	sh.Cooldown = applyCooldownFields(resp.Cooldown.TotalSeconds, resp.Cooldown.RemainingSeconds, resp.Cooldown.Expiration)
	rt.State = ship.StateNavigating
	rt.Context.Destination = ship.DestinationProbeMarket
	rt.NextWakeup = e.extractWakeup(sh.Cooldown)
	e.logger.Info("executor: jumped", "ship", sh.Symbol, "destination", target)
	return true
}

// fetchAndRecordMarket gets the market at waypoint, upserts the snapshot
// and appends one observation per good.
func (e *Executor) fetchAndRecordMarket(ctx context.Context, systemSymbol, waypointSymbol string) error {
	resp, err := e.client.GetMarket(ctx, systemSymbol, waypointSymbol)
	if err != nil {
		return err
	}

	now := e.clock.Now()
	goods := make([]market.TradeGood, 0, len(resp.TradeGoods))
	for _, g := range resp.TradeGoods {
		goods = append(goods, market.TradeGood{
			Symbol: g.Symbol, PurchasePrice: g.PurchasePrice, SellPrice: g.SellPrice,
			TradeVolume: g.TradeVolume, Supply: g.Supply, Activity: g.Activity,
		})
	}
	e.wh.UpsertMarketSnapshot(market.NewSnapshot(systemSymbol, waypointSymbol, goods, now))

	for _, g := range goods {
		obs := market.Observation{
			Ts: now, SystemSymbol: systemSymbol, WaypointSymbol: waypointSymbol,
			Good: g.Symbol, BuyPrice: g.PurchasePrice, SellPrice: g.SellPrice,
			TradeVolume: g.TradeVolume, Supply: g.Supply, Activity: g.Activity,
		}
		if err := e.wh.RecordGoodObservation(obs); err != nil {
			e.logger.Error("executor: record observation failed", "waypoint", waypointSymbol, "good", g.Symbol, "error", err)
		}
	}
	return nil
}

// dockAndSellAll docks, sells every cargo symbol the market buys,
// best-effort refuels, then returns to orbit.
func (e *Executor) dockAndSellAll(ctx context.Context, sh *ship.Ship, rt *ship.Runtime) Result {
	if sh.Nav.Status != ship.NavStatusDocked {
		if _, err := e.client.DockShip(ctx, sh.Symbol); err != nil {
			return e.classifyError(sh.Symbol, err)
		}
		sh.Nav.Status = ship.NavStatusDocked
	}

	snap, ok := e.wh.MarketSnapshot(sh.Nav.WaypointSymbol)
	if !ok {
		e.backoff(sh.Symbol, "dock_and_sell_all: no market snapshot")
		return ResultRetryable
	}

	for _, symbol := range append([]string(nil), sh.Cargo.Symbols()...) {
		good, sellable := snap.Good(symbol)
		if !sellable || good.SellPrice <= 0 {
			continue
		}
		units := sh.Cargo.UnitsOf(symbol)
		if units <= 0 {
			continue
		}
		resp, err := e.client.SellCargo(ctx, sh.Symbol, symbol, units)
		if err != nil {
			e.logger.Warn("executor: sell failed", "ship", sh.Symbol, "symbol", symbol, "error", err)
			continue
		}
		sh.Cargo = applyCargo(sh.Cargo.Capacity, resp.Cargo.Units, resp.Cargo.Inventory)
		e.wh.Agent().SetCredits(resp.Agent.Credits)

		tx := ledger.Transaction{
			Ts: e.clock.Now(), Ship: sh.Symbol, Waypoint: sh.Nav.WaypointSymbol,
			Action: ledger.ActionSell, Symbol: symbol, Units: resp.Transaction.Units,
			UnitPrice: resp.Transaction.PricePerUnit, TotalPrice: resp.Transaction.TotalPrice,
			CreditsAfter: resp.Agent.Credits,
		}
		e.recordTransaction(tx)
		metrics.RecordTrade(symbol, good.PurchasePrice, good.SellPrice, resp.Transaction.Units)
		e.logger.Info("executor: sold cargo", "ship", sh.Symbol, "symbol", symbol, "units", resp.Transaction.Units, "total_price", resp.Transaction.TotalPrice)
	}

	if !sh.Fuel.IsFull() && snap.SellsFuelAt() > 0 {
		if resp, err := e.client.RefuelShip(ctx, sh.Symbol, nil); err == nil {
			sh.Fuel.Current = resp.Fuel.Current
			sh.Fuel.Capacity = resp.Fuel.Capacity
			e.wh.Agent().SetCredits(resp.Agent.Credits)
			tx := ledger.Transaction{
				Ts: e.clock.Now(), Ship: sh.Symbol, Waypoint: sh.Nav.WaypointSymbol,
				Action: ledger.ActionBuy, Symbol: "FUEL", Units: resp.Transaction.Units,
				UnitPrice: resp.Transaction.PricePerUnit, TotalPrice: resp.Transaction.TotalPrice,
				CreditsAfter: resp.Agent.Credits,
			}
			e.recordTransaction(tx)
		}
	}

	if _, err := e.client.OrbitShip(ctx, sh.Symbol); err != nil {
		e.logger.Warn("executor: return to orbit failed", "ship", sh.Symbol, "error", err)
	} else {
		sh.Nav.Status = ship.NavStatusInOrbit
	}
	return ResultOK
}
