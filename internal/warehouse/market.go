package warehouse

import (
	"time"

	"github.com/ionfleet/fleetctl/internal/domain/market"
	"github.com/ionfleet/fleetctl/internal/domain/shared"
	"github.com/ionfleet/fleetctl/internal/store"
)

// UpsertMarketSnapshot replaces the cached snapshot for a waypoint. When a
// previous snapshot existed, it logs one INFO line per good whose price
// changed; otherwise it logs a single "updated" line.
func (w *Warehouse) UpsertMarketSnapshot(snapshot *market.Snapshot) {
	w.mu.Lock()
	prev, hadPrev := w.marketByWaypoint[snapshot.WaypointSymbol]
	w.marketByWaypoint[snapshot.WaypointSymbol] = snapshot
	w.mu.Unlock()

	if !hadPrev {
		w.logger.Info("market snapshot updated", "waypoint", snapshot.WaypointSymbol, "goods", len(snapshot.TradeGoods))
		return
	}

	for _, good := range snapshot.TradeGoods {
		prevGood, ok := prev.Good(good.Symbol)
		if !ok || prevGood.PurchasePrice != good.PurchasePrice || prevGood.SellPrice != good.SellPrice {
			w.logger.Info("market price changed",
				"waypoint", snapshot.WaypointSymbol, "good", good.Symbol,
				"buy_price", good.PurchasePrice, "sell_price", good.SellPrice)
		}
	}
}

// RecordGoodObservation appends to the in-memory observation history and
// persists the row to the embedded store.
func (w *Warehouse) RecordGoodObservation(o market.Observation) error {
	w.mu.Lock()
	w.observationsByGood[o.Good] = append(w.observationsByGood[o.Good], o)
	w.mu.Unlock()

	if w.recorder == nil {
		return nil
	}
	return w.recorder.InsertMarketObservation(o)
}

// LoadMarketDataFromStorage rebuilds market_prices_by_waypoint from the
// latest-per-good rows in the persistent store and seeds one observation
// per good, so a restarted process doesn't start with an empty cache.
func (w *Warehouse) LoadMarketDataFromStorage(latest map[string]store.WaypointPrices) {
	for waypoint, wp := range latest {
		goods := make([]market.TradeGood, 0, len(wp.Goods))
		var newestTs time.Time
		for _, g := range wp.Goods {
			goods = append(goods, market.TradeGood{
				Symbol:        g.Good,
				PurchasePrice: g.BuyPrice,
				SellPrice:     g.SellPrice,
			})
			ts, err := shared.ParseISO(g.Ts)
			if err != nil {
				continue
			}
			if ts.After(newestTs) {
				newestTs = ts
			}
			obs := market.Observation{
				Ts: ts, SystemSymbol: wp.System, WaypointSymbol: waypoint,
				Good: g.Good, BuyPrice: g.BuyPrice, SellPrice: g.SellPrice,
			}
			w.mu.Lock()
			w.observationsByGood[g.Good] = append(w.observationsByGood[g.Good], obs)
			w.mu.Unlock()
		}
		if len(goods) == 0 {
			continue
		}
		snapshot := market.NewSnapshot(wp.System, waypoint, goods, newestTs)
		w.mu.Lock()
		w.marketByWaypoint[waypoint] = snapshot
		w.mu.Unlock()
	}
}

// GetBestSellObservation returns the observation of good with the highest
// sellPrice seen so far, the basis for the dispatcher's unworthyCargoSymbols
// threshold comparison.
func (w *Warehouse) GetBestSellObservation(good string) (market.Observation, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	obs := w.observationsByGood[good]
	if len(obs) == 0 {
		return market.Observation{}, false
	}
	best := obs[0]
	for _, o := range obs[1:] {
		if o.SellPrice > best.SellPrice {
			best = o
		}
	}
	return best, true
}
