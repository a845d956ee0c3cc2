// Package market models marketplace snapshots and the append-only history
// of observed good prices that backs best-price lookups.
package market

import (
	"fmt"
	"time"
)

// TradeGood is one tradeable good's current state at a marketplace.
type TradeGood struct {
	Symbol        string
	PurchasePrice int
	SellPrice     int
	TradeVolume   int
	Supply        string
	Activity      string
}

// Snapshot is the latest known market state at a waypoint — only one is
// retained per waypoint in the warehouse.
type Snapshot struct {
	SystemSymbol   string
	WaypointSymbol string
	SeenAt         time.Time
	TradeGoods     []TradeGood
}

func NewSnapshot(systemSymbol, waypointSymbol string, goods []TradeGood, seenAt time.Time) *Snapshot {
	return &Snapshot{
		SystemSymbol:   systemSymbol,
		WaypointSymbol: waypointSymbol,
		SeenAt:         seenAt,
		TradeGoods:     goods,
	}
}

func (s *Snapshot) Good(symbol string) (TradeGood, bool) {
	for _, g := range s.TradeGoods {
		if g.Symbol == symbol {
			return g, true
		}
	}
	return TradeGood{}, false
}

// SellsFuelAt returns the purchase price fuel sells for at this snapshot,
// or 0 if fuel is not sold here. The dispatcher's REFUEL gate reads this.
func (s *Snapshot) SellsFuelAt() int {
	if g, ok := s.Good("FUEL"); ok {
		return g.PurchasePrice
	}
	return 0
}

// Observation is one append-only, timestamped sample of a good's price at a
// waypoint. The in-memory store and the persistent store both keep these;
// only the latest is promoted into a Snapshot.
type Observation struct {
	Ts             time.Time
	SystemSymbol   string
	WaypointSymbol string
	Good           string
	BuyPrice       int
	SellPrice      int
	TradeVolume    int
	Supply         string
	Activity       string
}

func (o Observation) String() string {
	return fmt.Sprintf("%s@%s buy=%d sell=%d", o.Good, o.WaypointSymbol, o.BuyPrice, o.SellPrice)
}
