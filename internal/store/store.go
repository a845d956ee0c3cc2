package store

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/ionfleet/fleetctl/internal/domain/ledger"
	"github.com/ionfleet/fleetctl/internal/domain/market"
	"github.com/ionfleet/fleetctl/internal/domain/shared"
)

const defaultRetentionDays = 2

// Store serializes writes behind a single process-wide mutex; WAL mode lets
// concurrent readers proceed without blocking on it.
type Store struct {
	db            *gorm.DB
	mu            sync.Mutex
	clock         shared.Clock
	retention     time.Duration
	lastRetention time.Time
}

func New(db *gorm.DB, clock shared.Clock, retentionDays int) *Store {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &Store{db: db, clock: clock, retention: time.Duration(retentionDays) * 24 * time.Hour}
}

// InsertMarketObservation appends one observation row and opportunistically
// runs retention cleanup.
func (s *Store) InsertMarketObservation(o market.Observation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := MarketObservationModel{
		Ts:          formatTs(o.Ts),
		System:      o.SystemSymbol,
		Waypoint:    o.WaypointSymbol,
		Good:        o.Good,
		BuyPrice:    float64(o.BuyPrice),
		SellPrice:   float64(o.SellPrice),
		TradeVolume: o.TradeVolume,
		Supply:      o.Supply,
		Activity:    o.Activity,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return fmt.Errorf("insert market observation: %w", err)
	}
	s.runRetentionLocked()
	return nil
}

// InsertTransaction appends one transaction row and opportunistically runs
// retention cleanup.
func (s *Store) InsertTransaction(tx ledger.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := TransactionModel{
		TxID:         tx.ID,
		Ts:           formatTs(tx.Ts),
		Ship:         tx.Ship,
		Waypoint:     tx.Waypoint,
		Action:       string(tx.Action),
		Symbol:       tx.Symbol,
		Units:        tx.Units,
		UnitPrice:    float64(tx.UnitPrice),
		TotalPrice:   float64(tx.TotalPrice),
		CreditsAfter: tx.CreditsAfter,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	s.runRetentionLocked()
	return nil
}

// runRetentionLocked deletes rows older than the retention window, at most
// once per hour. Caller must hold s.mu.
func (s *Store) runRetentionLocked() {
	now := s.clock.Now()
	if !s.lastRetention.IsZero() && now.Sub(s.lastRetention) < time.Hour {
		return
	}
	s.lastRetention = now
	cutoff := formatTs(now.Add(-s.retention))
	s.db.Where("ts < ?", cutoff).Delete(&MarketObservationModel{})
	s.db.Where("ts < ?", cutoff).Delete(&TransactionModel{})
}

// WaypointGood is one good row inside FetchLatestPricesByWaypoint's result.
type WaypointGood struct {
	Good      string
	BuyPrice  int
	SellPrice int
	Ts        string
}

// WaypointPrices is the per-waypoint value of FetchLatestPricesByWaypoint's
// result map.
type WaypointPrices struct {
	System string
	Goods  []WaypointGood
}

// FetchLatestPricesByWaypoint returns, for every (waypoint, good) pair, the
// most recently observed row via a correlated max(ts) subquery, keyed by
// waypoint.
func (s *Store) FetchLatestPricesByWaypoint() (map[string]WaypointPrices, error) {
	var rows []struct {
		System    string
		Waypoint  string
		Good      string
		BuyPrice  float64
		SellPrice float64
		Ts        string
	}

	err := s.db.Raw(`
		SELECT o.system AS system, o.waypoint AS waypoint, o.good AS good,
		       o.buy_price AS buy_price, o.sell_price AS sell_price, o.ts AS ts
		FROM market_observations o
		INNER JOIN (
			SELECT waypoint, good, MAX(ts) AS max_ts
			FROM market_observations
			GROUP BY waypoint, good
		) latest ON o.waypoint = latest.waypoint
		        AND o.good = latest.good
		        AND o.ts = latest.max_ts
	`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch latest prices by waypoint: %w", err)
	}

	result := make(map[string]WaypointPrices)
	for _, r := range rows {
		wp := result[r.Waypoint]
		wp.System = r.System
		wp.Goods = append(wp.Goods, WaypointGood{
			Good:      r.Good,
			BuyPrice:  int(r.BuyPrice),
			SellPrice: int(r.SellPrice),
			Ts:        r.Ts,
		})
		result[r.Waypoint] = wp
	}
	return result, nil
}

// FetchTransactions returns transactions at or after since, oldest first,
// for the ledger CLI's transaction listing and cash-flow summary.
func (s *Store) FetchTransactions(since time.Time) ([]ledger.Transaction, error) {
	var rows []TransactionModel
	err := s.db.Where("ts >= ?", formatTs(since)).Order("ts asc").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	txs := make([]ledger.Transaction, 0, len(rows))
	for _, r := range rows {
		ts, err := shared.ParseISO(r.Ts)
		if err != nil {
			return nil, fmt.Errorf("parse transaction ts %q: %w", r.Ts, err)
		}
		txs = append(txs, ledger.Transaction{
			ID:           r.TxID,
			Ts:           ts,
			Ship:         r.Ship,
			Waypoint:     r.Waypoint,
			Action:       ledger.Action(r.Action),
			Symbol:       r.Symbol,
			Units:        r.Units,
			UnitPrice:    int(r.UnitPrice),
			TotalPrice:   int(r.TotalPrice),
			CreditsAfter: r.CreditsAfter,
		})
	}
	return txs, nil
}
