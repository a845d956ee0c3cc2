// Package store is the embedded SQL persistence layer: append-only market
// observations and trade transactions, with hourly-throttled retention
// cleanup.
package store

import "time"

// MarketObservationModel is one append-only sample of a good's price at a
// waypoint.
type MarketObservationModel struct {
	ID          uint   `gorm:"primaryKey"`
	Ts          string `gorm:"index:idx_obs_ts;index:idx_obs_good,priority:2;index:idx_obs_waypoint,priority:2;index:idx_obs_waypoint_good"`
	System      string
	Waypoint    string `gorm:"index:idx_obs_waypoint,priority:1;index:idx_obs_waypoint_good"`
	Good        string `gorm:"index:idx_obs_good,priority:1;index:idx_obs_waypoint_good"`
	BuyPrice    float64
	SellPrice   float64
	TradeVolume int
	Supply      string
	Activity    string
}

func (MarketObservationModel) TableName() string { return "market_observations" }

// TransactionModel is one append-only buy or sell.
type TransactionModel struct {
	ID           uint   `gorm:"primaryKey"`
	TxID         string `gorm:"column:tx_id;uniqueIndex"`
	Ts           string `gorm:"index:idx_tx_ship,priority:2"`
	Ship         string `gorm:"index:idx_tx_ship,priority:1"`
	Waypoint     string
	Action       string
	Symbol       string
	Units        int
	UnitPrice    float64
	TotalPrice   float64
	CreditsAfter int
}

func (TransactionModel) TableName() string { return "transactions" }

// formatTs renders the UTC millisecond ISO-8601 string format store rows
// are keyed by in the TEXT columns; rows are read back with shared.ParseISO.
func formatTs(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
