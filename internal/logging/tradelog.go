package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ionfleet/fleetctl/internal/domain/ledger"
	"github.com/ionfleet/fleetctl/internal/domain/shared"
)

// TradeLog appends human-readable lines to the operator-facing trade and
// credits log files, alongside the persistent store's transaction rows.
type TradeLog struct {
	mu         sync.Mutex
	tradeFile  *os.File
	creditFile *os.File
}

// OpenTradeLog opens (creating parent directories as needed) the trade and
// credits log files at the given paths.
func OpenTradeLog(tradePath, creditsPath string) (*TradeLog, error) {
	tradeFile, err := openAppend(tradePath)
	if err != nil {
		return nil, fmt.Errorf("open trade log: %w", err)
	}
	creditFile, err := openAppend(creditsPath)
	if err != nil {
		tradeFile.Close()
		return nil, fmt.Errorf("open credits log: %w", err)
	}
	return &TradeLog{tradeFile: tradeFile, creditFile: creditFile}, nil
}

func openAppend(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// RecordTransaction writes one tab-separated line to trades.log (ts,
// ACTION, ship, waypoint, good, units, unit price, total) and one to
// credits.log (ts, credits).
func (l *TradeLog) RecordTransaction(tx ledger.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.tradeFile, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
		shared.ISOString(tx.Ts), tx.Action, tx.Ship, tx.Waypoint, tx.Symbol, tx.Units, tx.UnitPrice, tx.TotalPrice)

	fmt.Fprintf(l.creditFile, "%s\t%d\n", shared.ISOString(tx.Ts), tx.CreditsAfter)
}

func (l *TradeLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	err1 := l.tradeFile.Close()
	err2 := l.creditFile.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
