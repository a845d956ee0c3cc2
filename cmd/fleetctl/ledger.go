package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ionfleet/fleetctl/internal/domain/ledger"
	"github.com/ionfleet/fleetctl/internal/store"
)

func newLedgerCommand() *cobra.Command {
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "List transactions and summarize cash flow",
		Long: `Reads persisted transactions and prints each one alongside a cash-flow
summary (total bought, total sold, net) over the window.

Example:
  fleetctl ledger --since 24h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedger(since)
		},
	}
	cmd.Flags().DurationVar(&since, "since", 24*time.Hour, "how far back to report")
	return cmd
}

func runLedger(since time.Duration) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close(db)
	st := store.New(db, nil, cfg.Database.RetentionDays)

	txs, err := st.FetchTransactions(time.Now().Add(-since))
	if err != nil {
		return fmt.Errorf("fetch transactions: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "TS\tACTION\tSHIP\tWAYPOINT\tGOOD\tUNITS\tUNIT\tTOTAL\tCREDITS")
	for _, tx := range txs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			tx.Ts.Format(time.RFC3339), tx.Action, tx.Ship, tx.Waypoint, tx.Symbol,
			tx.Units, tx.UnitPrice, tx.TotalPrice, tx.CreditsAfter)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	cf := ledger.Summarize(txs)
	fmt.Printf("\nbought=%d sold=%d net=%d\n", cf.TotalBought, cf.TotalSold, cf.Net)
	return nil
}
