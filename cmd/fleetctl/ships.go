package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newShipsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ships",
		Short: "List the fleet's current navigation and cargo status",
		Long: `Fetches the live ship list from the game API and prints one row per
ship. This command only ever reads; it never mutates ship state.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShips()
		},
	}
}

func runShips() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := openLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	client := newTransportClient(cfg, logger)

	ships, err := fetchAllShips(context.Background(), client)
	if err != nil {
		return fmt.Errorf("list ships: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "SHIP\tROLE\tSTATUS\tWAYPOINT\tFUEL\tCARGO")
	for _, sh := range ships {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d\t%d/%d\n",
			sh.Symbol, sh.Role, sh.Nav.Status, sh.Nav.WaypointSymbol,
			sh.Fuel.Current, sh.Fuel.Capacity, sh.Cargo.Units, sh.CargoCapacity)
	}
	return w.Flush()
}
