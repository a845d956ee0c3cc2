package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ionfleet/fleetctl/internal/store"
)

func newMarketsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "markets",
		Short: "Show the most recently observed price for every good at every waypoint",
		Long: `Reads market_observations from the persistent store and prints, per
waypoint, the latest observed price for each good the running fleet has
visited. This command only reads; the observations themselves are written
by the scheduler's PROBE_VISIT_MARKET action.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMarkets()
		},
	}
}

func runMarkets() error {
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

	prices, err := st.FetchLatestPricesByWaypoint()
	if err != nil {
		return fmt.Errorf("fetch latest prices: %w", err)
	}

	waypoints := make([]string, 0, len(prices))
	for wp := range prices {
		waypoints = append(waypoints, wp)
	}
	sort.Strings(waypoints)

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "WAYPOINT\tGOOD\tBUY\tSELL\tAS OF")
	for _, wp := range waypoints {
		goods := prices[wp].Goods
		sort.Slice(goods, func(i, j int) bool { return goods[i].Good < goods[j].Good })
		for _, g := range goods {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", wp, g.Good, g.BuyPrice, g.SellPrice, g.Ts)
		}
	}
	return w.Flush()
}
