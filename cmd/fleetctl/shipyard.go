package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// newShipyardCommand wraps the one mutating shipyard operation (purchase)
// the CLI exposes; listing a shipyard's offerings is read-only and would
// belong alongside ships/markets, but no running fleet member is guaranteed
// to be parked at a shipyard waypoint outside the scheduler's own cadence,
// so purchase is issued directly against the API here.
func newShipyardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shipyard",
		Short: "Purchase a ship at a shipyard waypoint",
	}
	cmd.AddCommand(newShipyardPurchaseCommand())
	return cmd
}

func newShipyardPurchaseCommand() *cobra.Command {
	var (
		waypoint string
		shipType string
	)
	cmd := &cobra.Command{
		Use:   "purchase",
		Short: "Purchase a ship of the given type at a waypoint with a shipyard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := openLogger(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			client := newTransportClient(cfg, logger)

			resp, err := client.PurchaseShip(context.Background(), shipType, waypoint)
			if err != nil {
				return fmt.Errorf("purchase ship: %w", err)
			}
			fmt.Printf("purchased %s (%s) for %d credits, agent now has %d credits\n",
				resp.Ship.Symbol, shipType, resp.Transaction.TotalPrice, resp.Agent.Credits)
			return nil
		},
	}
	cmd.Flags().StringVar(&waypoint, "waypoint", "", "shipyard waypoint symbol (required)")
	cmd.Flags().StringVar(&shipType, "type", "", "ship type to purchase, e.g. SHIP_MINING_DRONE (required)")
	cmd.MarkFlagRequired("waypoint")
	cmd.MarkFlagRequired("type")
	return cmd
}
