package main

import (
	"github.com/spf13/cobra"
)

var configPath string

// NewRootCommand builds the fleetctl command tree: run starts the
// controller loop, ships/markets/ledger are read-only inspection commands,
// and contract/shipyard perform one-off mutating calls outside the
// scheduler's decision loop.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "fleetctl",
		Short: "Autonomous fleet controller for a remote turn-based trading game",
		Long: `fleetctl drives a fleet of ships against the game API: excavators mine and
sell, satellites probe markets, and the scheduler keeps every ship's next
action queued by readiness.

Examples:
  fleetctl run
  fleetctl ships
  fleetctl markets
  fleetctl ledger --since 24h
  fleetctl contract negotiate --ship PROBE-1
  fleetctl shipyard purchase --waypoint X1-GZ7-A1 --type SHIP_MINING_DRONE`,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: search ./config.yaml, ./configs, /etc/fleetctl)")

	root.AddCommand(newRunCommand())
	root.AddCommand(newShipsCommand())
	root.AddCommand(newMarketsCommand())
	root.AddCommand(newLedgerCommand())
	root.AddCommand(newContractCommand())
	root.AddCommand(newShipyardCommand())

	return root
}
