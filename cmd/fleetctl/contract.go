package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ionfleet/fleetctl/internal/domain/contract"
	"github.com/ionfleet/fleetctl/internal/transport"
)

// newContractCommand groups one-off contract operations. These run
// independently of the scheduler: the dispatcher's decision table only
// reasons about mining and market readiness, so contract negotiation and
// delivery are an operator-driven side-channel against the same fleet
// rather than something the ship loop decides on its own.
func newContractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Negotiate, accept, deliver, and fulfill contracts",
	}
	cmd.AddCommand(newContractNegotiateCommand())
	cmd.AddCommand(newContractAcceptCommand())
	cmd.AddCommand(newContractDeliverCommand())
	cmd.AddCommand(newContractFulfillCommand())
	return cmd
}

func newContractClient() (*transport.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := openLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return newTransportClient(cfg, logger), nil
}

func contractFromResponse(resp *transport.ContractResponse) (*contract.Contract, error) {
	c, err := contract.NewContract(resp.ID, resp.FactionSymbol, resp.Type)
	if err != nil {
		return nil, err
	}
	c.Accepted = resp.Accepted
	c.Fulfilled = resp.Fulfilled
	c.PaymentOnAccept = resp.Terms.Payment.OnAccepted
	c.PaymentOnFulfill = resp.Terms.Payment.OnFulfilled
	for _, d := range resp.Terms.Deliver {
		c.Deliveries = append(c.Deliveries, contract.Delivery{
			TradeSymbol:       d.TradeSymbol,
			DestinationSymbol: d.DestinationSymbol,
			UnitsRequired:     d.UnitsRequired,
			UnitsFulfilled:    d.UnitsFulfilled,
		})
	}
	return c, nil
}

func printContract(c *contract.Contract) {
	fmt.Printf("contract %s (%s, faction %s)\n", c.ID, c.Type, c.FactionSymbol)
	fmt.Printf("  accepted=%v fulfilled=%v payment_on_accept=%d payment_on_fulfill=%d\n",
		c.Accepted, c.Fulfilled, c.PaymentOnAccept, c.PaymentOnFulfill)
	for _, d := range c.Deliveries {
		fmt.Printf("  deliver %s to %s: %d/%d\n", d.TradeSymbol, d.DestinationSymbol, d.UnitsFulfilled, d.UnitsRequired)
	}
}

func newContractNegotiateCommand() *cobra.Command {
	var shipSymbol string
	cmd := &cobra.Command{
		Use:   "negotiate",
		Short: "Negotiate a new contract using an idle ship",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newContractClient()
			if err != nil {
				return err
			}
			resp, err := client.NegotiateContract(context.Background(), shipSymbol)
			if err != nil {
				return fmt.Errorf("negotiate contract: %w", err)
			}
			c, err := contractFromResponse(resp)
			if err != nil {
				return err
			}
			printContract(c)
			return nil
		},
	}
	cmd.Flags().StringVar(&shipSymbol, "ship", "", "ship to negotiate through (required)")
	cmd.MarkFlagRequired("ship")
	return cmd
}

func newContractAcceptCommand() *cobra.Command {
	var contractID string
	cmd := &cobra.Command{
		Use:   "accept",
		Short: "Accept a negotiated contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newContractClient()
			if err != nil {
				return err
			}
			resp, err := client.AcceptContract(context.Background(), contractID)
			if err != nil {
				return fmt.Errorf("accept contract: %w", err)
			}
			c, err := contractFromResponse(resp)
			if err != nil {
				return err
			}
			printContract(c)
			return nil
		},
	}
	cmd.Flags().StringVar(&contractID, "contract", "", "contract ID (required)")
	cmd.MarkFlagRequired("contract")
	return cmd
}

func newContractDeliverCommand() *cobra.Command {
	var (
		contractID  string
		shipSymbol  string
		tradeSymbol string
		units       int
	)
	cmd := &cobra.Command{
		Use:   "deliver",
		Short: "Deliver cargo towards a contract's required goods",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newContractClient()
			if err != nil {
				return err
			}
			resp, err := client.DeliverContract(context.Background(), contractID, shipSymbol, tradeSymbol, units)
			if err != nil {
				return fmt.Errorf("deliver contract: %w", err)
			}
			c, err := contractFromResponse(resp)
			if err != nil {
				return err
			}
			printContract(c)
			return nil
		},
	}
	cmd.Flags().StringVar(&contractID, "contract", "", "contract ID (required)")
	cmd.Flags().StringVar(&shipSymbol, "ship", "", "ship carrying the cargo (required)")
	cmd.Flags().StringVar(&tradeSymbol, "good", "", "trade good symbol (required)")
	cmd.Flags().IntVar(&units, "units", 0, "units to deliver (required)")
	cmd.MarkFlagRequired("contract")
	cmd.MarkFlagRequired("ship")
	cmd.MarkFlagRequired("good")
	cmd.MarkFlagRequired("units")
	return cmd
}

func newContractFulfillCommand() *cobra.Command {
	var contractID string
	cmd := &cobra.Command{
		Use:   "fulfill",
		Short: "Fulfill a contract whose deliveries are complete",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newContractClient()
			if err != nil {
				return err
			}
			resp, err := client.FulfillContract(context.Background(), contractID)
			if err != nil {
				return fmt.Errorf("fulfill contract: %w", err)
			}
			c, err := contractFromResponse(resp)
			if err != nil {
				return err
			}
			printContract(c)
			return nil
		},
	}
	cmd.Flags().StringVar(&contractID, "contract", "", "contract ID (required)")
	cmd.MarkFlagRequired("contract")
	return cmd
}
