// Package contract models accepted delivery contracts. Contracts are handled
// through the operator's `fleetctl contract` commands; the dispatcher does
// not act on them.
package contract

import "github.com/ionfleet/fleetctl/internal/domain/shared"

// Delivery is one required delivery line item of a contract.
type Delivery struct {
	TradeSymbol       string
	DestinationSymbol string
	UnitsRequired     int
	UnitsFulfilled    int
}

func (d Delivery) Remaining() int { return d.UnitsRequired - d.UnitsFulfilled }
func (d Delivery) IsComplete() bool { return d.UnitsFulfilled >= d.UnitsRequired }

// Contract is an accepted or negotiated delivery agreement with a faction.
type Contract struct {
	ID               string
	FactionSymbol    string
	Type             string
	Accepted         bool
	Fulfilled        bool
	PaymentOnAccept  int
	PaymentOnFulfill int
	Deliveries       []Delivery
}

func NewContract(id, factionSymbol, typ string) (*Contract, error) {
	if id == "" {
		return nil, shared.NewValidationError("id", "cannot be empty")
	}
	return &Contract{ID: id, FactionSymbol: factionSymbol, Type: typ}, nil
}

// IsComplete reports whether every delivery line item has been fulfilled.
func (c *Contract) IsComplete() bool {
	for _, d := range c.Deliveries {
		if !d.IsComplete() {
			return false
		}
	}
	return true
}

// RecordDelivery applies delivered units to the matching line item.
func (c *Contract) RecordDelivery(tradeSymbol string, units int) {
	for i := range c.Deliveries {
		if c.Deliveries[i].TradeSymbol == tradeSymbol {
			c.Deliveries[i].UnitsFulfilled += units
			return
		}
	}
}
