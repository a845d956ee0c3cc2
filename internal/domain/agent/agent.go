// Package agent models the player's SpaceTraders account.
package agent

import "github.com/ionfleet/fleetctl/internal/domain/shared"

// Agent is the player's account: loaded once at startup, credits updated
// from purchase/sell responses thereafter.
type Agent struct {
	AccountID       string
	Symbol          string
	Headquarters    string
	Credits         int
	StartingFaction string
	ShipCount       int
}

func NewAgent(accountID, symbol, headquarters string, credits int, startingFaction string, shipCount int) (*Agent, error) {
	if symbol == "" {
		return nil, shared.NewValidationError("symbol", "cannot be empty")
	}
	if headquarters == "" {
		return nil, shared.NewValidationError("headquarters", "cannot be empty")
	}
	return &Agent{
		AccountID:       accountID,
		Symbol:          symbol,
		Headquarters:    headquarters,
		Credits:         credits,
		StartingFaction: startingFaction,
		ShipCount:       shipCount,
	}, nil
}

// SetCredits updates the cached credit balance from an API response field
// (agent.credits), the only field that mutates after load.
func (a *Agent) SetCredits(credits int) { a.Credits = credits }
