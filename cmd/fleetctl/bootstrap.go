package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ionfleet/fleetctl/internal/config"
	"github.com/ionfleet/fleetctl/internal/domain/agent"
	"github.com/ionfleet/fleetctl/internal/domain/shared"
	"github.com/ionfleet/fleetctl/internal/domain/ship"
	"github.com/ionfleet/fleetctl/internal/domain/system"
	"github.com/ionfleet/fleetctl/internal/logging"
	"github.com/ionfleet/fleetctl/internal/transport"
	"github.com/ionfleet/fleetctl/internal/warehouse"
)

func loadConfig() (*config.Config, error) {
	return config.LoadConfig(configPath)
}

func newTransportClient(cfg *config.Config, logger *slog.Logger) *transport.Client {
	return transport.NewClient(cfg.API.Token,
		transport.WithBaseURL(cfg.API.BaseURL),
		transport.WithLogger(logger),
	)
}

// hydrateWarehouse loads the agent, the headquarters system's waypoints, and
// the owned fleet from the remote API into wh, translating raw API payloads into
// domain entities before anything else touches them.
func hydrateWarehouse(ctx context.Context, client *transport.Client, wh *warehouse.Warehouse) error {
	agentResp, err := client.GetAgent(ctx)
	if err != nil {
		return fmt.Errorf("get agent: %w", err)
	}
	a, err := agent.NewAgent(agentResp.AccountID, agentResp.Symbol, agentResp.Headquarters, agentResp.Credits, agentResp.StartingFaction, agentResp.ShipCount)
	if err != nil {
		return fmt.Errorf("build agent: %w", err)
	}
	wh.LoadAgentData(a)

	homeSystem := shared.SystemSymbolOf(agentResp.Headquarters)
	sys, err := fetchSystemWithWaypoints(ctx, client, homeSystem)
	if err != nil {
		return fmt.Errorf("hydrate home system %s: %w", homeSystem, err)
	}
	wh.UpsertSystem(sys)

	ships, err := fetchAllShips(ctx, client)
	if err != nil {
		return fmt.Errorf("list ships: %w", err)
	}
	wh.UpsertFleet(ships)

	return nil
}

func fetchSystemWithWaypoints(ctx context.Context, client *transport.Client, symbol string) (*system.System, error) {
	sys, err := system.NewSystem(symbol, shared.SystemSymbolOf(symbol), "UNKNOWN", 0, 0)
	if err != nil {
		return nil, err
	}

	for page := 1; ; page++ {
		wpPage, err := client.ListWaypoints(ctx, symbol, page, 20)
		if err != nil {
			return nil, fmt.Errorf("list waypoints page %d: %w", page, err)
		}
		for _, wp := range wpPage.Data {
			orbitals := make([]string, 0, len(wp.Orbitals))
			for _, o := range wp.Orbitals {
				orbitals = append(orbitals, o.Symbol)
			}
			sys.UpsertWaypoint(shared.WaypointRef{
				Symbol:   wp.Symbol,
				Type:     wp.Type,
				X:        wp.X,
				Y:        wp.Y,
				Orbitals: orbitals,
				Orbits:   wp.Orbits,
			})
		}
		if len(wpPage.Data) == 0 || page*20 >= wpPage.Meta.Total {
			break
		}
	}
	return sys, nil
}

func fetchAllShips(ctx context.Context, client *transport.Client) ([]*ship.Ship, error) {
	var out []*ship.Ship
	for page := 1; ; page++ {
		resp, err := client.ListShips(ctx, page, 20)
		if err != nil {
			return nil, err
		}
		for _, sr := range resp.Data {
			sh, err := shipFromResponse(sr)
			if err != nil {
				return nil, fmt.Errorf("build ship %s: %w", sr.Symbol, err)
			}
			out = append(out, sh)
		}
		if len(resp.Data) == 0 || page*20 >= resp.Meta.Total {
			break
		}
	}
	return out, nil
}

func shipFromResponse(sr transport.ShipResponse) (*ship.Ship, error) {
	fuel, err := shared.NewFuel(sr.Fuel.Current, sr.Fuel.Capacity)
	if err != nil {
		return nil, err
	}

	inventory := make([]shared.CargoItem, 0, len(sr.Cargo.Inventory))
	for _, item := range sr.Cargo.Inventory {
		inventory = append(inventory, shared.CargoItem{Symbol: item.Symbol, Units: item.Units})
	}
	cargo, err := shared.NewCargo(sr.Cargo.Capacity, sr.Cargo.Units, inventory)
	if err != nil {
		return nil, err
	}

	nav := ship.Nav{
		SystemSymbol:   sr.Nav.SystemSymbol,
		WaypointSymbol: sr.Nav.WaypointSymbol,
		Status:         ship.NavStatus(sr.Nav.Status),
		FlightMode:     shared.ParseFlightMode(sr.Nav.FlightMode),
	}

	return ship.NewShip(sr.Symbol, ship.Role(sr.Registration.Role), nav, sr.Engine.Speed, *fuel, sr.Cargo.Capacity, *cargo)
}

func openLogger(cfg *config.Config) (*slog.Logger, error) {
	return logging.New(cfg.Logging)
}

func openTradeLog(cfg *config.Config) (*logging.TradeLog, error) {
	return logging.OpenTradeLog(cfg.Logging.TradeLogPath, cfg.Logging.CreditsLogPath)
}
