// Package ship models owned ships and their non-API runtime state machine.
package ship

import (
	"time"

	"github.com/ionfleet/fleetctl/internal/domain/shared"
)

// NavStatus is a ship's navigation status.
type NavStatus string

const (
	NavStatusDocked    NavStatus = "DOCKED"
	NavStatusInOrbit   NavStatus = "IN_ORBIT"
	NavStatusInTransit NavStatus = "IN_TRANSIT"
)

var validNavStatuses = map[NavStatus]bool{
	NavStatusDocked:    true,
	NavStatusInOrbit:   true,
	NavStatusInTransit: true,
}

// Role is a ship's registration role, determining which dispatcher branch
// applies to it.
type Role string

const (
	RoleExcavator Role = "EXCAVATOR"
	RoleSatellite Role = "SATELLITE"
	RoleCommand   Role = "COMMAND"
	RoleOther     Role = "OTHER"
)

// Route describes an in-progress or completed navigation leg.
type Route struct {
	Origin        string
	Destination   string
	DepartureTime time.Time
	Arrival       time.Time
	Distance      float64
}

// Cooldown tracks the post-action lockout after extract/jump/survey.
type Cooldown struct {
	TotalSeconds     int
	RemainingSeconds int
	Expiration       time.Time
}

func (c Cooldown) IsZero() bool { return c.Expiration.IsZero() }

// Nav is a ship's current navigation state.
type Nav struct {
	SystemSymbol   string
	WaypointSymbol string
	Status         NavStatus
	FlightMode     shared.FlightMode
	Route          *Route // last navigate/warp leg; may remain set after arrival
}

// Ship is a player-owned spacecraft. Fields mirror the remote API payload
// exactly so executor reconciliation is a direct copy.
type Ship struct {
	Symbol        string
	Role          Role
	Nav           Nav
	EngineSpeed   int
	Fuel          shared.Fuel
	CargoCapacity int
	Cargo         shared.Cargo
	Cooldown      Cooldown
}

func NewShip(symbol string, role Role, nav Nav, engineSpeed int, fuel shared.Fuel, cargoCapacity int, cargo shared.Cargo) (*Ship, error) {
	if symbol == "" {
		return nil, shared.NewInvalidShipDataError("symbol cannot be empty")
	}
	if !validNavStatuses[nav.Status] {
		return nil, shared.NewInvalidShipDataError("invalid nav status: " + string(nav.Status))
	}
	if nav.WaypointSymbol == "" || nav.SystemSymbol == "" {
		return nil, shared.NewInvalidShipDataError("nav waypoint/system must be populated")
	}
	if fuel.Current > fuel.Capacity {
		return nil, shared.NewInvalidShipDataError("fuel current exceeds capacity")
	}
	if cargo.Units > cargoCapacity {
		return nil, shared.NewInvalidShipDataError("cargo units exceed capacity")
	}
	if engineSpeed <= 0 {
		engineSpeed = 1
	}
	return &Ship{
		Symbol:        symbol,
		Role:          role,
		Nav:           nav,
		EngineSpeed:   engineSpeed,
		Fuel:          fuel,
		CargoCapacity: cargoCapacity,
		Cargo:         cargo,
		Cooldown:      Cooldown{},
	}, nil
}

func (s *Ship) IsInTransit() bool { return s.Nav.Status == NavStatusInTransit }
func (s *Ship) IsDocked() bool    { return s.Nav.Status == NavStatusDocked }

// IsCoolingDown reports whether the ship's cooldown has not yet expired as
// of now.
func (s *Ship) IsCoolingDown(now time.Time) bool {
	return !s.Cooldown.IsZero() && now.Before(s.Cooldown.Expiration)
}
