// Package system models star systems and the waypoints they contain.
package system

import "github.com/ionfleet/fleetctl/internal/domain/shared"

// System is a star system: a sector location containing waypoints and
// controlled by zero or more factions.
type System struct {
	Symbol       string
	SectorSymbol string
	Type         string
	X            float64
	Y            float64
	Factions     []string
	Waypoints    []shared.WaypointRef
}

func NewSystem(symbol, sectorSymbol, typ string, x, y float64) (*System, error) {
	if symbol == "" {
		return nil, shared.NewValidationError("symbol", "cannot be empty")
	}
	return &System{Symbol: symbol, SectorSymbol: sectorSymbol, Type: typ, X: x, Y: y}, nil
}

// WaypointBySymbol returns the cached WaypointRef for symbol, if present.
func (s *System) WaypointBySymbol(symbol string) (*shared.WaypointRef, bool) {
	for i := range s.Waypoints {
		if s.Waypoints[i].Symbol == symbol {
			return &s.Waypoints[i], true
		}
	}
	return nil, false
}

// UpsertWaypoint replaces or appends a WaypointRef by symbol.
func (s *System) UpsertWaypoint(ref shared.WaypointRef) {
	for i := range s.Waypoints {
		if s.Waypoints[i].Symbol == ref.Symbol {
			s.Waypoints[i] = ref
			return
		}
	}
	s.Waypoints = append(s.Waypoints, ref)
}

// Children returns the waypoints that orbit parentSymbol.
func (s *System) Children(parentSymbol string) []shared.WaypointRef {
	var out []shared.WaypointRef
	for _, wp := range s.Waypoints {
		if wp.Orbits == parentSymbol {
			out = append(out, wp)
		}
	}
	return out
}

// Parent returns the waypoint that childSymbol orbits, if any.
func (s *System) Parent(childSymbol string) (*shared.WaypointRef, bool) {
	child, ok := s.WaypointBySymbol(childSymbol)
	if !ok || child.Orbits == "" {
		return nil, false
	}
	return s.WaypointBySymbol(child.Orbits)
}
