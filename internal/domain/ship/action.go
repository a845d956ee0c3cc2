package ship

import "github.com/ionfleet/fleetctl/internal/domain/shared"

// Action is the dispatcher's decision output for one scheduling cycle.
// The dispatcher is a pure function mapping a Ship+Runtime snapshot to
// exactly one Action; the executor performs its side effects.
type Action string

const (
	ActionNoop            Action = "NOOP"
	ActionRefuel          Action = "REFUEL"
	ActionNavigateToMine  Action = "NAVIGATE_TO_MINE"
	ActionExtractMinerals Action = "EXTRACT_MINERALS"
	ActionProbeVisitMarket Action = "PROBE_VISIT_MARKET"
)

// Decision pairs an Action with the data the executor needs to carry it
// out. The dispatcher also writes its picks (target market, mine target,
// selling flag) into Runtime.Context when it returns a Decision.
type Decision struct {
	Ship   string
	Action Action

	// Destination is populated for ActionNavigateToMine and
	// ActionProbeVisitMarket: the waypoint to navigate to.
	Destination string

	// FlightMode is not set by the dispatcher and not read by the executor,
	// which chooses CRUISE or DRIFT itself for ActionNavigateToMine.
	FlightMode shared.FlightMode

	// JettisonSymbols lists cargo symbols the dispatcher judged unworthy
	// (no known buyer, or best known sellPrice at or below threshold) that
	// the executor should jettison before acting on Action.
	JettisonSymbols []string
}

func Noop(shipSymbol string) Decision {
	return Decision{Ship: shipSymbol, Action: ActionNoop}
}
