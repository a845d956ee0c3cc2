package ship

import "time"

// State is a ship's runtime decision-state, independent of the remote nav
// status.
type State string

const (
	StateIdle       State = "IDLE"
	StateNavigating State = "NAVIGATING"
	StateMining     State = "MINING"
)

// DestinationTag records why a NAVIGATING ship is in transit, so the
// dispatcher knows what to do on arrival.
type DestinationTag string

const (
	DestinationNone        DestinationTag = ""
	DestinationMine        DestinationTag = "MINE"
	DestinationRefuel      DestinationTag = "REFUEL"
	DestinationProbeMarket DestinationTag = "PROBE_MARKET"
)

// Context is an explicit tagged variant in place of a free-form map. Not
// every field is meaningful in every State; the dispatcher and executor
// only read the fields relevant to the current State/DestinationTag
// combination.
type Context struct {
	TargetMarket          string         // waypoint claimed as a probe/sell destination
	MineTarget            string         // waypoint being navigated to for extraction
	Destination           DestinationTag // why a NAVIGATING ship is in transit
	Selling               bool           // excavator is in a sell-cargo cycle
	RemainingCargoSymbols []string       // symbols still unsold during a Selling cycle
}

// ClearTarget releases any claimed target_market, freeing it for other runtimes.
func (c *Context) ClearTarget() { c.TargetMarket = "" }

// Runtime is the non-API per-ship state the dispatcher and executor share:
// decision state, next wakeup time, and the Context publishing decision
// parameters from dispatcher to executor.
type Runtime struct {
	ShipSymbol string
	State      State
	NextWakeup time.Time // zero value means "unset"
	Context    Context
}

func NewRuntime(shipSymbol string) *Runtime {
	return &Runtime{ShipSymbol: shipSymbol, State: StateIdle}
}

// HasWakeup reports whether NextWakeup has been explicitly set.
func (r *Runtime) HasWakeup() bool { return !r.NextWakeup.IsZero() }
