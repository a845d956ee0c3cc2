package shared

import "math"

// FlightMode is a ship's travel profile, trading fuel for speed.
type FlightMode int

const (
	FlightModeCruise FlightMode = iota
	FlightModeDrift
	FlightModeBurn
	FlightModeStealth
)

type flightModeConfig struct {
	name           string
	timeMultiplier int
	fuelRate       float64
}

var flightModeConfigs = map[FlightMode]flightModeConfig{
	FlightModeCruise:  {"CRUISE", 31, 1.0},
	FlightModeDrift:   {"DRIFT", 26, 0.003},
	FlightModeBurn:    {"BURN", 15, 2.0},
	FlightModeStealth: {"STEALTH", 50, 1.0},
}

func (f FlightMode) String() string {
	if cfg, ok := flightModeConfigs[f]; ok {
		return cfg.name
	}
	return "UNKNOWN"
}

// FuelCost returns the fuel units a flight of the given distance costs in
// this mode, rounded up, with a floor of 1 for any nonzero distance.
func (f FlightMode) FuelCost(distance float64) int {
	if distance == 0 {
		return 0
	}
	cfg := flightModeConfigs[f]
	cost := distance * cfg.fuelRate
	if cost < 1 {
		return 1
	}
	return int(math.Ceil(cost))
}

// TravelTime returns travel time in seconds for the given distance and
// engine speed.
func (f FlightMode) TravelTime(distance float64, engineSpeed int) int {
	if distance == 0 {
		return 0
	}
	cfg := flightModeConfigs[f]
	if engineSpeed < 1 {
		engineSpeed = 1
	}
	t := (distance * float64(cfg.timeMultiplier)) / float64(engineSpeed)
	if t < 1 {
		return 1
	}
	return int(t)
}

func ParseFlightMode(s string) FlightMode {
	for mode, cfg := range flightModeConfigs {
		if cfg.name == s {
			return mode
		}
	}
	return FlightModeCruise
}
