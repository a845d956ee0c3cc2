package shared

import "fmt"

// CargoItem is one trade good held in a ship's hold.
type CargoItem struct {
	Symbol string
	Units  int
}

// Cargo is an immutable cargo manifest: units <= capacity, and the
// inventory sums to units (spec invariant).
type Cargo struct {
	Capacity  int
	Units     int
	Inventory []CargoItem
}

func NewCargo(capacity, units int, inventory []CargoItem) (*Cargo, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("cargo capacity cannot be negative")
	}
	if units < 0 {
		return nil, fmt.Errorf("cargo units cannot be negative")
	}
	if units > capacity {
		return nil, fmt.Errorf("cargo units %d exceed capacity %d", units, capacity)
	}
	sum := 0
	for _, item := range inventory {
		sum += item.Units
	}
	if sum != units {
		return nil, fmt.Errorf("inventory sum %d != total units %d", sum, units)
	}
	return &Cargo{Capacity: capacity, Units: units, Inventory: inventory}, nil
}

func (c *Cargo) IsFull() bool  { return c.Units >= c.Capacity }
func (c *Cargo) IsEmpty() bool { return c.Units == 0 }

func (c *Cargo) UnitsOf(symbol string) int {
	for _, item := range c.Inventory {
		if item.Symbol == symbol {
			return item.Units
		}
	}
	return 0
}

// Symbols returns the distinct trade good symbols currently held.
func (c *Cargo) Symbols() []string {
	out := make([]string, 0, len(c.Inventory))
	for _, item := range c.Inventory {
		if item.Units > 0 {
			out = append(out, item.Symbol)
		}
	}
	return out
}

func (c *Cargo) String() string { return fmt.Sprintf("Cargo(%d/%d)", c.Units, c.Capacity) }
