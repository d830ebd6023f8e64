// Package military manages armies, navies, movement, and battle
// resolution. Armies and navies share one Force entity; naval forces
// additionally carry a transport capability record for embarkation
// bookkeeping.
package military

import (
	"github.com/LDCODES12/EconGame/internal/calc"
	"github.com/LDCODES12/EconGame/internal/config"
)

// NoProvince marks an unset location or destination.
const NoProvince = -1

// Transport is the sea-lift capability attached to naval forces. It
// tracks at most one embarked army by reference.
type Transport struct {
	EmbarkedArmyID int // NoForce when empty.
}

// NoForce marks an absent force reference.
const NoForce = -1

// Force is a group of military units owned by one nation: an army, or a
// navy when the Transport capability is present.
type Force struct {
	ID       int
	NationID int
	Name     string

	Location    int // Province id.
	Destination int // NoProvince when stationed.
	Path        []int

	Units       map[string]int
	Morale      float64 // 0..1
	CommanderID int     // NoForce when uncommanded.

	// Embarked is set on armies riding a navy.
	Embarked bool

	// Transport is non-nil for naval forces.
	Transport *Transport
}

func newForce(id, nationID int, name string, location int, naval bool) *Force {
	f := &Force{
		ID:          id,
		NationID:    nationID,
		Name:        name,
		Location:    location,
		Destination: NoProvince,
		Units:       make(map[string]int),
		Morale:      1.0,
		CommanderID: NoForce,
	}
	if naval {
		f.Transport = &Transport{EmbarkedArmyID: NoForce}
	}
	return f
}

// IsNaval reports whether the force is a navy.
func (f *Force) IsNaval() bool {
	return f.Transport != nil
}

// AddUnits adds units of a known type. Unknown types are rejected.
func (f *Force) AddUnits(unitType string, quantity int) bool {
	if quantity <= 0 {
		return false
	}
	if _, ok := config.Unit(unitType); !ok {
		return false
	}
	f.Units[unitType] += quantity
	return true
}

// RemoveUnits removes units, deleting zero-count entries. Fails when the
// force holds fewer than requested.
func (f *Force) RemoveUnits(unitType string, quantity int) bool {
	have, ok := f.Units[unitType]
	if !ok || have < quantity || quantity <= 0 {
		return false
	}
	if have == quantity {
		delete(f.Units, unitType)
	} else {
		f.Units[unitType] = have - quantity
	}
	return true
}

// TotalUnits returns the unit count across all types.
func (f *Force) TotalUnits() int {
	total := 0
	for _, qty := range f.Units {
		total += qty
	}
	return total
}

// Strength is a force's raw attack and defense, scaled by morale.
type Strength struct {
	Attack  float64
	Defense float64
}

// CombatStrength sums per-type attack and defense weighted by counts and
// applies the morale multiplier.
func (f *Force) CombatStrength() Strength {
	var s Strength
	for unitType, qty := range f.Units {
		stats, ok := config.Unit(unitType)
		if !ok {
			continue
		}
		s.Attack += stats.Attack * float64(qty)
		s.Defense += stats.Defense * float64(qty)
	}
	s.Attack *= f.Morale
	s.Defense *= f.Morale
	return s
}

// MaintenanceCost returns the per-tick upkeep of the force.
func (f *Force) MaintenanceCost() float64 {
	cost := 0.0
	for unitType, qty := range f.Units {
		stats, ok := config.Unit(unitType)
		if !ok {
			continue
		}
		cost += stats.Maintenance * float64(qty)
	}
	return cost
}

// Speed returns the movement speed of the slowest unit type present.
func (f *Force) Speed() float64 {
	if len(f.Units) == 0 {
		return 1.0
	}
	speed := -1.0
	for unitType := range f.Units {
		stats, ok := config.Unit(unitType)
		if !ok {
			continue
		}
		if speed < 0 || stats.Speed < speed {
			speed = stats.Speed
		}
	}
	if speed < 0 {
		return 1.0
	}
	return speed
}

// ManpowerFootprint returns the total manpower the force represents; the
// figure embarkation capacity is checked against.
func (f *Force) ManpowerFootprint() int {
	total := 0
	for unitType, qty := range f.Units {
		stats, ok := config.Unit(unitType)
		if !ok {
			continue
		}
		total += stats.Manpower * qty
	}
	return total
}

// TransportCapacity sums the capacity of all transport ships in the force.
func (f *Force) TransportCapacity() int {
	capacity := 0
	for unitType, qty := range f.Units {
		stats, ok := config.Unit(unitType)
		if !ok {
			continue
		}
		capacity += stats.Capacity * qty
	}
	return capacity
}

// AdjustMorale shifts morale, clamped to [0,1].
func (f *Force) AdjustMorale(amount float64) {
	f.Morale = calc.Clamp(f.Morale+amount, 0.0, 1.0)
}

// SetPath starts the force moving along a province id sequence. An empty
// path leaves the force stationed.
func (f *Force) SetPath(path []int) {
	f.Path = path
	if len(path) > 0 {
		f.Destination = path[len(path)-1]
	} else {
		f.Destination = NoProvince
	}
}

// Moving reports whether the force has a path to walk.
func (f *Force) Moving() bool {
	return len(f.Path) > 0
}

// advance pops the next province off the path and relocates. When the
// path is exhausted the force is stationed again.
func (f *Force) advance() {
	if len(f.Path) == 0 {
		return
	}
	f.Location = f.Path[0]
	f.Path = f.Path[1:]
	if len(f.Path) == 0 {
		f.Destination = NoProvince
	}
}

// MergeWith absorbs another force's units, averaging morale by unit
// weight. The other force is expected to be deregistered by the caller.
func (f *Force) MergeWith(other *Force) {
	ownUnits := f.TotalUnits()
	otherUnits := other.TotalUnits()
	for unitType, qty := range other.Units {
		f.Units[unitType] += qty
	}
	total := ownUnits + otherUnits
	if total > 0 {
		f.Morale = (f.Morale*float64(ownUnits) + other.Morale*float64(otherUnits)) / float64(total)
	}
}
