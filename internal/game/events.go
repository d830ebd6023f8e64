package game

import (
	"fmt"

	"github.com/LDCODES12/EconGame/internal/calc"
	"github.com/LDCODES12/EconGame/internal/nation"
	"github.com/LDCODES12/EconGame/internal/world"
)

// EffectFunc mutates live game state when an event option is chosen.
type EffectFunc func(s *State)

// ApplyEffect runs an externally supplied effect against the live state.
// Presentation layers use this to apply event outcomes they manage
// themselves.
func (s *State) ApplyEffect(fn EffectFunc) {
	if fn != nil {
		fn(s)
	}
}

// Option is one way an event can be answered.
type Option struct {
	Text   string
	Effect EffectFunc
}

// Event is a prompt with a set of answers, each carrying an effect.
type Event struct {
	ID          int
	Title       string
	Description string
	Options     []Option
}

// Choose applies the effect of one option.
func (e *Event) Choose(index int, s *State) bool {
	if index < 0 || index >= len(e.Options) {
		return false
	}
	if effect := e.Options[index].Effect; effect != nil {
		effect(s)
	}
	if s.Historian != nil {
		s.Historian.RecordEvent(s.DateString(), "event",
			fmt.Sprintf("%s: %s", e.Title, e.Options[index].Text))
	}
	return true
}

// EventGenerator produces random events for the player's nation.
type EventGenerator struct {
	nextID int
}

// NewEventGenerator creates an event generator.
func NewEventGenerator() *EventGenerator {
	return &EventGenerator{}
}

type eventFactory func(s *State, n *nation.Nation) *Event

// Generate draws one random event aimed at the player's nation.
func (g *EventGenerator) Generate(s *State) *Event {
	n := s.PlayerNation()
	if n == nil {
		return nil
	}

	factories := []eventFactory{
		taxReformEvent,
		culturalRenaissanceEvent,
		corruptionScandalEvent,
		naturalDisasterEvent,
		bountifulHarvestEvent,
		borderFrictionEvent,
	}

	e := factories[s.rng.Intn(len(factories))](s, n)
	e.ID = g.nextID
	g.nextID++
	return e
}

func taxReformEvent(s *State, n *nation.Nation) *Event {
	nationID := n.ID
	return &Event{
		Title: "Tax Reform Proposed",
		Description: fmt.Sprintf("Advisors in %s propose reforming the tax system. "+
			"More revenue, at the cost of unrest.", n.Name),
		Options: []Option{
			{Text: "Implement full reforms", Effect: func(s *State) {
				if n, ok := s.Nations[nationID]; ok {
					n.AddIncome(nation.IncomeOther, n.TotalIncome()*0.1)
					n.Stability = calc.Max(-3, n.Stability-1)
				}
			}},
			{Text: "Reject the proposal", Effect: func(s *State) {
				if n, ok := s.Nations[nationID]; ok {
					n.Prestige = calc.Min(100, n.Prestige+5)
				}
			}},
			{Text: "Implement partial reforms", Effect: func(s *State) {
				if n, ok := s.Nations[nationID]; ok {
					n.AddIncome(nation.IncomeOther, n.TotalIncome()*0.05)
				}
			}},
		},
	}
}

func culturalRenaissanceEvent(s *State, n *nation.Nation) *Event {
	nationID := n.ID
	return &Event{
		Title: "Cultural Renaissance",
		Description: fmt.Sprintf("Artists and philosophers across %s are producing "+
			"celebrated works.", n.Name),
		Options: []Option{
			{Text: "Patronize the arts", Effect: func(s *State) {
				if n, ok := s.Nations[nationID]; ok && n.Spend(50) {
					n.Prestige = calc.Min(100, n.Prestige+15)
					n.Legitimacy = calc.Min(100, n.Legitimacy+5)
				}
			}},
			{Text: "Let it run its course", Effect: func(s *State) {
				if n, ok := s.Nations[nationID]; ok {
					n.Prestige = calc.Min(100, n.Prestige+5)
				}
			}},
		},
	}
}

func corruptionScandalEvent(s *State, n *nation.Nation) *Event {
	nationID := n.ID
	return &Event{
		Title: "Corruption Scandal",
		Description: fmt.Sprintf("Officials in %s have been caught embezzling "+
			"from the treasury.", n.Name),
		Options: []Option{
			{Text: "Purge the offenders", Effect: func(s *State) {
				if n, ok := s.Nations[nationID]; ok {
					n.AddExpense(nation.ExpenseAdministration, 30)
					n.Legitimacy = calc.Min(100, n.Legitimacy+10)
				}
			}},
			{Text: "Look the other way", Effect: func(s *State) {
				if n, ok := s.Nations[nationID]; ok {
					n.Legitimacy = calc.Max(0, n.Legitimacy-10)
					n.Stability = calc.Max(-3, n.Stability-1)
				}
			}},
		},
	}
}

func naturalDisasterEvent(s *State, n *nation.Nation) *Event {
	nationID := n.ID
	provinceID := -1
	if len(n.Provinces) > 0 {
		provinceID = n.Provinces[s.rng.Intn(len(n.Provinces))]
	}
	return &Event{
		Title: "Natural Disaster",
		Description: fmt.Sprintf("Floods have devastated a province of %s.",
			n.Name),
		Options: []Option{
			{Text: "Fund the recovery", Effect: func(s *State) {
				if n, ok := s.Nations[nationID]; ok {
					n.AddExpense(nation.ExpenseOther, 40)
				}
			}},
			{Text: "Leave them to rebuild alone", Effect: func(s *State) {
				if p, ok := s.Map.Province(provinceID); ok {
					p.SetDevelopment(world.DevProduction, p.Development(world.DevProduction)-1)
				}
				if n, ok := s.Nations[nationID]; ok {
					n.Stability = calc.Max(-3, n.Stability-1)
				}
			}},
		},
	}
}

func bountifulHarvestEvent(s *State, n *nation.Nation) *Event {
	nationID := n.ID
	return &Event{
		Title: "Bountiful Harvest",
		Description: fmt.Sprintf("The fields of %s have yielded far beyond "+
			"expectation this season.", n.Name),
		Options: []Option{
			{Text: "Sell the surplus", Effect: func(s *State) {
				if n, ok := s.Nations[nationID]; ok {
					n.AddIncome(nation.IncomeOther, 25)
				}
			}},
			{Text: "Store it against famine", Effect: func(s *State) {
				if n, ok := s.Nations[nationID]; ok {
					n.Stability = calc.Min(3, n.Stability+1)
				}
			}},
		},
	}
}

func borderFrictionEvent(s *State, n *nation.Nation) *Event {
	nationID := n.ID

	// Find a neighbor to quarrel with; fall back to a no-op event when
	// the nation has no land borders.
	neighborID := -1
	for _, provinceID := range n.Provinces {
		for _, adjacentID := range s.Map.NeighborProvinces(provinceID) {
			if p, ok := s.Map.Province(adjacentID); ok &&
				p.NationID != world.NoNation && p.NationID != nationID {
				neighborID = p.NationID
				break
			}
		}
		if neighborID >= 0 {
			break
		}
	}

	e := &Event{
		Title: "Border Friction",
		Description: fmt.Sprintf("Patrols of %s have clashed with a "+
			"neighbor's scouts near the frontier.", n.Name),
	}
	if neighborID < 0 {
		e.Options = []Option{{Text: "Nothing comes of it", Effect: nil}}
		return e
	}

	e.Options = []Option{
		{Text: "Demand an apology", Effect: func(s *State) {
			if n, ok := s.Nations[nationID]; ok {
				if rel, ok := n.Relation(neighborID); ok {
					rel.Worsen(15)
				}
			}
		}},
		{Text: "Smooth things over", Effect: func(s *State) {
			if n, ok := s.Nations[nationID]; ok {
				if rel, ok := n.Relation(neighborID); ok {
					rel.Improve(5)
				}
				n.Prestige = calc.Max(-100, n.Prestige-5)
			}
		}},
	}
	return e
}
