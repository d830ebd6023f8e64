package ai

import (
	"sort"

	"github.com/LDCODES12/EconGame/internal/entropy"
	"github.com/LDCODES12/EconGame/internal/nation"
	"github.com/LDCODES12/EconGame/internal/world"
)

// Manager owns one NationAI per computer-controlled nation.
type Manager struct {
	controllers map[int]*NationAI
}

// NewManager creates controllers for every nation except the player's.
// Pass a negative playerID to put every nation under AI control.
func NewManager(nations map[int]*nation.Nation, playerID int, rng *entropy.Source) *Manager {
	m := &Manager{controllers: make(map[int]*NationAI)}
	for _, id := range sortedNationIDs(nations) {
		if id == playerID {
			continue
		}
		m.controllers[id] = New(id, rng)
	}
	return m
}

// Controller returns the AI for a nation, if it has one.
func (m *Manager) Controller(nationID int) (*NationAI, bool) {
	c, ok := m.controllers[nationID]
	return c, ok
}

// Update ticks every controller in nation id order.
func (m *Manager) Update(
	worldMap *world.Map,
	nations map[int]*nation.Nation,
	year int,
	rng *entropy.Source,
) {
	ids := make([]int, 0, len(m.controllers))
	for id := range m.controllers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		m.controllers[id].Update(worldMap, nations, year, rng)
	}
}
