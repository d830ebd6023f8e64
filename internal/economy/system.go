package economy

import (
	"sort"

	"github.com/LDCODES12/EconGame/internal/entropy"
	"github.com/LDCODES12/EconGame/internal/nation"
	"github.com/LDCODES12/EconGame/internal/world"
)

// System runs the economic tick: trade value flows through the node
// network, goods reprice, and each nation's books are closed.
type System struct {
	Goods *Goods
	nodes map[int]*Node
}

// NewSystem creates the economy with the default four-node trade network.
// Connections run strictly toward the terminal node, keeping the directed
// graph acyclic by construction.
func NewSystem() *System {
	s := &System{
		Goods: NewGoods(),
		nodes: make(map[int]*Node),
	}

	western := NewNode(0, "Western Reach")
	inland := NewNode(1, "Inland Sea")
	eastern := NewNode(2, "Eastern Marches")
	southern := NewNode(3, "Southern Crossing")

	southern.Connect(inland.ID)
	eastern.Connect(inland.ID)
	inland.Connect(western.ID)

	for _, n := range []*Node{western, inland, eastern, southern} {
		s.nodes[n.ID] = n
	}
	return s
}

// Node returns a trade node by id.
func (s *System) Node(id int) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Nodes returns all node ids in ascending order.
func (s *System) Nodes() []*Node {
	ids := make([]int, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*Node, len(ids))
	for i, id := range ids {
		out[i] = s.nodes[id]
	}
	return out
}

// AssignProvinces distributes provinces across trade nodes at world setup.
func (s *System) AssignProvinces(provinces map[int]*world.Province, rng *entropy.Source) {
	nodes := s.Nodes()
	for _, n := range nodes {
		n.Provinces = nil
	}

	ids := make([]int, 0, len(provinces))
	for id := range provinces {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, provinceID := range ids {
		n := nodes[rng.Intn(len(nodes))]
		n.Provinces = append(n.Provinces, provinceID)
	}
}

// Update runs one accounting period in fixed order: node trade values,
// per-nation trade power, proportional income distribution, goods
// repricing, then each nation's tax/production income and expenses with
// the treasury balance closed last.
func (s *System) Update(
	nations map[int]*nation.Nation,
	provinces map[int]*world.Province,
	rng *entropy.Source,
) {
	nodes := s.Nodes()

	for _, n := range nodes {
		n.calculateTradeValue(provinces)
	}

	s.calculateTradePower(nations, provinces)

	for _, n := range nodes {
		n.distributeIncome(nations)
	}

	s.Goods.UpdatePrices(rng)

	for _, nationID := range sortedNationIDs(nations) {
		s.processNation(nations[nationID], provinces)
	}
}

// calculateTradePower recomputes each nation's power in each node from
// the development of its member provinces, then applies the collect
// policy multiplier.
func (s *System) calculateTradePower(nations map[int]*nation.Nation, provinces map[int]*world.Province) {
	for _, n := range s.Nodes() {
		n.Power = make(map[int]float64, len(nations))
		for nationID := range nations {
			n.Power[nationID] = 0
		}

		for _, provinceID := range n.Provinces {
			p, ok := provinces[provinceID]
			if !ok || p.NationID == world.NoNation {
				continue
			}
			power := float64(p.Development(world.DevTax) + p.Development(world.DevProduction))
			n.Power[p.NationID] += power
		}

		for nationID, policy := range n.policies {
			if policy == PolicyCollect {
				n.Power[nationID] *= 1.2
			}
		}
	}
}

// SetTradePolicy switches a nation's policy in a node. The previously
// applied policy's multiplier is divided back out before the new one is
// applied; this undo-then-apply discipline is what keeps rapid switching
// from compounding.
func (s *System) SetTradePolicy(nationID, nodeID int, policy Policy) bool {
	node, ok := s.nodes[nodeID]
	if !ok {
		return false
	}

	previous := node.policies[nationID]
	if previous == policy {
		return true
	}

	// Undo the previous policy's effect on current power figures.
	switch previous {
	case PolicyCollect:
		if _, ok := node.Power[nationID]; ok {
			node.Power[nationID] /= 1.2
		}
	case PolicySteer:
		for _, targetID := range node.Outgoing {
			target, ok := s.nodes[targetID]
			if !ok {
				continue
			}
			if _, ok := target.Power[nationID]; ok {
				target.Power[nationID] /= 1.1
				target.recalcIncomeFor(nationID)
			}
		}
	}

	node.policies[nationID] = policy

	switch policy {
	case PolicyCollect:
		if _, ok := node.Power[nationID]; ok {
			node.Power[nationID] *= 1.2
			node.recalcIncomeFor(nationID)
		}
	case PolicySteer:
		for _, targetID := range node.Outgoing {
			target, ok := s.nodes[targetID]
			if !ok {
				continue
			}
			if _, ok := target.Power[nationID]; ok {
				target.Power[nationID] *= 1.1
				target.recalcIncomeFor(nationID)
			}
		}
	}
	return true
}

// processNation accrues a nation's tax and production income and its
// administrative overhead, then closes the period's balance.
func (s *System) processNation(n *nation.Nation, provinces map[int]*world.Province) {
	taxIncome := 0.0
	productionIncome := 0.0
	for _, provinceID := range n.Provinces {
		p, ok := provinces[provinceID]
		if !ok {
			continue
		}
		taxIncome += p.TaxIncome()
		productionIncome += p.ProductionValue()
	}
	n.AddIncome(nation.IncomeTax, taxIncome)
	n.AddIncome(nation.IncomeProduction, productionIncome)

	n.AddExpense(nation.ExpenseAdministration, float64(len(n.Provinces))*0.2)

	n.UpdateBalance()
}

func sortedNationIDs(nations map[int]*nation.Nation) []int {
	ids := make([]int, 0, len(nations))
	for id := range nations {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
