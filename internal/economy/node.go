package economy

import (
	"sort"

	"github.com/LDCODES12/EconGame/internal/nation"
	"github.com/LDCODES12/EconGame/internal/world"
)

// Policy is a nation's stance in one trade node.
type Policy string

const (
	PolicyNone    Policy = ""
	PolicyCollect Policy = "collect" // x1.2 own power in this node.
	PolicySteer   Policy = "steer"   // x1.1 own power in downstream nodes.
)

// Node is one aggregation point in the trade network. Outgoing
// connections form a directed graph; keeping it acyclic is the network
// builder's responsibility, not enforced here.
type Node struct {
	ID        int
	Name      string
	Provinces []int

	Outgoing []int // Downstream node ids.

	TradeValue float64
	Power      map[int]float64 // Nation id -> trade power.
	Income     map[int]float64 // Nation id -> trade income.

	policies map[int]Policy
}

// NewNode creates an empty trade node.
func NewNode(id int, name string) *Node {
	return &Node{
		ID:       id,
		Name:     name,
		Power:    make(map[int]float64),
		Income:   make(map[int]float64),
		policies: make(map[int]Policy),
	}
}

// Connect adds a directed link to a downstream node.
func (n *Node) Connect(targetID int) {
	for _, id := range n.Outgoing {
		if id == targetID {
			return
		}
	}
	n.Outgoing = append(n.Outgoing, targetID)
}

// PolicyOf returns the policy a nation runs in this node.
func (n *Node) PolicyOf(nationID int) Policy {
	return n.policies[nationID]
}

// calculateTradeValue recomputes the node's base value from its member
// provinces: half their tax income plus 30% of their production value.
func (n *Node) calculateTradeValue(provinces map[int]*world.Province) {
	n.TradeValue = 0
	for _, provinceID := range n.Provinces {
		p, ok := provinces[provinceID]
		if !ok {
			continue
		}
		n.TradeValue += p.TaxIncome()*0.5 + p.ProductionValue()*0.3
	}
}

// distributeIncome splits the node's trade value between nations in
// proportion to their power share and credits their treasuries.
func (n *Node) distributeIncome(nations map[int]*nation.Nation) {
	total := 0.0
	for _, p := range n.Power {
		total += p
	}
	if total <= 0 {
		return
	}
	for _, nationID := range sortedKeys(n.Power) {
		share := n.Power[nationID] / total
		income := n.TradeValue * share
		n.Income[nationID] = income
		if nat, ok := nations[nationID]; ok {
			nat.AddIncome(nation.IncomeTrade, income)
		}
	}
}

// recalcIncomeFor refreshes a single nation's income figure after a power
// adjustment outside the regular update cycle.
func (n *Node) recalcIncomeFor(nationID int) {
	total := 0.0
	for _, p := range n.Power {
		total += p
	}
	if total <= 0 {
		return
	}
	n.Income[nationID] = n.TradeValue * (n.Power[nationID] / total)
}

func sortedKeys(m map[int]float64) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
