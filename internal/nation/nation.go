package nation

import (
	"github.com/LDCODES12/EconGame/internal/calc"
	"github.com/LDCODES12/EconGame/internal/entropy"
)

// TechField identifies one technology track.
type TechField string

const (
	TechAdministrative TechField = "administrative"
	TechDiplomatic     TechField = "diplomatic"
	TechMilitary       TechField = "military"
)

// TechFields lists all technology tracks in canonical order.
var TechFields = []TechField{TechAdministrative, TechDiplomatic, TechMilitary}

// Income and expense categories for the budget accumulators.
const (
	IncomeTax        = "tax"
	IncomeProduction = "production"
	IncomeTrade      = "trade"
	IncomeGold       = "gold"
	IncomeOther      = "other"

	ExpenseMilitary       = "military"
	ExpenseAdministration = "administration"
	ExpenseTechnology     = "technology"
	ExpenseOther          = "other"
)

// Nation is one realm: territory, treasury, technology, and a relation
// toward every other nation. A nation that loses all provinces stays in
// the registry.
type Nation struct {
	ID        int
	Name      string
	RulerID   int
	DynastyID int

	Provinces []int
	CapitalID int // -1 until set.

	Treasury   float64
	Manpower   int
	Stability  int     // -3..+3
	Prestige   float64 // -100..100
	Legitimacy float64 // 0..100

	ArmySize int
	NavySize int

	techLevels map[TechField]int

	income   map[string]float64
	expenses map[string]float64
	balance  float64

	relations map[int]*Relation
}

// New creates a nation with the standard starting resources.
func New(id int, name string, rulerID, dynastyID int) *Nation {
	return &Nation{
		ID:         id,
		Name:       name,
		RulerID:    rulerID,
		DynastyID:  dynastyID,
		CapitalID:  -1,
		Treasury:   100.0,
		Manpower:   1000,
		Stability:  1,
		Legitimacy: 100,
		techLevels: map[TechField]int{
			TechAdministrative: 1,
			TechDiplomatic:     1,
			TechMilitary:       1,
		},
		income: map[string]float64{
			IncomeTax: 0, IncomeProduction: 0, IncomeTrade: 0, IncomeGold: 0, IncomeOther: 0,
		},
		expenses: map[string]float64{
			ExpenseMilitary: 0, ExpenseAdministration: 0, ExpenseTechnology: 0, ExpenseOther: 0,
		},
		relations: make(map[int]*Relation),
	}
}

// AddProvince records ownership of a province id.
func (n *Nation) AddProvince(provinceID int) {
	for _, id := range n.Provinces {
		if id == provinceID {
			return
		}
	}
	n.Provinces = append(n.Provinces, provinceID)
}

// RemoveProvince drops a province id from the ownership list.
func (n *Nation) RemoveProvince(provinceID int) {
	for i, id := range n.Provinces {
		if id == provinceID {
			n.Provinces = append(n.Provinces[:i], n.Provinces[i+1:]...)
			return
		}
	}
}

// OwnsProvince reports whether the nation holds the given province.
func (n *Nation) OwnsProvince(provinceID int) bool {
	for _, id := range n.Provinces {
		if id == provinceID {
			return true
		}
	}
	return false
}

// SetCapital designates an owned province as the seat of the nation.
func (n *Nation) SetCapital(provinceID int) bool {
	if !n.OwnsProvince(provinceID) {
		return false
	}
	n.CapitalID = provinceID
	return true
}

// ── Budget ────────────────────────────────────────────────────────────

// AddIncome accrues income in a category. Unknown categories are ignored.
func (n *Nation) AddIncome(category string, amount float64) {
	if _, ok := n.income[category]; ok {
		n.income[category] += amount
	}
}

// AddExpense accrues an expense in a category.
func (n *Nation) AddExpense(category string, amount float64) {
	if _, ok := n.expenses[category]; ok {
		n.expenses[category] += amount
	}
}

// UpdateBalance closes the accounting period: the categorized accumulators
// are netted into the treasury exactly once and reset, so calling it again
// without new activity is a no-op.
func (n *Nation) UpdateBalance() {
	totalIncome := 0.0
	for _, v := range n.income {
		totalIncome += v
	}
	totalExpenses := 0.0
	for _, v := range n.expenses {
		totalExpenses += v
	}
	n.balance = totalIncome - totalExpenses
	n.Treasury += n.balance

	resetAccumulators(n.income)
	resetAccumulators(n.expenses)
}

func resetAccumulators(m map[string]float64) {
	for k := range m {
		m[k] = 0
	}
}

// Balance returns the net result of the last closed accounting period.
func (n *Nation) Balance() float64 {
	return n.balance
}

// TotalIncome returns the income accrued so far this period.
func (n *Nation) TotalIncome() float64 {
	total := 0.0
	for _, v := range n.income {
		total += v
	}
	return total
}

// TotalExpenses returns the expenses accrued so far this period.
func (n *Nation) TotalExpenses() float64 {
	total := 0.0
	for _, v := range n.expenses {
		total += v
	}
	return total
}

// CanAfford reports whether the treasury covers an expense.
func (n *Nation) CanAfford(amount float64) bool {
	return n.Treasury >= amount
}

// Spend deducts from the treasury, rejecting overdrafts.
func (n *Nation) Spend(amount float64) bool {
	if !n.CanAfford(amount) {
		return false
	}
	n.Treasury -= amount
	return true
}

// ── Technology ────────────────────────────────────────────────────────

// TechLevel returns the current level of a technology track.
func (n *Nation) TechLevel(field TechField) int {
	return n.techLevels[field]
}

// TechCost returns the price of the next level in a field.
func (n *Nation) TechCost(field TechField) float64 {
	return float64(n.techLevels[field]) * 100
}

// InvestInTech buys exactly one level in a field; levels are uncapped and
// never decrease.
func (n *Nation) InvestInTech(field TechField) bool {
	level, ok := n.techLevels[field]
	if !ok {
		return false
	}
	cost := float64(level) * 100
	if !n.Spend(cost) {
		return false
	}
	n.techLevels[field] = level + 1
	return true
}

// MilitaryPower is the headline strength figure diplomacy and AI reason
// about: army size scaled by military technology.
func (n *Nation) MilitaryPower() float64 {
	return float64(n.ArmySize) * (1 + float64(n.techLevels[TechMilitary])*0.1)
}

// RecruitTroops hires troops at 10 gold a head, drawing down the manpower
// pool. All-or-nothing.
func (n *Nation) RecruitTroops(amount int) bool {
	if amount <= 0 {
		return false
	}
	cost := float64(amount) * 10
	if !n.CanAfford(cost) || n.Manpower < amount {
		return false
	}
	n.Spend(cost)
	n.Manpower -= amount
	n.ArmySize += amount
	return true
}

// ── Diplomacy ─────────────────────────────────────────────────────────

// InitRelations creates a neutral relation toward each listed nation.
func (n *Nation) InitRelations(nationIDs []int) {
	for _, id := range nationIDs {
		if id != n.ID {
			n.relations[id] = NewRelation(id)
		}
	}
}

// Relation returns this nation's view of another.
func (n *Nation) Relation(targetID int) (*Relation, bool) {
	r, ok := n.relations[targetID]
	return r, ok
}

// Relations returns the full relation map. Callers must not add or remove
// entries.
func (n *Nation) Relations() map[int]*Relation {
	return n.relations
}

// UpdateRelations applies the periodic decay step to every relation.
func (n *Nation) UpdateRelations() {
	for _, r := range n.relations {
		r.Update()
	}
}

// DeclareWar opens hostilities. Fails when already at war or under an
// active truce.
func (n *Nation) DeclareWar(targetID, currentYear int) bool {
	r, ok := n.relations[targetID]
	if !ok || r.AtWar || r.TruceActive(currentYear) {
		return false
	}
	r.declareWar()
	return true
}

// MakePeace ends a war, starting a truce of truceYears.
func (n *Nation) MakePeace(targetID, currentYear, truceYears int) bool {
	r, ok := n.relations[targetID]
	if !ok || !r.AtWar {
		return false
	}
	r.makePeace(currentYear + truceYears)
	return true
}

// FormAlliance requires warm relations (opinion >= 50) and peace.
func (n *Nation) FormAlliance(targetID int) bool {
	r, ok := n.relations[targetID]
	if !ok || r.Alliance || r.AtWar || r.Opinion < 50 {
		return false
	}
	r.setAlliance(true)
	return true
}

// BreakAlliance dissolves an alliance at a diplomatic cost.
func (n *Nation) BreakAlliance(targetID int) bool {
	r, ok := n.relations[targetID]
	if !ok || !r.Alliance {
		return false
	}
	r.setAlliance(false)
	r.Worsen(20)
	return true
}

// RoyalMarriage requires non-negative opinion and peace.
func (n *Nation) RoyalMarriage(targetID int) bool {
	r, ok := n.relations[targetID]
	if !ok || r.RoyalMarriage || r.AtWar || r.Opinion < 0 {
		return false
	}
	r.setRoyalMarriage(true)
	return true
}

// ── Yearly upkeep ─────────────────────────────────────────────────────

// YearlyReset clears the income and expense accumulators at the turn of
// the year and rolls the yearly stochastic drift.
func (n *Nation) YearlyReset(rng *entropy.Source) {
	resetAccumulators(n.income)
	resetAccumulators(n.expenses)
	n.rollYearlyDrift(rng)
}

// rollYearlyDrift occasionally nudges stability, prestige, or legitimacy.
func (n *Nation) rollYearlyDrift(rng *entropy.Source) {
	if !rng.Chance(0.2) {
		return
	}
	switch rng.Intn(3) {
	case 0:
		delta := 1
		if rng.Chance(0.5) {
			delta = -1
		}
		n.Stability = calc.Clamp(n.Stability+delta, -3, 3)
	case 1:
		n.Prestige = calc.Clamp(n.Prestige+rng.Range(-10, 10), -100, 100)
	case 2:
		n.Legitimacy = calc.Clamp(n.Legitimacy+rng.Range(-5, 5), 0, 100)
	}
}
