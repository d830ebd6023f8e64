package nation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LDCODES12/EconGame/internal/nation"
)

func newPair(t *testing.T) (*nation.Nation, *nation.Nation) {
	t.Helper()
	a := nation.New(0, "Francia", 1, 0)
	b := nation.New(1, "Anglia", 2, 1)
	a.InitRelations([]int{1})
	b.InitRelations([]int{0})
	return a, b
}

func TestNation_UpdateBalanceAppliesOnce(t *testing.T) {
	n := nation.New(0, "Francia", 1, 0)
	start := n.Treasury

	n.AddIncome(nation.IncomeTax, 100)
	n.AddExpense(nation.ExpenseMilitary, 40)

	n.UpdateBalance()
	assert.InDelta(t, 60, n.Balance(), 1e-9)
	assert.InDelta(t, start+60, n.Treasury, 1e-9)

	// Accumulators were reset; a second application is a no-op.
	n.UpdateBalance()
	assert.InDelta(t, start+60, n.Treasury, 1e-9)
	assert.InDelta(t, 0, n.TotalIncome(), 1e-9)
	assert.InDelta(t, 0, n.TotalExpenses(), 1e-9)
}

func TestNation_UnknownBudgetCategoryIgnored(t *testing.T) {
	n := nation.New(0, "Francia", 1, 0)
	n.AddIncome("plunder", 1000)
	assert.InDelta(t, 0, n.TotalIncome(), 1e-9)
}

func TestNation_DeclareWarOnAlly(t *testing.T) {
	a, _ := newPair(t)

	rel, ok := a.Relation(1)
	require.True(t, ok)
	rel.Improve(60)

	require.True(t, a.FormAlliance(1))
	assert.True(t, rel.Alliance)
	assert.InDelta(t, 80, rel.Opinion, 1e-9, "alliance warms the relationship by 20")

	require.True(t, a.DeclareWar(1, 1400))
	assert.True(t, rel.AtWar)
	assert.False(t, rel.Alliance, "war severs the alliance")
	assert.False(t, rel.MilitaryAccess)
	assert.False(t, rel.TradeAgreement)
	assert.InDelta(t, 30, rel.Opinion, 1e-9, "opinion drops by exactly 50")
}

func TestNation_WarAndTruceExclusive(t *testing.T) {
	a, _ := newPair(t)

	require.True(t, a.DeclareWar(1, 1400))
	assert.False(t, a.DeclareWar(1, 1400), "already at war")

	require.True(t, a.MakePeace(1, 1402, 5))
	rel, _ := a.Relation(1)
	assert.False(t, rel.AtWar)
	assert.Equal(t, 1407, rel.TruceUntil)

	assert.False(t, a.DeclareWar(1, 1405), "truce still active")
	assert.True(t, a.DeclareWar(1, 1407), "truce expired")
	assert.Zero(t, rel.TruceUntil, "redeclaring clears the stale truce")

	// The invariant: never at war with an unexpired truce.
	assert.False(t, rel.AtWar && rel.TruceActive(1405))
}

func TestNation_AllianceRequiresWarmRelations(t *testing.T) {
	a, _ := newPair(t)

	assert.False(t, a.FormAlliance(1), "opinion 0 is below the threshold")

	rel, _ := a.Relation(1)
	rel.Improve(50)
	assert.True(t, a.FormAlliance(1))

	assert.True(t, a.BreakAlliance(1))
	assert.False(t, rel.Alliance)
	assert.InDelta(t, 50, rel.Opinion, 1e-9, "70 after alliance bonus, -20 for the betrayal")
}

func TestNation_RoyalMarriageGates(t *testing.T) {
	a, _ := newPair(t)

	rel, _ := a.Relation(1)
	rel.Worsen(10)
	assert.False(t, a.RoyalMarriage(1), "negative opinion blocks marriage")

	rel.Improve(10)
	assert.True(t, a.RoyalMarriage(1))
	assert.True(t, rel.RoyalMarriage)
	assert.False(t, a.RoyalMarriage(1), "already married")
}

func TestRelation_DriftTowardNeutral(t *testing.T) {
	r := nation.NewRelation(1)
	r.Improve(1)
	r.Trust = 49.5

	for i := 0; i < 5; i++ {
		r.Update()
	}
	assert.InDelta(t, 0.5, r.Opinion, 1e-9)
	assert.InDelta(t, 50, r.Trust, 1e-9, "trust drift stops at 50")

	for i := 0; i < 10; i++ {
		r.Update()
	}
	assert.InDelta(t, 0, r.Opinion, 1e-9, "opinion drift stops at 0")
}

func TestNation_TechInvestment(t *testing.T) {
	n := nation.New(0, "Francia", 1, 0)
	n.Treasury = 100

	assert.Equal(t, 1, n.TechLevel(nation.TechMilitary))
	assert.InDelta(t, 100, n.TechCost(nation.TechMilitary), 1e-9, "level x 100")

	require.True(t, n.InvestInTech(nation.TechMilitary))
	assert.Equal(t, 2, n.TechLevel(nation.TechMilitary))
	assert.InDelta(t, 0, n.Treasury, 1e-9)

	assert.False(t, n.InvestInTech(nation.TechMilitary), "cannot afford level 2 cost")
	assert.Equal(t, 2, n.TechLevel(nation.TechMilitary))
}

func TestNation_RecruitTroops(t *testing.T) {
	n := nation.New(0, "Francia", 1, 0)
	n.Treasury = 100
	n.Manpower = 5

	assert.False(t, n.RecruitTroops(6), "manpower pool too small")
	assert.Equal(t, 0, n.ArmySize)

	require.True(t, n.RecruitTroops(5))
	assert.Equal(t, 5, n.ArmySize)
	assert.Equal(t, 0, n.Manpower)
	assert.InDelta(t, 50, n.Treasury, 1e-9, "10 gold per recruit")
}

func TestNation_MilitaryPower(t *testing.T) {
	n := nation.New(0, "Francia", 1, 0)
	n.ArmySize = 10
	assert.InDelta(t, 11, n.MilitaryPower(), 1e-9, "10 x (1 + 0.1 x tech 1)")
}

func TestNation_SpendClampsAtAffordability(t *testing.T) {
	n := nation.New(0, "Francia", 1, 0)
	n.Treasury = 40

	assert.False(t, n.Spend(50))
	assert.InDelta(t, 40, n.Treasury, 1e-9)
	assert.True(t, n.Spend(40))
	assert.InDelta(t, 0, n.Treasury, 1e-9)
}
