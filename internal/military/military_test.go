package military_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LDCODES12/EconGame/internal/entropy"
	"github.com/LDCODES12/EconGame/internal/military"
	"github.com/LDCODES12/EconGame/internal/nation"
	"github.com/LDCODES12/EconGame/internal/world"
)

func newArmy(t *testing.T, sys *military.System, nationID, location int, units map[string]int) *military.Force {
	t.Helper()
	id := sys.CreateArmy(nationID, "Army", location)
	f, ok := sys.Army(id)
	require.True(t, ok)
	for unitType, qty := range units {
		require.True(t, f.AddUnits(unitType, qty))
	}
	return f
}

func TestForce_CombatStrength(t *testing.T) {
	sys := military.NewSystem()
	// 40 infantry (1.0/1.0) + 20 cavalry (3.0/0.5) at morale 1.0.
	f := newArmy(t, sys, 0, 0, map[string]int{"infantry": 40, "cavalry": 20})

	s := f.CombatStrength()
	assert.InDelta(t, 100, s.Attack, 1e-9)
	assert.InDelta(t, 50, s.Defense, 1e-9)

	f.Morale = 0.5
	s = f.CombatStrength()
	assert.InDelta(t, 50, s.Attack, 1e-9)
}

func TestForce_SpeedIsSlowestUnit(t *testing.T) {
	sys := military.NewSystem()
	f := newArmy(t, sys, 0, 0, map[string]int{"cavalry": 5})
	assert.InDelta(t, 2.0, f.Speed(), 1e-9)

	f.AddUnits("artillery", 1)
	assert.InDelta(t, 0.5, f.Speed(), 1e-9, "artillery drags the column down")
}

func TestForce_UnknownUnitTypeRejected(t *testing.T) {
	sys := military.NewSystem()
	f := newArmy(t, sys, 0, 0, nil)
	assert.False(t, f.AddUnits("elephants", 3))
	assert.False(t, f.AddUnits("infantry", 0))
}

func TestResolveBattle_StrongerAttackerWins(t *testing.T) {
	sys := military.NewSystem()
	attacker := newArmy(t, sys, 0, 5, map[string]int{"infantry": 40, "cavalry": 20})
	defender := newArmy(t, sys, 1, 5, map[string]int{"infantry": 60})

	province := world.NewProvince(5, "Field", world.HexCoord{})
	province.NationID = 1

	// Attacker power = 100 - 0.5x60 = 70; defender power = 60 - 0.5x50 = 35.
	report := military.ResolveBattle(attacker, defender, nil, nil, nil, province, entropy.NewSource(42))

	assert.Equal(t, military.SideAttacker, report.Winner)
	assert.Equal(t, 5, report.ProvinceID)
	assert.True(t, province.Occupied, "attacker victory occupies the province")
	assert.Equal(t, 0, province.OccupierID)
	assert.Equal(t, 1, province.OriginalOwnerID)

	// Winner pct in [5%,15%): floor bounds on 40 infantry + 20 cavalry.
	attackerLosses, defenderLosses := report.TotalCasualties()
	assert.GreaterOrEqual(t, attackerLosses, 3)
	assert.LessOrEqual(t, attackerLosses, 7)
	// Loser pct in [10%,50%) at margin 2.0 on 60 infantry.
	assert.GreaterOrEqual(t, defenderLosses, 6)
	assert.LessOrEqual(t, defenderLosses, 29)

	// Morale shifts: winner up, loser down.
	assert.InDelta(t, 1.0, attacker.Morale, 1e-9, "morale caps at 1.0")
	assert.InDelta(t, 0.7, defender.Morale, 1e-9)
}

func TestResolveBattle_ConservesUnits(t *testing.T) {
	sys := military.NewSystem()
	attacker := newArmy(t, sys, 0, 0, map[string]int{"infantry": 100})
	defender := newArmy(t, sys, 1, 0, map[string]int{"infantry": 7, "cavalry": 3})

	before := map[string]int{}
	for unitType, qty := range defender.Units {
		before[unitType] = qty
	}

	report := military.ResolveBattle(attacker, defender, nil, nil, nil, nil, entropy.NewSource(7))

	for unitType, lost := range report.DefenderCasualties {
		assert.Equal(t, before[unitType]-lost, defender.Units[unitType],
			"remaining %s must equal pre-battle minus casualties", unitType)
		assert.GreaterOrEqual(t, before[unitType]-lost, 0, "counts never go negative")
	}
	assert.Equal(t, military.NoProvince, report.ProvinceID, "nil province tolerated")
}

func TestResolveBattle_TechBonusDecides(t *testing.T) {
	sys := military.NewSystem()

	// Equal armies; the defender's nation has superior military tech.
	attacker := newArmy(t, sys, 0, 0, map[string]int{"infantry": 50})
	defender := newArmy(t, sys, 1, 0, map[string]int{"infantry": 50})

	attackerNation := nation.New(0, "A", 1, 0)
	defenderNation := nation.New(1, "B", 2, 1)
	defenderNation.Treasury = 1000
	for i := 0; i < 3; i++ {
		require.True(t, defenderNation.InvestInTech(nation.TechMilitary))
	}

	report := military.ResolveBattle(attacker, defender, attackerNation, defenderNation,
		nil, nil, entropy.NewSource(1))
	assert.Equal(t, military.SideDefender, report.Winner,
		"tech advantage decides between equal forces")
}

func TestSystem_EmbarkCapacityIsAllOrNothing(t *testing.T) {
	sys := military.NewSystem()
	army := newArmy(t, sys, 0, 3, map[string]int{"infantry": 2}) // footprint 2000
	navyID := sys.CreateNavy(0, "Fleet", 3)
	navy, _ := sys.Navy(navyID)
	navy.AddUnits("ships_transport", 1) // capacity 1000

	assert.False(t, sys.EmbarkArmy(army.ID, navyID), "capacity short by half")

	navy.AddUnits("ships_transport", 1)
	require.True(t, sys.EmbarkArmy(army.ID, navyID))
	assert.True(t, army.Embarked)

	assert.False(t, sys.MoveArmy(army.ID, []int{4}), "embarked armies cannot march")

	require.True(t, sys.DisembarkArmy(army.ID, navyID))
	assert.False(t, army.Embarked)
	assert.Equal(t, navy.Location, army.Location)
}

func TestSystem_EmbarkRequiresColocation(t *testing.T) {
	sys := military.NewSystem()
	army := newArmy(t, sys, 0, 1, map[string]int{"infantry": 1})
	navyID := sys.CreateNavy(0, "Fleet", 2)
	navy, _ := sys.Navy(navyID)
	navy.AddUnits("ships_transport", 2)

	assert.False(t, sys.EmbarkArmy(army.ID, navyID))
}

func TestSystem_MergeArmies(t *testing.T) {
	sys := military.NewSystem()
	a := newArmy(t, sys, 0, 1, map[string]int{"infantry": 10})
	b := newArmy(t, sys, 0, 1, map[string]int{"infantry": 5, "cavalry": 5})
	b.Morale = 0.5

	foreign := newArmy(t, sys, 1, 1, map[string]int{"infantry": 1})
	assert.False(t, sys.MergeArmies(a.ID, foreign.ID), "different nations never merge")

	elsewhere := newArmy(t, sys, 0, 9, map[string]int{"infantry": 1})
	assert.False(t, sys.MergeArmies(a.ID, elsewhere.ID), "different locations never merge")

	require.True(t, sys.MergeArmies(a.ID, b.ID))
	assert.Equal(t, 15, a.Units["infantry"])
	assert.Equal(t, 5, a.Units["cavalry"])
	// Weighted morale: (10x1.0 + 10x0.5) / 20.
	assert.InDelta(t, 0.75, a.Morale, 1e-9)

	_, stillThere := sys.Army(b.ID)
	assert.False(t, stillThere, "source army deregistered")
}

func TestSystem_UpdateResolvesWarsOnly(t *testing.T) {
	m := world.NewMap(3, 1)
	for q := 0; q < 3; q++ {
		coord := world.HexCoord{Q: q, R: 0}
		m.Tiles[coord] = world.NewTile(coord, "plains", "")
	}
	m.Provinces[0] = world.NewProvince(0, "Border", world.HexCoord{})
	require.True(t, m.AssignHex(0, world.HexCoord{Q: 0, R: 0}))
	m.BuildGraph()

	nations := map[int]*nation.Nation{
		0: nation.New(0, "A", 1, 0),
		1: nation.New(1, "B", 2, 1),
	}
	nations[0].InitRelations([]int{1})
	nations[1].InitRelations([]int{0})
	nations[0].Treasury = 1000
	nations[1].Treasury = 1000

	sys := military.NewSystem()
	a := newArmy(t, sys, 0, 0, map[string]int{"infantry": 30})
	b := newArmy(t, sys, 1, 0, map[string]int{"infantry": 10})

	rng := entropy.NewSource(11)

	// At peace: co-location alone is not a battle.
	reports := sys.Update(nations, m, nil, rng)
	assert.Empty(t, reports)
	assert.Equal(t, 30, a.TotalUnits())

	require.True(t, nations[0].DeclareWar(1, 1400))
	reports = sys.Update(nations, m, nil, rng)
	require.Len(t, reports, 1)
	assert.Equal(t, military.SideAttacker, reports[0].Winner)
	assert.Less(t, b.TotalUnits(), 10)

	// Maintenance hit both treasuries as a military expense.
	assert.Greater(t, nations[0].TotalExpenses(), 0.0)
}

func TestSystem_StartBattleRequiresWar(t *testing.T) {
	sys := military.NewSystem()
	a := newArmy(t, sys, 0, 4, map[string]int{"infantry": 60})
	b := newArmy(t, sys, 1, 4, map[string]int{"infantry": 20})

	nations := map[int]*nation.Nation{
		0: nation.New(0, "A", 1, 0),
		1: nation.New(1, "B", 2, 1),
	}
	nations[0].InitRelations([]int{1})
	nations[1].InitRelations([]int{0})

	rng := entropy.NewSource(4)
	_, ok := sys.StartBattle(a.ID, b.ID, nations, nil, nil, rng)
	assert.False(t, ok, "peacetime armies cannot be ordered into battle")

	require.True(t, nations[0].DeclareWar(1, 1400))
	report, ok := sys.StartBattle(a.ID, b.ID, nations, nil, nil, rng)
	require.True(t, ok)
	assert.Equal(t, military.SideAttacker, report.Winner)
	assert.Less(t, b.TotalUnits(), 20)

	elsewhere := newArmy(t, sys, 1, 9, map[string]int{"infantry": 5})
	_, ok = sys.StartBattle(a.ID, elsewhere.ID, nations, nil, nil, rng)
	assert.False(t, ok, "battles need a shared province")
}
