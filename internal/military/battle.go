package military

import (
	"math"

	"github.com/LDCODES12/EconGame/internal/character"
	"github.com/LDCODES12/EconGame/internal/entropy"
	"github.com/LDCODES12/EconGame/internal/nation"
	"github.com/LDCODES12/EconGame/internal/world"
)

// Side identifies the winner of a battle.
type Side string

const (
	SideAttacker Side = "attacker"
	SideDefender Side = "defender"
)

// Report captures one resolved battle for history and logging. Reports
// are never read back into simulation state.
type Report struct {
	ProvinceID       int
	AttackerNationID int
	DefenderNationID int
	Winner           Side

	AttackerCasualties map[string]int
	DefenderCasualties map[string]int
}

// TotalCasualties returns the summed losses per side.
func (r *Report) TotalCasualties() (attacker, defender int) {
	for _, n := range r.AttackerCasualties {
		attacker += n
	}
	for _, n := range r.DefenderCasualties {
		defender += n
	}
	return attacker, defender
}

// ResolveBattle fights a single-shot battle between one attacker and one
// defender in a province. Resolution is instantaneous: strengths are
// computed with commander and tech bonuses, the higher net power wins,
// casualty bands are rolled, morale shifts, and on an attacker victory
// the province is occupied.
func ResolveBattle(
	attacker, defender *Force,
	attackerNation, defenderNation *nation.Nation,
	characters map[int]*character.Character,
	province *world.Province,
	rng *entropy.Source,
) *Report {
	attackStr := attacker.CombatStrength()
	defendStr := defender.CombatStrength()

	applyCommanderBonus(&attackStr, attacker, characters)
	applyCommanderBonus(&defendStr, defender, characters)
	applyTechBonus(&attackStr, attackerNation)
	applyTechBonus(&defendStr, defenderNation)

	attackerPower := attackStr.Attack - 0.5*defendStr.Defense
	defenderPower := defendStr.Attack - 0.5*attackStr.Defense

	report := &Report{
		ProvinceID:         provinceID(province),
		AttackerNationID:   attacker.NationID,
		DefenderNationID:   defender.NationID,
		AttackerCasualties: make(map[string]int),
		DefenderCasualties: make(map[string]int),
	}

	var attackerLossPct, defenderLossPct float64
	if attackerPower > defenderPower {
		report.Winner = SideAttacker
		margin := victoryMargin(attackerPower, defenderPower)
		attackerLossPct = 0.05 + rng.Float()*0.1       // Winner: 5-15%.
		defenderLossPct = 0.1 + rng.Float()*0.2*margin // Loser: 10-30% x margin.
	} else {
		report.Winner = SideDefender
		margin := victoryMargin(defenderPower, attackerPower)
		defenderLossPct = 0.05 + rng.Float()*0.1
		attackerLossPct = 0.1 + rng.Float()*0.2*margin
	}

	applyCasualties(attacker, attackerLossPct, report.AttackerCasualties)
	applyCasualties(defender, defenderLossPct, report.DefenderCasualties)

	if report.Winner == SideAttacker {
		attacker.AdjustMorale(0.1)
		defender.AdjustMorale(-0.3)
		if province != nil {
			province.Occupy(attacker.NationID)
		}
	} else {
		attacker.AdjustMorale(-0.3)
		defender.AdjustMorale(0.1)
	}

	return report
}

// victoryMargin is winner power over loser power, defaulting to 2.0 when
// the loser's power is not positive.
func victoryMargin(winner, loser float64) float64 {
	if loser > 0 {
		return winner / loser
	}
	return 2.0
}

// applyCommanderBonus grants +5% attack and defense per martial point of
// the commanding character.
func applyCommanderBonus(s *Strength, f *Force, characters map[int]*character.Character) {
	if f.CommanderID == NoForce || characters == nil {
		return
	}
	commander, ok := characters[f.CommanderID]
	if !ok {
		return
	}
	bonus := 1 + float64(commander.Martial())*0.05
	s.Attack *= bonus
	s.Defense *= bonus
}

// applyTechBonus grants +10% attack and defense per military tech level.
func applyTechBonus(s *Strength, n *nation.Nation) {
	if n == nil {
		return
	}
	bonus := 1 + float64(n.TechLevel(nation.TechMilitary))*0.1
	s.Attack *= bonus
	s.Defense *= bonus
}

// applyCasualties removes floor(count x percent) per unit type, clamped to
// the units actually present so counts never go negative.
func applyCasualties(f *Force, percent float64, record map[string]int) {
	// Snapshot first; RemoveUnits mutates the map.
	type loss struct {
		unitType string
		count    int
	}
	var losses []loss
	for unitType, qty := range f.Units {
		n := int(math.Floor(float64(qty) * percent))
		if n > qty {
			n = qty
		}
		if n > 0 {
			losses = append(losses, loss{unitType, n})
		}
	}
	for _, l := range losses {
		f.RemoveUnits(l.unitType, l.count)
		record[l.unitType] = l.count
	}
}

func provinceID(p *world.Province) int {
	if p == nil {
		return NoProvince
	}
	return p.ID
}
