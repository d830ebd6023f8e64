package military

import (
	"log/slog"
	"sort"

	"github.com/LDCODES12/EconGame/internal/character"
	"github.com/LDCODES12/EconGame/internal/entropy"
	"github.com/LDCODES12/EconGame/internal/nation"
	"github.com/LDCODES12/EconGame/internal/world"
)

// System owns all armies and navies and runs the military tick: movement,
// conflict detection, battle resolution, and maintenance charges.
type System struct {
	armies map[int]*Force
	navies map[int]*Force

	nextArmyID int
	nextNavyID int

	// Reports of resolved battles, kept for reporting only.
	History []*Report
}

// NewSystem creates an empty military registry.
func NewSystem() *System {
	return &System{
		armies: make(map[int]*Force),
		navies: make(map[int]*Force),
	}
}

// CreateArmy registers a new army and returns its id.
func (s *System) CreateArmy(nationID int, name string, provinceID int) int {
	id := s.nextArmyID
	s.nextArmyID++
	s.armies[id] = newForce(id, nationID, name, provinceID, false)
	return id
}

// CreateNavy registers a new navy and returns its id.
func (s *System) CreateNavy(nationID int, name string, provinceID int) int {
	id := s.nextNavyID
	s.nextNavyID++
	s.navies[id] = newForce(id, nationID, name, provinceID, true)
	return id
}

// Army returns an army by id.
func (s *System) Army(id int) (*Force, bool) {
	f, ok := s.armies[id]
	return f, ok
}

// Navy returns a navy by id.
func (s *System) Navy(id int) (*Force, bool) {
	f, ok := s.navies[id]
	return f, ok
}

// Armies returns all armies keyed by id. Callers must not add or remove
// entries.
func (s *System) Armies() map[int]*Force {
	return s.armies
}

// Navies returns all navies keyed by id.
func (s *System) Navies() map[int]*Force {
	return s.navies
}

// NationForces returns the armies and navies of one nation.
func (s *System) NationForces(nationID int) []*Force {
	var out []*Force
	for _, f := range s.armies {
		if f.NationID == nationID {
			out = append(out, f)
		}
	}
	for _, f := range s.navies {
		if f.NationID == nationID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MoveArmy sets an army walking a province path. Embarked armies cannot
// move on their own.
func (s *System) MoveArmy(armyID int, path []int) bool {
	f, ok := s.armies[armyID]
	if !ok || f.Embarked {
		return false
	}
	f.SetPath(path)
	return true
}

// MoveNavy sets a navy sailing a province path.
func (s *System) MoveNavy(navyID int, path []int) bool {
	f, ok := s.navies[navyID]
	if !ok {
		return false
	}
	f.SetPath(path)
	return true
}

// EmbarkArmy loads an army onto a navy in the same province. The navy's
// transport capacity must cover the army's full manpower footprint; there
// is no partial embarkation.
func (s *System) EmbarkArmy(armyID, navyID int) bool {
	army, ok := s.armies[armyID]
	if !ok || army.Embarked {
		return false
	}
	navy, ok := s.navies[navyID]
	if !ok || navy.Transport.EmbarkedArmyID != NoForce {
		return false
	}
	if army.Location != navy.Location {
		return false
	}
	if navy.TransportCapacity() < army.ManpowerFootprint() {
		return false
	}

	navy.Transport.EmbarkedArmyID = armyID
	army.Embarked = true
	army.SetPath(nil)
	return true
}

// DisembarkArmy unloads an army at the navy's current location, restoring
// independent movement.
func (s *System) DisembarkArmy(armyID, navyID int) bool {
	army, ok := s.armies[armyID]
	if !ok || !army.Embarked {
		return false
	}
	navy, ok := s.navies[navyID]
	if !ok || navy.Transport.EmbarkedArmyID != armyID {
		return false
	}

	navy.Transport.EmbarkedArmyID = NoForce
	army.Embarked = false
	army.Location = navy.Location
	return true
}

// MergeArmies folds the source army into the target and deregisters the
// source. Both must share a nation and location.
func (s *System) MergeArmies(targetID, sourceID int) bool {
	target, ok := s.armies[targetID]
	if !ok {
		return false
	}
	source, ok := s.armies[sourceID]
	if !ok || targetID == sourceID {
		return false
	}
	if target.NationID != source.NationID || target.Location != source.Location {
		return false
	}
	target.MergeWith(source)
	delete(s.armies, sourceID)
	return true
}

// StartBattle resolves an immediate battle between two armies sharing a
// province. Both must belong to nations at war; the instigator attacks.
func (s *System) StartBattle(
	attackerID, defenderID int,
	nations map[int]*nation.Nation,
	worldMap *world.Map,
	characters map[int]*character.Character,
	rng *entropy.Source,
) (*Report, bool) {
	attacker, ok := s.armies[attackerID]
	if !ok || attacker.Embarked {
		return nil, false
	}
	defender, ok := s.armies[defenderID]
	if !ok || defender.Embarked || attacker.Location != defender.Location {
		return nil, false
	}
	if !atWar(nations, attacker.NationID, defender.NationID) {
		return nil, false
	}

	var province *world.Province
	if worldMap != nil {
		province, _ = worldMap.Province(attacker.Location)
	}
	report := ResolveBattle(attacker, defender,
		nations[attacker.NationID], nations[defender.NationID],
		characters, province, rng)
	s.History = append(s.History, report)

	if attacker.TotalUnits() == 0 {
		delete(s.armies, attacker.ID)
	}
	if defender.TotalUnits() == 0 {
		delete(s.armies, defender.ID)
	}
	return report, true
}

// Update runs one military tick: movement, conflict detection and battle
// resolution, cleanup of emptied forces, and maintenance expenses.
func (s *System) Update(
	nations map[int]*nation.Nation,
	worldMap *world.Map,
	characters map[int]*character.Character,
	rng *entropy.Source,
) []*Report {
	s.advanceMovement()
	reports := s.resolveConflicts(nations, worldMap, characters, rng)
	s.chargeMaintenance(nations)
	return reports
}

// advanceMovement walks every moving force one province along its path.
// Embarked armies ride along with their navy.
func (s *System) advanceMovement() {
	for _, army := range sortedForces(s.armies) {
		if !army.Embarked && army.Moving() {
			army.advance()
		}
	}
	for _, navy := range sortedForces(s.navies) {
		if !navy.Moving() {
			continue
		}
		navy.advance()
		if id := navy.Transport.EmbarkedArmyID; id != NoForce {
			if army, ok := s.armies[id]; ok {
				army.Location = navy.Location
			}
		}
	}
}

// resolveConflicts groups armies by province and nation and fights a
// battle for every co-located pair of nations at war. Battles resolve
// instantly; emptied forces are deregistered.
func (s *System) resolveConflicts(
	nations map[int]*nation.Nation,
	worldMap *world.Map,
	characters map[int]*character.Character,
	rng *entropy.Source,
) []*Report {
	byProvince := make(map[int][]*Force)
	for _, army := range sortedForces(s.armies) {
		if army.Embarked {
			continue
		}
		byProvince[army.Location] = append(byProvince[army.Location], army)
	}

	provinces := make([]int, 0, len(byProvince))
	for id := range byProvince {
		provinces = append(provinces, id)
	}
	sort.Ints(provinces)

	var reports []*Report
	for _, provinceID := range provinces {
		byNation := make(map[int][]*Force)
		var nationIDs []int
		for _, army := range byProvince[provinceID] {
			if _, seen := byNation[army.NationID]; !seen {
				nationIDs = append(nationIDs, army.NationID)
			}
			byNation[army.NationID] = append(byNation[army.NationID], army)
		}

		for i := 0; i < len(nationIDs); i++ {
			for j := i + 1; j < len(nationIDs); j++ {
				if !atWar(nations, nationIDs[i], nationIDs[j]) {
					continue
				}
				attacker := firstLiving(byNation[nationIDs[i]])
				defender := firstLiving(byNation[nationIDs[j]])
				if attacker == nil || defender == nil {
					continue
				}

				var province *world.Province
				if worldMap != nil {
					province, _ = worldMap.Province(provinceID)
				}
				report := ResolveBattle(
					attacker, defender,
					nations[attacker.NationID], nations[defender.NationID],
					characters, province, rng,
				)
				reports = append(reports, report)
				s.History = append(s.History, report)

				attackerLoss, defenderLoss := report.TotalCasualties()
				slog.Info("battle resolved",
					"province", provinceID,
					"attacker", attacker.NationID,
					"defender", defender.NationID,
					"winner", report.Winner,
					"attacker_losses", attackerLoss,
					"defender_losses", defenderLoss,
				)

				if attacker.TotalUnits() == 0 {
					delete(s.armies, attacker.ID)
				}
				if defender.TotalUnits() == 0 {
					delete(s.armies, defender.ID)
				}
			}
		}
	}
	return reports
}

// chargeMaintenance accrues each nation's military upkeep as an expense.
func (s *System) chargeMaintenance(nations map[int]*nation.Nation) {
	for nationID, n := range nations {
		upkeep := 0.0
		for _, army := range s.armies {
			if army.NationID == nationID {
				upkeep += army.MaintenanceCost()
			}
		}
		for _, navy := range s.navies {
			if navy.NationID == nationID {
				upkeep += navy.MaintenanceCost()
			}
		}
		if upkeep > 0 {
			n.AddExpense(nation.ExpenseMilitary, upkeep)
		}
	}
}

func atWar(nations map[int]*nation.Nation, a, b int) bool {
	na, ok := nations[a]
	if !ok {
		return false
	}
	r, ok := na.Relation(b)
	return ok && r.AtWar
}

func firstLiving(forces []*Force) *Force {
	for _, f := range forces {
		if f.TotalUnits() > 0 {
			return f
		}
	}
	return nil
}

// sortedForces returns map values in ascending id order for deterministic
// iteration.
func sortedForces(m map[int]*Force) []*Force {
	out := make([]*Force, 0, len(m))
	for _, f := range m {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
