package game

import (
	"fmt"
	"math"
	"sort"

	"github.com/LDCODES12/EconGame/internal/character"
	"github.com/LDCODES12/EconGame/internal/entropy"
	"github.com/LDCODES12/EconGame/internal/nation"
	"github.com/LDCODES12/EconGame/internal/world"
)

// createNations builds the dynasties, rulers, ruling families, and
// nation registry entries.
func (s *State) createNations(count int) {
	for i := 0; i < count; i++ {
		name := nationNames[i]
		dynastyName := "House of " + name

		dynasty := character.NewDynasty(i, dynastyName)
		s.Dynasties[i] = dynasty

		ruler := s.newCharacter(fmt.Sprintf("%s I", name), dynastyName,
			30+s.rng.Between(-10, 10), rolledStats(s.rng, 3, 8))
		dynasty.SetFounder(ruler.ID, s.Year)
		dynasty.AddMember(ruler.ID)

		if s.rng.Chance(0.5) {
			s.createRulingFamily(ruler, dynasty)
		}

		s.Nations[i] = nation.New(i, name, ruler.ID, dynasty.ID)
	}
}

// createRulingFamily gives a ruler a spouse and up to three children.
func (s *State) createRulingFamily(ruler *character.Character, dynasty *character.Dynasty) {
	spouse := s.newCharacter(fmt.Sprintf("Consort %d", s.nextCharacterID), ruler.DynastyName,
		25+s.rng.Between(-5, 5), rolledStats(s.rng, 3, 8))
	if ruler.Gender == character.Male {
		spouse.Gender = character.Female
	} else {
		spouse.Gender = character.Male
	}
	dynasty.AddMember(spouse.ID)

	ruler.Marry(spouse.ID)
	spouse.Marry(ruler.ID)

	for j := 0; j < s.rng.Between(0, 3); j++ {
		child := s.newCharacter(fmt.Sprintf("Heir %d", s.nextCharacterID),
			ruler.DynastyName, s.rng.Between(1, 15), rolledStats(s.rng, 1, 6))
		child.SetParents(ruler.ID, spouse.ID)
		ruler.AddChild(child.ID)
		spouse.AddChild(child.ID)
		dynasty.AddMember(child.ID)
	}
}

func (s *State) newCharacter(name, dynastyName string, age int, stats character.Stats) *character.Character {
	c := character.New(s.newCharacterID(), name, dynastyName, age, stats, s.rng)
	s.Characters[c.ID] = c
	return c
}

func rolledStats(rng *entropy.Source, lo, hi int) character.Stats {
	return character.Stats{
		Martial:     rng.Between(lo, hi),
		Diplomacy:   rng.Between(lo, hi),
		Stewardship: rng.Between(lo, hi),
		Intrigue:    rng.Between(lo, hi),
		Learning:    rng.Between(lo, hi),
	}
}

// assignTerritory seeds each nation with the unclaimed province nearest
// an evenly spaced point along the map's midline, then grows each
// nation's territory outward in rounds until provinces run out.
func (s *State) assignTerritory() {
	nationIDs := make([]int, 0, len(s.Nations))
	for id := range s.Nations {
		nationIDs = append(nationIDs, id)
	}
	sort.Ints(nationIDs)

	provinceIDs := make([]int, 0, len(s.Map.Provinces))
	for id := range s.Map.Provinces {
		provinceIDs = append(provinceIDs, id)
	}
	sort.Ints(provinceIDs)

	perNation := len(provinceIDs) / len(nationIDs)

	// Capitals first.
	for i, nationID := range nationIDs {
		centerQ := float64(s.Map.Width) * (float64(i) + 0.5) / float64(len(nationIDs))
		centerR := float64(s.Map.Height) / 2

		bestID := -1
		bestDist := math.Inf(1)
		for _, provinceID := range provinceIDs {
			p := s.Map.Provinces[provinceID]
			if p.NationID != world.NoNation {
				continue
			}
			dq := float64(p.CapitalHex.Q) - centerQ
			dr := float64(p.CapitalHex.R) - centerR
			dist := math.Hypot(dq, dr)
			if dist < bestDist {
				bestDist = dist
				bestID = provinceID
			}
		}
		if bestID < 0 {
			continue
		}

		capital := s.Map.Provinces[bestID]
		capital.NationID = nationID
		capital.IsCapital = true
		s.Nations[nationID].AddProvince(bestID)
		s.Nations[nationID].SetCapital(bestID)
	}

	// Expansion rounds: each nation claims one random frontier province
	// per round, in id order, so borders interleave naturally.
	for round := 0; round < perNation-1; round++ {
		for _, nationID := range nationIDs {
			frontier := s.unclaimedFrontier(nationID)
			if len(frontier) == 0 {
				continue
			}
			claimedID := entropy.Pick(s.rng, frontier)
			claimed := s.Map.Provinces[claimedID]
			claimed.NationID = nationID
			s.Nations[nationID].AddProvince(claimedID)
		}
	}
}

// unclaimedFrontier lists unowned provinces adjacent to a nation's
// territory, in ascending id order.
func (s *State) unclaimedFrontier(nationID int) []int {
	seen := make(map[int]bool)
	var frontier []int
	for _, provinceID := range s.Nations[nationID].Provinces {
		for _, neighborID := range s.Map.NeighborProvinces(provinceID) {
			if seen[neighborID] {
				continue
			}
			seen[neighborID] = true
			if p, ok := s.Map.Province(neighborID); ok && p.NationID == world.NoNation {
				frontier = append(frontier, neighborID)
			}
		}
	}
	sort.Ints(frontier)
	return frontier
}

// seedDiplomacy initializes relation tables and adds starting
// variation: random grudges, friendships, and the occasional alliance
// or marriage between nations that hit it off.
func (s *State) seedDiplomacy() {
	nationIDs := make([]int, 0, len(s.Nations))
	for id := range s.Nations {
		nationIDs = append(nationIDs, id)
	}
	sort.Ints(nationIDs)

	for _, id := range nationIDs {
		others := make([]int, 0, len(nationIDs)-1)
		for _, otherID := range nationIDs {
			if otherID != id {
				others = append(others, otherID)
			}
		}
		s.Nations[id].InitRelations(others)
	}

	for _, id := range nationIDs {
		n := s.Nations[id]
		for _, otherID := range nationIDs {
			if otherID == id {
				continue
			}
			rel, ok := n.Relation(otherID)
			if !ok {
				continue
			}

			if s.rng.Chance(0.2) {
				rel.Improve(float64(s.rng.Between(10, 30)))
			} else if s.rng.Chance(0.2) {
				rel.Worsen(float64(s.rng.Between(10, 30)))
			}

			if rel.Opinion > 30 && s.rng.Chance(0.1) {
				n.FormAlliance(otherID)
			}
			if rel.Opinion > 0 && s.rng.Chance(0.1) {
				n.RoyalMarriage(otherID)
			}
		}
	}
}

// raiseInitialForces places a starting army at every capital and a
// small fleet in the first coastal province of seafaring nations.
func (s *State) raiseInitialForces() {
	nationIDs := make([]int, 0, len(s.Nations))
	for id := range s.Nations {
		nationIDs = append(nationIDs, id)
	}
	sort.Ints(nationIDs)

	for _, nationID := range nationIDs {
		n := s.Nations[nationID]
		if n.CapitalID < 0 {
			continue
		}

		armyID := s.Military.CreateArmy(nationID, n.Name+" Army", n.CapitalID)
		army, _ := s.Military.Army(armyID)

		infantry := 3 + s.rng.Between(0, 3)
		army.AddUnits("infantry", infantry)
		n.ArmySize = infantry

		if n.Treasury >= 50 {
			army.AddUnits("cavalry", 1)
			n.Treasury -= 25
			n.ArmySize++
		}

		for _, provinceID := range n.Provinces {
			if !s.Map.HasCoast(provinceID) {
				continue
			}
			navyID := s.Military.CreateNavy(nationID, n.Name+" Navy", provinceID)
			navy, _ := s.Military.Navy(navyID)
			navy.AddUnits("ships_light", 2)
			n.NavySize = 2
			break
		}
	}
}

// seedManpower sets each nation's starting manpower pool from the
// manpower value of its provinces.
func (s *State) seedManpower() {
	for _, n := range s.Nations {
		total := 0.0
		for _, provinceID := range n.Provinces {
			if p, ok := s.Map.Province(provinceID); ok {
				total += p.ManpowerValue()
			}
		}
		n.Manpower = int(total * 10)
	}
}
