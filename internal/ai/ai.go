// Heuristic nation controllers. Each computer nation gets one NationAI
// with a randomly drawn personality whose weights shape every decision:
// how much treasury goes to development, how eager the nation is to
// recruit, and how often it rolls for war, alliances, and marriages.
package ai

import (
	"log/slog"
	"sort"

	"github.com/LDCODES12/EconGame/internal/config"
	"github.com/LDCODES12/EconGame/internal/entropy"
	"github.com/LDCODES12/EconGame/internal/nation"
	"github.com/LDCODES12/EconGame/internal/world"
)

// Target is a scored candidate for expansion, alliance, or rivalry.
type Target struct {
	ID    int
	Score float64
}

// NationAI drives one computer-controlled nation.
type NationAI struct {
	NationID    int
	Personality string

	weights config.PersonalityWeights

	expansion []Target // province ids, best first
	alliance  []Target // nation ids, best first
	rivals    []Target // nation ids, best first
}

// New creates an AI for the given nation with a personality drawn from
// the configured set.
func New(nationID int, rng *entropy.Source) *NationAI {
	name := entropy.Pick(rng, config.PersonalityNames())
	weights, ok := config.Personality(name)
	if !ok {
		name = "balanced"
		weights, _ = config.Personality(name)
	}
	return &NationAI{
		NationID:    nationID,
		Personality: name,
		weights:     weights,
	}
}

// ExpansionTargets returns the current expansion scoring, best first.
func (a *NationAI) ExpansionTargets() []Target { return a.expansion }

// AllianceTargets returns the current alliance scoring, best first.
func (a *NationAI) AllianceTargets() []Target { return a.alliance }

// RivalTargets returns the current rival scoring, best first.
func (a *NationAI) RivalTargets() []Target { return a.rivals }

// Update runs one AI tick: rescore targets, then act on economy,
// military, and diplomacy in that order.
func (a *NationAI) Update(
	worldMap *world.Map,
	nations map[int]*nation.Nation,
	year int,
	rng *entropy.Source,
) {
	n, ok := nations[a.NationID]
	if !ok {
		return
	}

	a.scoreRivals(worldMap, nations, n)
	a.scoreExpansion(worldMap, nations, n)
	a.scoreAlliances(nations, n)

	a.decideEconomy(worldMap, n)
	a.decideMilitary(worldMap, nations, n, year, rng)
	a.decideDiplomacy(n, rng)
}

// scoreExpansion values every province adjacent to owned territory.
// Unowned provinces are free real estate and score a flat 100; allied
// owners are never targeted.
func (a *NationAI) scoreExpansion(worldMap *world.Map, nations map[int]*nation.Nation, n *nation.Nation) {
	a.expansion = a.expansion[:0]

	seen := make(map[int]bool)
	for _, provinceID := range n.Provinces {
		for _, neighborID := range worldMap.NeighborProvinces(provinceID) {
			if seen[neighborID] || n.OwnsProvince(neighborID) {
				continue
			}
			seen[neighborID] = true

			p, ok := worldMap.Province(neighborID)
			if !ok {
				continue
			}

			if p.NationID == world.NoNation {
				a.expansion = append(a.expansion, Target{ID: neighborID, Score: 100})
				continue
			}
			if _, ok := nations[p.NationID]; !ok {
				continue
			}
			if rel, ok := n.Relation(p.NationID); ok && rel.Alliance {
				continue
			}

			score := float64(p.TotalGold)*2 + float64(p.TotalProduction) + float64(p.TotalFood)*0.5
			score += float64(p.TotalDevelopment()) * 5
			if p.IsCapital {
				score *= 1.5
			}
			a.expansion = append(a.expansion, Target{ID: neighborID, Score: score})
		}
	}
	sortTargets(a.expansion)
}

// scoreAlliances values every other nation as a potential partner.
// Relies on rival scoring having run first this tick.
func (a *NationAI) scoreAlliances(nations map[int]*nation.Nation, n *nation.Nation) {
	a.alliance = a.alliance[:0]

	for _, otherID := range sortedNationIDs(nations) {
		if otherID == a.NationID {
			continue
		}
		other := nations[otherID]

		rel, ok := n.Relation(otherID)
		if ok && (rel.Alliance || rel.AtWar) {
			continue
		}

		ourPower := n.MilitaryPower()
		if ourPower < 1 {
			ourPower = 1
		}
		score := other.MilitaryPower() / ourPower * 50
		if ok && rel.Opinion > 0 {
			score += rel.Opinion
		}

		// Shared rivals pull nations together.
		for _, rival := range a.rivals {
			if theirRel, ok := other.Relation(rival.ID); ok && theirRel.Opinion < 0 {
				score += 20
			}
		}

		a.alliance = append(a.alliance, Target{ID: otherID, Score: score})
	}
	sortTargets(a.alliance)
}

// scoreRivals values every other nation as a rival: bad opinion,
// shared borders, and military parity all feed the rivalry.
func (a *NationAI) scoreRivals(worldMap *world.Map, nations map[int]*nation.Nation, n *nation.Nation) {
	a.rivals = a.rivals[:0]

	for _, otherID := range sortedNationIDs(nations) {
		if otherID == a.NationID {
			continue
		}
		other := nations[otherID]

		if rel, ok := n.Relation(otherID); ok && rel.Alliance {
			continue
		}

		score := 0.0
		if rel, ok := n.Relation(otherID); ok && rel.Opinion < 0 {
			score += -rel.Opinion
		}

		for _, provinceID := range n.Provinces {
			for _, neighborID := range worldMap.NeighborProvinces(provinceID) {
				if p, ok := worldMap.Province(neighborID); ok && p.NationID == otherID {
					score += 10
				}
			}
		}

		ourPower := n.MilitaryPower()
		if ourPower < 1 {
			ourPower = 1
		}
		ratio := other.MilitaryPower() / ourPower
		if ratio >= 0.8 && ratio <= 1.2 {
			score += 30
		}

		a.rivals = append(a.rivals, Target{ID: otherID, Score: score})
	}
	sortTargets(a.rivals)
}

// decideEconomy spends a personality-weighted slice of the treasury on
// province development and technology. A nation running a deficit sits
// on its hands.
func (a *NationAI) decideEconomy(worldMap *world.Map, n *nation.Nation) {
	if n.Balance() < 0 {
		return
	}

	developmentBudget := n.Treasury * 0.1 * a.weights.EconomyFocus
	techBudget := n.Treasury * 0.05 * a.weights.EconomyFocus

	if developmentBudget > 0 {
		a.developProvinces(worldMap, n, developmentBudget)
	}
	if techBudget > 0 {
		a.investInTech(n)
	}
}

// developProvinces walks owned provinces in descending development
// potential and raises the personality-preferred category until the
// budget runs dry.
func (a *NationAI) developProvinces(worldMap *world.Map, n *nation.Nation, budget float64) {
	provinces := make([]*world.Province, 0, len(n.Provinces))
	for _, provinceID := range n.Provinces {
		if p, ok := worldMap.Province(provinceID); ok {
			provinces = append(provinces, p)
		}
	}
	sort.SliceStable(provinces, func(i, j int) bool {
		return developmentPotential(provinces[i]) > developmentPotential(provinces[j])
	})

	for _, p := range provinces {
		cat, ok := a.pickDevelopmentCategory(p)
		if !ok {
			continue
		}
		cost := p.DevelopCost(cat)
		if cost > budget || !n.CanAfford(cost) {
			continue
		}
		if p.Develop(cat) {
			n.Spend(cost)
			budget -= cost
		}
		if budget <= 0 {
			break
		}
	}
}

// pickDevelopmentCategory returns the development track this
// personality raises in the given province, or false when the province
// is maxed out.
func (a *NationAI) pickDevelopmentCategory(p *world.Province) (world.DevCategory, bool) {
	switch a.Personality {
	case "militarist":
		if p.Development(world.DevManpower) < 10 {
			return world.DevManpower, true
		}
		return "", false
	case "economist":
		if p.Development(world.DevProduction) < 10 {
			return world.DevProduction, true
		}
		return "", false
	default:
		cats := append([]world.DevCategory(nil), world.DevCategories...)
		sort.SliceStable(cats, func(i, j int) bool {
			return p.Development(cats[i]) < p.Development(cats[j])
		})
		if p.Development(cats[0]) < 10 {
			return cats[0], true
		}
		return "", false
	}
}

// developmentPotential estimates how much a province gains from
// investment. Capitals count extra and heavily developed provinces see
// diminishing returns.
func developmentPotential(p *world.Province) float64 {
	potential := float64(p.TotalFood + p.TotalProduction + p.TotalGold)
	if p.IsCapital {
		potential *= 1.5
	}
	potential *= float64(30-p.TotalDevelopment()) / 30
	return potential
}

// investInTech advances the personality's preferred technology track,
// or the cheapest one for generalists.
func (a *NationAI) investInTech(n *nation.Nation) {
	switch a.Personality {
	case "militarist":
		n.InvestInTech(nation.TechMilitary)
	case "diplomat":
		n.InvestInTech(nation.TechDiplomatic)
	case "economist":
		n.InvestInTech(nation.TechAdministrative)
	default:
		fields := append([]nation.TechField(nil), nation.TechFields...)
		sort.SliceStable(fields, func(i, j int) bool {
			return n.TechLevel(fields[i]) < n.TechLevel(fields[j])
		})
		n.InvestInTech(fields[0])
	}
}

// decideMilitary recruits toward a target army size and occasionally
// rolls for war, gated by aggression and relative power.
func (a *NationAI) decideMilitary(worldMap *world.Map, nations map[int]*nation.Nation, n *nation.Nation, year int, rng *entropy.Source) {
	militaryBudget := n.Treasury * 0.2 * a.weights.MilitaryFocus

	if n.ArmySize < len(n.Provinces)*2 {
		amount := int(militaryBudget / 10)
		if amount < 1 {
			amount = 1
		}
		n.RecruitTroops(amount)
	}

	if rng.Chance(a.weights.Aggression*0.1) && n.ArmySize > 5 {
		a.considerWar(worldMap, nations, n, year)
	}
}

// considerWar declares war on the owner of the top expansion target
// when the power gap justifies it. Expansionists settle for any edge
// at all.
func (a *NationAI) considerWar(worldMap *world.Map, nations map[int]*nation.Nation, n *nation.Nation, year int) {
	if len(a.expansion) == 0 {
		return
	}

	p, ok := worldMap.Province(a.expansion[0].ID)
	if !ok || p.NationID == world.NoNation {
		return
	}
	target, ok := nations[p.NationID]
	if !ok {
		return
	}
	if rel, ok := n.Relation(target.ID); ok && rel.AtWar {
		return
	}

	ourPower := n.MilitaryPower()
	theirPower := target.MilitaryPower()
	if ourPower > theirPower*1.5 ||
		(a.Personality == "expansionist" && ourPower > theirPower) {
		if n.DeclareWar(target.ID, year) {
			slog.Info("war declared", "nation", n.ID, "target", target.ID, "year", year)
		}
	}
}

// decideDiplomacy rolls for alliances and marriages and drifts
// relations toward friends and away from rivals.
func (a *NationAI) decideDiplomacy(n *nation.Nation, rng *entropy.Source) {
	if rng.Chance(a.weights.DiplomacyFocus * 0.2) {
		a.considerAlliance(n)
	}
	if rng.Chance(a.weights.DiplomacyFocus * 0.1) {
		a.considerMarriage(n)
	}

	for _, t := range a.alliance {
		if rel, ok := n.Relation(t.ID); ok && rel.Opinion < 50 {
			rel.Improve(5)
		}
	}
	top := a.rivals
	if len(top) > 3 {
		top = top[:3]
	}
	for _, t := range top {
		if rel, ok := n.Relation(t.ID); ok {
			rel.Worsen(3)
		}
	}
}

func (a *NationAI) considerAlliance(n *nation.Nation) {
	for _, t := range a.alliance {
		if rel, ok := n.Relation(t.ID); ok && rel.Opinion >= 0 {
			if n.FormAlliance(t.ID) {
				slog.Debug("alliance formed", "nation", n.ID, "partner", t.ID)
				return
			}
		}
	}
}

func (a *NationAI) considerMarriage(n *nation.Nation) {
	for _, t := range a.alliance {
		if rel, ok := n.Relation(t.ID); ok && rel.Opinion >= 0 {
			if n.RoyalMarriage(t.ID) {
				return
			}
		}
	}
}

func sortTargets(targets []Target) {
	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].Score > targets[j].Score
	})
}

func sortedNationIDs(nations map[int]*nation.Nation) []int {
	ids := make([]int, 0, len(nations))
	for id := range nations {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
