// Package game ties every system together and drives the simulation
// clock: a 30-day month, monthly economy and character ticks, a
// mid-month military tick, quarterly AI ticks, and yearly development.
package game

import (
	"fmt"
	"log/slog"

	"github.com/LDCODES12/EconGame/internal/ai"
	"github.com/LDCODES12/EconGame/internal/character"
	"github.com/LDCODES12/EconGame/internal/economy"
	"github.com/LDCODES12/EconGame/internal/entropy"
	"github.com/LDCODES12/EconGame/internal/military"
	"github.com/LDCODES12/EconGame/internal/nation"
	"github.com/LDCODES12/EconGame/internal/world"
)

// StartingYear is the first year on the calendar.
const StartingYear = 1400

// DaysPerMonth is the simplified month length.
const DaysPerMonth = 30

// MonthNames in calendar order.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var nationNames = []string{
	"Francia", "Anglia", "Iberia", "Germania", "Italia",
	"Byzantium", "Rus", "Arabia", "Persia", "India",
}

// Statistics counts notable occurrences across a run.
type Statistics struct {
	WarsFought     int
	TreatiesSigned int
	RoyalMarriages int
	Successions    int
	BattlesFought  int
}

// Historian receives notable occurrences for out-of-band recording.
// All methods must tolerate being called mid-tick; a nil Historian on
// the State disables recording entirely.
type Historian interface {
	RecordBattle(date string, report *military.Report)
	RecordEvent(date, category, description string)
	RecordYear(year int, stats Statistics, nations map[int]*nation.Nation)
}

// Config controls world setup.
type Config struct {
	Seed    int64
	MapGen  world.GenConfig
	Nations int // capped at len(nationNames)
}

// DefaultConfig returns the standard world setup.
func DefaultConfig() Config {
	return Config{
		MapGen:  world.DefaultGenConfig(),
		Nations: len(nationNames),
	}
}

// State is the complete simulation: world, registries, systems, and
// the calendar. All mutation happens on the caller's goroutine.
type State struct {
	Day   int // 1..DaysPerMonth
	Month int // 0..11
	Year  int

	Map        *world.Map
	Nations    map[int]*nation.Nation
	Characters map[int]*character.Character
	Dynasties  map[int]*character.Dynasty

	Military *military.System
	Economy  *economy.System
	AI       *ai.Manager

	PlayerID int
	Stats    Statistics

	Historian Historian

	rng             *entropy.Source
	nextCharacterID int
}

// New generates a full world from the config. The military and economy
// systems are created internally; the AI manager controls every nation
// except the player's, which is always the first nation created.
func New(cfg Config) (*State, error) {
	if cfg.Nations <= 0 || cfg.Nations > len(nationNames) {
		return nil, fmt.Errorf("nation count %d out of range 1..%d", cfg.Nations, len(nationNames))
	}
	if cfg.MapGen.Width <= 0 || cfg.MapGen.Height <= 0 {
		return nil, fmt.Errorf("map dimensions %dx%d invalid", cfg.MapGen.Width, cfg.MapGen.Height)
	}

	rng := entropy.NewSource(cfg.Seed)

	s := &State{
		Day:             1,
		Month:           0,
		Year:            StartingYear,
		Nations:         make(map[int]*nation.Nation),
		Characters:      make(map[int]*character.Character),
		Dynasties:       make(map[int]*character.Dynasty),
		Military:        military.NewSystem(),
		Economy:         economy.NewSystem(),
		rng:             rng,
		nextCharacterID: 1,
	}

	slog.Info("generating world", "seed", rng.Seed(), "width", cfg.MapGen.Width, "height", cfg.MapGen.Height)
	s.Map = world.Generate(cfg.MapGen, rng)

	s.createNations(cfg.Nations)
	s.assignTerritory()
	s.seedDiplomacy()
	s.Economy.AssignProvinces(s.Map.Provinces, rng)
	s.raiseInitialForces()
	s.seedManpower()

	s.PlayerID = 0
	s.AI = ai.NewManager(s.Nations, s.PlayerID, rng)

	slog.Info("world ready",
		"nations", len(s.Nations),
		"provinces", len(s.Map.Provinces),
		"characters", len(s.Characters))
	return s, nil
}

// Rng exposes the run's entropy source for event generation.
func (s *State) Rng() *entropy.Source { return s.rng }

// PlayerNation returns the player's nation.
func (s *State) PlayerNation() *nation.Nation {
	return s.Nations[s.PlayerID]
}

// Nation returns a nation by id.
func (s *State) Nation(id int) (*nation.Nation, bool) {
	n, ok := s.Nations[id]
	return n, ok
}

// Character returns a character by id.
func (s *State) Character(id int) (*character.Character, bool) {
	c, ok := s.Characters[id]
	return c, ok
}

// NationForProvince returns the nation owning a province.
func (s *State) NationForProvince(provinceID int) (*nation.Nation, bool) {
	p, ok := s.Map.Province(provinceID)
	if !ok || p.NationID == world.NoNation {
		return nil, false
	}
	n, ok := s.Nations[p.NationID]
	return n, ok
}

// newCharacterID allocates the next character id. Ids start at 1 so
// that a zero SpouseID always means unmarried.
func (s *State) newCharacterID() int {
	id := s.nextCharacterID
	s.nextCharacterID++
	return id
}

// ── Player command surface ────────────────────────────────────────────

// DeclareWar declares war between two nations.
func (s *State) DeclareWar(attackerID, defenderID int) bool {
	attacker, ok := s.Nations[attackerID]
	if !ok {
		return false
	}
	if _, ok := s.Nations[defenderID]; !ok {
		return false
	}
	if !attacker.DeclareWar(defenderID, s.Year) {
		return false
	}
	s.Stats.WarsFought++
	s.recordEvent("diplomacy", fmt.Sprintf("%s declares war on %s",
		attacker.Name, s.Nations[defenderID].Name))
	return true
}

// MakePeace ends a war with a five-year truce.
func (s *State) MakePeace(aID, bID int) bool {
	a, ok := s.Nations[aID]
	if !ok {
		return false
	}
	if _, ok := s.Nations[bID]; !ok {
		return false
	}
	if !a.MakePeace(bID, s.Year, 5) {
		return false
	}
	s.Stats.TreatiesSigned++
	s.recordEvent("diplomacy", fmt.Sprintf("%s makes peace with %s",
		a.Name, s.Nations[bID].Name))
	return true
}

// ArrangeMarriage forms a royal marriage between two nations.
func (s *State) ArrangeMarriage(aID, bID int) bool {
	a, ok := s.Nations[aID]
	if !ok {
		return false
	}
	if _, ok := s.Nations[bID]; !ok {
		return false
	}
	if !a.RoyalMarriage(bID) {
		return false
	}
	s.Stats.RoyalMarriages++
	return true
}

// DevelopProvince raises one development track of an owned province,
// paying from the owner's treasury.
func (s *State) DevelopProvince(nationID, provinceID int, cat world.DevCategory) bool {
	n, ok := s.Nations[nationID]
	if !ok || !n.OwnsProvince(provinceID) {
		return false
	}
	p, ok := s.Map.Province(provinceID)
	if !ok {
		return false
	}
	cost := p.DevelopCost(cat)
	if !n.CanAfford(cost) {
		return false
	}
	if !p.Develop(cat) {
		return false
	}
	n.Spend(cost)
	return true
}

// RecruitTroops recruits troops for a nation.
func (s *State) RecruitTroops(nationID, amount int) bool {
	n, ok := s.Nations[nationID]
	if !ok {
		return false
	}
	return n.RecruitTroops(amount)
}

// InvestInTech advances one technology track for a nation.
func (s *State) InvestInTech(nationID int, field nation.TechField) bool {
	n, ok := s.Nations[nationID]
	if !ok {
		return false
	}
	return n.InvestInTech(field)
}

// MoveArmy orders an army along the province path to a destination.
func (s *State) MoveArmy(armyID, destProvinceID int) bool {
	army, ok := s.Military.Army(armyID)
	if !ok {
		return false
	}
	path := s.Map.FindProvincePath(army.Location, destProvinceID)
	if path == nil {
		return false
	}
	return s.Military.MoveArmy(armyID, path)
}

// StartBattle forces an immediate engagement between two hostile armies
// in the same province, outside the regular military tick.
func (s *State) StartBattle(attackerArmyID, defenderArmyID int) bool {
	report, ok := s.Military.StartBattle(
		attackerArmyID, defenderArmyID, s.Nations, s.Map, s.Characters, s.rng)
	if !ok {
		return false
	}
	s.Stats.BattlesFought++
	if s.Historian != nil {
		s.Historian.RecordBattle(s.DateString(), report)
	}
	return true
}

// ImproveRelations nudges one nation's opinion of another upward.
func (s *State) ImproveRelations(nationID, targetID int, amount float64) bool {
	n, ok := s.Nations[nationID]
	if !ok {
		return false
	}
	rel, ok := n.Relation(targetID)
	if !ok {
		return false
	}
	rel.Improve(amount)
	return true
}

func (s *State) recordEvent(category, description string) {
	if s.Historian != nil {
		s.Historian.RecordEvent(s.DateString(), category, description)
	}
}
