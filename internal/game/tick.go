package game

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/LDCODES12/EconGame/internal/character"
	"github.com/LDCODES12/EconGame/internal/nation"
)

// Advance moves the clock forward one day and runs every system whose
// cadence falls due. Ordering within a tick is part of the contract:
// the monthly pass runs economy, then characters, then relations; the
// yearly pass runs aging and succession before nation development.
func (s *State) Advance() {
	s.Day++
	if s.Day <= DaysPerMonth {
		s.runDaily()
		return
	}

	s.Day = 1
	s.Month++
	if s.Month >= len(MonthNames) {
		s.Month = 0
		s.Year++
	}

	s.runMonthly()
	if s.Month == 0 && s.Year > StartingYear {
		s.runYearly()
	}
	s.runDaily()
}

// AdvanceDays advances the clock by n days.
func (s *State) AdvanceDays(n int) {
	for i := 0; i < n; i++ {
		s.Advance()
	}
}

// AdvanceYears advances the clock by whole calendar years.
func (s *State) AdvanceYears(n int) {
	s.AdvanceDays(n * len(MonthNames) * DaysPerMonth)
}

// runDaily dispatches the fixed-day cadences: the AI acts on the first
// day of every third month, the military ticks mid-month.
func (s *State) runDaily() {
	if s.Day == 1 && s.Month%3 == 0 {
		s.AI.Update(s.Map, s.Nations, s.Year, s.rng)
	}
	if s.Day == 15 {
		s.runMilitary()
	}
}

func (s *State) runMilitary() {
	reports := s.Military.Update(s.Nations, s.Map, s.Characters, s.rng)
	for _, report := range reports {
		s.Stats.BattlesFought++
		if s.Historian != nil {
			s.Historian.RecordBattle(s.DateString(), report)
		}
	}
}

func (s *State) runMonthly() {
	s.Economy.Update(s.Nations, s.Map.Provinces, s.rng)

	for _, id := range sortedCharacterIDs(s.Characters) {
		s.Characters[id].UpdateMonthly(s.rng)
	}

	for _, id := range sortedNationIDs(s.Nations) {
		s.Nations[id].UpdateRelations()
	}
}

func (s *State) runYearly() {
	for _, id := range sortedCharacterIDs(s.Characters) {
		c := s.Characters[id]
		if !c.Alive {
			continue
		}
		if died := c.UpdateYearly(s.rng); died {
			s.handleDeath(c)
		}
	}

	for _, id := range sortedNationIDs(s.Nations) {
		s.Nations[id].YearlyReset(s.rng)
	}

	if s.Historian != nil {
		s.Historian.RecordYear(s.Year, s.Stats, s.Nations)
	}
	slog.Debug("year complete", "year", s.Year,
		"wars", s.Stats.WarsFought, "battles", s.Stats.BattlesFought)
}

// handleDeath reacts to a character dying; a dead ruler triggers
// succession in the nation they led.
func (s *State) handleDeath(c *character.Character) {
	for _, nationID := range sortedNationIDs(s.Nations) {
		if s.Nations[nationID].RulerID == c.ID {
			s.succeed(nationID, c)
			return
		}
	}
}

// succeed installs the dead ruler's heir: the eldest living child of
// the dynasty if one exists, otherwise any living dynasty member, and
// as a last resort a freshly created adult of the dynasty.
func (s *State) succeed(nationID int, dead *character.Character) {
	n := s.Nations[nationID]
	dynasty := s.Dynasties[n.DynastyID]

	heirID := s.findHeir(dead, dynasty.Name)
	if heirID < 0 {
		heir := s.newCharacter(fmt.Sprintf("Regent %d", s.nextCharacterID), dynasty.Name,
			25+s.rng.Between(-5, 5), rolledStats(s.rng, 3, 8))
		dynasty.AddMember(heir.ID)
		heirID = heir.ID
	}

	n.RulerID = heirID
	s.Stats.Successions++
	s.recordEvent("succession", fmt.Sprintf("%s crowns a new ruler after the death of %s",
		n.Name, dead.FullName()))
	slog.Info("succession", "nation", n.Name, "heir", heirID)
}

// findHeir prefers the dead ruler's living children in id order, then
// any other living member of the dynasty.
func (s *State) findHeir(dead *character.Character, dynastyName string) int {
	children := append([]int(nil), dead.Children...)
	sort.Ints(children)
	for _, childID := range children {
		if c, ok := s.Characters[childID]; ok && c.Alive {
			return childID
		}
	}

	for _, id := range sortedCharacterIDs(s.Characters) {
		c := s.Characters[id]
		if c.Alive && c.ID != dead.ID && c.DynastyName == dynastyName {
			return c.ID
		}
	}
	return -1
}

func sortedNationIDs(m map[int]*nation.Nation) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func sortedCharacterIDs(m map[int]*character.Character) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
