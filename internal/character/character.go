// Package character models the people of the simulation: rulers, spouses,
// and heirs, with attributes, traits, and a monthly/yearly lifecycle.
// Characters are never removed from a registry; death sets Alive to false
// so history and succession keep stable references.
package character

import (
	"fmt"

	"github.com/LDCODES12/EconGame/internal/calc"
	"github.com/LDCODES12/EconGame/internal/config"
	"github.com/LDCODES12/EconGame/internal/entropy"
)

// Gender of a character.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Attribute identifies one of the five character attributes.
type Attribute string

const (
	AttrMartial     Attribute = "martial"
	AttrDiplomacy   Attribute = "diplomacy"
	AttrStewardship Attribute = "stewardship"
	AttrIntrigue    Attribute = "intrigue"
	AttrLearning    Attribute = "learning"
)

// Attributes lists all attributes in canonical order.
var Attributes = []Attribute{AttrMartial, AttrDiplomacy, AttrStewardship, AttrIntrigue, AttrLearning}

// Character is one person. Attribute values stay within [1,10] after
// trait application.
type Character struct {
	ID          int
	FirstName   string
	DynastyName string
	Age         int
	Alive       bool
	Gender      Gender
	Health      float64 // 0..1
	Fertility   float64 // 0..1

	attrs map[Attribute]int

	SpouseID int // 0 means unmarried; ids start at 1.
	Children []int
	Parents  []int

	Traits []string
}

// Stats carries explicit attribute values for character creation; zero
// fields are rolled randomly.
type Stats struct {
	Martial     int
	Diplomacy   int
	Stewardship int
	Intrigue    int
	Learning    int
}

// New creates a character. Children under 16 roll low starting attributes
// that develop as they age; characters over 6 receive 1-3 random traits.
func New(id int, firstName, dynastyName string, age int, stats Stats, rng *entropy.Source) *Character {
	gender := Male
	if rng.Chance(0.5) {
		gender = Female
	}

	c := &Character{
		ID:          id,
		FirstName:   firstName,
		DynastyName: dynastyName,
		Age:         age,
		Alive:       true,
		Gender:      gender,
		Health:      1.0,
		attrs:       make(map[Attribute]int, len(Attributes)),
	}
	if gender == Female {
		c.Fertility = 0.8
	} else {
		c.Fertility = 0.5
	}

	rollCap := 10
	if age < 16 {
		rollCap = 3
	}
	explicit := map[Attribute]int{
		AttrMartial:     stats.Martial,
		AttrDiplomacy:   stats.Diplomacy,
		AttrStewardship: stats.Stewardship,
		AttrIntrigue:    stats.Intrigue,
		AttrLearning:    stats.Learning,
	}
	for _, attr := range Attributes {
		if v := explicit[attr]; v > 0 {
			c.attrs[attr] = v
		} else {
			c.attrs[attr] = rng.Between(1, rollCap)
		}
	}

	if age > 6 {
		c.assignRandomTraits(rng.Between(1, 3), rng)
	}
	return c
}

// FullName returns the character's name including dynasty.
func (c *Character) FullName() string {
	return fmt.Sprintf("%s %s", c.FirstName, c.DynastyName)
}

// Attr returns one attribute value.
func (c *Character) Attr(attr Attribute) int {
	return c.attrs[attr]
}

// Martial is a convenience accessor for the commander bonus path.
func (c *Character) Martial() int {
	return c.attrs[AttrMartial]
}

// HasTrait reports whether the character carries a trait.
func (c *Character) HasTrait(name string) bool {
	for _, t := range c.Traits {
		if t == name {
			return true
		}
	}
	return false
}

// AddTrait applies a trait and its attribute effects. Rejected when the
// trait is unknown, already present, or conflicts with an existing trait.
// Exclusivity is enforced only here, at assignment time.
func (c *Character) AddTrait(name string) bool {
	effects, ok := config.Trait(name)
	if !ok || c.HasTrait(name) {
		return false
	}
	if opposite, has := config.ConflictingTrait(name); has && c.HasTrait(opposite) {
		return false
	}

	c.Traits = append(c.Traits, name)
	c.attrs[AttrMartial] += effects.Martial
	c.attrs[AttrDiplomacy] += effects.Diplomacy
	c.attrs[AttrStewardship] += effects.Stewardship
	c.attrs[AttrIntrigue] += effects.Intrigue
	c.attrs[AttrLearning] += effects.Learning
	c.Fertility += effects.Fertility
	c.clampAttributes()
	return true
}

func (c *Character) assignRandomTraits(count int, rng *entropy.Source) {
	available := config.TraitNames()
	for i := 0; i < count && len(available) > 0; i++ {
		idx := rng.Intn(len(available))
		name := available[idx]
		available = append(available[:idx], available[idx+1:]...)
		c.AddTrait(name)
	}
}

func (c *Character) clampAttributes() {
	for _, attr := range Attributes {
		c.attrs[attr] = calc.Clamp(c.attrs[attr], 1, 10)
	}
	c.Fertility = calc.Clamp(c.Fertility, 0.0, 1.0)
}

// Marry links this character to a spouse. Fails when already married.
func (c *Character) Marry(spouseID int) bool {
	if c.SpouseID != 0 {
		return false
	}
	c.SpouseID = spouseID
	return true
}

// AddChild records a child id.
func (c *Character) AddChild(childID int) {
	for _, id := range c.Children {
		if id == childID {
			return
		}
	}
	c.Children = append(c.Children, childID)
}

// SetParents records both parents.
func (c *Character) SetParents(fatherID, motherID int) {
	c.Parents = []int{fatherID, motherID}
}

// CanHaveChildren reports whether the character is in their fertile window
// and healthy enough.
func (c *Character) CanHaveChildren() bool {
	if !c.Alive {
		return false
	}
	maxFertileAge := 65
	if c.Gender == Female {
		maxFertileAge = 45
	}
	return c.Age >= 16 && c.Age <= maxFertileAge && c.Health > 0.2 && c.Fertility > 0
}

// BirthChance returns the probability of a child this year.
func (c *Character) BirthChance() float64 {
	if !c.CanHaveChildren() || c.SpouseID == 0 {
		return 0
	}
	chance := c.Fertility * 0.2
	if c.Gender == Female {
		if c.Age > 40 {
			chance *= 0.5
		} else if c.Age < 20 {
			chance *= 0.8
		}
	} else if c.Age > 60 {
		chance *= 0.7
	}
	chance *= c.Health
	return calc.Min(1.0, chance)
}

// UpdateMonthly applies the monthly health drift.
func (c *Character) UpdateMonthly(rng *entropy.Source) {
	if !c.Alive {
		return
	}
	if rng.Chance(0.05) {
		c.Health = calc.Clamp(c.Health+rng.Range(-0.1, 0.1), 0.1, 1.0)
	}
}

// UpdateYearly ages the character, develops children, rolls trait
// milestones, and runs the death check. Returns true if the character
// died this year.
func (c *Character) UpdateYearly(rng *entropy.Source) bool {
	if !c.Alive {
		return false
	}
	c.Age++

	if c.Age < 16 {
		for _, attr := range Attributes {
			if rng.Chance(0.3) {
				c.attrs[attr] = calc.Min(10, c.attrs[attr]+1)
			}
		}
	}

	// Milestone ages where a new trait may appear.
	if c.Age == 6 || c.Age == 12 || c.Age == 16 {
		if rng.Chance(0.7) {
			c.gainRandomTrait(rng)
		}
	}

	deathChance := 0.01
	if c.Age < 5 {
		deathChance = 0.05
	} else if c.Age > 60 {
		deathChance += float64(c.Age-60) * 0.01
	}
	deathChance *= 2.0 - c.Health

	if rng.Chance(deathChance) {
		c.Alive = false
		return true
	}
	return false
}

func (c *Character) gainRandomTrait(rng *entropy.Source) {
	var candidates []string
	for _, name := range config.TraitNames() {
		if c.HasTrait(name) {
			continue
		}
		if opposite, has := config.ConflictingTrait(name); has && c.HasTrait(opposite) {
			continue
		}
		candidates = append(candidates, name)
	}
	if len(candidates) == 0 {
		return
	}
	c.AddTrait(entropy.Pick(rng, candidates))
}
