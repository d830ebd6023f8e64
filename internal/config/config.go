// Package config holds the immutable static tables the simulation runs on:
// terrain and resource yields, unit stats, trade goods, character traits,
// and AI personality weights. Tables are embedded YAML parsed once at
// process start and never mutated afterwards.
package config

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var rawTables []byte

// TerrainStats describes a terrain type's movement and yield properties.
type TerrainStats struct {
	MovementCost float64 `yaml:"movement_cost"`
	Food         int     `yaml:"food"`
	Production   int     `yaml:"production"`
	Gold         int     `yaml:"gold"`
}

// ResourceStats describes the yield bonus of a map resource.
type ResourceStats struct {
	Food       int  `yaml:"food"`
	Production int  `yaml:"production"`
	Gold       int  `yaml:"gold"`
	OceanOnly  bool `yaml:"ocean_only"`
}

// UnitStats describes one military unit type.
type UnitStats struct {
	Cost        float64 `yaml:"cost"`
	Maintenance float64 `yaml:"maintenance"`
	Attack      float64 `yaml:"attack"`
	Defense     float64 `yaml:"defense"`
	Morale      float64 `yaml:"morale"`
	Speed       float64 `yaml:"speed"`
	Manpower    int     `yaml:"manpower"`
	Naval       bool    `yaml:"naval"`
	Capacity    int     `yaml:"capacity"` // Transport capacity in manpower, 0 for non-transports.
}

// GoodStats describes one trade good.
type GoodStats struct {
	BasePrice  float64 `yaml:"base_price"`
	Volatility float64 `yaml:"volatility"`
}

// TraitEffects holds the attribute deltas a character trait applies.
type TraitEffects struct {
	Martial     int     `yaml:"martial"`
	Diplomacy   int     `yaml:"diplomacy"`
	Stewardship int     `yaml:"stewardship"`
	Intrigue    int     `yaml:"intrigue"`
	Learning    int     `yaml:"learning"`
	Fertility   float64 `yaml:"fertility"`
}

// PersonalityWeights holds the decision weights for one AI personality.
type PersonalityWeights struct {
	MilitaryFocus   float64 `yaml:"military_focus"`
	DiplomacyFocus  float64 `yaml:"diplomacy_focus"`
	EconomyFocus    float64 `yaml:"economy_focus"`
	ExpansionDesire float64 `yaml:"expansion_desire"`
	Aggression      float64 `yaml:"aggression"`
}

type tables struct {
	Terrain        map[string]TerrainStats       `yaml:"terrain"`
	TerrainWeights map[string]float64            `yaml:"terrain_weights"`
	Resources      map[string]ResourceStats      `yaml:"resources"`
	Units          map[string]UnitStats          `yaml:"units"`
	Goods          map[string]GoodStats          `yaml:"goods"`
	Traits         map[string]TraitEffects       `yaml:"traits"`
	TraitConflicts [][]string                    `yaml:"trait_conflicts"`
	Personalities  map[string]PersonalityWeights `yaml:"personalities"`
}

var (
	loadOnce sync.Once
	loaded   tables
	loadErr  error
)

func load() tables {
	loadOnce.Do(func() {
		loadErr = yaml.Unmarshal(rawTables, &loaded)
		if loadErr != nil {
			// Embedded data failing to parse is a build defect, not a
			// runtime condition.
			panic(fmt.Sprintf("config: parse embedded tables: %v", loadErr))
		}
	})
	return loaded
}

// Terrain returns the stats for a terrain type.
func Terrain(name string) (TerrainStats, bool) {
	s, ok := load().Terrain[name]
	return s, ok
}

// TerrainWeights returns the weighted-random distribution used at map
// generation. The returned map must not be mutated.
func TerrainWeights() map[string]float64 {
	return load().TerrainWeights
}

// Resource returns the stats for a resource type.
func Resource(name string) (ResourceStats, bool) {
	s, ok := load().Resources[name]
	return s, ok
}

// ResourceNames returns all resource type names.
func ResourceNames() []string {
	names := make([]string, 0, len(load().Resources))
	for name := range load().Resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unit returns the stats for a unit type.
func Unit(name string) (UnitStats, bool) {
	s, ok := load().Units[name]
	return s, ok
}

// Good returns the stats for a trade good.
func Good(name string) (GoodStats, bool) {
	s, ok := load().Goods[name]
	return s, ok
}

// GoodNames returns all trade good names.
func GoodNames() []string {
	names := make([]string, 0, len(load().Goods))
	for name := range load().Goods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Trait returns the effects of a character trait.
func Trait(name string) (TraitEffects, bool) {
	s, ok := load().Traits[name]
	return s, ok
}

// TraitNames returns all trait names.
func TraitNames() []string {
	names := make([]string, 0, len(load().Traits))
	for name := range load().Traits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConflictingTrait returns the trait mutually exclusive with the given one,
// if any.
func ConflictingTrait(name string) (string, bool) {
	for _, pair := range load().TraitConflicts {
		if len(pair) != 2 {
			continue
		}
		if pair[0] == name {
			return pair[1], true
		}
		if pair[1] == name {
			return pair[0], true
		}
	}
	return "", false
}

// Personality returns the weights for an AI personality.
func Personality(name string) (PersonalityWeights, bool) {
	s, ok := load().Personalities[name]
	return s, ok
}

// PersonalityNames returns all AI personality names.
func PersonalityNames() []string {
	names := make([]string, 0, len(load().Personalities))
	for name := range load().Personalities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
