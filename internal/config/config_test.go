package config_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LDCODES12/EconGame/internal/config"
)

func TestTables_TerrainWeightsCoverKnownTerrain(t *testing.T) {
	weights := config.TerrainWeights()
	require.NotEmpty(t, weights)

	total := 0.0
	for name, w := range weights {
		_, ok := config.Terrain(name)
		assert.True(t, ok, "weighted terrain %q missing from terrain table", name)
		assert.Greater(t, w, 0.0)
		total += w
	}
	assert.InDelta(t, 1.0, total, 1e-9, "terrain weights must form a distribution")
}

func TestTables_NameListingsAreSortedAndResolvable(t *testing.T) {
	cases := []struct {
		label   string
		names   []string
		resolve func(string) bool
	}{
		{"resources", config.ResourceNames(), func(n string) bool { _, ok := config.Resource(n); return ok }},
		{"goods", config.GoodNames(), func(n string) bool { _, ok := config.Good(n); return ok }},
		{"traits", config.TraitNames(), func(n string) bool { _, ok := config.Trait(n); return ok }},
		{"personalities", config.PersonalityNames(), func(n string) bool { _, ok := config.Personality(n); return ok }},
	}
	for _, tc := range cases {
		require.NotEmpty(t, tc.names, tc.label)
		assert.True(t, sort.StringsAreSorted(tc.names), "%s names must be sorted for deterministic iteration", tc.label)
		for _, name := range tc.names {
			assert.True(t, tc.resolve(name), "%s listing names %q but the table cannot resolve it", tc.label, name)
		}
	}
}

func TestTables_UnitsAreWellFormed(t *testing.T) {
	for _, name := range []string{"infantry", "cavalry", "artillery", "ships_light", "ships_heavy", "ships_transport"} {
		stats, ok := config.Unit(name)
		require.True(t, ok, "unit %q missing", name)
		assert.Greater(t, stats.Cost, 0.0, name)
		assert.Greater(t, stats.Maintenance, 0.0, name)
		assert.Greater(t, stats.Speed, 0.0, name)
	}

	transport, _ := config.Unit("ships_transport")
	assert.Greater(t, transport.Capacity, 0, "transports must lift troops")

	_, ok := config.Unit("war_elephants")
	assert.False(t, ok)
}

func TestTables_GoodsHaveSanePricing(t *testing.T) {
	names := config.GoodNames()
	require.NotEmpty(t, names)
	for _, name := range names {
		stats, ok := config.Good(name)
		require.True(t, ok)
		assert.Greater(t, stats.BasePrice, 0.0, name)
		assert.Greater(t, stats.Volatility, 0.0, name)
		assert.Less(t, stats.Volatility, 0.5, "%s volatility would overwhelm supply signals", name)
	}
}

func TestTables_TraitConflictsAreMutual(t *testing.T) {
	for _, name := range config.TraitNames() {
		conflict, ok := config.ConflictingTrait(name)
		if !ok {
			continue
		}
		back, ok := config.ConflictingTrait(conflict)
		require.True(t, ok, "%s conflicts with %s but not vice versa", name, conflict)
		assert.Equal(t, name, back)
	}
}

func TestTables_PersonalitiesLoaded(t *testing.T) {
	names := config.PersonalityNames()
	require.NotEmpty(t, names)
	assert.Contains(t, names, "balanced")

	for _, name := range names {
		w, ok := config.Personality(name)
		require.True(t, ok)
		assert.Greater(t, w.Aggression, 0.0, name)
		assert.Greater(t, w.EconomyFocus, 0.0, name)
	}
}
