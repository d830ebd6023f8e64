package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LDCODES12/EconGame/internal/world"
)

func buildCorridor(t *testing.T, terrains []string) *world.Map {
	t.Helper()
	m := world.NewMap(len(terrains), 1)
	for q, terrain := range terrains {
		coord := world.HexCoord{Q: q, R: 0}
		m.Tiles[coord] = world.NewTile(coord, terrain, "")
	}
	m.BuildGraph()
	return m
}

func TestFindPath_StraightLine(t *testing.T) {
	m := buildCorridor(t, []string{"plains", "plains", "plains"})

	path := m.FindPath(world.HexCoord{Q: 0, R: 0}, world.HexCoord{Q: 2, R: 0})
	require.NotNil(t, path)
	assert.Equal(t, []world.HexCoord{{Q: 0, R: 0}, {Q: 1, R: 0}, {Q: 2, R: 0}}, path)
}

func TestFindPath_SameStartAndEnd(t *testing.T) {
	m := buildCorridor(t, []string{"plains"})
	path := m.FindPath(world.HexCoord{Q: 0, R: 0}, world.HexCoord{Q: 0, R: 0})
	assert.Equal(t, []world.HexCoord{{Q: 0, R: 0}}, path)
}

func TestFindPath_OffMapAndDisconnected(t *testing.T) {
	m := buildCorridor(t, []string{"plains", "plains"})

	assert.Nil(t, m.FindPath(world.HexCoord{Q: 0, R: 0}, world.HexCoord{Q: 50, R: 50}))

	// An island tile with no adjacency is unreachable.
	island := world.HexCoord{Q: 10, R: 10}
	m.Tiles[island] = world.NewTile(island, "plains", "")
	m.BuildGraph()
	assert.Nil(t, m.FindPath(world.HexCoord{Q: 0, R: 0}, island))
}

func TestFindPath_PrefersCheapTerrain(t *testing.T) {
	// Two rows: top row mountains (cost 2.0), bottom row plains (1.0).
	m := world.NewMap(4, 2)
	for q := 0; q < 4; q++ {
		top := world.HexCoord{Q: q, R: 0}
		bottom := world.HexCoord{Q: q, R: 1}
		m.Tiles[top] = world.NewTile(top, "mountains", "")
		m.Tiles[bottom] = world.NewTile(bottom, "plains", "")
	}
	m.BuildGraph()

	path := m.FindPath(world.HexCoord{Q: 0, R: 0}, world.HexCoord{Q: 3, R: 0})
	require.NotNil(t, path)

	// The route should dip through the plains row rather than march
	// across the mountains.
	throughPlains := false
	for _, c := range path[1 : len(path)-1] {
		if c.R == 1 {
			throughPlains = true
		}
	}
	assert.True(t, throughPlains, "expected detour through plains, got %v", path)
}

func TestFindProvincePath(t *testing.T) {
	m := buildCorridor(t, []string{"plains", "plains", "plains"})
	for i := 0; i < 3; i++ {
		m.Provinces[i] = world.NewProvince(i, "P", world.HexCoord{Q: i, R: 0})
		require.True(t, m.AssignHex(i, world.HexCoord{Q: i, R: 0}))
	}

	assert.Equal(t, []int{1, 2}, m.FindProvincePath(0, 2), "start excluded, end included")
	assert.Equal(t, []int{}, m.FindProvincePath(1, 1))
	assert.Nil(t, m.FindProvincePath(0, 99))
}
