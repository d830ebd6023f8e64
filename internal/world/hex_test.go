package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LDCODES12/EconGame/internal/world"
)

func TestHexCoord_CubeInvariant(t *testing.T) {
	coords := []world.HexCoord{
		{Q: 0, R: 0},
		{Q: 3, R: -2},
		{Q: -5, R: 7},
		{Q: 12, R: 12},
	}
	for _, c := range coords {
		assert.Equal(t, 0, c.Q+c.R+c.S(), "q+r+s must always be zero for %+v", c)
		for _, n := range c.Neighbors() {
			assert.Equal(t, 0, n.Q+n.R+n.S())
			assert.Equal(t, 1, world.Distance(c, n))
		}
	}
}

func TestHexCoord_Distance(t *testing.T) {
	origin := world.HexCoord{Q: 0, R: 0}

	assert.Equal(t, 0, world.Distance(origin, origin))
	assert.Equal(t, 3, world.Distance(origin, world.HexCoord{Q: 3, R: 0}))
	assert.Equal(t, 3, world.Distance(origin, world.HexCoord{Q: 0, R: 3}))
	// Moving diagonally through cube space.
	assert.Equal(t, 3, world.Distance(origin, world.HexCoord{Q: 3, R: -3}))
	assert.Equal(t, 4, world.Distance(world.HexCoord{Q: -2, R: 1}, world.HexCoord{Q: 2, R: 0}))

	// Symmetry.
	a := world.HexCoord{Q: 5, R: -3}
	b := world.HexCoord{Q: -1, R: 4}
	assert.Equal(t, world.Distance(a, b), world.Distance(b, a))
}

func TestNewTile_YieldsFromTerrainAndResource(t *testing.T) {
	plains := world.NewTile(world.HexCoord{}, "plains", "")
	assert.Equal(t, 3, plains.Food)
	assert.Equal(t, 2, plains.Production)
	assert.Equal(t, 1, plains.Gold)
	assert.Equal(t, 1.0, plains.MovementCost)

	goldField := world.NewTile(world.HexCoord{}, "plains", "gold")
	assert.Equal(t, 6, goldField.Gold, "terrain gold 1 + resource bonus 5")
	assert.Equal(t, 2, goldField.Production)
}
