// Package world provides the hex grid, provinces, and spatial queries the
// rest of the simulation runs on. Uses axial coordinates (q, r) for the
// hex grid; the third cube coordinate s is always derived.
package world

import (
	"github.com/LDCODES12/EconGame/internal/calc"
	"github.com/LDCODES12/EconGame/internal/config"
)

// HexCoord represents a position on the hex grid using axial coordinates.
type HexCoord struct {
	Q int
	R int
}

// S returns the implicit third cube coordinate (q + r + s == 0).
func (h HexCoord) S() int {
	return -h.Q - h.R
}

// neighborDirections defines the six neighbor offsets in axial coordinates.
var neighborDirections = [6]HexCoord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent hex coordinates.
func (h HexCoord) Neighbors() [6]HexCoord {
	var result [6]HexCoord
	for i, dir := range neighborDirections {
		result[i] = HexCoord{Q: h.Q + dir.Q, R: h.R + dir.R}
	}
	return result
}

// Distance returns the hex distance between two coordinates: the max of
// the absolute cube coordinate differences.
func Distance(a, b HexCoord) int {
	dq := calc.Abs(a.Q - b.Q)
	dr := calc.Abs(a.R - b.R)
	ds := calc.Abs(a.S() - b.S())
	return calc.Max(dq, calc.Max(dr, ds))
}

// Tile is a single hexagonal map cell. Terrain and resource are fixed at
// generation; yields are derived from them and never change.
type Tile struct {
	Coord    HexCoord
	Terrain  string
	Resource string // Empty when the tile carries no resource.

	MovementCost float64
	Food         int
	Production   int
	Gold         int
}

// NewTile creates a tile with yields derived from terrain plus resource
// bonus. Unknown terrain or resource names are a programming error and
// yield a zero-stat tile.
func NewTile(coord HexCoord, terrain, resource string) *Tile {
	t := &Tile{
		Coord:    coord,
		Terrain:  terrain,
		Resource: resource,
	}

	if stats, ok := config.Terrain(terrain); ok {
		t.MovementCost = stats.MovementCost
		t.Food = stats.Food
		t.Production = stats.Production
		t.Gold = stats.Gold
	}
	if resource != "" {
		if bonus, ok := config.Resource(resource); ok {
			t.Food += bonus.Food
			t.Production += bonus.Production
			t.Gold += bonus.Gold
		}
	}
	return t
}
