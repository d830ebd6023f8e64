package world

import (
	"fmt"
	"sort"
)

// Map owns all tiles and provinces and maintains the weighted adjacency
// graph used for pathfinding plus the hex→province reverse index.
type Map struct {
	Width  int
	Height int

	Tiles     map[HexCoord]*Tile
	Provinces map[int]*Province

	// Directed adjacency: edge weight is the destination tile's movement
	// cost, so crossing into rough terrain costs more than leaving it.
	adjacency map[HexCoord][]edge

	// Reverse index kept consistent with province membership at all times.
	hexProvince map[HexCoord]int
}

type edge struct {
	to     HexCoord
	weight float64
}

// NewMap creates an empty map of the given dimensions.
func NewMap(width, height int) *Map {
	return &Map{
		Width:       width,
		Height:      height,
		Tiles:       make(map[HexCoord]*Tile),
		Provinces:   make(map[int]*Province),
		adjacency:   make(map[HexCoord][]edge),
		hexProvince: make(map[HexCoord]int),
	}
}

// Tile returns the tile at a coordinate.
func (m *Map) Tile(coord HexCoord) (*Tile, bool) {
	t, ok := m.Tiles[coord]
	return t, ok
}

// Province returns a province by id.
func (m *Map) Province(id int) (*Province, bool) {
	p, ok := m.Provinces[id]
	return p, ok
}

// ProvinceFor returns the province containing the given hex.
func (m *Map) ProvinceFor(coord HexCoord) (*Province, bool) {
	id, ok := m.hexProvince[coord]
	if !ok {
		return nil, false
	}
	return m.Provinces[id], true
}

// AssignHex adds a hex to a province, keeping the reverse index and the
// province's derived totals in sync. A hex already held by another
// province is moved.
func (m *Map) AssignHex(provinceID int, coord HexCoord) bool {
	p, ok := m.Provinces[provinceID]
	if !ok {
		return false
	}
	if _, ok := m.Tiles[coord]; !ok {
		return false
	}

	if prevID, claimed := m.hexProvince[coord]; claimed {
		if prevID == provinceID {
			return true
		}
		prev := m.Provinces[prevID]
		for i, h := range prev.Hexes {
			if h == coord {
				prev.Hexes = append(prev.Hexes[:i], prev.Hexes[i+1:]...)
				break
			}
		}
		prev.recomputeTotals(m.Tiles)
	}

	p.Hexes = append(p.Hexes, coord)
	m.hexProvince[coord] = provinceID
	p.recomputeTotals(m.Tiles)
	return true
}

// NeighborTiles returns the existing tiles adjacent to a coordinate.
func (m *Map) NeighborTiles(coord HexCoord) []*Tile {
	var out []*Tile
	for _, nc := range coord.Neighbors() {
		if t, ok := m.Tiles[nc]; ok {
			out = append(out, t)
		}
	}
	return out
}

// NeighborProvinces returns the ids of provinces sharing a border with the
// given province, in ascending order.
func (m *Map) NeighborProvinces(provinceID int) []int {
	p, ok := m.Provinces[provinceID]
	if !ok {
		return nil
	}
	seen := make(map[int]bool)
	for _, coord := range p.Hexes {
		for _, nc := range coord.Neighbors() {
			nid, ok := m.hexProvince[nc]
			if ok && nid != provinceID {
				seen[nid] = true
			}
		}
	}
	out := make([]int, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// BuildGraph constructs the movement graph over all tiles. Called once
// after generation; tiles never change afterwards.
func (m *Map) BuildGraph() {
	m.adjacency = make(map[HexCoord][]edge, len(m.Tiles))
	for coord := range m.Tiles {
		for _, nc := range coord.Neighbors() {
			dest, ok := m.Tiles[nc]
			if !ok {
				continue
			}
			m.adjacency[coord] = append(m.adjacency[coord], edge{to: nc, weight: dest.MovementCost})
		}
	}
}

// HasCoast reports whether a province contains at least one ocean hex.
func (m *Map) HasCoast(provinceID int) bool {
	p, ok := m.Provinces[provinceID]
	if !ok {
		return false
	}
	for _, coord := range p.Hexes {
		if t, ok := m.Tiles[coord]; ok && t.Terrain == "ocean" {
			return true
		}
	}
	return false
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(%dx%d, hexes=%d, provinces=%d)", m.Width, m.Height, len(m.Tiles), len(m.Provinces))
}
