// World generation: a sparse rectangular hex field with weighted-random
// terrain, scattered resources, and a randomized clustering of hexes into
// contiguous provinces.
package world

import (
	"fmt"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/LDCODES12/EconGame/internal/config"
	"github.com/LDCODES12/EconGame/internal/entropy"
)

// GenConfig holds world generation parameters.
type GenConfig struct {
	Width  int
	Height int

	// ResourceChance is the probability a tile carries a resource.
	ResourceChance float64

	// Province size bounds for the clustering pass.
	MinProvinceSize int
	MaxProvinceSize int
}

// DefaultGenConfig returns the standard world size.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:           30,
		Height:          20,
		ResourceChance:  0.2,
		MinProvinceSize: 3,
		MaxProvinceSize: 8,
	}
}

// SmallTestConfig returns a tiny world for fast tests.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Width:           8,
		Height:          6,
		ResourceChance:  0.2,
		MinProvinceSize: 3,
		MaxProvinceSize: 8,
	}
}

// Generate creates a complete map: tiles, provinces, movement graph.
func Generate(cfg GenConfig, rng *entropy.Source) *Map {
	m := NewMap(cfg.Width, cfg.Height)

	generateTiles(m, cfg, rng)
	clusterProvinces(m, cfg, rng)
	m.BuildGraph()

	return m
}

// generateTiles fills the grid, omitting a small fraction of coordinates
// so coastlines and map edges come out irregular. Simplex noise decides
// which coordinates are carved away, giving coherent gaps rather than
// salt-and-pepper holes.
func generateTiles(m *Map, cfg GenConfig, rng *entropy.Source) {
	carve := opensimplex.NewNormalized(rng.Seed())

	names, weights := terrainDistribution()

	for q := 0; q < cfg.Width; q++ {
		for r := 0; r < cfg.Height; r++ {
			// Carve where noise runs low; a few percent of coordinates.
			if carve.Eval2(float64(q)*0.35, float64(r)*0.35) < 0.12 {
				continue
			}

			coord := HexCoord{Q: q, R: r}
			terrain := weightedTerrain(names, weights, rng)
			resource := rollResource(terrain, cfg.ResourceChance, rng)
			m.Tiles[coord] = NewTile(coord, terrain, resource)
		}
	}
}

// terrainDistribution returns terrain names and cumulative weights in a
// deterministic order.
func terrainDistribution() ([]string, []float64) {
	table := config.TerrainWeights()
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	weights := make([]float64, len(names))
	total := 0.0
	for i, name := range names {
		total += table[name]
		weights[i] = total
	}
	return names, weights
}

func weightedTerrain(names []string, cumulative []float64, rng *entropy.Source) string {
	roll := rng.Float() * cumulative[len(cumulative)-1]
	for i, w := range cumulative {
		if roll <= w {
			return names[i]
		}
	}
	return names[len(names)-1]
}

// rollResource assigns a resource with the configured probability. Fish
// only appears on ocean tiles.
func rollResource(terrain string, chance float64, rng *entropy.Source) string {
	if !rng.Chance(chance) {
		return ""
	}
	var valid []string
	for _, name := range config.ResourceNames() {
		stats, _ := config.Resource(name)
		if stats.OceanOnly && terrain != "ocean" {
			continue
		}
		valid = append(valid, name)
	}
	if len(valid) == 0 {
		return ""
	}
	return entropy.Pick(rng, valid)
}

// clusterProvinces partitions all tiles into contiguous provinces by
// randomized region growth: pick an unclaimed seed, expand into bordering
// unclaimed hexes until the rolled size is reached, repeat. The partition
// is greedy and unbalanced; size variance is expected.
func clusterProvinces(m *Map, cfg GenConfig, rng *entropy.Source) {
	unclaimed := make(map[HexCoord]bool, len(m.Tiles))
	var coords []HexCoord
	for coord := range m.Tiles {
		unclaimed[coord] = true
		coords = append(coords, coord)
	}
	// Deterministic iteration base; the growth itself stays random.
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Q != coords[j].Q {
			return coords[i].Q < coords[j].Q
		}
		return coords[i].R < coords[j].R
	})

	nextID := 0
	for _, seed := range coords {
		if !unclaimed[seed] {
			continue
		}
		delete(unclaimed, seed)

		p := NewProvince(nextID, fmt.Sprintf("Province %d", nextID), seed)
		m.Provinces[nextID] = p
		m.AssignHex(nextID, seed)

		size := rng.Between(cfg.MinProvinceSize, cfg.MaxProvinceSize)
		frontier := unclaimedNeighbors(m, seed, unclaimed, nil)

		for grown := 1; grown < size && len(frontier) > 0; grown++ {
			idx := rng.Intn(len(frontier))
			next := frontier[idx]
			frontier = append(frontier[:idx], frontier[idx+1:]...)
			if !unclaimed[next] {
				continue
			}
			delete(unclaimed, next)
			m.AssignHex(nextID, next)
			frontier = unclaimedNeighbors(m, next, unclaimed, frontier)
		}

		nextID++
	}
}

// unclaimedNeighbors appends the unclaimed neighbors of coord that are not
// already queued.
func unclaimedNeighbors(m *Map, coord HexCoord, unclaimed map[HexCoord]bool, frontier []HexCoord) []HexCoord {
	for _, nc := range coord.Neighbors() {
		if _, ok := m.Tiles[nc]; !ok || !unclaimed[nc] {
			continue
		}
		queued := false
		for _, f := range frontier {
			if f == nc {
				queued = true
				break
			}
		}
		if !queued {
			frontier = append(frontier, nc)
		}
	}
	return frontier
}

// TerrainCounts returns the terrain type distribution, for logging.
func TerrainCounts(m *Map) map[string]int {
	counts := make(map[string]int)
	for _, tile := range m.Tiles {
		counts[tile.Terrain]++
	}
	return counts
}
