package world

import "github.com/LDCODES12/EconGame/internal/calc"

// NoNation marks an unowned province.
const NoNation = -1

// DevCategory identifies one province development track.
type DevCategory string

const (
	DevTax        DevCategory = "tax"
	DevProduction DevCategory = "production"
	DevManpower   DevCategory = "manpower"
)

// DevCategories lists all development tracks in canonical order.
var DevCategories = []DevCategory{DevTax, DevProduction, DevManpower}

const (
	minDevelopment = 1
	maxDevelopment = 10
)

// Province is a contiguous cluster of hexes, the unit of ownership and
// development. Total yields are a pure function of member hexes and are
// recomputed by the owning Map whenever membership changes.
type Province struct {
	ID         int
	Name       string
	Hexes      []HexCoord
	CapitalHex HexCoord
	NationID   int // NoNation when unowned.
	IsCapital  bool

	development map[DevCategory]int

	TotalFood       int
	TotalProduction int
	TotalGold       int

	// Occupation state, set by battle resolution. OriginalOwnerID is
	// written once on first occupation and preserved for peace terms.
	Occupied        bool
	OccupierID      int
	OriginalOwnerID int
}

// NewProvince creates an unowned province seeded at the given capital hex.
func NewProvince(id int, name string, capital HexCoord) *Province {
	return &Province{
		ID:         id,
		Name:       name,
		CapitalHex: capital,
		NationID:   NoNation,
		development: map[DevCategory]int{
			DevTax:        minDevelopment,
			DevProduction: minDevelopment,
			DevManpower:   minDevelopment,
		},
		OccupierID:      NoNation,
		OriginalOwnerID: NoNation,
	}
}

// Development returns the level of one development track.
func (p *Province) Development(cat DevCategory) int {
	return p.development[cat]
}

// TotalDevelopment returns the sum across all tracks.
func (p *Province) TotalDevelopment() int {
	total := 0
	for _, cat := range DevCategories {
		total += p.development[cat]
	}
	return total
}

// Develop raises one development track by a single level. Returns false
// when the category is unknown or already at the cap.
func (p *Province) Develop(cat DevCategory) bool {
	level, ok := p.development[cat]
	if !ok || level >= maxDevelopment {
		return false
	}
	p.development[cat] = level + 1
	return true
}

// DevelopCost returns the price of the next level in a category.
func (p *Province) DevelopCost(cat DevCategory) float64 {
	return 50 * float64(p.development[cat]+1)
}

// SetDevelopment force-sets a track, clamped to bounds. Used by event
// effects and world setup.
func (p *Province) SetDevelopment(cat DevCategory, level int) {
	if _, ok := p.development[cat]; !ok {
		return
	}
	p.development[cat] = calc.Clamp(level, minDevelopment, maxDevelopment)
}

// TaxIncome returns gold income scaled by the tax development level.
func (p *Province) TaxIncome() float64 {
	return float64(p.TotalGold) * (float64(p.development[DevTax])*0.1 + 1.0)
}

// ProductionValue returns production output scaled by the production level.
func (p *Province) ProductionValue() float64 {
	return float64(p.TotalProduction) * (float64(p.development[DevProduction])*0.1 + 1.0)
}

// ManpowerValue returns the recruitable manpower this province supports.
func (p *Province) ManpowerValue() float64 {
	base := float64(p.TotalFood) * 0.5
	return base * (float64(p.development[DevManpower])*0.1 + 1.0)
}

// Occupy marks the province as held by an occupier, preserving the owner
// of record the first time it happens.
func (p *Province) Occupy(occupierID int) {
	if !p.Occupied && p.OriginalOwnerID == NoNation {
		p.OriginalOwnerID = p.NationID
	}
	p.Occupied = true
	p.OccupierID = occupierID
}

// LiftOccupation clears occupation state, e.g. after a peace settlement.
func (p *Province) LiftOccupation() {
	p.Occupied = false
	p.OccupierID = NoNation
	p.OriginalOwnerID = NoNation
}

// recomputeTotals refreshes the derived yield totals from member hexes.
func (p *Province) recomputeTotals(tiles map[HexCoord]*Tile) {
	p.TotalFood = 0
	p.TotalProduction = 0
	p.TotalGold = 0
	for _, coord := range p.Hexes {
		tile, ok := tiles[coord]
		if !ok {
			continue
		}
		p.TotalFood += tile.Food
		p.TotalProduction += tile.Production
		p.TotalGold += tile.Gold
	}
}
