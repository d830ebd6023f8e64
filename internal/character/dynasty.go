package character

import "github.com/LDCODES12/EconGame/internal/calc"

// Dynasty is a noble house characters belong to. Dynasties are never
// deleted; membership grows and shrinks over generations.
type Dynasty struct {
	ID          int
	Name        string
	Prestige    float64 // Never below zero.
	FounderID   int
	FoundedYear int
	Members     []int
}

// NewDynasty creates an empty dynasty.
func NewDynasty(id int, name string) *Dynasty {
	return &Dynasty{ID: id, Name: name, FounderID: -1}
}

// SetFounder records the founding character and year, once.
func (d *Dynasty) SetFounder(characterID, year int) {
	if d.FounderID == -1 {
		d.FounderID = characterID
		d.FoundedYear = year
	}
}

// AddMember records a character as part of the dynasty.
func (d *Dynasty) AddMember(characterID int) {
	for _, id := range d.Members {
		if id == characterID {
			return
		}
	}
	d.Members = append(d.Members, characterID)
}

// RemoveMember drops a character from the dynasty.
func (d *Dynasty) RemoveMember(characterID int) {
	for i, id := range d.Members {
		if id == characterID {
			d.Members = append(d.Members[:i], d.Members[i+1:]...)
			return
		}
	}
}

// AddPrestige adjusts dynasty prestige; it never drops below zero.
func (d *Dynasty) AddPrestige(amount float64) {
	d.Prestige = calc.Max(0, d.Prestige+amount)
}
