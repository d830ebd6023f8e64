// Package nation models nations, their budgets, technology, and the
// directed diplomatic relations between them.
package nation

import "github.com/LDCODES12/EconGame/internal/calc"

// Relation is one side of a diplomatic relationship: nation A's view of
// nation B. The two sides are tracked independently.
type Relation struct {
	TargetID int

	Opinion float64 // -100..100, drifts toward 0.
	Trust   float64 // 0..100, drifts toward 50.

	Alliance       bool
	RoyalMarriage  bool
	TradeAgreement bool
	MilitaryAccess bool
	AtWar          bool

	// TruceUntil is the year an active truce expires; 0 means no truce.
	TruceUntil int
}

// NewRelation creates a neutral relation toward a target nation.
func NewRelation(targetID int) *Relation {
	return &Relation{
		TargetID: targetID,
		Trust:    50,
	}
}

// Improve raises opinion, capped at +100.
func (r *Relation) Improve(amount float64) {
	r.Opinion = calc.Min(100, r.Opinion+amount)
}

// Worsen lowers opinion, capped at -100.
func (r *Relation) Worsen(amount float64) {
	r.Opinion = calc.Max(-100, r.Opinion-amount)
}

// TruceActive reports whether a truce is still in force in the given year.
func (r *Relation) TruceActive(currentYear int) bool {
	return r.TruceUntil != 0 && currentYear < r.TruceUntil
}

// declareWar flips this side to a war footing: alliance, access, and trade
// ties are severed, opinion drops by 50 and trust by 20.
func (r *Relation) declareWar() {
	r.AtWar = true
	r.TruceUntil = 0
	r.Alliance = false
	r.MilitaryAccess = false
	r.TradeAgreement = false
	r.Worsen(50)
	r.Trust = calc.Max(0, r.Trust-20)
}

// makePeace ends the war and starts a truce lasting until the given year.
func (r *Relation) makePeace(truceUntil int) {
	r.AtWar = false
	r.TruceUntil = truceUntil
}

// setAlliance sets or clears the alliance flag; forming one warms the
// relationship.
func (r *Relation) setAlliance(allied bool) {
	r.Alliance = allied
	if allied {
		r.Improve(20)
		r.Trust = calc.Min(100, r.Trust+10)
	}
}

// setRoyalMarriage sets or clears the marriage tie.
func (r *Relation) setRoyalMarriage(married bool) {
	r.RoyalMarriage = married
	if married {
		r.Improve(10)
	}
}

// Update applies the per-period diplomatic memory decay: opinion drifts
// toward 0 and trust toward 50 at fixed small rates.
func (r *Relation) Update() {
	const driftRate = 0.1

	switch {
	case r.Opinion > 0:
		r.Opinion = calc.Max(0, r.Opinion-driftRate)
	case r.Opinion < 0:
		r.Opinion = calc.Min(0, r.Opinion+driftRate)
	}

	switch {
	case r.Trust > 50:
		r.Trust = calc.Max(50, r.Trust-driftRate)
	case r.Trust < 50:
		r.Trust = calc.Min(50, r.Trust+driftRate)
	}
}
