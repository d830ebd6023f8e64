// Package economy runs the trade network, goods pricing, and the national
// income cycle.
package economy

import (
	"github.com/LDCODES12/EconGame/internal/calc"
	"github.com/LDCODES12/EconGame/internal/config"
	"github.com/LDCODES12/EconGame/internal/entropy"
)

// Goods tracks global supply, demand, and current price per trade good.
// Prices are recomputed fresh from supply/demand each period, not carried
// forward as deltas.
type Goods struct {
	prices map[string]float64
	supply map[string]float64
	demand map[string]float64
}

// NewGoods initializes every configured good at its base price with
// balanced supply and demand.
func NewGoods() *Goods {
	g := &Goods{
		prices: make(map[string]float64),
		supply: make(map[string]float64),
		demand: make(map[string]float64),
	}
	for _, name := range config.GoodNames() {
		stats, _ := config.Good(name)
		g.prices[name] = stats.BasePrice
		g.supply[name] = 100
		g.demand[name] = 100
	}
	return g
}

// Price returns the current price of a good.
func (g *Goods) Price(name string) (float64, bool) {
	p, ok := g.prices[name]
	return p, ok
}

// Supply returns current supply of a good.
func (g *Goods) Supply(name string) float64 {
	return g.supply[name]
}

// Demand returns current demand of a good.
func (g *Goods) Demand(name string) float64 {
	return g.demand[name]
}

// AdjustSupplyDemand shifts supply and demand for a good, flooring both
// at 1 so ratios stay defined.
func (g *Goods) AdjustSupplyDemand(name string, supplyDelta, demandDelta float64) {
	if _, ok := g.supply[name]; !ok {
		return
	}
	g.supply[name] = calc.Max(1, g.supply[name]+supplyDelta)
	g.demand[name] = calc.Max(1, g.demand[name]+demandDelta)
}

// UpdatePrices recomputes every good's price from its supply/demand ratio:
// shortages (ratio < 0.8) raise the price by twice the shortage depth,
// surpluses (ratio > 1.2) lower it by half the surplus depth, bounded
// random noise is applied, and the result is clamped to [0.5, 2.0] of the
// base price.
func (g *Goods) UpdatePrices(rng *entropy.Source) {
	for _, name := range config.GoodNames() {
		stats, _ := config.Good(name)

		ratio := 1.0
		if g.demand[name] > 0 {
			ratio = g.supply[name] / g.demand[name]
		}

		factor := 1.0
		if ratio < 0.8 {
			factor = 1.0 + (0.8-ratio)*2
		} else if ratio > 1.2 {
			factor = 1.0 - (ratio-1.2)*0.5
		}

		factor *= 1.0 + rng.Range(-stats.Volatility, stats.Volatility)

		price := stats.BasePrice * factor
		g.prices[name] = calc.Clamp(price, stats.BasePrice*0.5, stats.BasePrice*2.0)
	}
}
