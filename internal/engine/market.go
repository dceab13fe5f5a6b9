package engine

import (
	"math"

	"github.com/talgya/statecraft/internal/economy"
	"github.com/talgya/statecraft/internal/world"
)

func registerDemand(n *world.Nation, c economy.CommodityID, amount float64) {
	n.RealDemand[c] += amount
}

// registerIntermediateDemand books demand that feeds further production;
// the satisfied part nets out of GDP so only final output counts.
func registerIntermediateDemand(n *world.Nation, c economy.CommodityID, amount, price float64) {
	n.RealDemand[c] += amount
	n.GDP -= amount * price * n.DemandSat[c]
}

func registerDomesticSupply(n *world.Nation, c economy.CommodityID, amount, price float64) {
	n.DomesticPool[c] += amount
	n.GDP += amount * price
}

// effectiveTariffRate is the realized tariff fraction after collection
// losses.
func (s *Simulation) effectiveTariffRate(n *world.Nation) float64 {
	return n.Mods.TaxEfficiency * n.TariffRate / 100.0
}

// globalPriceMultiplier is the markup a nation pays on goods bought from
// the world market: its tariff wall plus its blockaded fraction.
func (s *Simulation) globalPriceMultiplier(n *world.Nation) float64 {
	return s.effectiveTariffRate(n) + n.Blockaded + 1.0
}

// domesticSupply is what a nation can buy before touching the world
// market: its own pool, its sphere leader's pool, and any stockpile it has
// opened for drawing.
func (s *Simulation) domesticSupply(n *world.Nation, c int) float64 {
	supply := n.DomesticPool[c]
	if n.SphereLeader != world.NoNation {
		supply += s.World.Nations[n.SphereLeader].DomesticPool[c]
	}
	if n.StockpileDraw {
		supply += n.Stockpiles[c]
	}
	return supply
}

// populateEffectivePrices sets the per-nation purchase price of every
// commodity from yesterday's demand against the pools it would have drawn
// on. With a markup at or above par the nation prefers domestic goods and
// pays the markup only on the fraction spilling into the world market;
// below par the preference flips and the markup lands on the world-market
// fraction instead.
func (s *Simulation) populateEffectivePrices(id world.NationID) {
	w := s.World
	n := &w.Nations[id]
	mult := s.globalPriceMultiplier(n)

	for c := range w.Commodities {
		base := w.CurrentPrice[c]
		dom := s.domesticSupply(n, c)
		glob := w.GlobalPool[c]
		demand := n.RealDemand[c]

		if mult >= 1.0 {
			switch {
			case demand <= dom:
				n.EffectivePrice[c] = base
			case demand <= dom+glob:
				f := dom / demand
				n.EffectivePrice[c] = base*f + base*(1.0-f)*mult
			case dom+glob > 0:
				f := dom / (dom + glob)
				n.EffectivePrice[c] = base*f + base*(1.0-f)*mult
			default:
				n.EffectivePrice[c] = base * mult
			}
		} else {
			switch {
			case demand <= glob:
				n.EffectivePrice[c] = base
			case demand <= dom+glob:
				f := glob / demand
				n.EffectivePrice[c] = base*f*mult + base*(1.0-f)
			case dom+glob > 0:
				f := glob / (dom + glob)
				n.EffectivePrice[c] = base*f*mult + base*(1.0-f)
			default:
				n.EffectivePrice[c] = base
			}
		}
	}
}

// sphereShare is the fraction of a member's domestic pool its sphere
// leader absorbs each day. The leader's investment foothold raises the
// base toward full absorption; uncivilized members are absorbed whole.
func (s *Simulation) sphereShare(member *world.Nation) float64 {
	if !member.Civilized {
		return s.Tuning.UncivBaseShare
	}
	base := s.Tuning.CivBaseShare
	if member.GreatPower || member.Rank <= len(s.World.Nations)/4 {
		base = s.Tuning.SecondRankBaseShare
	}
	return base + (1.0-base)*member.LeaderInvestment
}

// absorbSphereProduction adds each member's share of its pool into the
// leader's pool. Run leader-by-leader in rank order before giveSphereLeader
// so a sphere within a sphere resolves top down.
func (s *Simulation) absorbSphereProduction(leader world.NationID) {
	w := s.World
	ln := &w.Nations[leader]
	for i := range w.Nations {
		m := &w.Nations[i]
		if m.SphereLeader != leader {
			continue
		}
		share := s.sphereShare(m)
		for c := range w.Commodities {
			ln.DomesticPool[c] += share * m.DomesticPool[c]
		}
	}
}

// giveSphereLeaderProduction shrinks a member's own pool by the share its
// leader took.
func (s *Simulation) giveSphereLeaderProduction(id world.NationID) {
	w := s.World
	n := &w.Nations[id]
	if n.SphereLeader == world.NoNation {
		return
	}
	share := s.sphereShare(n)
	for c := range w.Commodities {
		n.DomesticPool[c] *= 1.0 - share
	}
}

// clearMarket settles one nation's day: demand satisfaction from the pools
// it can reach, then depletion of those pools in preference order. Imports
// are whatever came out of the world market.
func (s *Simulation) clearMarket(id world.NationID) {
	w, t := s.World, s.Tuning
	n := &w.Nations[id]
	mult := s.globalPriceMultiplier(n)

	var leaderPool []float64
	if n.SphereLeader != world.NoNation {
		leaderPool = w.Nations[n.SphereLeader].DomesticPool
	}

	for c := range w.Commodities {
		dom := n.DomesticPool[c]
		var sphere float64
		if leaderPool != nil {
			sphere = leaderPool[c]
		}
		var stock float64
		if n.StockpileDraw {
			stock = n.Stockpiles[c]
		}
		wm := w.GlobalPool[c]
		totalSupply := dom + sphere + stock + wm

		rd := n.RealDemand[c]
		var newSat float64
		if rd > 0.0001 {
			newSat = totalSupply / rd
		} else {
			newSat = totalSupply
		}
		adjusted := n.DemandSat[c]*t.SatDelayFactor + newSat*(1.0-t.SatDelayFactor)
		n.DemandSat[c] = math.Min(1.0, adjusted)
		n.DirectDemandSat[c] = math.Min(1.0, newSat)

		if mult >= 1.0 {
			// domestic, sphere, stockpile, then the world market
			rd = deplete(&n.DomesticPool[c], rd)
			if leaderPool != nil {
				rd = deplete(&leaderPool[c], rd)
			}
			if n.StockpileDraw {
				rd = deplete(&n.Stockpiles[c], rd)
			}
			n.Imports[c] = math.Min(w.GlobalPool[c], rd)
			rd = deplete(&w.GlobalPool[c], rd)
		} else {
			n.Imports[c] = math.Min(w.GlobalPool[c], rd)
			rd = deplete(&w.GlobalPool[c], rd)
			rd = deplete(&n.DomesticPool[c], rd)
			if leaderPool != nil {
				rd = deplete(&leaderPool[c], rd)
			}
			if n.StockpileDraw {
				rd = deplete(&n.Stockpiles[c], rd)
			}
		}
		_ = rd
	}
}

// deplete draws demand from a pool, returning the demand left over.
func deplete(pool *float64, demand float64) float64 {
	if demand < *pool {
		*pool -= demand
		return 0
	}
	demand -= *pool
	*pool = 0
	return demand
}

// decayGlobalPool evaporates part of the world market and then folds every
// nation's unsold domestic production into it. Domestic pools start the
// next day empty.
func (s *Simulation) decayGlobalPool() {
	w, t := s.World, s.Tuning
	for c := range w.Commodities {
		w.GlobalPool[c] *= t.GlobalPoolDecay
	}
	for i := range w.Nations {
		n := &w.Nations[i]
		for c := range w.Commodities {
			w.GlobalPool[c] += n.DomesticPool[c]
			n.DomesticPool[c] = 0
		}
	}
}
