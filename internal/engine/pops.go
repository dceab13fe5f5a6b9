package engine

import (
	"math"

	"github.com/talgya/statecraft/internal/economy"
	"github.com/talgya/statecraft/internal/world"
)

// subsistenceSize is the land left to subsistence farming after the owning
// classes take theirs.
func subsistenceSize(p *world.Province) float64 {
	ownership := p.AristocratOwnership + p.CapitalistOwnership
	return p.RGOSize * (1.0 - ownership) * 2.0
}

func (s *Simulation) subsistenceMaxEmployment(p *world.Province) float64 {
	return s.Tuning.RGOPerSizeEmployment * subsistenceSize(p) * 1.1
}

// updateLandOwnership recomputes who owns each province's land from the
// resident class weights of its state.
func (s *Simulation) updateLandOwnership() {
	w := s.World
	s.parallelOver(len(w.Provinces), func(pi int) {
		p := &w.Provinces[pi]
		if p.State < 0 {
			return
		}
		var aristo, capitalist, workers float64
		for _, pid := range w.States[p.State].Provinces {
			for _, popID := range w.Provinces[pid].Pops {
				pop := &w.Pops[popID]
				pt := &w.PopTypes[pop.Type]
				switch {
				case pt.Aristocrat:
					aristo += pop.Size * 200.0
				case pt.Slave:
					aristo += pop.Size
				case pt.Capitalist:
					capitalist += pop.Size * 200.0
				case pt.RGOWorker:
					workers += pop.Size
				}
			}
		}
		total := aristo + capitalist + workers + 1.0
		p.AristocratOwnership = aristo / total
		p.CapitalistOwnership = capitalist / total
	})
}

// updateSubsistenceScores refreshes each province's subsistence output
// score: land quality raises it, crowding saturates it.
func (s *Simulation) updateSubsistenceScores() {
	w, t := s.World, s.Tuning
	s.parallelOver(len(w.Provinces), func(pi int) {
		p := &w.Provinces[pi]
		saturation := p.SubsistenceEmployment / (4.0 + s.subsistenceMaxEmployment(p))
		quality := math.Max((p.LifeRating-10.0)/10.0, 0.0) + 0.01
		score := t.SubsistenceFactor*quality + t.SubsistenceScoreLife
		p.SubsistenceScore = score / (saturation + 1.0)
	})
}

// adjustedSubsistenceScore scales the province score by how much of the
// population actually works the subsistence plots.
func (s *Simulation) adjustedSubsistenceScore(p *world.Province) float64 {
	total := 0.0
	for _, popID := range p.Pops {
		total += s.World.Pops[popID].Size
	}
	return p.SubsistenceScore * p.SubsistenceEmployment / (total + 1.0)
}

// decomposeSubsistence splits a subsistence score into normalized tier
// coverage fractions, filling life first, then everyday, then luxury.
func (s *Simulation) decomposeSubsistence(score float64) (life, everyday, luxury float64) {
	t := s.Tuning
	life = economy.Clamp(score, 0, t.SubsistenceScoreLife)
	score -= life
	everyday = economy.Clamp(score, 0, t.SubsistenceScoreEveryday)
	score -= everyday
	luxury = economy.Clamp(score, 0, t.SubsistenceScoreLuxury)

	life /= t.SubsistenceScoreLife
	everyday /= t.SubsistenceScoreEveryday
	luxury /= t.SubsistenceScoreLuxury
	return
}

// inventionFactor raises everyday and luxury demand with accumulated
// inventions.
func (s *Simulation) inventionFactor(n *world.Nation) float64 {
	return float64(n.Mods.Inventions)*s.Tuning.InventionImpactOnDemand + 1.0
}

// populateNeedsCosts recomputes, per pop type, the daily cost of one full
// needs basket at the nation's effective prices.
func (s *Simulation) populateNeedsCosts(id world.NationID) {
	w, t := s.World, s.Tuning
	n := &w.Nations[id]
	invention := s.inventionFactor(n)

	for ti := range w.PopTypes {
		n.LifeNeedsCosts[ti] = 0
		n.EverydayNeedsCosts[ti] = 0
		n.LuxuryNeedsCosts[ti] = 0
	}
	for ti := range w.PopTypes {
		pt := &w.PopTypes[ti]
		for i := 0; i < pt.LifeNeeds.N; i++ {
			c := pt.LifeNeeds.Commodities[i]
			if !w.Commodities[c].AvailableFromStart {
				continue
			}
			n.LifeNeedsCosts[ti] += pt.LifeNeeds.Amounts[i] * n.EffectivePrice[c] *
				t.BaseGoodsDemand * n.LifeNeedWeights[c] * t.LifeNeedsScale
		}
		for i := 0; i < pt.EverydayNeeds.N; i++ {
			c := pt.EverydayNeeds.Commodities[i]
			if !w.Commodities[c].AvailableFromStart {
				continue
			}
			n.EverydayNeedsCosts[ti] += pt.EverydayNeeds.Amounts[i] * n.EffectivePrice[c] *
				t.BaseGoodsDemand * invention * n.EverydayNeedWeights[c] * t.EverydayNeedsScale
		}
		for i := 0; i < pt.LuxuryNeeds.N; i++ {
			c := pt.LuxuryNeeds.Commodities[i]
			if !w.Commodities[c].AvailableFromStart {
				continue
			}
			n.LuxuryNeedsCosts[ti] += pt.LuxuryNeeds.Amounts[i] * n.EffectivePrice[c] *
				t.BaseGoodsDemand * invention * n.LuxuryNeedWeights[c] * t.LuxuryNeedsScale
		}
	}
}

// updatePopConsumption spends every pop's savings down the needs ladder
// and registers the resulting commodity demand. Subsistence output covers
// part of the lower tiers for free; investing classes divert part of the
// budget into private investment before everyday goods; leftover budget
// induces extra demand across the tiers. Serialized per nation.
func (s *Simulation) updatePopConsumption(id world.NationID) {
	w, t := s.World, s.Tuning
	n := &w.Nations[id]
	invention := s.inventionFactor(n)

	for ti := range w.PopTypes {
		s.lifeDemand[ti] = 0
		s.everydayDemand[ti] = 0
		s.luxuryDemand[ti] = 0
	}

	for pi := range w.Provinces {
		p := &w.Provinces[pi]
		if p.Owner != id {
			continue
		}
		subLife, subEveryday, subLuxury := s.decomposeSubsistence(s.adjustedSubsistenceScore(p))

		for _, popID := range p.Pops {
			pop := &w.Pops[popID]
			ti := int(pop.Type)
			budget := pop.Savings
			size := pop.Size

			lnToSatisfy := math.Max(1.0-subLife, 0.0)
			enToSatisfy := math.Max(1.0-subEveryday, 0.0)
			xnToSatisfy := math.Max(1.0-subLuxury, 0.0)

			lnCost := lnToSatisfy * n.LifeNeedsCosts[ti] * size / t.NeedsScale
			enCost := enToSatisfy * n.EverydayNeedsCosts[ti] * size / t.NeedsScale
			xnCost := xnToSatisfy * n.LuxuryNeedsCosts[ti] * size / t.NeedsScale

			lifeFraction := lnToSatisfy
			if budget < lnCost {
				lifeFraction = budget / lnCost
			}
			budget = math.Max(budget-lnCost, 0.0)

			pt := &w.PopTypes[ti]
			if n.Civilized && pt.CanInvest {
				share := t.InvestAristocrat
				if pt.Capitalist {
					share = t.InvestCapitalist
				}
				n.PrivateInvestment += budget * share
				budget -= budget * share
			}

			everydayFraction := enToSatisfy
			if budget < enCost {
				everydayFraction = math.Max(0.0, budget/enCost)
			}
			budget -= enCost

			luxuryFraction := xnToSatisfy
			if budget < xnCost {
				luxuryFraction = math.Max(0.0, budget/xnCost)
			}
			budget -= xnCost

			if budget > 0 {
				lifeFraction += budget * t.LifeSpendShare / math.Max(0.001, lnCost)
				everydayFraction += budget * t.EverydaySpendShare / math.Max(0.001, enCost)
				luxuryFraction += budget * t.LuxurySpendShare / math.Max(0.001, xnCost)
			}

			// Demand uses fast smoothing of the raw (subsistence-stripped)
			// satisfaction; the observable value drifts far slower.
			rawLife := economy.Clamp(pop.LifeNeeds-subLife, 0, 1)
			rawEveryday := economy.Clamp(pop.EverydayNeeds-subEveryday, 0, 1)
			rawLuxury := economy.Clamp(pop.LuxuryNeeds-subLuxury, 0, 1)

			resultLife := economy.Clamp(rawLife*0.9+lifeFraction*0.1, 0, 1)
			resultEveryday := economy.Clamp(rawEveryday*0.9+everydayFraction*0.1, 0, 1)
			resultLuxury := economy.Clamp(rawLuxury*0.9+luxuryFraction*0.1, 0, 1)

			pop.LifeNeeds = economy.Clamp(resultLife+subLife, 0, 1)
			pop.EverydayNeeds = economy.Clamp(resultEveryday+subEveryday, 0, 1)
			pop.LuxuryNeeds = economy.Clamp(resultLuxury+subLuxury, 0, 1)

			pop.LifeNeedsReported = economy.Clamp(pop.LifeNeedsReported*0.99+(lifeFraction+subLife)*0.01, 0, 1)
			pop.EverydayNeedsReported = economy.Clamp(pop.EverydayNeedsReported*0.99+(everydayFraction+subEveryday)*0.01, 0, 1)
			pop.LuxuryNeedsReported = economy.Clamp(pop.LuxuryNeedsReported*0.99+(luxuryFraction+subLuxury)*0.01, 0, 1)

			s.lifeDemand[ti] += resultLife * size / t.NeedsScale
			s.everydayDemand[ti] += resultEveryday * size / t.NeedsScale
			s.luxuryDemand[ti] += resultLuxury * size / t.NeedsScale
		}
	}

	for ti := range w.PopTypes {
		pt := &w.PopTypes[ti]
		for i := 0; i < pt.LifeNeeds.N; i++ {
			c := pt.LifeNeeds.Commodities[i]
			if c == economy.Money || !w.Commodities[c].AvailableFromStart {
				continue
			}
			registerDemand(n, c, pt.LifeNeeds.Amounts[i]*s.lifeDemand[ti]*
				t.BaseGoodsDemand*n.LifeNeedWeights[c]*t.LifeNeedsScale)
		}
		for i := 0; i < pt.EverydayNeeds.N; i++ {
			c := pt.EverydayNeeds.Commodities[i]
			if c == economy.Money || !w.Commodities[c].AvailableFromStart {
				continue
			}
			registerDemand(n, c, pt.EverydayNeeds.Amounts[i]*s.everydayDemand[ti]*
				t.BaseGoodsDemand*invention*n.EverydayNeedWeights[c]*t.EverydayNeedsScale)
		}
		for i := 0; i < pt.LuxuryNeeds.N; i++ {
			c := pt.LuxuryNeeds.Commodities[i]
			if c == economy.Money || !w.Commodities[c].AvailableFromStart {
				continue
			}
			registerDemand(n, c, pt.LuxuryNeeds.Amounts[i]*s.luxuryDemand[ti]*
				t.BaseGoodsDemand*invention*n.LuxuryNeedWeights[c]*t.LuxuryNeedsScale)
		}
	}
}

// needsTierCap is the satisfaction ceiling the market actually allowed: a
// weighted mean of demand satisfaction over the basket's commodities.
func (s *Simulation) needsTierCap(n *world.Nation, set *economy.CommoditySet, weights []float64) float64 {
	w := s.World
	num, den := 0.0, 0.0
	for i := 0; i < set.N; i++ {
		c := set.Commodities[i]
		if !w.Commodities[c].AvailableFromStart {
			continue
		}
		weighted := set.Amounts[i] * weights[c]
		num += weighted * n.DemandSat[c]
		den += weighted
	}
	if den == 0 {
		return 1.0
	}
	return num / den
}

// capNeedsSatisfaction clamps each pop's satisfaction to what the market
// actually delivered. Subsistence coverage is exempt from the cap.
func (s *Simulation) capNeedsSatisfaction(id world.NationID) {
	w := s.World
	n := &w.Nations[id]

	lifeCaps := make([]float64, len(w.PopTypes))
	everydayCaps := make([]float64, len(w.PopTypes))
	luxuryCaps := make([]float64, len(w.PopTypes))
	for ti := range w.PopTypes {
		pt := &w.PopTypes[ti]
		lifeCaps[ti] = s.needsTierCap(n, &pt.LifeNeeds, n.LifeNeedWeights)
		everydayCaps[ti] = s.needsTierCap(n, &pt.EverydayNeeds, n.EverydayNeedWeights)
		luxuryCaps[ti] = s.needsTierCap(n, &pt.LuxuryNeeds, n.LuxuryNeedWeights)
	}

	for pi := range w.Provinces {
		p := &w.Provinces[pi]
		if p.Owner != id {
			continue
		}
		subLife, subEveryday, subLuxury := s.decomposeSubsistence(s.adjustedSubsistenceScore(p))
		for _, popID := range p.Pops {
			pop := &w.Pops[popID]
			ti := pop.Type

			pop.LifeNeeds = math.Min(lifeCaps[ti], pop.LifeNeeds-subLife) + subLife
			pop.EverydayNeeds = math.Min(everydayCaps[ti], pop.EverydayNeeds-subEveryday) + subEveryday
			pop.LuxuryNeeds = math.Min(luxuryCaps[ti], pop.LuxuryNeeds-subLuxury) + subLuxury

			pop.LifeNeedsReported = math.Min(lifeCaps[ti], pop.LifeNeedsReported-subLife) + subLife
			pop.EverydayNeedsReported = math.Min(everydayCaps[ti], pop.EverydayNeedsReported-subEveryday) + subEveryday
			pop.LuxuryNeedsReported = math.Min(luxuryCaps[ti], pop.LuxuryNeedsReported-subLuxury) + subLuxury
		}
	}
}

// rebalanceNeedsWeights drifts each tier's commodity weights toward the
// cheaper substitutes. Weights within a tier keep a mean of one, so the
// drift shifts demand without changing its overall level.
func (s *Simulation) rebalanceNeedsWeights(id world.NationID) {
	n := &s.World.Nations[id]
	s.rebalanceTier(n, s.isLifeNeed, n.LifeNeedWeights)
	s.rebalanceTier(n, s.isEverydayNeed, n.EverydayNeedWeights)
	s.rebalanceTier(n, s.isLuxuryNeed, n.LuxuryNeedWeights)
}

func (s *Simulation) rebalanceTier(n *world.Nation, member []bool, weights []float64) {
	w, t := s.World, s.Tuning

	total := 0.0
	count := 0
	for c := range w.Commodities {
		if member[c] && w.Commodities[c].AvailableFromStart {
			total += needWeight(w.CurrentPrice[c])
			count++
		}
	}
	if count == 0 || total == 0 {
		return
	}
	for c := range w.Commodities {
		if !member[c] || !w.Commodities[c].AvailableFromStart {
			continue
		}
		ideal := needWeight(w.CurrentPrice[c]) / total * float64(count)
		weights[c] = ideal*t.NeedDriftSpeed + weights[c]*(1.0-t.NeedDriftSpeed)
	}
}

func needWeight(price float64) float64 {
	return 1.0 / math.Sqrt(math.Max(price, 0.001))
}
