package engine

import (
	"github.com/talgya/statecraft/internal/economy"
	"github.com/talgya/statecraft/internal/world"
)

// updateMoneyPrices pins each money commodity to a fraction of the cost of
// a laborer's consumption basket at today's prices, so gold purchasing
// power tracks the goods economy instead of a market of its own.
func (s *Simulation) updateMoneyPrices() {
	w, t := s.World, s.Tuning
	for c := range w.Commodities {
		if !w.Commodities[c].Money {
			continue
		}
		basket := 0.0
		lt := &w.PopTypes[s.laborerType]
		for k := 1; k < len(w.Commodities); k++ {
			if !w.Commodities[k].AvailableFromStart {
				continue
			}
			price := w.CurrentPrice[k]
			kc := economy.CommodityID(k)
			basket += lt.LifeNeeds.AmountOf(kc) * t.BaseGoodsDemand * t.LifeNeedsScale * price
			basket += 0.5 * lt.EverydayNeeds.AmountOf(kc) * t.BaseGoodsDemand * t.EverydayNeedsScale * price
			basket += 0.1 * lt.LuxuryNeeds.AmountOf(kc) * t.BaseGoodsDemand * t.LuxuryNeedsScale * price
		}
		w.CurrentPrice[c] = economy.Clamp(basket*t.MoneyPriceFactor, t.MinPrice, t.MaxPrice)
	}
}

// updatePrices folds national demand and supply into the world totals and
// steps every non-money price toward balance.
func (s *Simulation) updatePrices() {
	w, t := s.World, s.Tuning
	s.parallelOver(len(w.Commodities), func(c int) {
		if w.Commodities[c].Money {
			return
		}

		var realDemand, consumption, production float64
		for i := range w.Nations {
			n := &w.Nations[i]
			realDemand += n.RealDemand[c]
			consumption += n.RealDemand[c] * n.DemandSat[c]
			production += n.DomesticPool[c]
		}
		w.TotalConsumption[c] = consumption
		w.TotalRealDemand[c] = realDemand

		priorProduction := w.TotalProduction[c]
		w.TotalProduction[c] = production

		supply := priorProduction + w.GlobalPool[c]/t.GlobalPoolSupplyDivisor
		w.CurrentPrice[c] = economy.PriceStep(w.CurrentPrice[c], realDemand, supply, t)
	})
}

// updateInflation retargets the world money multiplier so total pop income
// tracks the cost of a representative life-and-everyday basket.
func (s *Simulation) updateInflation() {
	w, t := s.World, s.Tuning

	basket := 0.0
	for c := range w.Commodities {
		kc := economy.CommodityID(c)
		for pt := range w.PopTypes {
			basket += 2.0 * w.Commodities[c].BaseCost * w.PopTypes[pt].LifeNeeds.AmountOf(kc)
			basket += 2.0 * w.Commodities[c].BaseCost * w.PopTypes[pt].EverydayNeeds.AmountOf(kc)
		}
	}
	basket /= float64(len(w.PopTypes))

	var totalPop, totalPopMoney float64
	for i := range w.Nations {
		totalPop += w.NationPopulation(world.NationID(i))
		totalPopMoney += w.Nations[i].TaxBase()
	}

	targetMoney := totalPop * basket / t.NeedsScale
	if totalPopMoney > 0.001 {
		s.inflation = s.inflation*0.9 + 0.1*targetMoney/totalPopMoney
	}
}
