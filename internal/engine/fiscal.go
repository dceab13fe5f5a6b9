package engine

import (
	"math"

	"github.com/talgya/statecraft/internal/economy"
	"github.com/talgya/statecraft/internal/world"
)

func (s *Simulation) canTakeLoans(n *world.Nation) bool {
	return n.AllowBorrowing && !n.InBankruptcy(s.World.Day)
}

func (s *Simulation) maxLoan(n *world.Nation) float64 {
	return math.Max(0.0, n.TaxBase()*s.Tuning.MaxLoanTaxBaseFraction*(n.Mods.MaxLoan+1.0))
}

// interestPayment is the daily cost of carrying a negative treasury.
func (s *Simulation) interestPayment(n *world.Nation) float64 {
	if n.Treasury >= 0 {
		return 0.0
	}
	rate := math.Max(0.01, (n.Mods.LoanInterest+1.0)*s.Tuning.LoanBaseInterest)
	return -n.Treasury * rate / 30.0
}

// overseasFactor scales overseas maintenance with the share of provinces
// detached from the capital landmass.
func (s *Simulation) overseasFactor(id world.NationID) float64 {
	w := s.World
	owned := 0
	for pi := range w.Provinces {
		if w.Provinces[pi].Owner == id {
			owned++
		}
	}
	return s.Tuning.OverseasPenalty * float64(owned) * w.Nations[id].OverseasFraction
}

func overseasCommodity(c *economy.Commodity) bool {
	return c.Overseas && c.AvailableFromStart
}

// fullSpendingCost totals what one day of the national budget would cost
// at full funding: military and construction goods, stockpile gaps,
// overseas maintenance, and direct payments to state-paid pops.
func (s *Simulation) fullSpendingCost(id world.NationID) float64 {
	w, t := s.World, s.Tuning
	n := &w.Nations[id]

	total := 0.0
	militaryTotal := 0.0
	lSpending := n.LandSpending / 100.0
	nSpending := n.NavalSpending / 100.0
	cSpending := n.ConstructionSpending / 100.0
	oSpending := n.OverseasSpending / 100.0

	for c := 1; c < len(w.Commodities); c++ {
		v := n.ArmyDemand[c] * lSpending * n.EffectivePrice[c]
		total += v
		militaryTotal += v
	}
	for c := 1; c < len(w.Commodities); c++ {
		v := n.NavyDemand[c] * nSpending * n.EffectivePrice[c]
		total += v
		militaryTotal += v
	}
	n.MaximumMilitaryCosts = militaryTotal

	for c := 1; c < len(w.Commodities); c++ {
		total += n.ConstructionDemand[c] * cSpending * n.EffectivePrice[c]
	}
	if !n.StockpileDraw {
		for c := 1; c < len(w.Commodities); c++ {
			if diff := n.StockpileTargets[c] - n.Stockpiles[c]; diff > 0 {
				total += diff * n.EffectivePrice[c]
			}
		}
	}

	if overseas := s.overseasFactor(id); overseas > 0 {
		for c := 1; c < len(w.Commodities); c++ {
			if overseasCommodity(&w.Commodities[c]) {
				total += overseas * n.EffectivePrice[c] * oSpending
			}
		}
	}

	// Direct payments to pops.
	aSpending := n.AdministrativeSpending / 100.0 * n.AdministrativeSpending / 100.0
	sSpending := n.Mods.AdministrativeEfficiency * n.SocialSpending / 100.0
	eSpending := n.EducationSpending * n.EducationSpending / 100.0 / 100.0
	mSpending := n.MilitarySpending * n.MilitarySpending / 100.0 / 100.0
	diSpending := n.DomesticInvestment * n.DomesticInvestment / 100.0 / 100.0

	total += t.DomesticInvestmentMultiplier * diSpending *
		(w.PopTypeCount(id, s.capitalistType)*n.LuxuryNeedsCosts[s.capitalistType]+
			w.PopTypeCount(id, s.aristocratType)*n.LuxuryNeedsCosts[s.aristocratType]) /
		t.NeedsScale

	for pt := range w.PopTypes {
		adjPop := w.PopTypeCount(id, economy.PopTypeID(pt)) / t.NeedsScale
		if adjPop <= 0 {
			continue
		}
		basket := n.LifeNeedsCosts[pt] + n.EverydayNeedsCosts[pt] + n.LuxuryNeedsCosts[pt]
		switch w.PopTypes[pt].Paid {
		case economy.IncomeAdministration:
			total += aSpending * adjPop * basket
		case economy.IncomeEducation:
			total += eSpending * adjPop * basket
		case economy.IncomeMilitary:
			total += mSpending * adjPop * basket
		default:
			total += sSpending * adjPop * n.Mods.PensionLevel * n.LifeNeedsCosts[pt]
			if hasUnemployment(&w.PopTypes[pt]) {
				employed := s.popTypeEmployment(id, economy.PopTypeID(pt)) / t.NeedsScale
				total += sSpending * (adjPop - employed) * n.Mods.UnemploymentBenefit * n.LifeNeedsCosts[pt]
			}
		}
	}

	return total
}

func hasUnemployment(pt *economy.PopType) bool {
	return pt.RGOWorker || pt.Craftsman || pt.Clerk
}

func (s *Simulation) popTypeEmployment(id world.NationID, t economy.PopTypeID) float64 {
	w := s.World
	total := 0.0
	for pi := range w.Provinces {
		if w.Provinces[pi].Owner != id {
			continue
		}
		for _, popID := range w.Provinces[pi].Pops {
			if w.Pops[popID].Type == t {
				total += w.Pops[popID].Employment
			}
		}
	}
	return total
}

func (s *Simulation) fullPrivateInvestmentCost(n *world.Nation) float64 {
	total := 0.0
	for c := 1; c < len(n.PrivateConstructionDemand); c++ {
		total += n.PrivateConstructionDemand[c] * n.EffectivePrice[c]
	}
	return total
}

// updateNationalSpending settles interest, caps the budget at the
// treasury unless the nation borrows, and books national demand scaled to
// what it can actually pay for.
func (s *Simulation) updateNationalSpending(id world.NationID) {
	w := s.World
	n := &w.Nations[id]

	total := s.fullSpendingCost(id)

	n.InterestPaid = s.interestPayment(n)
	n.Treasury -= n.InterestPaid

	var budget, spendingScale float64
	if s.canTakeLoans(n) {
		budget = total
		spendingScale = 1.0
	} else {
		budget = math.Max(0.0, n.Treasury)
		if total < 0.001 || total <= budget {
			spendingScale = 1.0
		} else {
			spendingScale = budget / total
		}
	}

	n.Treasury -= math.Min(budget, total*spendingScale)
	n.SpendingScale = spendingScale

	piTotal := s.fullPrivateInvestmentCost(n)
	piScale := 1.0
	if piTotal > n.PrivateInvestment {
		piScale = n.PrivateInvestment / piTotal
	}
	n.PrivateInvestmentScale = piScale
	n.PrivateInvestment = math.Max(0.0, n.PrivateInvestment-piTotal)

	s.updateNationalConsumption(id, spendingScale, piScale)
}

func (s *Simulation) updateNationalConsumption(id world.NationID, spendingScale, privateScale float64) {
	w := s.World
	n := &w.Nations[id]
	lSpending := n.LandSpending / 100.0
	nSpending := n.NavalSpending / 100.0
	cSpending := n.ConstructionSpending / 100.0
	oSpending := n.OverseasSpending / 100.0

	for c := 1; c < len(w.Commodities); c++ {
		registerDemand(n, economy.CommodityID(c), n.ArmyDemand[c]*lSpending*spendingScale)
	}
	for c := 1; c < len(w.Commodities); c++ {
		registerDemand(n, economy.CommodityID(c), n.NavyDemand[c]*nSpending*spendingScale)
	}
	for c := 1; c < len(w.Commodities); c++ {
		registerDemand(n, economy.CommodityID(c), n.ConstructionDemand[c]*cSpending*spendingScale)
	}
	for c := 1; c < len(w.Commodities); c++ {
		registerDemand(n, economy.CommodityID(c), n.PrivateConstructionDemand[c]*privateScale)
	}
	if !n.StockpileDraw {
		for c := 1; c < len(w.Commodities); c++ {
			if diff := n.StockpileTargets[c] - n.Stockpiles[c]; diff > 0 {
				registerDemand(n, economy.CommodityID(c), diff*spendingScale)
			}
		}
	}
	if overseas := s.overseasFactor(id); overseas > 0 {
		for c := 1; c < len(w.Commodities); c++ {
			if overseasCommodity(&w.Commodities[c]) {
				registerDemand(n, economy.CommodityID(c), overseas*spendingScale*oSpending)
			}
		}
	}
}

// settleNationalPurchases runs after market clearing: it snapshots the
// satisfaction-weighted effective spending levels, refunds money spent on
// goods that never arrived, moves delivered goods into stockpiles, and
// scores overseas maintenance.
func (s *Simulation) settleNationalPurchases(id world.NationID) {
	w := s.World
	n := &w.Nations[id]
	scale := n.SpendingScale
	refund := 0.0

	snapshot := func(demand []float64, slider float64, refundable bool) float64 {
		maxSp, total := 0.0, 0.0
		for c := 1; c < len(w.Commodities); c++ {
			sat := n.DemandSat[c]
			val := demand[c]
			if refundable {
				refund += val * (1.0 - sat) * scale * slider * w.CurrentPrice[c]
			}
			total += val
			maxSp += val * sat
		}
		if total > 0 {
			maxSp /= total
		}
		return scale * maxSp * slider
	}
	n.EffectiveNavalSpending = snapshot(n.NavyDemand, n.NavalSpending/100.0, true)
	n.EffectiveLandSpending = snapshot(n.ArmyDemand, n.LandSpending/100.0, true)
	// No construction refund here: advance bookkeeping already discounts
	// the demand pool by satisfaction.
	n.EffectiveConstructionSpending = snapshot(n.ConstructionDemand, n.ConstructionSpending/100.0, false)

	if !n.StockpileDraw {
		for c := 1; c < len(w.Commodities); c++ {
			if diff := n.StockpileTargets[c] - n.Stockpiles[c]; diff > 0 {
				sat := n.DirectDemandSat[c]
				n.Stockpiles[c] += diff * scale * sat
				refund += diff * (1.0 - sat) * scale * w.CurrentPrice[c]
			}
		}
	}

	if overseas := s.overseasFactor(id); overseas > 0 {
		budget := n.OverseasSpending / 100.0
		budgetSat := 1.0
		for c := 1; c < len(w.Commodities); c++ {
			if !overseasCommodity(&w.Commodities[c]) {
				continue
			}
			sat := n.DemandSat[c]
			budgetSat = math.Min(sat, budgetSat)
			refund += overseas * (1.0 - sat) * scale * w.CurrentPrice[c]
		}
		n.OverseasSatisfaction = budget * budgetSat
	} else {
		n.OverseasSatisfaction = 1.0
	}

	n.Treasury += refund
}

// collectTaxes skims each controlled pop's savings by strata rate,
// recording the pre-tax strata incomes that form the loan ceiling.
func (s *Simulation) collectTaxes(id world.NationID) {
	w := s.World
	n := &w.Nations[id]
	taxEff := n.Mods.TaxEfficiency

	poorEffect := 1.0 - taxEff*n.PoorTax/100.0
	middleEffect := 1.0 - taxEff*n.MiddleTax/100.0
	richEffect := 1.0 - taxEff*n.RichTax/100.0

	var poorBase, middleBase, richBase float64
	for pi := range w.Provinces {
		p := &w.Provinces[pi]
		if p.Owner != id || p.Controller != id {
			continue
		}
		for _, popID := range p.Pops {
			pop := &w.Pops[popID]
			switch w.PopTypes[pop.Type].Strata {
			case economy.StrataPoor:
				poorBase += pop.Savings
				pop.Savings *= poorEffect
			case economy.StrataMiddle:
				middleBase += pop.Savings
				pop.Savings *= middleEffect
			case economy.StrataRich:
				richBase += pop.Savings
				pop.Savings *= richEffect
			}
		}
	}

	n.PoorIncome = poorBase
	n.MiddleIncome = middleBase
	n.RichIncome = richBase
	n.TaxIncome = poorBase*taxEff*n.PoorTax/100.0 +
		middleBase*taxEff*n.MiddleTax/100.0 +
		richBase*taxEff*n.RichTax/100.0
	n.Treasury += n.TaxIncome
}

// collectTariffs charges the effective tariff rate on everything imported
// from the world market today.
func (s *Simulation) collectTariffs(id world.NationID) {
	w := s.World
	n := &w.Nations[id]
	rate := s.effectiveTariffRate(n)

	total := 0.0
	for c := 1; c < len(w.Commodities); c++ {
		total += w.CurrentPrice[c] * rate * n.Imports[c]
	}
	n.TariffIncome = total
	n.Treasury += total
}
