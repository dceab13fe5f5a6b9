package engine

import (
	"math"

	"github.com/talgya/statecraft/internal/economy"
	"github.com/talgya/statecraft/internal/world"
)

// payGovernmentPops SETS every pop's savings to today's state payments.
// Market income for employed pops is added afterwards, so this pass also
// zeroes yesterday's money for everyone else.
func (s *Simulation) payGovernmentPops() {
	w, t := s.World, s.Tuning
	s.parallelOver(len(w.Pops), func(i int) {
		pop := &w.Pops[i]
		owner := w.Provinces[pop.Province].Owner
		if owner == world.NoNation {
			pop.Savings = 0
			return
		}
		n := &w.Nations[owner]
		scale := n.SpendingScale

		adjPop := pop.Size / t.NeedsScale
		aSpending := scale * n.AdministrativeSpending * n.AdministrativeSpending / 100.0 / 100.0
		sSpending := scale * n.Mods.AdministrativeEfficiency * n.SocialSpending / 100.0
		eSpending := scale * n.EducationSpending * n.EducationSpending / 100.0 / 100.0
		mSpending := scale * n.MilitarySpending * n.MilitarySpending / 100.0 / 100.0
		diSpending := scale * n.DomesticInvestment * n.DomesticInvestment / 100.0 / 100.0

		pt := &w.PopTypes[pop.Type]
		basket := n.LifeNeedsCosts[pop.Type] + n.EverydayNeedsCosts[pop.Type] + n.LuxuryNeedsCosts[pop.Type]

		paid := 0.0
		switch pt.Paid {
		case economy.IncomeAdministration:
			paid = aSpending * adjPop * basket
		case economy.IncomeEducation:
			paid = eSpending * adjPop * basket
		case economy.IncomeMilitary:
			paid = mSpending * adjPop * basket
		default:
			paid = sSpending * adjPop * n.Mods.PensionLevel * n.LifeNeedsCosts[pop.Type]
			if hasUnemployment(pt) {
				paid += sSpending * (pop.Size - pop.Employment) / t.NeedsScale *
					n.Mods.UnemploymentBenefit * n.LifeNeedsCosts[pop.Type]
			}
		}
		if pop.Type == s.capitalistType || pop.Type == s.aristocratType {
			paid += diSpending * adjPop * t.DomesticInvestmentMultiplier * n.LuxuryNeedsCosts[pop.Type]
		}

		pop.Savings = s.inflation * paid
	})
}

// factoryProfitShares is the per-head split of a state's factory profit.
type factoryProfitShares struct {
	perPrimary   float64
	perSecondary float64
	perOwner     float64
}

// distributeFactoryProfit splits profit after minimum wages: owners take
// most of the surplus when present, otherwise workers share it; a shortfall
// splits what there is across all heads.
func (s *Simulation) distributeFactoryProfit(si int, minWage, totalProfit float64) factoryProfitShares {
	w := s.World

	var numPrimary, numSecondary, numOwners float64
	var employedPrimary, employedSecondary float64
	for _, pid := range w.States[si].Provinces {
		for _, popID := range w.Provinces[pid].Pops {
			pop := &w.Pops[popID]
			switch pop.Type {
			case s.craftsmanType:
				numPrimary += pop.Size
				employedPrimary += pop.Employment
			case s.clerkType:
				numSecondary += pop.Size
				employedSecondary += pop.Employment
			case s.capitalistType:
				numOwners += pop.Size
			}
		}
	}
	minToPrimary := minWage * employedPrimary
	minToSecondary := minWage * employedSecondary

	var out factoryProfitShares
	switch {
	case minToPrimary+minToSecondary <= totalProfit && numOwners > 0:
		surplus := totalProfit - (minToPrimary + minToSecondary)
		if numPrimary > 0 {
			out.perPrimary = (minToPrimary + surplus*0.1) / numPrimary
		}
		if numSecondary > 0 {
			out.perSecondary = (minToSecondary + surplus*0.2) / numSecondary
		}
		out.perOwner = surplus * 0.7 / numOwners
	case minToPrimary+minToSecondary <= totalProfit && numSecondary > 0:
		surplus := totalProfit - (minToPrimary + minToSecondary)
		if numPrimary > 0 {
			out.perPrimary = (minToPrimary + surplus*0.5) / numPrimary
		}
		out.perSecondary = (minToSecondary + surplus*0.5) / numSecondary
	case minToPrimary+minToSecondary <= totalProfit:
		if numPrimary > 0 {
			out.perPrimary = totalProfit / numPrimary
		}
	case numPrimary+numSecondary > 0:
		out.perPrimary = totalProfit / (numPrimary + numSecondary)
		out.perSecondary = out.perPrimary
	}
	return out
}

// payArtisans distributes national artisan profit evenly per artisan head.
func (s *Simulation) payArtisans(id world.NationID) {
	w := s.World
	n := &w.Nations[id]
	numArtisans := w.PopTypeCount(id, s.artisanType)
	if numArtisans <= 0 {
		return
	}
	perProfit := n.ArtisanProfit / numArtisans
	for pi := range w.Provinces {
		if w.Provinces[pi].Owner != id {
			continue
		}
		for _, popID := range w.Provinces[pi].Pops {
			pop := &w.Pops[popID]
			if pop.Type == s.artisanType {
				pop.Savings += s.inflation * pop.Size * perProfit
			}
		}
	}
}

// payEmployedPops adds the day's market wages: RGO income per province with
// the owners' cut skimmed to capitalists and aristocrats, and factory
// profit shares per state.
func (s *Simulation) payEmployedPops(id world.NationID, wages nationWages) {
	w, t := s.World, s.Tuning

	for si := range w.States {
		if w.States[si].Owner != id {
			continue
		}

		totalProfit := 0.0
		rgoOwnerProfit := 0.0

		var numCapitalist, numAristocrat float64
		for _, pid := range w.States[si].Provinces {
			for _, popID := range w.Provinces[pid].Pops {
				pop := &w.Pops[popID]
				switch pop.Type {
				case s.capitalistType:
					numCapitalist += pop.Size
				case s.aristocratType:
					numAristocrat += pop.Size
				}
			}
		}
		numRGOOwners := numCapitalist + numAristocrat

		for _, pid := range w.States[si].Provinces {
			p := &w.Provinces[pid]
			for _, fid := range p.Factories {
				totalProfit += math.Max(0.0, w.Factories[fid].FullProfit)
			}

			rgoMinWage := wages.farmer
			if w.Commodities[p.RGO].Mine {
				rgoMinWage = wages.laborer
			}
			rgoMinWage /= t.NeedsScale

			var minToWorkers, numWorkers float64
			for _, popID := range p.Pops {
				pop := &w.Pops[popID]
				pt := &w.PopTypes[pop.Type]
				if pt.RGOWorker && !pt.Slave {
					minToWorkers += rgoMinWage * pop.Employment
					numWorkers += pop.Size
				}
			}

			rgoProfit := p.RGOFullProfit
			if numRGOOwners > 0 {
				rgoOwnerProfit += t.RGOOwnersCut * rgoProfit
				rgoProfit *= 1.0 - t.RGOOwnersCut
			}

			var workerWage float64
			if minToWorkers <= rgoProfit && numRGOOwners > 0 {
				workerWage = minToWorkers + (rgoProfit-minToWorkers)*0.2
				rgoOwnerProfit += (rgoProfit - minToWorkers) * 0.8
			} else {
				workerWage = rgoProfit
			}
			perWorker := 0.0
			if numWorkers > 0 {
				perWorker = workerWage / numWorkers
			}
			for _, popID := range p.Pops {
				pop := &w.Pops[popID]
				pt := &w.PopTypes[pop.Type]
				if pt.RGOWorker && !pt.Slave {
					pop.Savings += s.inflation * pop.Size * perWorker
				}
			}
		}

		perRGOOwner := 0.0
		if numRGOOwners > 0 {
			perRGOOwner = rgoOwnerProfit / numRGOOwners
		}

		shares := s.distributeFactoryProfit(si, wages.factory/t.NeedsScale, totalProfit)
		for _, pid := range w.States[si].Provinces {
			for _, popID := range w.Provinces[pid].Pops {
				pop := &w.Pops[popID]
				switch pop.Type {
				case s.craftsmanType:
					pop.Savings += s.inflation * pop.Size * shares.perPrimary
				case s.clerkType:
					pop.Savings += s.inflation * pop.Size * shares.perSecondary
				case s.capitalistType:
					pop.Savings += s.inflation * pop.Size * (shares.perOwner + perRGOOwner)
				case s.aristocratType:
					pop.Savings += s.inflation * pop.Size * perRGOOwner
				}
			}
		}
	}
}

// collectEducationFunds skims a savings slice in each controlled province
// with resident teachers or bureaucrats and hands it to them, weighted
// toward education.
func (s *Simulation) collectEducationFunds(id world.NationID) {
	w, t := s.World, s.Tuning
	cut := t.EducationSavingsCut
	keep := 1.0 - cut

	for pi := range w.Provinces {
		p := &w.Provinces[pi]
		if p.Owner != id || p.Controller != id {
			continue
		}

		var teachers, managers float64
		for _, popID := range p.Pops {
			switch w.PopTypes[w.Pops[popID].Type].Paid {
			case economy.IncomeAdministration:
				managers += w.Pops[popID].Size
			case economy.IncomeEducation:
				teachers += w.Pops[popID].Size
			}
		}
		if teachers+managers <= 0 {
			continue
		}

		pool := 0.0
		for _, popID := range p.Pops {
			pop := &w.Pops[popID]
			pool += pop.Savings * cut
			pop.Savings *= keep
		}

		educationRatio := 0.8
		if managers == 0 {
			educationRatio = 1.0
		}
		for _, popID := range p.Pops {
			pop := &w.Pops[popID]
			switch w.PopTypes[pop.Type].Paid {
			case economy.IncomeAdministration:
				pop.Savings += pool * (1.0 - educationRatio) * pop.Size / managers
			case economy.IncomeEducation:
				pop.Savings += pool * educationRatio * pop.Size / teachers
			}
		}
	}
}
