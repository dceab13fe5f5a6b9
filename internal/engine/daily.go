package engine

import "github.com/talgya/statecraft/internal/world"

// Minimum wages anchor to the cost of a worker's life and everyday
// baskets. The factory wage collapses cubically with unemployment so a
// labor glut cannot price factories out of existence.
func (s *Simulation) computeMinWages(id world.NationID) nationWages {
	w := s.World
	n := &w.Nations[id]
	factor := n.Mods.MinWageFactor

	farmer := factor * (n.LifeNeedsCosts[s.farmerType] + n.EverydayNeedsCosts[s.farmerType]) * 1.1
	laborer := factor * (n.LifeNeedsCosts[s.laborerType] + n.EverydayNeedsCosts[s.laborerType]) * 1.1

	employed := s.popTypeEmployment(id, s.craftsmanType)
	total := w.PopTypeCount(id, s.craftsmanType)
	crisis := 1.0
	if total > 0 {
		crisis = employed / total
	}
	factory := factor * (n.LifeNeedsCosts[s.craftsmanType] + n.EverydayNeedsCosts[s.craftsmanType]) *
		1.1 * crisis * crisis * crisis

	return nationWages{farmer: farmer, laborer: laborer, factory: factory}
}

// DailyUpdate advances the world economy by one day. Phase order is rigid:
// demand must be fully booked before the serialized clearing pass, pools
// must decay before payment, and payment must land before taxation.
func (s *Simulation) DailyUpdate() {
	w := s.World
	w.Day++

	s.populateArmyConsumption()
	s.populateNavyConsumption()
	s.populateConstructionConsumption()
	s.populatePrivateConstructionConsumption()

	for i := range w.Nations {
		n := &w.Nations[i]
		n.LastTreasury = n.Treasury
		clearSlice(n.LifeNeedsCosts)
		clearSlice(n.EverydayNeedsCosts)
		clearSlice(n.LuxuryNeedsCosts)
	}

	s.updateLandOwnership()
	s.updateSubsistenceScores()

	s.updateRGOEmployment()
	s.updateFactoryEmployment()

	// Sphere trade runs leader-first in rank order; a leader absorbs its
	// members' shared production before passing its own pool down.
	ranked := w.RankedNations()
	for _, id := range ranked {
		if w.Nations[id].SphereLeader == world.NoNation {
			s.absorbSphereProduction(id)
		}
	}
	for _, id := range ranked {
		if w.Nations[id].SphereLeader != world.NoNation {
			s.giveSphereLeaderProduction(id)
		}
	}

	// The serialized pass: each nation books demand against yesterday's
	// market state and clears it immediately, strongest nations first.
	for _, id := range ranked {
		n := &w.Nations[id]
		n.GDP = 0

		s.populateEffectivePrices(id)
		s.populateNeedsCosts(id)
		s.minWages[id] = s.computeMinWages(id)

		clearSlice(n.RealDemand)

		s.updateArtisanConsumption(id)
		for pi := range w.Provinces {
			p := &w.Provinces[pi]
			if p.Owner != id {
				continue
			}
			occupied := p.Controller != id
			for _, fid := range p.Factories {
				s.updateFactoryConsumption(fid, id, s.minWages[id].factory, occupied)
			}
			rgoWage := s.minWages[id].farmer
			if w.Commodities[p.RGO].Mine {
				rgoWage = s.minWages[id].laborer
			}
			s.updateProvinceRGOConsumption(pi, id, rgoWage)
		}
		s.updatePopConsumption(id)

		s.updateNationalSpending(id)
		s.clearMarket(id)
	}

	s.decayGlobalPool()

	s.payGovernmentPops()

	s.parallelOver(len(w.Nations), func(i int) {
		id := world.NationID(i)

		s.capNeedsSatisfaction(id)
		s.settleNationalPurchases(id)

		wages := s.computeMinWages(id)
		s.realizeArtisanProduction(id)
		for pi := range w.Provinces {
			p := &w.Provinces[pi]
			if p.Owner != id {
				continue
			}
			for _, fid := range p.Factories {
				s.realizeFactoryProduction(fid, id, wages.factory)
			}
			s.updateProvinceRGOProduction(pi, id)
		}

		s.payArtisans(id)
		s.payEmployedPops(id, wages)

		s.advanceConstruction(id)
		if !w.Nations[id].ConstructionInitiated {
			s.emulateConstructionDemand(id)
		}

		s.collectEducationFunds(id)
		s.collectTaxes(id)
		s.collectTariffs(id)

		s.rebalanceNeedsWeights(id)
		s.adjustArtisanBalance(id)
	})

	s.updateMoneyPrices()
	s.updatePrices()

	s.settleDiplomaticExpenses()
	s.checkBankruptcies()
	s.updateInflation()

	s.resolveConstructions()
	s.initiatePrivateInvestment()
	s.pruneFactories()

	w.RecordPrices()
}
