package engine

import (
	"math"
	"sort"

	"github.com/talgya/statecraft/internal/economy"
	"github.com/talgya/statecraft/internal/world"
)

// rgoEffectiveSize is the worked size of one good's operation: the owned
// share of the province's per-good allotment, with the main good getting a
// fixed employment floor.
func (s *Simulation) rgoEffectiveSize(n *world.Nation, p *world.Province, c int) float64 {
	t := s.Tuning
	base := 0.0
	if economy.CommodityID(c) == p.RGO {
		base = t.RGOBaseEmploymentBonus / t.RGOPerSizeEmployment
	}
	ownership := p.AristocratOwnership + p.CapitalistOwnership
	sz := p.RGOSize*p.RGOMaxShare[c]*ownership + base
	bonus := p.RGOSizeMod + n.Mods.RGOSize + 1.0
	return math.Max(sz*bonus, 0.0)
}

func (s *Simulation) rgoMaxEmployment(n *world.Nation, p *world.Province, c int) float64 {
	return s.Tuning.RGOPerSizeEmployment * s.rgoEffectiveSize(n, p, c)
}

func (s *Simulation) rgoTotalEmployment(p *world.Province) float64 {
	total := 0.0
	for c := range p.RGOEmployment {
		total += p.RGOEmployment[c]
	}
	return total
}

// rgoEfficiency is per-size daily yield. Undermanned operations work the
// best land first, so efficiency rises as saturation falls.
func (s *Simulation) rgoEfficiency(n *world.Nation, p *world.Province, c int) float64 {
	t := s.Tuning
	def := &s.World.Commodities[c]

	mainRGO := 1.0
	if economy.CommodityID(c) == p.RGO {
		mainRGO = t.RGOBaseEfficiencyBonus
	}
	throughput := 1.0 + p.RGOThroughputMod + n.Mods.RGOThroughput
	saturation := p.RGOEmployment[c] / (s.rgoMaxEmployment(n, p, c) + 1.0)

	return def.RGOAmount *
		mainRGO *
		(1.0 + (1.0 - saturation)) *
		math.Max(0.5, throughput) *
		t.RGOBoost *
		math.Max(0.5, 1.0+p.RGOOutputMod+n.Mods.RGOOutput)
}

func (s *Simulation) rgoFullProduction(n *world.Nation, p *world.Province, c int) float64 {
	return s.rgoEffectiveSize(n, p, c) * s.rgoEfficiency(n, p, c)
}

// rgoExpectedWorkerProfit is revenue per worker slot, discounted by how
// much of world production actually sold. The money good always sells.
func (s *Simulation) rgoExpectedWorkerProfit(n *world.Nation, p *world.Province, c int) float64 {
	w := s.World
	consumedRatio := math.Min(1.0, (w.TotalConsumption[c]+0.0001)/(w.TotalProduction[c]+0.0001))
	if w.Commodities[c].Money {
		consumedRatio = 1.0
	}
	return consumedRatio * s.rgoEfficiency(n, p, c) * w.CurrentPrice[c] / s.Tuning.RGOPerSizeEmployment
}

// rgoRelevantPopulation is the labor an RGO could draw on: paid rural
// workers by head, slaves by current employment.
func (s *Simulation) rgoRelevantPopulation(p *world.Province) float64 {
	w := s.World
	total := 0.0
	for _, popID := range p.Pops {
		pop := &w.Pops[popID]
		pt := &w.PopTypes[pop.Type]
		if pt.Slave {
			total += pop.Employment
		} else if pt.RGOWorker {
			total += pop.Size
		}
	}
	return total
}

// rgoDesiredWorkerProfit is what one worker slot must yield before owners
// expand employment: the aristocracy's upkeep spread over the workforce
// plus the wage floor grossed up by the owners' cut. Low employment
// discounts the ask so the operation can restart from idle.
func (s *Simulation) rgoDesiredWorkerProfit(n *world.Nation, p *world.Province, minWage, relevantPop float64) float64 {
	t := s.Tuning
	currentEmployment := s.rgoTotalEmployment(p)

	perfectAristos := relevantPop / 10000.0 / t.NeedsScale
	aristosCut := perfectAristos * (n.EverydayNeedsCosts[s.aristocratType] + n.LifeNeedsCosts[s.aristocratType])
	aristoBurden := aristosCut / (relevantPop + 1.0)

	subsistence := s.adjustedSubsistenceScore(p)
	if subsistence == 0 {
		subsistence = p.SubsistenceScore
	}
	subLife := economy.Clamp(subsistence, 0, t.SubsistenceScoreLife)
	subsistence -= subLife
	subEveryday := economy.Clamp(subsistence, 0, t.SubsistenceScoreEveryday)
	subsistence -= subEveryday
	subLuxury := economy.Clamp(subsistence, 0, t.SubsistenceScoreLuxury)

	workerType := s.farmerType
	if s.World.Commodities[p.RGO].Mine {
		workerType = s.laborerType
	}
	subsistenceWage := subLife*n.LifeNeedsCosts[workerType] +
		subEveryday*n.EverydayNeedsCosts[workerType] +
		subLuxury*n.LifeNeedsCosts[workerType]

	wageBurden := (minWage + subsistenceWage) / t.NeedsScale
	desired := aristoBurden + wageBurden/(1.0-t.RGOOwnersCut)

	employmentRatio := currentEmployment / (relevantPop + 1.0)
	return desired * employmentRatio
}

// updateProvinceRGOConsumption moves each good's employment target toward
// the profit balance point and books today's production from the already
// employed workforce.
func (s *Simulation) updateProvinceRGOConsumption(pi int, id world.NationID, minWage float64) {
	w, t := s.World, s.Tuning
	p := &w.Provinces[pi]
	n := &w.Nations[id]

	relevantPop := s.rgoRelevantPopulation(p)
	desired := s.rgoDesiredWorkerProfit(n, p, minWage, relevantPop)

	for c := range w.Commodities {
		maxProduction := s.rgoFullProduction(n, p, c)
		if maxProduction < 0.001 {
			continue
		}
		popsMax := s.rgoMaxEmployment(n, p, c)
		current := p.RGOEmployment[c]
		expected := s.rgoExpectedWorkerProfit(n, p, c)

		positive := (expected+1e-8)/(desired+1e-8) - 1.0
		negative := (desired+1e-8)/(expected+1e-8) - 1.0
		change := (positive - negative) / s.rgoEffectiveSize(n, p, c)

		step := -t.RGOTargetStep
		if expected > desired {
			step = t.RGOTargetStep
		}
		change = change/maxProduction*popsMax/100.0 + step

		p.RGOTargetEmployment[c] = economy.Clamp(current+change, 0, popsMax)
		p.RGOProduction[c] = maxProduction * current / popsMax
	}
}

// updateProvinceRGOProduction registers the booked production as domestic
// supply and credits mined money straight into the treasury.
func (s *Simulation) updateProvinceRGOProduction(pi int, id world.NationID) {
	w, t := s.World, s.Tuning
	p := &w.Provinces[pi]
	n := &w.Nations[id]

	p.RGOFullProfit = 0
	for c := range w.Commodities {
		amount := p.RGOProduction[c]
		registerDomesticSupply(n, economy.CommodityID(c), amount, w.CurrentPrice[c])

		profit := amount * w.CurrentPrice[c]
		p.RGOProfit[c] = profit
		p.RGOFullProfit += profit

		if w.Commodities[c].Money {
			n.Treasury += amount * t.GoldToCash
		}
	}
}

// updateRGOEmployment reallocates each province's rural labor across its
// goods in profit order, blending toward the targets; whatever labor is
// left falls back to subsistence farming.
func (s *Simulation) updateRGOEmployment() {
	w, t := s.World, s.Tuning
	s.parallelOver(len(w.Provinces), func(pi int) {
		p := &w.Provinces[pi]
		if p.Owner == world.NoNation {
			return
		}
		n := &w.Nations[p.Owner]

		currentEmployment := s.rgoTotalEmployment(p) + p.SubsistenceEmployment

		var workerPool, slavePool float64
		for _, popID := range p.Pops {
			pop := &w.Pops[popID]
			pt := &w.PopTypes[pop.Type]
			if pt.Slave {
				slavePool += pop.Size
			} else if pt.RGOWorker {
				workerPool += pop.Size
			}
		}
		laborPool := workerPool + slavePool

		type goodProfit struct {
			c      int
			profit float64
		}
		ordered := make([]goodProfit, 0, len(w.Commodities))
		for c := range w.Commodities {
			if s.rgoMaxEmployment(n, p, c) > 0 {
				ordered = append(ordered, goodProfit{c, s.rgoExpectedWorkerProfit(n, p, c)})
			} else {
				p.RGOEmployment[c] = 0
			}
		}
		sort.Slice(ordered, func(a, b int) bool { return ordered[a].profit > ordered[b].profit })

		remaining := laborPool
		for _, g := range ordered {
			maxEmployment := s.rgoMaxEmployment(n, p, g.c)
			target := math.Min(p.RGOTargetEmployment[g.c], remaining)
			employment := math.Min(p.RGOEmployment[g.c]*(1.0-t.RGOEmploymentSpeed)+target*t.RGOEmploymentSpeed, remaining)
			remaining -= employment
			p.RGOEmployment[g.c] = economy.Clamp(employment, 0, maxEmployment)
		}

		p.SubsistenceEmployment = math.Min(s.subsistenceMaxEmployment(p), remaining)

		slaveFraction := 1.0
		if slavePool > currentEmployment {
			slaveFraction = currentEmployment / slavePool
		}
		freeFraction := 1.0
		if workerPool > currentEmployment-slavePool {
			freeFraction = math.Max(0.0, (currentEmployment-slavePool)/math.Max(workerPool, 0.01))
		}
		for _, popID := range p.Pops {
			pop := &w.Pops[popID]
			pt := &w.PopTypes[pop.Type]
			if pt.Slave {
				pop.Employment = pop.Size * slaveFraction
			} else if pt.RGOWorker {
				pop.Employment = pop.Size * freeFraction
			}
		}
	})
}
