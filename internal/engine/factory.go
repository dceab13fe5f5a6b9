package engine

import (
	"math"
	"sort"

	"github.com/talgya/statecraft/internal/economy"
	"github.com/talgya/statecraft/internal/world"
)

func (s *Simulation) factoryMaxEmployment(f *world.Factory) float64 {
	return s.Tuning.FactoryPerLevelEmployment * float64(f.Level)
}

func (s *Simulation) factoryPrimaryEmployment(f *world.Factory) float64 {
	return s.factoryMaxEmployment(f) * s.Tuning.CraftsmenFraction * f.PrimaryEmployment
}

func (s *Simulation) factorySecondaryEmployment(f *world.Factory) float64 {
	return s.factoryMaxEmployment(f) * (1.0 - s.Tuning.CraftsmenFraction) * f.SecondaryEmployment
}

func factoryIsProfitable(f *world.Factory) bool {
	return !f.Unprofitable || f.Subsidized
}

func setTotalCost(set *economy.CommoditySet, prices []float64) float64 {
	total := 0.0
	for i := 0; i < set.N; i++ {
		total += set.Amounts[i] * prices[set.Commodities[i]]
	}
	return total
}

func setMinSatisfaction(set *economy.CommoditySet, sat []float64) float64 {
	minSat := 1.0
	for i := 0; i < set.N; i++ {
		minSat = math.Min(minSat, sat[set.Commodities[i]])
	}
	return minSat
}

// triggeredBonuses folds a factory type's conditional bonuses for one
// location into input, output, and throughput deltas.
func (s *Simulation) triggeredBonuses(ft *economy.FactoryType, pi int, id world.NationID) (input, output, throughput float64) {
	for i := range ft.Bonuses {
		b := &ft.Bonuses[i]
		if b.When == nil || !b.When(int32(pi), int32(id)) {
			continue
		}
		input -= b.Input
		output += b.Output
		throughput += b.Throughput
	}
	return
}

// factoryInputMultiplier prices the input bill. Small factories buy at
// worse terms; a local capitalist class negotiates better ones.
func (s *Simulation) factoryInputMultiplier(f *world.Factory, n *world.Nation, bonusInput float64) float64 {
	t := s.Tuning
	totalWorkers := s.factoryMaxEmployment(f)
	smallBound := t.FactoryPerLevelEmployment * 5.0
	smallSizeEffect := 1.0
	if totalWorkers < smallBound {
		smallSizeEffect = 0.5 + totalWorkers/smallBound*0.5
	}

	p := &s.World.Provinces[f.Province]
	ownerFraction := 0.0
	if p.State >= 0 {
		statePop := math.Max(0.01, s.World.StatePopulation(p.State))
		capitalists := 0.0
		for _, pid := range s.World.States[p.State].Provinces {
			for _, popID := range s.World.Provinces[pid].Pops {
				if s.World.Pops[popID].Type == s.capitalistType {
					capitalists += s.World.Pops[popID].Size
				}
			}
		}
		ownerFraction = math.Min(0.05, capitalists/statePop)
	}

	return smallSizeEffect * math.Max(0.1, t.InputBaseFactor+n.Mods.FactoryInput+bonusInput+ownerFraction*-2.5)
}

func (s *Simulation) factoryThroughputMultiplier(n *world.Nation, bonusThroughput float64) float64 {
	return n.Mods.FactoryThroughput + bonusThroughput + 1.0
}

func (s *Simulation) factoryOutputMultiplier(f *world.Factory, n *world.Nation, bonusOutput float64) float64 {
	return n.Mods.FactoryOutput + bonusOutput +
		f.SecondaryEmployment*(1.0-s.Tuning.CraftsmenFraction)*1.5 + 1.0
}

func (s *Simulation) factoryMaxProductionScale(f *world.Factory, n *world.Nation, occupied bool) float64 {
	scale := f.PrimaryEmployment * float64(f.Level) * math.Max(0.0, n.Mods.MobilizationImpact)
	if occupied {
		scale *= 0.1
	}
	return scale
}

// updateFactoryScale is the profit controller on factory utilization.
// Speed is bounded by the factory's share of the good's world market so
// one factory cannot whip the price; subsidized factories just spin up.
func (s *Simulation) updateFactoryScale(f *world.Factory, maxProductionScale, rawProfit, desiredProfit float64) float64 {
	w, t := s.World, s.Tuning
	severalWorkersScale := 10.0 / s.factoryMaxEmployment(f)

	if f.Subsidized {
		f.ProductionScale = math.Min(1.0, f.ProductionScale+severalWorkersScale*float64(f.Level)*10.0)
		return math.Min(f.ProductionScale*float64(f.Level), maxProductionScale)
	}

	ft := &w.FactoryTypes[f.Type]
	relativeAmount := ft.OutputAmount /
		(w.TotalProduction[ft.Output] + w.TotalRealDemand[ft.Output] + 10.0)
	relativeModifier := (1.0 / (relativeAmount + 0.01)) / 1000.0

	overProfit := rawProfit/(desiredProfit+0.0001) - 1.0
	underProfit := desiredProfit/(rawProfit+0.0001) - 1.0

	direction := -1.0
	if rawProfit-desiredProfit > 0 {
		direction = 1.0
	}
	speed := t.ProductionScaleDelta*(overProfit-underProfit) + severalWorkersScale*direction
	speed = economy.Clamp(speed, -relativeModifier, relativeModifier)

	f.ProductionScale = economy.Clamp(f.ProductionScale+speed, 0, 1)
	return math.Min(f.ProductionScale*float64(f.Level), maxProductionScale)
}

func factoryDesiredProfit(f *world.Factory, spendings float64) float64 {
	return spendings * (1.2 + f.SecondaryEmployment*float64(f.Level)/150.0)
}

// updateFactoryConsumption books one factory's input demand and its
// prospective production and profit for the day. Efficiency inputs gate a
// quarter of throughput; ordinary inputs gate everything.
func (s *Simulation) updateFactoryConsumption(fid world.FactoryID, id world.NationID, minWage float64, occupied bool) {
	w, t := s.World, s.Tuning
	f := &w.Factories[fid]
	n := &w.Nations[id]
	ft := &w.FactoryTypes[f.Type]

	maxProductionScale := s.factoryMaxProductionScale(f, n, occupied)

	inputTotal := setTotalCost(&ft.Inputs, n.EffectivePrice)
	minInput := setMinSatisfaction(&ft.Inputs, n.DemandSat)
	eInputTotal := setTotalCost(&ft.EfficiencyInputs, n.EffectivePrice)
	minEInput := setMinSatisfaction(&ft.EfficiencyInputs, n.DemandSat)

	bonusInput, bonusOutput, bonusThroughput := s.triggeredBonuses(ft, int(f.Province), id)
	inputMult := s.factoryInputMultiplier(f, n, bonusInput)
	maintenance := n.Mods.FactoryCost + 1.0
	throughputMult := s.factoryThroughputMultiplier(n, bonusThroughput)
	outputMult := s.factoryOutputMultiplier(f, n, bonusOutput)

	// Per-level production and costs with a full workforce.
	totalProduction := ft.OutputAmount *
		(0.75 + 0.25*minEInput) *
		throughputMult *
		outputMult *
		minInput

	profit := totalProduction * w.CurrentPrice[ft.Output]

	spendings := minWage*(t.FactoryPerLevelEmployment/t.NeedsScale) +
		inputMult*throughputMult*inputTotal*minInput +
		inputMult*maintenance*eInputTotal*minEInput*minInput

	desiredProfit := factoryDesiredProfit(f, spendings)
	maxPureProfit := profit - spendings
	f.Unprofitable = !(maxPureProfit > 0)

	effectiveScale := s.updateFactoryScale(f, maxProductionScale, profit, desiredProfit)

	inputScale := inputMult * throughputMult * effectiveScale * (0.1 + minInput*0.9)
	for i := 0; i < ft.Inputs.N; i++ {
		in := ft.Inputs.Commodities[i]
		registerIntermediateDemand(n, in, inputScale*ft.Inputs.Amounts[i], w.CurrentPrice[in])
	}
	for i := 0; i < ft.EfficiencyInputs.N; i++ {
		in := ft.EfficiencyInputs.Commodities[i]
		registerIntermediateDemand(n, in,
			maintenance*inputScale*ft.EfficiencyInputs.Amounts[i]*(0.1+minEInput*0.9),
			w.CurrentPrice[in])
	}

	f.ActualProduction = totalProduction * effectiveScale
	f.FullProfit = maxPureProfit * effectiveScale
	f.FullOutputCost = spendings * effectiveScale
}

// realizeFactoryProduction registers the booked output as domestic supply.
// Subsidized factories get their wage shortfall covered from the treasury
// until the treasury itself cannot, which cancels the subsidy.
func (s *Simulation) realizeFactoryProduction(fid world.FactoryID, id world.NationID, minWage float64) {
	w, t := s.World, s.Tuning
	f := &w.Factories[fid]
	n := &w.Nations[id]

	if f.ActualProduction <= 0 {
		f.UnprofitableDays++
		return
	}
	ft := &w.FactoryTypes[f.Type]
	registerDomesticSupply(n, ft.Output, f.ActualProduction, w.CurrentPrice[ft.Output])

	if f.Unprofitable {
		f.UnprofitableDays++
	} else {
		f.UnprofitableDays = 0
	}

	if !f.Subsidized {
		return
	}
	minWages := minWage * float64(f.Level) * f.PrimaryEmployment *
		(t.FactoryPerLevelEmployment / t.NeedsScale)
	if f.FullProfit >= minWages {
		return
	}
	diff := minWages - f.FullProfit
	if n.Treasury > diff || s.canTakeLoans(n) {
		f.FullProfit = minWages
		n.Treasury -= diff
	} else {
		f.FullProfit = math.Max(f.FullProfit, 0.0)
		f.Subsidized = false
		s.Notify("factory_subsidy_lapsed", id, int32(fid))
	}
}

// updateFactoryEmployment shares each state's industrial workforce out to
// its factories in bucket order: profitable before not, then priority.
// Within a bucket, labor splits by weighted capacity. Movement is slow so
// factories cannot thrash the labor market.
func (s *Simulation) updateFactoryEmployment() {
	w, t := s.World, s.Tuning
	s.parallelOver(len(w.States), func(si int) {
		st := &w.States[si]

		var primaryPool, secondaryPool float64
		ordered := make([]world.FactoryID, 0, 8)
		for _, pid := range st.Provinces {
			p := &w.Provinces[pid]
			for _, popID := range p.Pops {
				pop := &w.Pops[popID]
				switch pop.Type {
				case s.craftsmanType:
					primaryPool += pop.Size
				case s.clerkType:
					secondaryPool += pop.Size
				}
			}
			ordered = append(ordered, p.Factories...)
		}
		sort.Slice(ordered, func(a, b int) bool {
			fa, fb := &w.Factories[ordered[a]], &w.Factories[ordered[b]]
			if factoryIsProfitable(fa) != factoryIsProfitable(fb) {
				return factoryIsProfitable(fa)
			}
			if fa.Priority() != fb.Priority() {
				return fa.Priority() > fb.Priority()
			}
			return ordered[a] < ordered[b]
		})

		primaryLeft, secondaryLeft := primaryPool, secondaryPool
		for index := 0; index < len(ordered); {
			next := index
			totalWorkforce := 0.0
			for ; next < len(ordered); next++ {
				fi, fn := &w.Factories[ordered[index]], &w.Factories[ordered[next]]
				if factoryIsProfitable(fi) != factoryIsProfitable(fn) || fi.Priority() != fn.Priority() {
					break
				}
				totalWorkforce += s.factoryMaxEmployment(fn) * fn.ProductionScale
			}

			primaryShare := t.CraftsmenFraction * totalWorkforce
			scale := 1.0
			if primaryLeft < primaryShare {
				scale = primaryLeft / primaryShare
			}
			primaryLeft = math.Max(0.0, primaryLeft-primaryShare)
			for i := index; i < next; i++ {
				f := &w.Factories[ordered[i]]
				f.PrimaryEmployment = f.PrimaryEmployment*(1.0-t.FactoryEmploymentSpeed) +
					scale*f.ProductionScale*t.FactoryEmploymentSpeed
			}

			secondaryShare := (1.0 - t.CraftsmenFraction) * totalWorkforce
			scale = 1.0
			if secondaryLeft < secondaryShare {
				scale = secondaryLeft / secondaryShare
			}
			secondaryLeft = math.Max(0.0, secondaryLeft-secondaryShare)
			for i := index; i < next; i++ {
				f := &w.Factories[ordered[i]]
				f.SecondaryEmployment = f.SecondaryEmployment*(1.0-t.FactoryEmploymentSpeed) +
					scale*f.ProductionScale*t.FactoryEmploymentSpeed
			}

			index = next
		}

		primaryEmployed := 1.0
		if primaryPool > 0 {
			primaryEmployed = 1.0 - primaryLeft/primaryPool
		}
		secondaryEmployed := 1.0
		if secondaryPool > 0 {
			secondaryEmployed = 1.0 - secondaryLeft/secondaryPool
		}
		for _, pid := range st.Provinces {
			for _, popID := range w.Provinces[pid].Pops {
				pop := &w.Pops[popID]
				switch pop.Type {
				case s.craftsmanType:
					pop.Employment = pop.Size * primaryEmployed
				case s.clerkType:
					pop.Employment = pop.Size * secondaryEmployed
				}
			}
		}
	})
}

// pruneFactories deletes, per crowded state, the smallest factory that is
// both unprofitable and essentially unstaffed, freeing the slot for a
// build that might work.
func (s *Simulation) pruneFactories() {
	w, t := s.World, s.Tuning
	for si := range w.States {
		var choice world.FactoryID = world.NoFactory
		count := 0
		for _, pid := range w.States[si].Provinces {
			for _, fid := range w.Provinces[pid].Factories {
				f := &w.Factories[fid]
				count++
				tenWorkers := 10.0 / s.factoryMaxEmployment(f)
				if f.ProductionScale < tenWorkers && f.Unprofitable &&
					(choice == world.NoFactory || w.Factories[choice].Level > f.Level) {
					choice = fid
				}
			}
		}
		if choice == world.NoFactory || 4+count < t.FactoriesPerState {
			continue
		}

		prunedType := w.Factories[choice].Type
		owner := w.States[si].Owner
		w.RemoveFactory(choice)
		s.Notify("factory_closed", owner, int32(choice))

		for i := range w.FactoryProjects {
			proj := &w.FactoryProjects[i]
			if proj.State == world.StateID(si) && proj.Type == prunedType {
				w.FactoryProjects = append(w.FactoryProjects[:i], w.FactoryProjects[i+1:]...)
				break
			}
		}
	}
}
