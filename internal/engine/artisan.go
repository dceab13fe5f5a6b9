package engine

import (
	"math"

	"github.com/talgya/statecraft/internal/economy"
	"github.com/talgya/statecraft/internal/world"
)

// Artisans allocate themselves across craftable goods with an approximate
// softmax over per-good profit scores. The multiplier folds the cost of
// living into the softmax temperature: richer artisans reallocate faster.

func validArtisanGood(c *economy.Commodity) bool {
	return c.ArtisanOutputAmount > 0 && c.AvailableFromStart
}

func (s *Simulation) artisanMultiplier(n *world.Nation) float64 {
	return 1.0 / (0.000001*n.EverydayNeedsCosts[s.artisanType] + 1.0)
}

func (s *Simulation) maxArtisanScore(n *world.Nation, multiplier float64) float64 {
	maxScore := s.Tuning.ArtisanBaselineScore / multiplier
	for c := 1; c < len(s.World.Commodities); c++ {
		if n.ArtisanScore[c] > maxScore {
			maxScore = n.ArtisanScore[c]
		}
	}
	return maxScore
}

func (s *Simulation) totalArtisanExpScore(n *world.Nation, multiplier, maxScore float64) float64 {
	total := 0.0
	for c := 1; c < len(s.World.Commodities); c++ {
		total += economy.PseudoExpNeg((n.ArtisanScore[c] - maxScore) * multiplier)
	}
	baseline := s.Tuning.ArtisanBaselineScore / multiplier
	return total + economy.PseudoExpNeg((baseline-maxScore)*multiplier)
}

func artisanDistribution(n *world.Nation, c int, maxScore, totalScore, multiplier float64) float64 {
	return economy.PseudoExpNeg((n.ArtisanScore[c]-maxScore)*multiplier) / (totalScore + 0.001)
}

func (s *Simulation) artisanInputMultiplier(n *world.Nation) float64 {
	return math.Max(0.1, s.Tuning.ArtisanInputBaseFactor+n.Mods.ArtisanInput)
}

func (s *Simulation) artisanOutputMultiplier(n *world.Nation) float64 {
	return math.Max(0.1, s.Tuning.ArtisanOutputBaseFactor+n.Mods.ArtisanOutput)
}

// baseArtisanProfit is the margin of one recipe at world prices, before
// throughput and availability scaling.
func (s *Simulation) baseArtisanProfit(n *world.Nation, c int) float64 {
	w := s.World
	def := &w.Commodities[c]
	inputTotal := 0.0
	for i := 0; i < def.ArtisanInputs.N; i++ {
		inputTotal += def.ArtisanInputs.Amounts[i] * w.CurrentPrice[def.ArtisanInputs.Commodities[i]]
	}
	outputTotal := def.ArtisanOutputAmount * w.CurrentPrice[c]
	return outputTotal*s.artisanOutputMultiplier(n) - s.artisanInputMultiplier(n)*inputTotal
}

// updateArtisanConsumption registers input demand for every craftable good
// in proportion to the artisan distribution and records the prospective
// production and profit. Serialized per nation.
func (s *Simulation) updateArtisanConsumption(id world.NationID) {
	w := s.World
	n := &w.Nations[id]
	numArtisans := w.PopTypeCount(id, s.artisanType)

	multiplier := s.artisanMultiplier(n)
	maxScore := s.maxArtisanScore(n, multiplier)
	totalScore := s.totalArtisanExpScore(n, multiplier, maxScore)

	inputMult := s.artisanInputMultiplier(n)
	outputMult := s.artisanOutputMultiplier(n)
	throughputMult := math.Max(0.1, 1.0+n.Mods.ArtisanThroughput)
	mobilization := math.Max(0.0, n.Mods.MobilizationImpact)

	totalProfit := 0.0
	for c := 1; c < len(w.Commodities); c++ {
		n.ArtisanProduction[c] = 0
		def := &w.Commodities[c]
		if !validArtisanGood(def) {
			continue
		}

		inputTotal := 0.0
		minAvailable := 1.0
		for i := 0; i < def.ArtisanInputs.N; i++ {
			in := def.ArtisanInputs.Commodities[i]
			inputTotal += def.ArtisanInputs.Amounts[i] * n.EffectivePrice[in]
			minAvailable = math.Min(minAvailable, n.DemandSat[in])
		}
		outputTotal := def.ArtisanOutputAmount * w.CurrentPrice[c]

		share := artisanDistribution(n, c, maxScore, totalScore, multiplier)
		n.ArtisanShare[c] = share
		scale := numArtisans * share / 10000.0 * mobilization

		for i := 0; i < def.ArtisanInputs.N; i++ {
			in := def.ArtisanInputs.Commodities[i]
			registerIntermediateDemand(n, in,
				inputMult*throughputMult*scale*def.ArtisanInputs.Amounts[i]*(0.1+0.9*minAvailable),
				w.CurrentPrice[in])
		}

		n.ArtisanProduction[c] = def.ArtisanOutputAmount * throughputMult * outputMult * scale * minAvailable
		totalProfit += math.Max(0.0, (outputTotal*outputMult-inputMult*inputTotal)*throughputMult*scale*minAvailable)
	}
	n.ArtisanProfit = totalProfit
}

// realizeArtisanProduction shrinks prospective production by the realized
// input satisfaction and registers it as domestic supply.
func (s *Simulation) realizeArtisanProduction(id world.NationID) {
	w := s.World
	n := &w.Nations[id]

	for c := 1; c < len(w.Commodities); c++ {
		def := &w.Commodities[c]
		if !validArtisanGood(def) || n.ArtisanProduction[c] <= 0 {
			continue
		}
		minInput := 1.0
		for i := 0; i < def.ArtisanInputs.N; i++ {
			minInput = math.Min(minInput, n.DemandSat[def.ArtisanInputs.Commodities[i]])
		}
		n.ArtisanProduction[c] *= minInput
		registerDomesticSupply(n, economy.CommodityID(c), n.ArtisanProduction[c], w.CurrentPrice[c])
	}
}

// adjustArtisanBalance drifts the per-good scores toward realized margins.
// Goods artisans cannot make get a score low enough that the softmax
// saturates to a hard zero for them.
func (s *Simulation) adjustArtisanBalance(id world.NationID) {
	w, t := s.World, s.Tuning
	n := &w.Nations[id]

	multiplier := s.artisanMultiplier(n)
	maxScore := s.maxArtisanScore(n, multiplier)
	totalScore := s.totalArtisanExpScore(n, multiplier, maxScore)

	for c := 1; c < len(w.Commodities); c++ {
		def := &w.Commodities[c]
		var profit float64
		if validArtisanGood(def) {
			profit = s.baseArtisanProfit(n, c)
		} else {
			profit = -256.0 / multiplier / t.ArtisanDistributionDrift * 10.0
		}

		lastShare := artisanDistribution(n, c, maxScore, totalScore, multiplier)
		output := def.ArtisanOutputAmount
		if output <= 0 {
			output = 1.0
		}
		n.ArtisanScore[c] = n.ArtisanScore[c]*0.8 +
			t.ArtisanDistributionDrift*profit*(1.0-lastShare)/output
	}
}
