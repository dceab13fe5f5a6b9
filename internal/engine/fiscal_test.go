package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/statecraft/internal/world"
)

func TestSpendingScaleFullFunding(t *testing.T) {
	s, id := newBareSim(t)
	n := &s.World.Nations[id]

	n.AllowBorrowing = false
	n.Treasury = 100
	n.ConstructionSpending = 100
	n.ConstructionDemand[world.Lumber] = 50
	n.EffectivePrice[world.Lumber] = 1

	s.updateNationalSpending(id)

	assert.Equal(t, 1.0, n.SpendingScale)
	assert.InDelta(t, 50.0, n.Treasury, 1e-9)
	assert.InDelta(t, 50.0, n.RealDemand[world.Lumber], 1e-9)
}

func TestSpendingScaleShortBudget(t *testing.T) {
	s, id := newBareSim(t)
	n := &s.World.Nations[id]

	n.AllowBorrowing = false
	n.Treasury = 30
	n.ConstructionSpending = 100
	n.ConstructionDemand[world.Lumber] = 50
	n.EffectivePrice[world.Lumber] = 1

	s.updateNationalSpending(id)

	assert.InDelta(t, 0.6, n.SpendingScale, 1e-9)
	assert.InDelta(t, 0.0, n.Treasury, 1e-9)
	// Registered demand shrinks with the scale.
	assert.InDelta(t, 30.0, n.RealDemand[world.Lumber], 1e-9)
}

func TestSpendingScaleBorrowing(t *testing.T) {
	s, id := newBareSim(t)
	n := &s.World.Nations[id]

	n.AllowBorrowing = true
	n.Treasury = 10
	n.ConstructionSpending = 100
	n.ConstructionDemand[world.Lumber] = 50
	n.EffectivePrice[world.Lumber] = 1

	s.updateNationalSpending(id)

	// A borrowing nation funds everything and goes into debt.
	assert.Equal(t, 1.0, n.SpendingScale)
	assert.InDelta(t, -40.0, n.Treasury, 1e-9)
}

func TestInterestPayment(t *testing.T) {
	s, id := newBareSim(t)
	n := &s.World.Nations[id]

	n.Treasury = 3000
	assert.Zero(t, s.interestPayment(n))

	n.Treasury = -3000
	want := 3000.0 * max(0.01, s.Tuning.LoanBaseInterest) / 30.0
	assert.InDelta(t, want, s.interestPayment(n), 1e-9)
}

func TestCollectTaxes(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World
	n := &w.Nations[id]

	sid := w.AddState(world.State{Name: "State", Owner: id})
	pid := w.AddProvince(world.Province{
		Name: "P", Owner: id, Controller: id, State: sid, RGO: world.Grain,
	})
	poor := w.AddPop(world.Pop{Type: world.Farmers, Province: pid, Size: 100, Savings: 1000})
	rich := w.AddPop(world.Pop{Type: world.Capitalists, Province: pid, Size: 10, Savings: 500})

	n.PoorTax = 40
	n.RichTax = 20
	// Fixture tax efficiency is 0.5: realized rates 20% and 10%.
	s.collectTaxes(id)

	assert.InDelta(t, 800.0, w.Pops[poor].Savings, 1e-9)
	assert.InDelta(t, 450.0, w.Pops[rich].Savings, 1e-9)
	assert.InDelta(t, 250.0, n.TaxIncome, 1e-9)
	assert.InDelta(t, 250.0, n.Treasury, 1e-9)
	assert.InDelta(t, 1000.0, n.PoorIncome, 1e-9)
	assert.InDelta(t, 500.0, n.RichIncome, 1e-9)
	assert.InDelta(t, 1500.0, n.TaxBase(), 1e-9)
}

func TestCollectTaxesSkipsOccupied(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World
	n := &w.Nations[id]

	occupier := w.AddNation(world.Nation{Name: "Occupier", Rank: 2, SphereLeader: world.NoNation})
	s.minWages = append(s.minWages, nationWages{})

	sid := w.AddState(world.State{Name: "State", Owner: id})
	pid := w.AddProvince(world.Province{
		Name: "P", Owner: id, Controller: occupier, State: sid, RGO: world.Grain,
	})
	pop := w.AddPop(world.Pop{Type: world.Farmers, Province: pid, Size: 100, Savings: 1000})

	n.PoorTax = 40
	s.collectTaxes(id)

	assert.InDelta(t, 1000.0, w.Pops[pop].Savings, 1e-9, "occupied provinces pay no tax")
	assert.Zero(t, n.TaxIncome)
}

func TestCollectTariffs(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World
	n := &w.Nations[id]

	n.TariffRate = 10 // effective 0.05 at 0.5 tax efficiency
	n.Imports[world.Iron] = 20

	s.collectTariffs(id)

	want := w.CurrentPrice[world.Iron] * 0.05 * 20
	assert.InDelta(t, want, n.TariffIncome, 1e-9)
	assert.InDelta(t, want, n.Treasury, 1e-9)
}

func TestMaxLoanTracksTaxBase(t *testing.T) {
	s, id := newBareSim(t)
	n := &s.World.Nations[id]

	assert.Zero(t, s.maxLoan(n))

	n.PoorIncome = 10000
	want := 10000 * s.Tuning.MaxLoanTaxBaseFraction
	assert.InDelta(t, want, s.maxLoan(n), 1e-9)

	n.Mods.MaxLoan = 1 // doubles the ceiling
	assert.InDelta(t, 2*want, s.maxLoan(n), 1e-9)
}

func TestMinWageCraftsmenCrisis(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World
	n := &w.Nations[id]

	sid := w.AddState(world.State{Name: "State", Owner: id})
	pid := w.AddProvince(world.Province{
		Name: "P", Owner: id, Controller: id, State: sid, RGO: world.Grain,
	})
	w.AddPop(world.Pop{Type: world.Craftsmen, Province: pid, Size: 1000, Employment: 500})

	n.Mods.MinWageFactor = 0.5
	n.LifeNeedsCosts[world.Craftsmen] = 4
	n.EverydayNeedsCosts[world.Craftsmen] = 2

	wages := s.computeMinWages(id)

	// Half employment cubes down to an eighth of the full wage floor.
	full := 0.5 * 6.0 * 1.1
	assert.InDelta(t, full*0.125, wages.factory, 1e-9)
	require.Zero(t, wages.farmer, "farmer basket costs are unset")
}
