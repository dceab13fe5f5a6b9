// Package economy defines the commodity, recipe, and population-type tables
// the simulation operates on, plus the price arithmetic shared by every
// market phase.
// See design doc Section 2.
package economy

// CommodityID indexes the world commodity table. Index 0 is always the
// money commodity.
type CommodityID int32

// Money is the treasury-convertible commodity.
const Money CommodityID = 0

// MaxRecipeSlots bounds every inline commodity set. Recipes never need
// more; the cap keeps recipe iteration allocation-free.
const MaxRecipeSlots = 8

// CommoditySet is a fixed-capacity list of (commodity, amount) pairs with
// an explicit valid count. Slots past N are undefined.
type CommoditySet struct {
	Commodities [MaxRecipeSlots]CommodityID
	Amounts     [MaxRecipeSlots]float64
	N           int
}

// Add appends a slot. Panics on overflow; recipe tables are built once at
// scenario load and never at tick time.
func (s *CommoditySet) Add(c CommodityID, amount float64) {
	if s.N >= MaxRecipeSlots {
		panic("commodity set overflow")
	}
	s.Commodities[s.N] = c
	s.Amounts[s.N] = amount
	s.N++
}

// Set builds a CommoditySet from pairs.
func Set(pairs ...struct {
	C CommodityID
	A float64
}) CommoditySet {
	var s CommoditySet
	for _, p := range pairs {
		s.Add(p.C, p.A)
	}
	return s
}

// AmountOf returns the amount for one commodity, zero when absent.
func (s *CommoditySet) AmountOf(c CommodityID) float64 {
	for i := 0; i < s.N; i++ {
		if s.Commodities[i] == c {
			return s.Amounts[i]
		}
	}
	return 0
}

// Amounts keyed by recipe slot, used for construction purchase ledgers.
type SlotAmounts [MaxRecipeSlots]float64

// Commodity is one tradeable good definition. Per-day mutable state
// (price, pools, demand totals) lives on the world, not here.
type Commodity struct {
	Name string

	// BaseCost anchors the initial price.
	BaseCost float64
	// RGOAmount is the intrinsic per-size daily yield when produced by a
	// resource-gathering operation.
	RGOAmount float64
	// Money marks the gold-like commodity: mined units convert to treasury
	// funds and its price tracks the laborer basket instead of the market.
	Money bool
	// Mine RGOs employ laborers; farm RGOs employ farmers.
	Mine bool
	// AvailableFromStart gates artisan production and emulated demand.
	AvailableFromStart bool
	// Overseas marks goods consumed by overseas maintenance.
	Overseas bool

	// ArtisanInputs and ArtisanOutputAmount define the artisan recipe.
	// A zero output amount means artisans cannot produce this good.
	ArtisanInputs       CommoditySet
	ArtisanOutputAmount float64
}

// Clamp bounds x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
