package world

import "github.com/talgya/statecraft/internal/economy"

// Terrain classifies a province for RGO placement and life rating.
type Terrain uint8

const (
	TerrainOcean Terrain = iota
	TerrainPlains
	TerrainForest
	TerrainHills
	TerrainMountain
	TerrainDesert
)

// TerrainName returns a human-readable terrain name.
func TerrainName(t Terrain) string {
	switch t {
	case TerrainOcean:
		return "ocean"
	case TerrainPlains:
		return "plains"
	case TerrainForest:
		return "forest"
	case TerrainHills:
		return "hills"
	case TerrainMountain:
		return "mountain"
	case TerrainDesert:
		return "desert"
	default:
		return "unknown"
	}
}

// Province is the smallest spatial unit: pops live here, one RGO is worked
// here, factories are located here.
type Province struct {
	Name       string
	Owner      NationID
	Controller NationID
	State      StateID

	Terrain    Terrain
	LifeRating float64
	Coastal    bool

	// RGO is the main producible commodity; RGOMaxShare holds per-commodity
	// size shares (the main good near 1, secondaries small, most zero).
	RGO         economy.CommodityID
	RGOSize     float64
	RGOMaxShare []float64
	// Additive size/output/throughput modifiers from events and technology.
	RGOSizeMod       float64
	RGOOutputMod     float64
	RGOThroughputMod float64

	// Land ownership shares, updated daily from resident class weights.
	AristocratOwnership float64
	CapitalistOwnership float64

	// Subsistence farming state.
	SubsistenceScore      float64
	SubsistenceEmployment float64

	// Per-commodity RGO employment state.
	RGOEmployment       []float64
	RGOTargetEmployment []float64
	RGOProduction       []float64
	RGOProfit           []float64
	RGOFullProfit       float64

	// Province building levels.
	Railroad  int
	Fort      int
	NavalBase int

	Pops      []PopID
	Factories []FactoryID
}

// State groups same-nation provinces for factory bookkeeping.
type State struct {
	Name      string
	Owner     NationID
	Capital   ProvinceID
	Provinces []ProvinceID
}
