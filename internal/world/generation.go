// Scenario generation using layered simplex noise.
// Generates elevation, rainfall, and temperature per province, then derives
// terrain, resources, nations, pops, and starting industry.
// See design doc Section 3.2.
package world

import (
	"fmt"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/statecraft/internal/economy"
	"github.com/talgya/statecraft/internal/entropy"
)

// GenConfig holds scenario generation parameters.
type GenConfig struct {
	Width             int   // Province grid width
	Height            int   // Province grid height
	Seed              int64 // World seed
	SeaLevel          float64
	NationCount       int
	ProvincesPerState int
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:             48,
		Height:            24,
		Seed:              42,
		SeaLevel:          0.30,
		NationCount:       8,
		ProvincesPerState: 4,
	}
}

// SmallTestConfig returns a tiny world for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Width:             12,
		Height:            6,
		Seed:              42,
		SeaLevel:          0.25,
		NationCount:       2,
		ProvincesPerState: 3,
	}
}

// Generate creates a complete starting world: terrain, nations, states,
// provinces, pops, starting factories, and armies.
func Generate(cfg GenConfig) *World {
	w := New(StandardCommodities(), StandardPopTypes(), StandardFactoryTypes(), StandardUnitTypes())
	w.Buildings = StandardBuildings()

	src := entropy.NewSource(cfg.Seed)
	popRNG := src.Stream("pops")
	resRNG := src.Stream("resources")

	elevNoise := opensimplex.NewNormalized(cfg.Seed)
	rainNoise := opensimplex.NewNormalized(cfg.Seed + 1)
	tempNoise := opensimplex.NewNormalized(cfg.Seed + 2)

	// Nations first: one vertical band of the grid each, ranked west to
	// east. The strongest few are great powers; the weakest band is
	// uncivilized and sphere-bound to the top-ranked nation.
	for i := 0; i < cfg.NationCount; i++ {
		civ := i < (cfg.NationCount*3+3)/4
		n := Nation{
			Name:       fmt.Sprintf("Nation %c", 'A'+i),
			Tag:        fmt.Sprintf("N%02d", i),
			Rank:       i + 1,
			Civilized:  civ,
			GreatPower: i < cfg.NationCount/4+1,

			LandSpending:           60,
			NavalSpending:          40,
			ConstructionSpending:   80,
			EducationSpending:      60,
			AdministrativeSpending: 60,
			SocialSpending:         30,
			MilitarySpending:       60,
			TariffRate:             10,
			PoorTax:                40,
			MiddleTax:              35,
			RichTax:                25,

			Treasury:       500000,
			AllowBorrowing: true,

			Mods: Modifiers{
				AdministrativeEfficiency: 0.6,
				TaxEfficiency:            0.7,
				MinWageFactor:            0.2,
				MobilizationImpact:       1,
				FactoryOwnerCost:         1,
			},
		}
		if !civ {
			n.SphereLeader = 0 // filled after the leader exists; rank 1 is index 0
			n.LeaderInvestment = 0.2
			n.Mods.AdministrativeEfficiency = 0.3
			n.Mods.TaxEfficiency = 0.4
		} else {
			n.SphereLeader = NoNation
		}
		w.AddNation(n)
	}

	bandWidth := max(cfg.Width/cfg.NationCount, 1)

	// Provinces on a rectangular grid; ocean cells are skipped.
	var currentState StateID = NoState
	stateFill := 0
	var lastNation NationID = NoNation
	for x := 0; x < cfg.Width; x++ {
		for y := 0; y < cfg.Height; y++ {
			fx, fy := float64(x), float64(y)

			elev := octaveNoise(elevNoise, fx, fy, 4, 0.09, 0.5)
			rain := octaveNoise(rainNoise, fx, fy, 3, 0.07, 0.5)
			temp := octaveNoise(tempNoise, fx, fy, 3, 0.05, 0.5)

			// Continental shaping: ocean toward the north and south edges.
			edge := math.Abs(fy/float64(cfg.Height)-0.5) * 2.0
			elev *= 1.0 - math.Pow(edge, 3.0)

			if elev < cfg.SeaLevel {
				continue
			}

			nation := NationID(min(x/bandWidth, cfg.NationCount-1))
			terrain := deriveTerrain(elev, rain, temp, cfg)
			coastal := elev < cfg.SeaLevel+0.06

			if nation != lastNation || stateFill >= cfg.ProvincesPerState || currentState == NoState {
				currentState = w.AddState(State{
					Name:  fmt.Sprintf("State %d", len(w.States)+1),
					Owner: nation,
				})
				stateFill = 0
				lastNation = nation
			}
			stateFill++

			rgo := pickRGO(terrain, coastal, resRNG.Float64())
			p := Province{
				Name:       fmt.Sprintf("Province %d-%d", x, y),
				Owner:      nation,
				Controller: nation,
				State:      currentState,
				Terrain:    terrain,
				LifeRating: economy.Clamp(10+rain*20+temp*15-elev*10, 5, 40),
				Coastal:    coastal,
				RGO:        rgo,
				RGOSize:    entropy.Jittered(resRNG, 2.5, 0.4),
			}
			pid := w.AddProvince(p)
			prov := &w.Provinces[pid]
			prov.RGOMaxShare[rgo] = 1.0
			// A small secondary share keeps employment reallocation live.
			if sec := secondaryRGO(terrain); sec != rgo {
				prov.RGOMaxShare[sec] = 0.25
			}
			if w.States[currentState].Capital == 0 && len(w.States[currentState].Provinces) == 1 {
				w.States[currentState].Capital = pid
			}
			if w.Nations[nation].Capital == 0 && nationProvinceCount(w, nation) == 1 {
				w.Nations[nation].Capital = pid
			}

			spawnPops(w, pid, popRNG.Float64)
		}
	}

	// Starting industry and armies for civilized nations.
	seedIndustry(w)
	seedMilitary(w)

	return w
}

func nationProvinceCount(w *World, n NationID) int {
	count := 0
	for i := range w.Provinces {
		if w.Provinces[i].Owner == n {
			count++
		}
	}
	return count
}

// octaveNoise samples layered simplex noise normalized to [0,1].
func octaveNoise(n opensimplex.Noise, x, y float64, octaves int, freq, persistence float64) float64 {
	total, amplitude, maxValue := 0.0, 1.0, 0.0
	for i := 0; i < octaves; i++ {
		total += n.Eval2(x*freq, y*freq) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		freq *= 2
	}
	return total / maxValue
}

func deriveTerrain(elev, rain, temp float64, cfg GenConfig) Terrain {
	switch {
	case elev > 0.78:
		return TerrainMountain
	case elev > 0.62:
		return TerrainHills
	case rain < 0.30 && temp > 0.55:
		return TerrainDesert
	case rain > 0.55:
		return TerrainForest
	default:
		return TerrainPlains
	}
}

// pickRGO assigns the main resource good from terrain, with a roll for the
// scarcer minerals.
func pickRGO(t Terrain, coastal bool, roll float64) economy.CommodityID {
	if coastal && roll < 0.35 {
		return Fish
	}
	switch t {
	case TerrainMountain:
		switch {
		case roll < 0.08:
			return Gold
		case roll < 0.55:
			return Iron
		default:
			return Coal
		}
	case TerrainHills:
		switch {
		case roll < 0.38:
			return Coal
		case roll < 0.70:
			return Iron
		default:
			return Sulphur
		}
	case TerrainForest:
		return Timber
	case TerrainDesert:
		if roll < 0.5 {
			return Cotton
		}
		return Wool
	default:
		switch {
		case roll < 0.55:
			return Grain
		case roll < 0.75:
			return Cattle
		default:
			return Cotton
		}
	}
}

func secondaryRGO(t Terrain) economy.CommodityID {
	switch t {
	case TerrainMountain, TerrainHills:
		return Coal
	case TerrainForest:
		return Grain
	default:
		return Wool
	}
}

// spawnPops populates a province with the standard class pyramid.
func spawnPops(w *World, pid ProvinceID, roll func() float64) {
	base := 8000 + roll()*24000

	add := func(t economy.PopTypeID, share, savings float64) {
		size := math.Floor(base * share)
		if size < 10 {
			return
		}
		w.AddPop(Pop{
			Type:     t,
			Province: pid,
			Size:     size,
			Savings:  savings * size / 100.0,
			Literacy: 0.2 + roll()*0.4,
			// Start with modest satisfaction so demand ramps instead of
			// spiking on day one.
			LifeNeeds: 0.5, EverydayNeeds: 0.2, LuxuryNeeds: 0.05,
			LifeNeedsReported: 0.5, EverydayNeedsReported: 0.2, LuxuryNeedsReported: 0.05,
		})
	}

	civ := w.Nations[w.Provinces[pid].Owner].Civilized

	add(Farmers, 0.42, 8)
	add(Laborers, 0.20, 8)
	add(Artisans, 0.10, 20)
	add(Soldiers, 0.04, 10)
	add(Clergymen, 0.02, 25)
	add(Bureaucrats, 0.02, 25)
	add(Aristocrats, 0.015, 200)
	if civ {
		add(Craftsmen, 0.12, 10)
		add(Clerks, 0.03, 20)
		add(Capitalists, 0.005, 400)
	} else {
		add(Slaves, 0.12, 0)
	}
}

// seedIndustry places a handful of starting factories in civilized states.
func seedIndustry(w *World) {
	starters := []economy.FactoryTypeID{LumberMill, FabricMill, ClothesFactory, Distillery, SteelMill, PaperMill}
	i := 0
	for sid := range w.States {
		s := &w.States[sid]
		if !w.Nations[s.Owner].Civilized || len(s.Provinces) == 0 {
			continue
		}
		if sid%2 != 0 {
			continue
		}
		w.AddFactory(Factory{
			Type:            starters[i%len(starters)],
			Province:        s.Capital,
			Level:           1,
			ProductionScale: 1.0,
			Subsidized:      false,
		})
		i++
	}
}

// seedMilitary gives every nation a small standing force so supply demand
// is never zero.
func seedMilitary(w *World) {
	for n := range w.Nations {
		regiments := 4
		if w.Nations[n].GreatPower {
			regiments = 10
		}
		for i := 0; i < regiments; i++ {
			t := Infantry
			if i%3 == 2 {
				t = Artillery
			}
			w.Regiments = append(w.Regiments, Regiment{Nation: NationID(n), Type: t})
		}
		if w.Nations[n].Civilized {
			w.Ships = append(w.Ships, Ship{Nation: NationID(n), Type: Clipper})
			if w.Nations[n].GreatPower {
				w.Ships = append(w.Ships, Ship{Nation: NationID(n), Type: Steamer})
			}
		}
	}
}
