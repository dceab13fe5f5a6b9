// Package engine runs the daily macroeconomic tick: labor allocation,
// production and consumption registration, fiscal scaling, market clearing,
// payment distribution, price adjustment, and construction resolution.
// See design doc Section 3.4.
package engine

import (
	"log/slog"
	"runtime"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/talgya/statecraft/internal/economy"
	"github.com/talgya/statecraft/internal/tuning"
	"github.com/talgya/statecraft/internal/world"
)

// Event is a fire-and-forget notification request emitted by the engine.
// Dispatch (text, targeting) belongs to the surrounding game.
type Event struct {
	Day     int
	Key     string
	Nation  world.NationID
	Subject int32
}

// Simulation owns the world, the tuning constants, and the per-day scratch
// buffers. All phase methods mutate the world in place.
type Simulation struct {
	World  *world.World
	Tuning *tuning.Tuning

	// Workers bounds phase fan-out; defaults to GOMAXPROCS.
	Workers int

	mu     sync.Mutex
	events []Event

	// inflation is the world money-supply correction applied to every
	// payment; 1 is neutral.
	inflation float64

	// Per-nation scratch, reused every day.
	minWages []nationWages

	// Which commodities appear in each needs tier, derived once from the
	// pop-type tables. Slave baskets do not count.
	isLifeNeed     []bool
	isEverydayNeed []bool
	isLuxuryNeed   []bool

	// Per-pop-type demand accumulators for the serialized consumption pass.
	lifeDemand     []float64
	everydayDemand []float64
	luxuryDemand   []float64

	// Pop-type handles resolved once from the type table's role flags.
	farmerType     economy.PopTypeID
	laborerType    economy.PopTypeID
	artisanType    economy.PopTypeID
	craftsmanType  economy.PopTypeID
	clerkType      economy.PopTypeID
	capitalistType economy.PopTypeID
	aristocratType economy.PopTypeID
}

type nationWages struct {
	farmer  float64
	laborer float64
	factory float64
}

// NewSimulation wraps a generated world.
func NewSimulation(w *world.World, t *tuning.Tuning) *Simulation {
	s := &Simulation{
		World:     w,
		Tuning:    t,
		Workers:   runtime.GOMAXPROCS(0),
		inflation: 1,
		minWages:  make([]nationWages, len(w.Nations)),

		isLifeNeed:     make([]bool, len(w.Commodities)),
		isEverydayNeed: make([]bool, len(w.Commodities)),
		isLuxuryNeed:   make([]bool, len(w.Commodities)),

		lifeDemand:     make([]float64, len(w.PopTypes)),
		everydayDemand: make([]float64, len(w.PopTypes)),
		luxuryDemand:   make([]float64, len(w.PopTypes)),
	}
	for ti := range w.PopTypes {
		pt := &w.PopTypes[ti]
		id := economy.PopTypeID(ti)
		switch {
		case pt.Artisan:
			s.artisanType = id
		case pt.Craftsman:
			s.craftsmanType = id
		case pt.Clerk:
			s.clerkType = id
		case pt.Capitalist:
			s.capitalistType = id
		case pt.Aristocrat:
			s.aristocratType = id
		case pt.RGOWorker && !pt.Slave:
			if pt.Miner {
				s.laborerType = id
			} else {
				s.farmerType = id
			}
		}
		if pt.Slave {
			continue
		}
		for i := 0; i < pt.LifeNeeds.N; i++ {
			s.isLifeNeed[pt.LifeNeeds.Commodities[i]] = true
		}
		for i := 0; i < pt.EverydayNeeds.N; i++ {
			s.isEverydayNeed[pt.EverydayNeeds.Commodities[i]] = true
		}
		for i := 0; i < pt.LuxuryNeeds.N; i++ {
			s.isLuxuryNeed[pt.LuxuryNeeds.Commodities[i]] = true
		}
	}
	return s
}

// Notify queues an event. Safe for concurrent phase use.
func (s *Simulation) Notify(key string, nation world.NationID, subject int32) {
	s.mu.Lock()
	s.events = append(s.events, Event{Day: s.World.Day, Key: key, Nation: nation, Subject: subject})
	s.mu.Unlock()
}

// DrainEvents returns and clears the queued events.
func (s *Simulation) DrainEvents() []Event {
	s.mu.Lock()
	ev := s.events
	s.events = nil
	s.mu.Unlock()
	return ev
}

// WorldGDP sums national GDP.
func (s *Simulation) WorldGDP() float64 {
	return lo.SumBy(s.World.Nations, func(n world.Nation) float64 { return n.GDP })
}

// MeanPriceLevel is the average price relative to base cost.
func (s *Simulation) MeanPriceLevel() float64 {
	w := s.World
	total := 0.0
	for c := range w.Commodities {
		total += w.CurrentPrice[c] / max(w.Commodities[c].BaseCost, 1e-6)
	}
	return total / float64(len(w.Commodities))
}

// ReportDay logs the end-of-day summary.
func (s *Simulation) ReportDay() {
	w := s.World
	bankrupt := 0
	for i := range w.Nations {
		if w.Nations[i].InBankruptcy(w.Day) {
			bankrupt++
		}
	}
	slog.Info("day complete",
		"day", w.Day,
		"world_gdp", humanize.CommafWithDigits(s.WorldGDP(), 0),
		"price_level", humanize.CommafWithDigits(s.MeanPriceLevel(), 3),
		"factories", liveFactories(w),
		"projects", len(w.LandProjects)+len(w.NavalProjects)+len(w.BuildingProjects)+len(w.FactoryProjects),
		"bankrupt_nations", bankrupt,
	)
}

func liveFactories(w *world.World) int {
	n := 0
	for i := range w.Factories {
		if w.Factories[i].Live {
			n++
		}
	}
	return n
}
