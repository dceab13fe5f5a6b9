package engine

import (
	"log/slog"
	"time"
)

// Campaign calendar: the simulation opens on the first of January 1836
// and advances one day per tick.
var epoch = time.Date(1836, time.January, 1, 0, 0, 0, 0, time.UTC)

// Clock drives the simulation forward at a configurable pace.
type Clock struct {
	Sim      *Simulation
	Speed    float64       // Multiplier: 1.0 = one day per interval, 0 = paused
	Interval time.Duration // Base tick interval (default 1 second)
	Running  bool

	// Callbacks fired after the matching cadence completes.
	OnDay   func(day int)
	OnMonth func(day int)
	OnYear  func(day int)
}

// NewClock creates a clock with default pacing.
func NewClock(sim *Simulation) *Clock {
	return &Clock{
		Sim:      sim,
		Speed:    1.0,
		Interval: time.Second,
	}
}

// Run starts the simulation loop. Blocks until Stop() is called.
func (c *Clock) Run() {
	c.Running = true
	slog.Info("simulation clock started", "day", c.Sim.World.Day, "speed", c.Speed)

	for c.Running {
		if c.Speed <= 0 {
			// Paused. Sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		c.step()

		elapsed := time.Since(start)
		target := time.Duration(float64(c.Interval) / c.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("simulation clock stopped", "day", c.Sim.World.Day)
}

// Stop halts the simulation loop after the current day finishes.
func (c *Clock) Stop() {
	c.Running = false
}

// step advances the simulation by one day.
func (c *Clock) step() {
	c.Sim.DailyUpdate()
	c.Sim.ReportDay()

	day := c.Sim.World.Day
	date := SimDate(day)

	if c.OnDay != nil {
		c.OnDay(day)
	}
	if date.Day() == 1 && c.OnMonth != nil {
		c.OnMonth(day)
	}
	if date.Day() == 1 && date.Month() == time.January && c.OnYear != nil {
		c.OnYear(day)
	}
}

// SimDate converts a day counter to a calendar date.
func SimDate(day int) time.Time {
	return epoch.AddDate(0, 0, day)
}
