// Command statecraft runs the autonomous world economy simulation.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/talgya/statecraft/internal/api"
	"github.com/talgya/statecraft/internal/engine"
	"github.com/talgya/statecraft/internal/persistence"
	"github.com/talgya/statecraft/internal/tuning"
	"github.com/talgya/statecraft/internal/world"
)

func main() {
	var (
		seed       = flag.Int64("seed", 42, "world generation seed")
		dbPath     = flag.String("db", "data/statecraft.db", "SQLite database path")
		apiPort    = flag.Int("port", 8080, "HTTP API port")
		tuningPath = flag.String("tuning", "", "optional tuning yaml overlay")
		speed      = flag.Float64("speed", 1, "days per second (0 = paused)")
		nations    = flag.Int("nations", 8, "nation count")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Statecraft — World Economy Simulation")

	tune, err := tuning.Load(*tuningPath)
	if err != nil {
		slog.Error("failed to load tuning", "error", err)
		os.Exit(1)
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll("data", 0755)
	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", *dbPath, "run", db.RunID)

	// ── World Generation (deterministic from seed) ────────────────────
	slog.Info("generating world...")
	cfg := world.DefaultGenConfig()
	cfg.Seed = *seed
	cfg.NationCount = *nations
	w := world.Generate(cfg)

	slog.Info("world ready",
		"nations", len(w.Nations),
		"states", len(w.States),
		"provinces", len(w.Provinces),
		"pops", len(w.Pops),
		"factories", len(w.Factories),
	)

	// ── Simulation ────────────────────────────────────────────────────
	sim := engine.NewSimulation(w, &tune)

	clock := engine.NewClock(sim)
	clock.Speed = *speed
	clock.OnDay = func(day int) {
		if err := db.SaveDay(sim); err != nil {
			slog.Error("daily save failed", "error", err)
		}
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	adminKey := os.Getenv("STATECRAFT_ADMIN_KEY")
	if adminKey == "" {
		slog.Warn("STATECRAFT_ADMIN_KEY not set — admin POST endpoints will be disabled")
	}

	apiServer := &api.Server{
		Sim:      sim,
		Clock:    clock,
		DB:       db,
		Port:     *apiPort,
		AdminKey: adminKey,
	}
	apiServer.Start()

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		clock.Stop()
	}()

	fmt.Printf("\n%d nations across %d provinces, %d pops at work.\n",
		len(w.Nations), len(w.Provinces), len(w.Pops))
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", *apiPort)
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	clock.Run()

	// Final save on shutdown.
	slog.Info("final save...")
	if err := db.SaveDay(sim); err != nil {
		slog.Error("final save failed", "error", err)
	}

	fmt.Println("Simulation stopped.")
}
