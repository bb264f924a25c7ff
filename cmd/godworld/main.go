// Command godworld runs a single world: the tick loop, the divine control
// plane, and the observation API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/god-world/internal/api"
	"github.com/talgya/god-world/internal/citizens"
	"github.com/talgya/god-world/internal/config"
	"github.com/talgya/god-world/internal/engine"
	"github.com/talgya/god-world/internal/entropy"
	"github.com/talgya/god-world/internal/llm"
	"github.com/talgya/god-world/internal/persistence"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.Server.DBPath), 0755)
	db, err := persistence.Open(cfg.Server.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.Server.DBPath)

	// ── Entropy ───────────────────────────────────────────────────────
	var rng entropy.Source
	if key := os.Getenv("RANDOM_ORG_KEY"); key != "" {
		rng = entropy.FromEnv(key)
		slog.Info("entropy source: random.org (crypto fallback)")
	} else {
		rng = entropy.NewSeeded(cfg.Server.Seed)
		slog.Info("entropy source: seeded", "seed", cfg.Server.Seed)
	}

	// ── Load or Spawn World ──────────────────────────────────────────
	world, err := db.FirstWorld()
	if errors.Is(err, persistence.ErrNotFound) {
		world = engine.WorldState{
			ID:          uuid.NewString(),
			OwnerUserID: "local",
			Config:      cfg.World,
			CurrentTick: 0,
			Status:      engine.StatusActive,
			CreatedAt:   time.Now().UTC(),
			UpdatedAt:   time.Now().UTC(),
		}
		if err := db.SaveWorld(world); err != nil {
			slog.Error("failed to save new world", "error", err)
			os.Exit(1)
		}

		spawner := citizens.NewSpawner(rng)
		roster := spawner.SpawnPopulation(world.ID, cfg.World)
		if err := db.SaveCitizens(roster); err != nil {
			slog.Error("failed to save roster", "error", err)
			os.Exit(1)
		}
		slog.Info("world spawned", "name", cfg.World.Name, "id", world.ID, "population", len(roster))
	} else if err != nil {
		slog.Error("failed to load world", "error", err)
		os.Exit(1)
	} else {
		slog.Info("world restored", "name", world.Config.Name, "id", world.ID, "tick", world.CurrentTick)
	}

	// ── LLM Client ───────────────────────────────────────────────────
	gen := llm.NewClient(os.Getenv("ANTHROPIC_API_KEY"))
	if gen.Enabled() {
		slog.Info("LLM client enabled")
	} else {
		slog.Warn("ANTHROPIC_API_KEY not set — citizens will act silently")
	}

	// ── Engine + API ─────────────────────────────────────────────────
	orc := engine.NewOrchestrator(gen, rng, engine.NewCrisisField(cfg.Server.Seed))

	hub := api.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	if cfg.Server.AdminKey == "" {
		slog.Warn("GODWORLD_ADMIN_KEY not set — divine control plane disabled")
	}
	server := &api.Server{
		DB:       db,
		Orc:      orc,
		Hub:      hub,
		WorldID:  world.ID,
		Port:     cfg.Server.Port,
		AdminKey: cfg.Server.AdminKey,
	}
	server.Start()

	// ── Tick Loop ────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	interval := time.Duration(cfg.Server.TickMS) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	fmt.Printf("%s is alive. API: http://localhost:%d/api/v1/status (Ctrl+C to stop)\n",
		world.Config.Name, cfg.Server.Port)

	for {
		select {
		case sig := <-sigCh:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
			fmt.Println("World paused. State saved.")
			return
		case <-ticker.C:
			result, err := server.RunTick(ctx)
			if errors.Is(err, api.ErrWorldEnded) {
				slog.Info("world has ended, stopping tick loop")
				cancel()
				return
			}
			if err != nil {
				slog.Error("tick failed", "error", err)
				continue
			}
			if result.World.CurrentTick%50 == 0 {
				slog.Info("tick", "n", result.World.CurrentTick, "feed", len(result.Feed))
			}
		}
	}
}
