package main

import (
	"context"
	"log"

	"github.com/itbasis/go-clock"

	"github.com/adamjolicoeur/soccer-tracker/internal/config"
	"github.com/adamjolicoeur/soccer-tracker/internal/game"
	"github.com/adamjolicoeur/soccer-tracker/internal/history"
	"github.com/adamjolicoeur/soccer-tracker/internal/logger"
	"github.com/adamjolicoeur/soccer-tracker/internal/roster"
	"github.com/adamjolicoeur/soccer-tracker/internal/storage"
	"github.com/adamjolicoeur/soccer-tracker/internal/storage/memory"
	"github.com/adamjolicoeur/soccer-tracker/internal/storage/sqlite"
)

func main() {
	// Load application config
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	// Open the snapshot store; with no path configured the session stays
	// in memory.
	var store storage.KV
	if cfg.Storage.Path != "" {
		sqlStore, err := sqlite.Open(cfg.Storage.Path)
		if err != nil {
			log.Fatalf("storage open failed: %v", err)
		}
		defer sqlStore.Close()
		store = sqlStore
	} else {
		store = memory.New()
	}

	ctx := context.Background()
	games := history.New(ctx, store, appLogger)
	manager := game.NewManager(clock.New(), games, appLogger)
	team := roster.New(ctx, store, appLogger)
	team.SetGameSync(manager)

	appLogger.Info().
		Int("roster_size", len(team.Players())).
		Int("completed_games", len(games.Games())).
		Int("default_half_minutes", cfg.Game.DefaultHalfMinutes).
		Msg("tracker ready")
}
