package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/shelfside/boardgame-tracker/internal/appstate"
	"github.com/shelfside/boardgame-tracker/internal/auth"
	"github.com/shelfside/boardgame-tracker/internal/config"
	"github.com/shelfside/boardgame-tracker/internal/form"
	"github.com/shelfside/boardgame-tracker/internal/handler"
	"github.com/shelfside/boardgame-tracker/internal/logger"
	"github.com/shelfside/boardgame-tracker/internal/store"
	"github.com/shelfside/boardgame-tracker/internal/upstream"
	"github.com/shelfside/boardgame-tracker/internal/view"
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

	client := upstream.New(cfg.Upstream, appLogger)
	state := appstate.New()

	games := store.NewGames(client, state, appLogger)
	plays := store.NewPlays(client, state, appLogger)
	lastPlayed := store.NewLastPlayed(client, state, appLogger)
	stats := store.NewStats(client, state, appLogger)
	coordinator := view.New(state, games, plays, lastPlayed, stats, appLogger)

	if cfg.Logger.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	handler.Register(r, handler.Deps{
		Client:      client,
		Upstream:    client,
		State:       state,
		Coordinator: coordinator,
		Games:       games,
		Plays:       plays,
		LastPlayed:  lastPlayed,
		Stats:       stats,
		AddGame:     form.NewAddGame(games),
		RecordPlay:  form.NewRecordPlay(plays),
		Sessions:    auth.NewSessions(cfg.Auth.SessionSecret),
		Password:    cfg.Auth.Password,
	})

	appLogger.Info().Str("addr", cfg.Server.Addr).Str("upstream", cfg.Upstream.BaseURL).Msg("service started")
	if err := r.Run(cfg.Server.Addr); err != nil {
		appLogger.Fatal().Err(err).Msg("server stopped")
	}
}
