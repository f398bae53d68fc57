package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shelfside/boardgame-tracker/internal/appstate"
	"github.com/shelfside/boardgame-tracker/internal/auth"
	"github.com/shelfside/boardgame-tracker/internal/form"
	"github.com/shelfside/boardgame-tracker/internal/store"
	"github.com/shelfside/boardgame-tracker/internal/view"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Client      Caller
	Upstream    Pinger
	State       *appstate.State
	Coordinator *view.Coordinator
	Games       *store.Games
	Plays       *store.Plays
	LastPlayed  *store.LastPlayed
	Stats       *store.Stats
	AddGame     *form.AddGame
	RecordPlay  *form.RecordPlay
	Sessions    *auth.Sessions
	Password    string
}

// Register mounts all public routes on the given engine. The session
// gate applies to the API and view routes only; health and login stay
// open. An empty password disables the gate.
func Register(r *gin.Engine, d Deps) {
	r.Use(CORS())

	h := NewHealthHandler(d.Upstream)
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	NewAuthHandler(d.Sessions, d.Password).Register(r)

	api := r.Group(APIV1Prefix)
	api.Use(RequireSession(d.Sessions, d.Password != ""))
	{
		NewProxyHandler(d.Client).Register(api)
		NewViewHandler(d.Coordinator, d.State, d.Games, d.Plays, d.LastPlayed, d.Stats).Register(api)
		NewFormHandler(d.AddGame, d.RecordPlay, d.Plays).Register(api)
	}
}
