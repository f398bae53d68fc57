// Package view decides which stores must load when the user navigates.
// Loading is lazy and at most once per session per view: a store whose
// canonical collection already holds data is left alone, so flipping
// between views does not refetch anything. A failed load leaves the
// collection empty, which makes the next navigation retry naturally.
package view

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/shelfside/boardgame-tracker/internal/appstate"
	"github.com/shelfside/boardgame-tracker/internal/store"
)

// Coordinator is the navigation state machine over the closed view set.
type Coordinator struct {
	state      *appstate.State
	games      *store.Games
	plays      *store.Plays
	lastPlayed *store.LastPlayed
	stats      *store.Stats
	log        zerolog.Logger
}

func New(state *appstate.State, games *store.Games, plays *store.Plays, lastPlayed *store.LastPlayed, stats *store.Stats, logger zerolog.Logger) *Coordinator {
	return &Coordinator{
		state:      state,
		games:      games,
		plays:      plays,
		lastPlayed: lastPlayed,
		stats:      stats,
		log:        logger.With().Str("component", "coordinator").Logger(),
	}
}

// SetView records v as the active view, clears any visible error and
// triggers the associated store's load only when its collection is
// still empty. Unknown views are rejected without touching anything.
func (c *Coordinator) SetView(ctx context.Context, v appstate.View) error {
	if !v.Valid() {
		return fmt.Errorf("unknown view %q", v)
	}

	c.state.SetView(v)
	c.state.ClearError()

	switch v {
	case appstate.ViewGames:
		if c.games.Empty() {
			return c.games.Load(ctx)
		}
	case appstate.ViewPlays:
		if c.plays.Empty() {
			return c.plays.Load(ctx)
		}
	case appstate.ViewLastPlayed:
		if c.lastPlayed.Empty() {
			return c.lastPlayed.Load(ctx)
		}
	case appstate.ViewStats:
		if !c.stats.Loaded() {
			return c.stats.Load(ctx)
		}
	}
	return nil
}
