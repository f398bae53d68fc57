package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfside/boardgame-tracker/internal/appstate"
	"github.com/shelfside/boardgame-tracker/internal/form"
	"github.com/shelfside/boardgame-tracker/internal/model"
	"github.com/shelfside/boardgame-tracker/internal/store"
	"github.com/shelfside/boardgame-tracker/internal/view"
	"github.com/shelfside/boardgame-tracker/pkg/response"
)

// ViewHandler serves the derived views. Activating a view goes through
// the coordinator, so the first visit loads the backing store and later
// visits reuse the canonical collection.
type ViewHandler struct {
	coordinator *view.Coordinator
	state       *appstate.State
	games       *store.Games
	plays       *store.Plays
	lastPlayed  *store.LastPlayed
	stats       *store.Stats
}

func NewViewHandler(coordinator *view.Coordinator, state *appstate.State, games *store.Games, plays *store.Plays, lastPlayed *store.LastPlayed, stats *store.Stats) *ViewHandler {
	return &ViewHandler{
		coordinator: coordinator,
		state:       state,
		games:       games,
		plays:       plays,
		lastPlayed:  lastPlayed,
		stats:       stats,
	}
}

func (h *ViewHandler) Register(r *gin.RouterGroup) {
	r.GET("/views/:view", h.show)
}

// viewPayload is what a view render needs: the derived collection plus
// the shared error/loading snapshot.
type viewPayload struct {
	View    appstate.View `json:"view"`
	Items   any           `json:"items"`
	Error   string        `json:"error,omitempty"`
	Loading bool          `json:"loading"`
}

func (h *ViewHandler) show(c *gin.Context) {
	v := appstate.View(c.Param("view"))
	if !v.Valid() {
		response.WriteError(c, form.ErrInvalidInput)
		return
	}

	// The coordinator reports load failures through the shared state;
	// the view still renders, just with an empty collection.
	_ = h.coordinator.SetView(c.Request.Context(), v)

	sortState := store.SortState{
		Column: c.Query("sort"),
		Dir:    store.ParseDirection(c.Query("dir")),
	}

	var items any
	switch v {
	case appstate.ViewGames:
		items = h.games.View(store.GameViewParams{
			Query:  c.Query("q"),
			Status: model.Status(c.Query("status")),
			Sort:   sortState,
		})
	case appstate.ViewPlays:
		items = h.plays.View(store.PlayViewParams{
			Query: c.Query("q"),
			Sort:  sortState,
		})
	case appstate.ViewLastPlayed:
		items = h.lastPlayed.View(sortState)
	case appstate.ViewStats:
		items = gin.H{
			"winners": h.stats.Winners(),
			"totals":  h.stats.Totals(),
		}
	}

	response.WriteData(c, http.StatusOK, viewPayload{
		View:    v,
		Items:   items,
		Error:   h.state.Error(),
		Loading: h.state.Loading(),
	})
}
