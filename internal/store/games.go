package store

import (
	"context"
	"net/http"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shelfside/boardgame-tracker/internal/appstate"
	"github.com/shelfside/boardgame-tracker/internal/model"
	"github.com/shelfside/boardgame-tracker/internal/normalize"
)

// Sortable game columns.
const (
	GameColName        = "name"
	GameColStatus      = "status"
	GameColRanking     = "ranking"
	GameColComplexity  = "complexity"
	GameColTimesPlayed = "timesPlayed"
	GameColLastPlayed  = "lastPlayed"
)

// GameViewParams select a derived view of the collection. Query is a
// case-insensitive substring matched against name and status; Status is
// an exact-match predicate ANDed with it. Both zero values are neutral.
type GameViewParams struct {
	Query  string
	Status model.Status
	Sort   SortState
}

// GameDraft is the payload of an add-game mutation.
type GameDraft struct {
	Name       string       `json:"name"`
	Status     model.Status `json:"status,omitempty"`
	ExternalID *int64       `json:"externalId,omitempty"`
	Notes      string       `json:"notes,omitempty"`
}

// Games is the canonical game collection.
type Games struct {
	mu     sync.Mutex
	items  []model.Game
	client Caller
	state  *appstate.State
	log    zerolog.Logger
}

func NewGames(client Caller, state *appstate.State, logger zerolog.Logger) *Games {
	return &Games{
		items:  []model.Game{},
		client: client,
		state:  state,
		log:    logger.With().Str("component", "store.games").Logger(),
	}
}

// Load replaces the canonical collection from the backend. On any
// failure the collection becomes empty, never stale and never nil, and
// the shared state receives the error. A later Load is independent.
func (s *Games) Load(ctx context.Context) error {
	s.state.BeginLoading()
	res := s.client.Call(ctx, http.MethodGet, "/games", nil)
	s.state.EndLoading()

	games := []model.Game{}
	err := res.Err()
	if err == nil {
		games, err = normalize.Games(res.Data)
	}

	s.mu.Lock()
	s.items = games
	s.mu.Unlock()

	if err != nil {
		s.log.Warn().Err(err).Msg("games load failed")
		s.state.SetError(err.Error())
		return err
	}
	s.log.Debug().Int("count", len(games)).Msg("games loaded")
	return nil
}

// Empty reports whether the canonical collection holds nothing yet.
func (s *Games) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// Items returns a copy of the canonical collection in insertion order.
func (s *Games) Items() []model.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Game, len(s.items))
	copy(out, s.items)
	return out
}

// View computes the derived collection for the given parameters. It is
// a pure function of (canonical collection, params): calling it twice
// without an intervening load yields structurally equal results, and the
// canonical order is never disturbed.
func (s *Games) View(p GameViewParams) []model.Game {
	games := s.Items()

	if p.Query != "" || p.Status != "" {
		filtered := games[:0]
		for _, g := range games {
			if p.Status != "" && g.Status != p.Status {
				continue
			}
			if p.Query != "" && !containsFold(g.Name, p.Query) && !containsFold(string(g.Status), p.Query) {
				continue
			}
			filtered = append(filtered, g)
		}
		games = filtered
	}

	if p.Sort.Column != "" {
		c := newCollator()
		sort.SliceStable(games, func(i, j int) bool {
			a, b := games[i], games[j]
			switch p.Sort.Column {
			case GameColStatus:
				return orderStrings(c, string(a.Status), string(b.Status), p.Sort.Dir) < 0
			case GameColRanking:
				return orderOptInt(a.Ranking, b.Ranking, p.Sort.Dir) < 0
			case GameColComplexity:
				return orderOptFloat(a.Complexity, b.Complexity, p.Sort.Dir) < 0
			case GameColTimesPlayed:
				return orderInts(a.TimesPlayed, b.TimesPlayed, p.Sort.Dir) < 0
			case GameColLastPlayed:
				return orderOptTime(a.LastPlayed, b.LastPlayed, p.Sort.Dir) < 0
			default:
				return orderStrings(c, a.Name, b.Name, p.Sort.Dir) < 0
			}
		})
	}
	return games
}

// Add posts a new game and, on success, reloads the whole collection so
// it reflects the backend rather than an optimistic local patch. On
// failure the canonical collection is untouched.
func (s *Games) Add(ctx context.Context, draft GameDraft) error {
	return s.mutate(ctx, http.MethodPost, "/games", draft)
}

// UpdateNotes replaces a game's notes.
func (s *Games) UpdateNotes(ctx context.Context, id, notes string) error {
	body := map[string]string{"notes": notes}
	return s.mutate(ctx, http.MethodPut, "/games/"+id+"/notes", body)
}

// Sync asks the backend to refresh a game from the external catalog.
func (s *Games) Sync(ctx context.Context, id string) error {
	return s.mutate(ctx, http.MethodPost, "/games/"+id+"/sync", nil)
}

// Delete removes a game from the collection.
func (s *Games) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, http.MethodDelete, "/games/"+id, nil)
}

func (s *Games) mutate(ctx context.Context, method, endpoint string, body any) error {
	s.state.BeginLoading()
	res := s.client.Call(ctx, method, endpoint, body)
	s.state.EndLoading()

	if err := res.Err(); err != nil {
		s.log.Warn().Err(err).Str("endpoint", endpoint).Msg("games mutation failed")
		s.state.SetError(err.Error())
		return err
	}
	return s.Load(ctx)
}
