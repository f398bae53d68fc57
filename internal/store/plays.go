package store

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shelfside/boardgame-tracker/internal/appstate"
	"github.com/shelfside/boardgame-tracker/internal/model"
	"github.com/shelfside/boardgame-tracker/internal/normalize"
)

// Sortable play columns.
const (
	PlayColDate   = "date"
	PlayColGame   = "game"
	PlayColWinner = "winner"
)

// ErrNoPendingDelete is returned when ConfirmDelete runs without a
// preceding RequestDelete.
var ErrNoPendingDelete = errors.New("no delete pending confirmation")

// PlayViewParams select a derived view of the play log. Query matches
// game name, winner, comment and every player name; a play without a
// recorded winner never matches a winner substring.
type PlayViewParams struct {
	Query string
	Sort  SortState
}

// PlayDraft is the payload of a record-play mutation.
type PlayDraft struct {
	GameID  string    `json:"gameId"`
	Date    time.Time `json:"date"`
	Players []string  `json:"players,omitempty"`
	Winner  *string   `json:"winner,omitempty"`
	Scores  string    `json:"scores,omitempty"`
	Comment string    `json:"comment,omitempty"`
}

// Plays is the canonical play log. Deletion is two-phase: RequestDelete
// records which play awaits confirmation, ConfirmDelete performs the
// destructive call. There is no blocking prompt anywhere.
type Plays struct {
	mu            sync.Mutex
	items         []model.PlayRecord
	pendingDelete string
	client        Caller
	state         *appstate.State
	log           zerolog.Logger
}

func NewPlays(client Caller, state *appstate.State, logger zerolog.Logger) *Plays {
	return &Plays{
		items:  []model.PlayRecord{},
		client: client,
		state:  state,
		log:    logger.With().Str("component", "store.plays").Logger(),
	}
}

// Load replaces the canonical play log; on failure it becomes empty and
// the shared state receives the error.
func (s *Plays) Load(ctx context.Context) error {
	s.state.BeginLoading()
	res := s.client.Call(ctx, http.MethodGet, "/plays", nil)
	s.state.EndLoading()

	plays := []model.PlayRecord{}
	err := res.Err()
	if err == nil {
		plays, err = normalize.Plays(res.Data)
	}

	s.mu.Lock()
	s.items = plays
	s.mu.Unlock()

	if err != nil {
		s.log.Warn().Err(err).Msg("plays load failed")
		s.state.SetError(err.Error())
		return err
	}
	s.log.Debug().Int("count", len(plays)).Msg("plays loaded")
	return nil
}

func (s *Plays) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// Items returns a copy of the canonical play log in insertion order.
func (s *Plays) Items() []model.PlayRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.PlayRecord, len(s.items))
	copy(out, s.items)
	return out
}

// View computes the derived, filtered and sorted play log. Pure over
// (canonical collection, params); canonical order is never disturbed.
func (s *Plays) View(p PlayViewParams) []model.PlayRecord {
	plays := s.Items()

	if p.Query != "" {
		filtered := plays[:0]
		for _, play := range plays {
			if playMatches(play, p.Query) {
				filtered = append(filtered, play)
			}
		}
		plays = filtered
	}

	if p.Sort.Column != "" {
		c := newCollator()
		sort.SliceStable(plays, func(i, j int) bool {
			a, b := plays[i], plays[j]
			switch p.Sort.Column {
			case PlayColGame:
				return orderStrings(c, a.GameName, b.GameName, p.Sort.Dir) < 0
			case PlayColWinner:
				return orderStrings(c, winnerLabel(a), winnerLabel(b), p.Sort.Dir) < 0
			default:
				return orderTimes(a.Date, b.Date, p.Sort.Dir) < 0
			}
		})
	}
	return plays
}

func playMatches(play model.PlayRecord, query string) bool {
	if containsFold(play.GameName, query) || containsFold(play.Comment, query) {
		return true
	}
	if play.Winner != nil && containsFold(*play.Winner, query) {
		return true
	}
	for _, player := range play.Players {
		if containsFold(player, query) {
			return true
		}
	}
	return false
}

func winnerLabel(play model.PlayRecord) string {
	if play.Winner == nil {
		return ""
	}
	return *play.Winner
}

// Record posts a new play and reloads the log on success.
func (s *Plays) Record(ctx context.Context, draft PlayDraft) error {
	s.state.BeginLoading()
	res := s.client.Call(ctx, http.MethodPost, "/plays", draft)
	s.state.EndLoading()

	if err := res.Err(); err != nil {
		s.log.Warn().Err(err).Msg("record play failed")
		s.state.SetError(err.Error())
		return err
	}
	return s.Load(ctx)
}

// RequestDelete marks a play as awaiting delete confirmation.
func (s *Plays) RequestDelete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = id
}

// PendingDelete reports which play, if any, awaits confirmation.
func (s *Plays) PendingDelete() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingDelete, s.pendingDelete != ""
}

// CancelDelete drops the pending confirmation without side effects.
func (s *Plays) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = ""
}

// ConfirmDelete performs the destructive call for the pending play and
// reloads the log on success. The pending marker clears either way.
func (s *Plays) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	id := s.pendingDelete
	s.pendingDelete = ""
	s.mu.Unlock()
	if id == "" {
		return ErrNoPendingDelete
	}

	s.state.BeginLoading()
	res := s.client.Call(ctx, http.MethodDelete, "/plays/"+id, nil)
	s.state.EndLoading()

	if err := res.Err(); err != nil {
		s.log.Warn().Err(err).Str("play_id", id).Msg("delete play failed")
		s.state.SetError(err.Error())
		return err
	}
	return s.Load(ctx)
}
