package store

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shelfside/boardgame-tracker/internal/appstate"
	"github.com/shelfside/boardgame-tracker/internal/model"
	"github.com/shelfside/boardgame-tracker/internal/normalize"
)

// Sortable last-played columns.
const (
	LastPlayedColName    = "name"
	LastPlayedColElapsed = "elapsedDays"
	LastPlayedColPlays   = "timesPlayed"
)

// LastPlayed holds the derived shelf-age view of the collection. It is
// recomputed wholesale on every load, never patched entry by entry.
type LastPlayed struct {
	mu     sync.Mutex
	items  []model.LastPlayedEntry
	client Caller
	state  *appstate.State
	now    func() time.Time
	log    zerolog.Logger
}

func NewLastPlayed(client Caller, state *appstate.State, logger zerolog.Logger) *LastPlayed {
	return &LastPlayed{
		items:  []model.LastPlayedEntry{},
		client: client,
		state:  state,
		now:    time.Now,
		log:    logger.With().Str("component", "store.lastplayed").Logger(),
	}
}

// SetClock overrides the elapsed-days reference time, for tests.
func (s *LastPlayed) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Load replaces the collection from the backend; elapsed days are
// computed against the store clock at load time. A game never played
// keeps a nil ElapsedDays rather than zero.
func (s *LastPlayed) Load(ctx context.Context) error {
	s.mu.Lock()
	now := s.now()
	s.mu.Unlock()

	s.state.BeginLoading()
	res := s.client.Call(ctx, http.MethodGet, "/stats/last-played", nil)
	s.state.EndLoading()

	entries := []model.LastPlayedEntry{}
	err := res.Err()
	if err == nil {
		entries, err = normalize.LastPlayed(res.Data, now)
	}

	s.mu.Lock()
	s.items = entries
	s.mu.Unlock()

	if err != nil {
		s.log.Warn().Err(err).Msg("last-played load failed")
		s.state.SetError(err.Error())
		return err
	}
	s.log.Debug().Int("count", len(entries)).Msg("last-played loaded")
	return nil
}

func (s *LastPlayed) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// Items returns a copy of the collection in insertion order.
func (s *LastPlayed) Items() []model.LastPlayedEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.LastPlayedEntry, len(s.items))
	copy(out, s.items)
	return out
}

// View returns the collection sorted by the given state. Never-played
// entries sort last on the elapsed column in both directions, same rule
// as any optional numeric.
func (s *LastPlayed) View(sortState SortState) []model.LastPlayedEntry {
	entries := s.Items()
	if sortState.Column == "" {
		return entries
	}
	c := newCollator()
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch sortState.Column {
		case LastPlayedColElapsed:
			return orderOptInt(a.ElapsedDays, b.ElapsedDays, sortState.Dir) < 0
		case LastPlayedColPlays:
			return orderInts(a.TimesPlayed, b.TimesPlayed, sortState.Dir) < 0
		default:
			return orderStrings(c, a.Game.Name, b.Game.Name, sortState.Dir) < 0
		}
	})
	return entries
}
