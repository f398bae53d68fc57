package store

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shelfside/boardgame-tracker/internal/appstate"
	"github.com/shelfside/boardgame-tracker/internal/model"
	"github.com/shelfside/boardgame-tracker/internal/normalize"
)

// Stats holds the two win aggregates. The store counts as loaded once
// both aggregates have been populated; loading an already-populated
// aggregate is a no-op, so revisiting the stats view is free.
type Stats struct {
	mu            sync.Mutex
	winners       []model.WinStatEntry
	totals        []model.TotalStatEntry
	winnersLoaded bool
	totalsLoaded  bool
	client        Caller
	state         *appstate.State
	log           zerolog.Logger
}

func NewStats(client Caller, state *appstate.State, logger zerolog.Logger) *Stats {
	return &Stats{
		winners: []model.WinStatEntry{},
		totals:  []model.TotalStatEntry{},
		client:  client,
		state:   state,
		log:     logger.With().Str("component", "store.stats").Logger(),
	}
}

// Loaded reports whether both aggregates are populated.
func (s *Stats) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.winnersLoaded && s.totalsLoaded
}

// Winners returns a copy of the per-game win aggregate.
func (s *Stats) Winners() []model.WinStatEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.WinStatEntry, len(s.winners))
	copy(out, s.winners)
	return out
}

// Totals returns a copy of the per-participant aggregate.
func (s *Stats) Totals() []model.TotalStatEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.TotalStatEntry, len(s.totals))
	copy(out, s.totals)
	return out
}

// Load fetches whichever aggregates are still missing. A failed fetch
// leaves that aggregate unloaded and empty, so the next navigation to
// the stats view retries it. One error does not block the other fetch.
func (s *Stats) Load(ctx context.Context) error {
	var firstErr error

	s.mu.Lock()
	needWinners, needTotals := !s.winnersLoaded, !s.totalsLoaded
	s.mu.Unlock()

	if needWinners {
		if err := s.loadWinners(ctx); err != nil {
			firstErr = err
		}
	}
	if needTotals {
		if err := s.loadTotals(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *Stats) loadWinners(ctx context.Context) error {
	s.state.BeginLoading()
	res := s.client.Call(ctx, http.MethodGet, "/stats/winners", nil)
	s.state.EndLoading()

	winners := []model.WinStatEntry{}
	err := res.Err()
	if err == nil {
		winners, err = normalize.Winners(res.Data)
	}

	s.mu.Lock()
	s.winners = winners
	s.winnersLoaded = err == nil
	s.mu.Unlock()

	if err != nil {
		s.log.Warn().Err(err).Msg("winners load failed")
		s.state.SetError(err.Error())
		return err
	}
	return nil
}

func (s *Stats) loadTotals(ctx context.Context) error {
	s.state.BeginLoading()
	res := s.client.Call(ctx, http.MethodGet, "/stats/totals", nil)
	s.state.EndLoading()

	totals := []model.TotalStatEntry{}
	err := res.Err()
	if err == nil {
		totals, err = normalize.Totals(res.Data)
	}

	s.mu.Lock()
	s.totals = totals
	s.totalsLoaded = err == nil
	s.mu.Unlock()

	if err != nil {
		s.log.Warn().Err(err).Msg("totals load failed")
		s.state.SetError(err.Error())
		return err
	}
	return nil
}
