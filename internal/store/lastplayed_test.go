package store_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfside/boardgame-tracker/internal/appstate"
	"github.com/shelfside/boardgame-tracker/internal/store"
)

const lastPlayedPayload = `{"games":[
	{"id":1,"name":"Azul","lastPlayed":"2026-08-22","timesPlayed":3},
	{"id":2,"name":"Root","lastPlayed":null,"timesPlayed":5},
	{"id":3,"name":"Brass","lastPlayed":"2026-06-01","timesPlayed":1}
]}`

func loadedLastPlayed(t *testing.T) *store.LastPlayed {
	t.Helper()
	fake := newFakeCaller()
	fake.on(http.MethodGet, "/stats/last-played", okJSON(lastPlayedPayload))
	state := appstate.NewWithTTL(time.Minute)
	s := store.NewLastPlayed(fake, state, zerolog.New(io.Discard))
	s.SetClock(func() time.Time { return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC) })
	require.NoError(t, s.Load(context.Background()))
	return s
}

func TestLastPlayed_LoadComputesElapsed(t *testing.T) {
	s := loadedLastPlayed(t)
	items := s.Items()
	require.Len(t, items, 3)

	require.NotNil(t, items[0].ElapsedDays)
	assert.Equal(t, 10, *items[0].ElapsedDays)
	assert.Nil(t, items[1].ElapsedDays)
	assert.Equal(t, 5, items[1].TimesPlayed)
	require.NotNil(t, items[2].ElapsedDays)
	assert.Equal(t, 92, *items[2].ElapsedDays)
}

func TestLastPlayed_NeverPlayedSortsLastBothDirections(t *testing.T) {
	s := loadedLastPlayed(t)

	asc := s.View(store.SortState{Column: store.LastPlayedColElapsed, Dir: store.Ascending})
	require.Len(t, asc, 3)
	assert.Equal(t, "Azul", asc[0].Game.Name)
	assert.Equal(t, "Brass", asc[1].Game.Name)
	assert.Equal(t, "Root", asc[2].Game.Name, "never-played sorts last ascending")

	desc := s.View(store.SortState{Column: store.LastPlayedColElapsed, Dir: store.Descending})
	assert.Equal(t, "Brass", desc[0].Game.Name)
	assert.Equal(t, "Root", desc[2].Game.Name, "never-played sorts last descending too")
}

func TestLastPlayed_SortByName(t *testing.T) {
	s := loadedLastPlayed(t)
	byName := s.View(store.SortState{Column: store.LastPlayedColName})
	assert.Equal(t, "Azul", byName[0].Game.Name)
	assert.Equal(t, "Brass", byName[1].Game.Name)
	assert.Equal(t, "Root", byName[2].Game.Name)
}

func TestLastPlayed_FailureEmptiesCollection(t *testing.T) {
	fake := newFakeCaller()
	fake.on(http.MethodGet, "/stats/last-played", networkFailure())
	state := appstate.NewWithTTL(time.Minute)
	s := store.NewLastPlayed(fake, state, zerolog.New(io.Discard))

	require.Error(t, s.Load(context.Background()))
	assert.Empty(t, s.Items())
	assert.NotEmpty(t, state.Error())
}
