package store_test

import (
	"context"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfside/boardgame-tracker/internal/appstate"
	"github.com/shelfside/boardgame-tracker/internal/model"
	"github.com/shelfside/boardgame-tracker/internal/store"
	"github.com/shelfside/boardgame-tracker/internal/upstream"
)

const gamesPayload = `{"data":[
	{"id":1,"name":"zombicide","status":"Owned","ranking":3,"timesPlayed":2},
	{"id":2,"name":"Azul","status":"Playing","ranking":1,"lastPlayed":"2026-08-01"},
	{"id":3,"name":"root","status":"Wishlist"},
	{"id":4,"name":"Brass","status":"Owned","ranking":2,"lastPlayed":"2026-07-01"}
]}`

func newGamesStore(t *testing.T, fake *fakeCaller) (*store.Games, *appstate.State) {
	t.Helper()
	state := appstate.NewWithTTL(time.Minute)
	return store.NewGames(fake, state, zerolog.New(io.Discard)), state
}

func TestGames_LoadReplacesCollection(t *testing.T) {
	fake := newFakeCaller()
	fake.on(http.MethodGet, "/games", okJSON(gamesPayload))
	s, state := newGamesStore(t, fake)

	require.True(t, s.Empty())
	require.NoError(t, s.Load(context.Background()))
	assert.Len(t, s.Items(), 4)
	assert.Empty(t, state.Error())
	assert.False(t, state.Loading(), "loading flag resolves after success")
}

func TestGames_LoadFailureEmptiesCollection(t *testing.T) {
	fake := newFakeCaller()
	fake.on(http.MethodGet, "/games", okJSON(gamesPayload))
	s, state := newGamesStore(t, fake)
	require.NoError(t, s.Load(context.Background()))
	require.Len(t, s.Items(), 4)

	fake.on(http.MethodGet, "/games", networkFailure())
	err := s.Load(context.Background())
	require.Error(t, err)
	assert.Empty(t, s.Items(), "failure never leaves the prior stale value")
	assert.NotNil(t, s.Items(), "and never nil")
	assert.NotEmpty(t, state.Error(), "shared error channel holds a message")
	assert.False(t, state.Loading(), "loading flag resolves after failure too")

	// a later load is independent and can succeed normally
	fake.on(http.MethodGet, "/games", okJSON(gamesPayload))
	require.NoError(t, s.Load(context.Background()))
	assert.Len(t, s.Items(), 4)
}

func TestGames_ViewFilterComposition(t *testing.T) {
	fake := newFakeCaller()
	fake.on(http.MethodGet, "/games", okJSON(gamesPayload))
	s, _ := newGamesStore(t, fake)
	require.NoError(t, s.Load(context.Background()))

	cases := []struct {
		name   string
		params store.GameViewParams
		want   []string
	}{
		{"empty filter matches all", store.GameViewParams{}, []string{"zombicide", "Azul", "root", "Brass"}},
		{"text is case-insensitive", store.GameViewParams{Query: "AZ"}, []string{"Azul"}},
		{"text matches status too", store.GameViewParams{Query: "wish"}, []string{"root"}},
		{"status is exact-match", store.GameViewParams{Status: model.StatusOwned}, []string{"zombicide", "Brass"}},
		{"text AND status compose", store.GameViewParams{Query: "br", Status: model.StatusOwned}, []string{"Brass"}},
		{"no match", store.GameViewParams{Query: "chess"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := s.View(tc.params)
			names := make([]string, 0, len(got))
			for _, g := range got {
				names = append(names, g.Name)
			}
			assert.Equal(t, tc.want, names)
		})
	}
}

func TestGames_SortByNameIsLocaleAwareAndCaseInsensitive(t *testing.T) {
	fake := newFakeCaller()
	fake.on(http.MethodGet, "/games", okJSON(gamesPayload))
	s, _ := newGamesStore(t, fake)
	require.NoError(t, s.Load(context.Background()))

	got := s.View(store.GameViewParams{Sort: store.SortState{Column: store.GameColName}})
	names := make([]string, 0, len(got))
	for _, g := range got {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"Azul", "Brass", "root", "zombicide"}, names,
		"lowercase names interleave with uppercase ones")
}

func TestGames_AbsentRankingSortsLastBothDirections(t *testing.T) {
	fake := newFakeCaller()
	fake.on(http.MethodGet, "/games", okJSON(gamesPayload))
	s, _ := newGamesStore(t, fake)
	require.NoError(t, s.Load(context.Background()))

	asc := s.View(store.GameViewParams{Sort: store.SortState{Column: store.GameColRanking, Dir: store.Ascending}})
	require.Len(t, asc, 4)
	assert.Equal(t, "Azul", asc[0].Name)
	assert.Equal(t, "root", asc[3].Name, "unranked at the bottom ascending")

	desc := s.View(store.GameViewParams{Sort: store.SortState{Column: store.GameColRanking, Dir: store.Descending}})
	require.Len(t, desc, 4)
	assert.Equal(t, "zombicide", desc[0].Name)
	assert.Equal(t, "root", desc[3].Name, "unranked still at the bottom descending")
}

func TestGames_AbsentLastPlayedSortsFirstAscending(t *testing.T) {
	fake := newFakeCaller()
	fake.on(http.MethodGet, "/games", okJSON(gamesPayload))
	s, _ := newGamesStore(t, fake)
	require.NoError(t, s.Load(context.Background()))

	asc := s.View(store.GameViewParams{Sort: store.SortState{Column: store.GameColLastPlayed, Dir: store.Ascending}})
	require.Len(t, asc, 4)
	// missing dates normalize to the zero instant: chronologically first
	assert.Equal(t, "zombicide", asc[0].Name)
	assert.Equal(t, "root", asc[1].Name)
	assert.Equal(t, "Brass", asc[2].Name)
	assert.Equal(t, "Azul", asc[3].Name)

	desc := s.View(store.GameViewParams{Sort: store.SortState{Column: store.GameColLastPlayed, Dir: store.Descending}})
	assert.Equal(t, "Azul", desc[0].Name, "dates flip normally, unlike the numeric rule")
}

func TestGames_ViewIsIdempotentAndLeavesCanonicalOrder(t *testing.T) {
	fake := newFakeCaller()
	fake.on(http.MethodGet, "/games", okJSON(gamesPayload))
	s, _ := newGamesStore(t, fake)
	require.NoError(t, s.Load(context.Background()))

	params := store.GameViewParams{Query: "o", Sort: store.SortState{Column: store.GameColName, Dir: store.Descending}}
	first := s.View(params)
	second := s.View(params)
	assert.Equal(t, first, second, "same state, same params, same view")

	canonical := s.Items()
	require.Len(t, canonical, 4)
	assert.Equal(t, "zombicide", canonical[0].Name, "canonical insertion order untouched by sorting")
}

func TestGames_SortIsStable(t *testing.T) {
	fake := newFakeCaller()
	fake.on(http.MethodGet, "/games", okJSON(`{"data":[
		{"id":1,"name":"Azul","status":"Owned"},
		{"id":2,"name":"Root","status":"Owned"},
		{"id":3,"name":"Brass","status":"Owned"}
	]}`))
	s, _ := newGamesStore(t, fake)
	require.NoError(t, s.Load(context.Background()))

	got := s.View(store.GameViewParams{Sort: store.SortState{Column: store.GameColStatus}})
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	assert.Equal(t, []string{"1", "2", "3"}, ids, "equal keys preserve canonical order")
}

func TestGames_MutationsReloadOnSuccessOnly(t *testing.T) {
	fake := newFakeCaller()
	fake.on(http.MethodGet, "/games", okJSON(gamesPayload))
	fake.on(http.MethodPost, "/games", okJSON(`{"id":5}`))
	s, state := newGamesStore(t, fake)
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.Add(context.Background(), store.GameDraft{Name: "Cascadia"}))
	assert.Equal(t, 2, fake.callsTo(http.MethodGet+" /games"), "success triggers a full reload")

	fake.on(http.MethodPut, "/games/1/notes", networkFailure())
	err := s.UpdateNotes(context.Background(), "1", "meh")
	require.Error(t, err)
	assert.Len(t, s.Items(), 4, "failed mutation leaves the canonical collection untouched")
	assert.NotEmpty(t, state.Error())
	assert.Equal(t, 2, fake.callsTo(http.MethodGet+" /games"), "no reload after failure")
}

// alternatingCaller serves a different canned payload on every call, to
// exercise racing loads.
type alternatingCaller struct {
	mu      sync.Mutex
	n       int
	payload []upstream.Result
}

func (a *alternatingCaller) Call(_ context.Context, _, _ string, _ any) upstream.Result {
	a.mu.Lock()
	res := a.payload[a.n%len(a.payload)]
	a.n++
	a.mu.Unlock()
	return res
}

func TestGames_RacingLoadsLastWriterWins(t *testing.T) {
	caller := &alternatingCaller{payload: []upstream.Result{
		okJSON(`{"data":[{"id":1,"name":"Azul"}]}`),
		okJSON(`{"data":[{"id":2,"name":"Root"},{"id":3,"name":"Brass"}]}`),
	}}
	state := appstate.NewWithTTL(time.Minute)
	s := store.NewGames(caller, state, zerolog.New(io.Discard))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Load(context.Background())
		}()
	}
	wg.Wait()

	// whichever load resolved last wins wholesale; a torn mix of the two
	// payloads must be impossible
	items := s.Items()
	switch len(items) {
	case 1:
		assert.Equal(t, "Azul", items[0].Name)
	case 2:
		assert.Equal(t, "Root", items[0].Name)
		assert.Equal(t, "Brass", items[1].Name)
	default:
		t.Fatalf("collection torn across loads: %+v", items)
	}
}

func TestGames_SyncPostsAndReloads(t *testing.T) {
	fake := newFakeCaller()
	fake.on(http.MethodGet, "/games", okJSON(gamesPayload))
	fake.on(http.MethodPost, "/games/2/sync", okJSON(`{"status":"ok"}`))
	s, _ := newGamesStore(t, fake)
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.Sync(context.Background(), "2"))
	assert.Equal(t, 1, fake.callsTo(http.MethodPost+" /games/2/sync"))
	assert.Equal(t, 2, fake.callsTo(http.MethodGet+" /games"))
}
