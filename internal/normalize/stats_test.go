package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfside/boardgame-tracker/internal/model"
	"github.com/shelfside/boardgame-tracker/internal/normalize"
)

func TestWinners_LiftsFlatRecords(t *testing.T) {
	payload := `{"data":[
		{"gameId":1,"gameName":"Azul","totalGames":10,"Alice":6,"Bob":3,"draws":1},
		{"gameId":2,"gameName":"Root","totalGames":4,"Alice":4}
	]}`
	entries, err := normalize.Winners([]byte(payload))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	azul := entries[0]
	assert.Equal(t, "1", azul.GameID)
	assert.Equal(t, "Azul", azul.GameName)
	assert.Equal(t, 10, azul.TotalPlays)
	assert.Equal(t, 6, azul.Wins["Alice"])
	assert.Equal(t, 3, azul.Wins["Bob"])
	assert.Equal(t, 1, azul.Wins[model.DrawBucket], "draws field lands in the Draw bucket")
	assert.InDelta(t, 0.6, azul.WinRate["Alice"], 1e-9)

	root := entries[1]
	assert.Equal(t, 4, root.Wins["Alice"])
	assert.Equal(t, 0, root.Wins["Bob"], "participant missing from a row defaults to 0")
	assert.Equal(t, 0, root.Wins[model.DrawBucket])
	assert.InDelta(t, 1.0, root.WinRate["Alice"], 1e-9)
	assert.InDelta(t, 0.0, root.WinRate["Bob"], 1e-9)
}

func TestWinners_ZeroTotalPlays(t *testing.T) {
	entries, err := normalize.Winners([]byte(`{"data":[{"gameId":1,"gameName":"Azul","totalGames":0,"Alice":0}]}`))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 0.0, entries[0].WinRate["Alice"], "zero denominator yields 0, not NaN")
}

func TestWinners_MalformedDegradesToEmpty(t *testing.T) {
	entries, err := normalize.Winners([]byte(`{"nope":true}`))
	require.Error(t, err)
	require.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestTotals_RoundTrip(t *testing.T) {
	payload := `{"totalGames":10,"players":{"Alice":6,"Bob":3,"Draw":1}}`
	entries, err := normalize.Totals([]byte(payload))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// sorted name order keeps renders stable across loads
	assert.Equal(t, "Alice", entries[0].Player)
	assert.Equal(t, "Bob", entries[1].Player)
	assert.Equal(t, "Draw", entries[2].Player)

	assert.InDelta(t, 0.6, entries[0].WinRate, 1e-9)
	assert.InDelta(t, 0.3, entries[1].WinRate, 1e-9)
	assert.InDelta(t, 0.1, entries[2].WinRate, 1e-9)

	sum := 0.0
	for _, e := range entries {
		assert.Equal(t, 10, e.TotalPlays, "denominator is shared across the snapshot")
		sum += e.WinRate
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestTotals_ZeroGrandTotal(t *testing.T) {
	entries, err := normalize.Totals([]byte(`{"totalGames":0,"players":{"Alice":0,"Bob":0}}`))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, 0.0, e.WinRate, "no division-by-zero error for %s", e.Player)
	}
}

func TestTotals_WrappedUnderData(t *testing.T) {
	entries, err := normalize.Totals([]byte(`{"data":{"totalGames":2,"players":{"Alice":2}}}`))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.InDelta(t, 1.0, entries[0].WinRate, 1e-9)
}

func TestTotals_Malformed(t *testing.T) {
	for _, payload := range []string{`[1,2,3]`, `{"totalGames":5}`, `null`} {
		entries, err := normalize.Totals([]byte(payload))
		require.Error(t, err, "payload %s", payload)
		require.NotNil(t, entries)
		assert.Empty(t, entries)
	}
}
