package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shelfside/boardgame-tracker/internal/model"
	"github.com/shelfside/boardgame-tracker/internal/upstream"
)

// Winner rows arrive flat: a handful of reserved fields plus one integer
// field per participant, with "draws" as the no-winner bucket. The
// participant set is the union of those fields across all rows, so a row
// missing a participant still gets a 0 for them.
var reservedWinnerKeys = map[string]bool{
	"gameId":     true,
	"gameName":   true,
	"totalGames": true,
	"draws":      true,
}

// Winners lifts the flat per-game win records into the canonical
// wins-mapping shape and computes per-participant win rates.
func Winners(raw []byte) ([]model.WinStatEntry, error) {
	arr, ok := extractArray(raw, "data", "winners", "stats")
	if !ok {
		return []model.WinStatEntry{}, malformed("winners")
	}
	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(arr, &rows); err != nil {
		return []model.WinStatEntry{}, fmt.Errorf("%w: decode winners: %v", upstream.ErrMalformed, err)
	}

	participants := map[string]bool{model.DrawBucket: true}
	for _, row := range rows {
		for key, value := range row {
			if reservedWinnerKeys[key] {
				continue
			}
			if isInteger(value) {
				participants[key] = true
			}
		}
	}

	entries := make([]model.WinStatEntry, 0, len(rows))
	for _, row := range rows {
		entry := model.WinStatEntry{
			GameID:     decodeFlexString(row["gameId"]),
			GameName:   decodeString(row["gameName"]),
			TotalPlays: decodeInt(row["totalGames"]),
			Wins:       make(map[string]int, len(participants)),
			WinRate:    make(map[string]float64, len(participants)),
		}
		for name := range participants {
			entry.Wins[name] = 0
		}
		for key, value := range row {
			if reservedWinnerKeys[key] && key != "draws" {
				continue
			}
			bucket := key
			if key == "draws" {
				bucket = model.DrawBucket
			}
			if participants[bucket] {
				entry.Wins[bucket] = decodeInt(value)
			}
		}
		for name, wins := range entry.Wins {
			if entry.TotalPlays > 0 {
				entry.WinRate[name] = float64(wins) / float64(entry.TotalPlays)
			} else {
				entry.WinRate[name] = 0
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// wireTotals is the single-object totals payload.
type wireTotals struct {
	TotalGames int            `json:"totalGames"`
	Players    map[string]int `json:"players"`
}

// Totals expands the grand-total object into one entry per participant,
// in sorted name order so repeated loads render identically. A zero
// grand total yields a 0 win rate, never a division error.
func Totals(raw []byte) ([]model.TotalStatEntry, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return []model.TotalStatEntry{}, malformed("totals")
	}

	var wire wireTotals
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return []model.TotalStatEntry{}, fmt.Errorf("%w: decode totals: %v", upstream.ErrMalformed, err)
	}
	if wire.Players == nil {
		// maybe wrapped one level down
		var wrapper struct {
			Data *wireTotals `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil || wrapper.Data == nil || wrapper.Data.Players == nil {
			return []model.TotalStatEntry{}, malformed("totals")
		}
		wire = *wrapper.Data
	}

	names := make([]string, 0, len(wire.Players))
	for name := range wire.Players {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]model.TotalStatEntry, 0, len(names))
	for _, name := range names {
		wins := wire.Players[name]
		rate := 0.0
		if wire.TotalGames > 0 {
			rate = float64(wins) / float64(wire.TotalGames)
		}
		entries = append(entries, model.TotalStatEntry{
			Player:     name,
			Wins:       wins,
			TotalPlays: wire.TotalGames,
			WinRate:    rate,
		})
	}
	return entries, nil
}

func isInteger(raw json.RawMessage) bool {
	var n int
	return json.Unmarshal(raw, &n) == nil
}

func decodeInt(raw json.RawMessage) int {
	if raw == nil {
		return 0
	}
	var f flexInt
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}
	return int(f)
}

func decodeString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func decodeFlexString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var f flexString
	if err := json.Unmarshal(raw, &f); err != nil {
		return ""
	}
	return string(f)
}
