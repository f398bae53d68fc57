// Package normalize reshapes the backend's assorted payload shapes into
// the canonical collections the stores consume. Each entity kind has an
// ordered list of parse strategies tried in priority order; when none
// matches, the result degrades to the empty collection plus an error the
// caller reports. Nothing here ever panics on upstream data.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shelfside/boardgame-tracker/internal/model"
	"github.com/shelfside/boardgame-tracker/internal/upstream"
)

// extractArray tries each wrapper key in order, then a bare top-level
// array, and reports whether any strategy produced an array.
func extractArray(raw []byte, keys ...string) (json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, false
	}

	if trimmed[0] == '{' {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, false
		}
		for _, key := range keys {
			inner, ok := wrapper[key]
			if !ok {
				continue
			}
			inner = bytes.TrimSpace(inner)
			if len(inner) > 0 && inner[0] == '[' {
				return inner, true
			}
		}
		return nil, false
	}

	if trimmed[0] == '[' {
		return trimmed, true
	}
	return nil, false
}

func malformed(entity string) error {
	return fmt.Errorf("%w: no %s collection in payload", upstream.ErrMalformed, entity)
}

// wireGame is the loose upstream shape of a game.
type wireGame struct {
	ID          flexString `json:"id"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	Ranking     *int       `json:"ranking"`
	Complexity  *float64   `json:"complexity"`
	TimesPlayed flexInt    `json:"timesPlayed"`
	LastPlayed  flexTime   `json:"lastPlayed"`
	ExternalID  *int64     `json:"externalId"`
	Notes       string     `json:"notes"`
	CreatedAt   flexTime   `json:"createdAt"`
	UpdatedAt   flexTime   `json:"updatedAt"`
}

func (w wireGame) canonical() model.Game {
	g := model.Game{
		ID:          string(w.ID),
		Name:        w.Name,
		Status:      model.Status(w.Status),
		Ranking:     w.Ranking,
		Complexity:  w.Complexity,
		TimesPlayed: int(w.TimesPlayed),
		ExternalID:  w.ExternalID,
		Notes:       w.Notes,
		CreatedAt:   w.CreatedAt.Time,
		UpdatedAt:   w.UpdatedAt.Time,
	}
	if g.TimesPlayed < 0 {
		g.TimesPlayed = 0
	}
	if !w.LastPlayed.IsZero() {
		t := w.LastPlayed.Time
		g.LastPlayed = &t
	}
	return g
}

// Games lifts a games payload into the canonical collection. The array
// may sit under "data", under "games" or at the top level; anything else
// yields the empty collection and an error.
func Games(raw []byte) ([]model.Game, error) {
	arr, ok := extractArray(raw, "data", "games")
	if !ok {
		return []model.Game{}, malformed("games")
	}
	var wire []wireGame
	if err := json.Unmarshal(arr, &wire); err != nil {
		return []model.Game{}, fmt.Errorf("%w: decode games: %v", upstream.ErrMalformed, err)
	}
	games := make([]model.Game, 0, len(wire))
	for _, w := range wire {
		if w.Name == "" {
			// a game without a name is noise, not data
			continue
		}
		games = append(games, w.canonical())
	}
	return games, nil
}

type wirePlay struct {
	ID       flexString `json:"id"`
	GameID   flexString `json:"gameId"`
	GameName string     `json:"gameName"`
	Date     flexTime   `json:"date"`
	Players  []string   `json:"players"`
	Winner   *string    `json:"winner"`
	Scores   string     `json:"scores"`
	Comment  string     `json:"comment"`
}

// Plays lifts a plays payload, trying "data", "plays" and a bare array.
func Plays(raw []byte) ([]model.PlayRecord, error) {
	arr, ok := extractArray(raw, "data", "plays")
	if !ok {
		return []model.PlayRecord{}, malformed("plays")
	}
	var wire []wirePlay
	if err := json.Unmarshal(arr, &wire); err != nil {
		return []model.PlayRecord{}, fmt.Errorf("%w: decode plays: %v", upstream.ErrMalformed, err)
	}
	plays := make([]model.PlayRecord, 0, len(wire))
	for _, w := range wire {
		winner := w.Winner
		if winner != nil && *winner == "" {
			// empty string means unrecorded, same as absent
			winner = nil
		}
		plays = append(plays, model.PlayRecord{
			ID:       string(w.ID),
			GameID:   string(w.GameID),
			GameName: w.GameName,
			Date:     w.Date.Time,
			Players:  w.Players,
			Winner:   winner,
			Scores:   w.Scores,
			Comment:  w.Comment,
		})
	}
	return plays, nil
}

// LastPlayed lifts a last-played payload. ElapsedDays is whole days
// between now and the game's last play; a game never played keeps a nil
// ElapsedDays, which consumers sort last in either direction.
func LastPlayed(raw []byte, now time.Time) ([]model.LastPlayedEntry, error) {
	games, err := Games(raw)
	if err != nil {
		return []model.LastPlayedEntry{}, err
	}
	entries := make([]model.LastPlayedEntry, 0, len(games))
	for _, g := range games {
		entry := model.LastPlayedEntry{Game: g, TimesPlayed: g.TimesPlayed}
		if g.LastPlayed != nil {
			days := int(now.Sub(*g.LastPlayed).Hours() / 24)
			if days < 0 {
				days = 0
			}
			entry.ElapsedDays = &days
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
