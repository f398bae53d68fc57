// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import "time"

// Status is the shelf state of a game in the collection.
type Status string

const (
	StatusPlaying    Status = "Playing"
	StatusInbox      Status = "Inbox"
	StatusEvaluating Status = "Evaluating"
	StatusOwned      Status = "Owned"
	StatusWishlist   Status = "Wishlist"
)

// KnownStatuses lists every valid shelf state, in display order.
var KnownStatuses = []Status{StatusPlaying, StatusInbox, StatusEvaluating, StatusOwned, StatusWishlist}

// Valid reports whether s is one of the known shelf states. The empty
// string is allowed too: a game may simply not have a status yet.
func (s Status) Valid() bool {
	if s == "" {
		return true
	}
	for _, k := range KnownStatuses {
		if s == k {
			return true
		}
	}
	return false
}

// DrawBucket is the participant name used for plays nobody won.
const DrawBucket = "Draw"

// Game represents one entry in the collection. Name is always non-empty;
// the optional numeric fields stay nil rather than zero so "unranked"
// and "never played" sort to the end instead of masquerading as values.
type Game struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Status      Status     `json:"status,omitempty"`
	Ranking     *int       `json:"ranking,omitempty"`
	Complexity  *float64   `json:"complexity,omitempty"`
	TimesPlayed int        `json:"timesPlayed"`
	LastPlayed  *time.Time `json:"lastPlayed,omitempty"`
	ExternalID  *int64     `json:"externalId,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// PlayRecord is a single recorded session of a game. Winner nil means the
// outcome was not recorded; an explicit "Draw" winner is a different thing
// and both must survive filtering and display unharmed.
type PlayRecord struct {
	ID       string    `json:"id"`
	GameID   string    `json:"gameId"`
	GameName string    `json:"gameName,omitempty"`
	Date     time.Time `json:"date"`
	Players  []string  `json:"players,omitempty"`
	Winner   *string   `json:"winner,omitempty"`
	Scores   string    `json:"scores,omitempty"`
	Comment  string    `json:"comment,omitempty"`
}

// LastPlayedEntry wraps a Game with how long ago it hit the table.
// ElapsedDays nil means the game was never played; consumers sort those
// last regardless of direction. Recomputed wholesale on every load,
// never patched in place.
type LastPlayedEntry struct {
	Game        Game `json:"game"`
	ElapsedDays *int `json:"elapsedDays,omitempty"`
	TimesPlayed int  `json:"timesPlayed"`
}

// WinStatEntry is the per-game win aggregate. Wins maps participant name
// (including the Draw bucket) to win count; WinRate maps the same keys to
// wins/totalPlays. Shapes only, the backend is the source of truth.
type WinStatEntry struct {
	GameID     string             `json:"gameId"`
	GameName   string             `json:"gameName"`
	TotalPlays int                `json:"totalPlays"`
	Wins       map[string]int     `json:"wins"`
	WinRate    map[string]float64 `json:"winRate"`
}

// TotalStatEntry is the all-games aggregate for one participant.
// TotalPlays is the shared denominator for the whole snapshot; WinRate is
// guarded against a zero denominator and is 0 in that case, never NaN.
type TotalStatEntry struct {
	Player     string  `json:"player"`
	Wins       int     `json:"wins"`
	TotalPlays int     `json:"totalPlays"`
	WinRate    float64 `json:"winRate"`
}
