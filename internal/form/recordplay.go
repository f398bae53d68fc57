package form

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shelfside/boardgame-tracker/internal/store"
)

var playDateLayouts = []string{"2006-01-02", time.RFC3339}

// RecordPlayDraft is the editable field set of the record-play form.
// Players are free-typed names; an empty Winner means the outcome was
// not recorded, which is not the same as an explicit "Draw".
type RecordPlayDraft struct {
	GameID  string   `json:"gameId"`
	Date    string   `json:"date"`
	Players []string `json:"players"`
	Winner  string   `json:"winner"`
	Scores  string   `json:"scores"`
	Comment string   `json:"comment"`
}

// RecordPlay validates and submits play records.
type RecordPlay struct {
	mu         sync.Mutex
	draft      RecordPlayDraft
	submitting bool
	plays      *store.Plays
}

func NewRecordPlay(plays *store.Plays) *RecordPlay {
	return &RecordPlay{plays: plays}
}

func (f *RecordPlay) Draft() RecordPlayDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *RecordPlay) SetDraft(d RecordPlayDraft) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = d
}

func (f *RecordPlay) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Validate checks the draft synchronously: the game reference must be
// present and numeric, the date present and parseable.
func (f *RecordPlay) Validate() error {
	d := f.Draft()

	var ferrs []FieldError
	gameID := strings.TrimSpace(d.GameID)
	if gameID == "" {
		ferrs = append(ferrs, FieldError{Field: "gameId", Message: "must not be empty"})
	} else if _, err := strconv.ParseInt(gameID, 10, 64); err != nil {
		ferrs = append(ferrs, FieldError{Field: "gameId", Message: "must be numeric"})
	}
	if strings.TrimSpace(d.Date) == "" {
		ferrs = append(ferrs, FieldError{Field: "date", Message: "must not be empty"})
	} else if _, ok := parsePlayDate(d.Date); !ok {
		ferrs = append(ferrs, FieldError{Field: "date", Message: "must be a valid date"})
	}
	return NewInvalidInputError(ferrs)
}

// Submit validates and posts the draft; on success the draft resets to
// its defaults, on failure it is preserved for correction.
func (f *RecordPlay) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	if err := f.Validate(); err != nil {
		return err
	}

	d := f.Draft()
	date, _ := parsePlayDate(d.Date)
	playDraft := store.PlayDraft{
		GameID:  strings.TrimSpace(d.GameID),
		Date:    date,
		Players: trimmedPlayers(d.Players),
		Scores:  d.Scores,
		Comment: d.Comment,
	}
	if w := strings.TrimSpace(d.Winner); w != "" {
		playDraft.Winner = &w
	}

	if err := f.plays.Record(ctx, playDraft); err != nil {
		return err
	}

	f.mu.Lock()
	f.draft = RecordPlayDraft{}
	f.mu.Unlock()
	return nil
}

func parsePlayDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range playDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func trimmedPlayers(players []string) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
