package form

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/shelfside/boardgame-tracker/internal/model"
	"github.com/shelfside/boardgame-tracker/internal/store"
)

// AddGameDraft is the editable field set of the add-game form.
type AddGameDraft struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	ExternalID string `json:"externalId"`
	Notes      string `json:"notes"`
}

// AddGame validates and submits new games. The submitting flag blocks
// re-entry until the call settles; success resets the draft, failure
// preserves it for correction.
type AddGame struct {
	mu         sync.Mutex
	draft      AddGameDraft
	submitting bool
	games      *store.Games
}

func NewAddGame(games *store.Games) *AddGame {
	return &AddGame{games: games}
}

// Draft returns the current field values.
func (f *AddGame) Draft() AddGameDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// SetDraft replaces the field values, as a user editing the form would.
func (f *AddGame) SetDraft(d AddGameDraft) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = d
}

// Submitting reports whether a submission is in flight.
func (f *AddGame) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Validate checks the draft synchronously, field by field.
func (f *AddGame) Validate() error {
	d := f.Draft()

	var ferrs []FieldError
	if strings.TrimSpace(d.Name) == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	}
	if !model.Status(d.Status).Valid() {
		ferrs = append(ferrs, FieldError{Field: "status", Message: "unknown status"})
	}
	if d.ExternalID != "" {
		if _, err := strconv.ParseInt(strings.TrimSpace(d.ExternalID), 10, 64); err != nil {
			ferrs = append(ferrs, FieldError{Field: "externalId", Message: "must be numeric"})
		}
	}
	return NewInvalidInputError(ferrs)
}

// Submit validates and posts the draft. A validation failure issues no
// network call and leaves the collection untouched.
func (f *AddGame) Submit(ctx context.Context) error {
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
	gameDraft := store.GameDraft{
		Name:   strings.TrimSpace(d.Name),
		Status: model.Status(d.Status),
		Notes:  d.Notes,
	}
	if d.ExternalID != "" {
		id, _ := strconv.ParseInt(strings.TrimSpace(d.ExternalID), 10, 64)
		gameDraft.ExternalID = &id
	}

	if err := f.games.Add(ctx, gameDraft); err != nil {
		// draft stays as typed so the user can fix and retry
		return err
	}

	f.mu.Lock()
	f.draft = AddGameDraft{}
	f.mu.Unlock()
	return nil
}
