// Package appstate holds the process-wide UI state: the single visible
// error, the loading flag and the active view. It is one injected object
// passed to every consumer; nothing here is a package-level variable.
package appstate

import (
	"sync"
	"time"
)

// View identifies one of the navigable screens.
type View string

const (
	ViewGames      View = "games"
	ViewPlays      View = "plays"
	ViewLastPlayed View = "lastPlayed"
	ViewStats      View = "stats"
)

// KnownViews lists every navigable view.
var KnownViews = []View{ViewGames, ViewPlays, ViewLastPlayed, ViewStats}

// Valid reports whether v names a known view.
func (v View) Valid() bool {
	for _, k := range KnownViews {
		if v == k {
			return true
		}
	}
	return false
}

// DefaultErrorTTL is how long an error stays visible before it clears
// itself, unless a newer error or an explicit dismissal beats it to it.
const DefaultErrorTTL = 5 * time.Second

// State is the shared mutable state. Exactly one error is visible at a
// time (newest replaces oldest); the loading flag resolves to false on
// both success and failure paths because stores pair Begin/EndLoading.
type State struct {
	mu       sync.Mutex
	err      string
	errGen   uint64
	loading  int
	view     View
	errorTTL time.Duration
}

func New() *State {
	return &State{errorTTL: DefaultErrorTTL}
}

// NewWithTTL exists for tests that cannot wait five seconds.
func NewWithTTL(ttl time.Duration) *State {
	return &State{errorTTL: ttl}
}

// SetError makes msg the single visible error and schedules its
// auto-dismissal. The generation counter keeps a stale timer from
// clearing an error that superseded it.
func (s *State) SetError(msg string) {
	if msg == "" {
		return
	}
	s.mu.Lock()
	s.err = msg
	s.errGen++
	gen := s.errGen
	ttl := s.errorTTL
	s.mu.Unlock()

	time.AfterFunc(ttl, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.errGen == gen {
			s.err = ""
		}
	})
}

// ClearError dismisses the visible error immediately.
func (s *State) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
	s.errGen++
}

func (s *State) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// BeginLoading marks a network call in flight. Calls may overlap when
// two loads race; the flag stays up until the last one ends.
func (s *State) BeginLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading++
}

func (s *State) EndLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading > 0 {
		s.loading--
	}
}

func (s *State) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading > 0
}

// SetView records the active view.
func (s *State) SetView(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
}

func (s *State) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}
