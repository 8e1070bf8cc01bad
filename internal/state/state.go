// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package state holds the single in-memory source of truth for an
// editing session and notifies subscribers synchronously after each
// update. Stores are owned instances, not process-wide singletons, so
// tests can run several in isolation.
package state

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pdiddy/kogniv/pkg/types"
)

// CategoryAll is the sentinel category meaning "no category filter".
const CategoryAll = "all"

// Snapshot is the full session state: current view, active workspace
// data, and UI filters.
type Snapshot struct {
	View            string
	WorkspaceID     string
	WorkspaceName   string
	Categories      []string
	Cards           []types.Card
	CurrentCategory string
	SelectedCardID  string
	SplitView       bool
	EditMode        bool
	DarkMode        bool
	SearchQuery     string
	ThemePreset     string

	// FilteredCards is the last computed derived view; not persisted.
	FilteredCards []types.Card
}

// NewSnapshot returns the initial dashboard state.
func NewSnapshot() Snapshot {
	return Snapshot{
		View:            "dashboard",
		WorkspaceName:   "Untitled Workspace",
		Categories:      []string{},
		Cards:           []types.Card{},
		CurrentCategory: CategoryAll,
		ThemePreset:     types.DefaultTheme,
		FilteredCards:   []types.Card{},
	}
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Categories = append([]string(nil), s.Categories...)
	out.Cards = append([]types.Card(nil), s.Cards...)
	out.FilteredCards = append([]types.Card(nil), s.FilteredCards...)
	return out
}

// Patch is a partial state update: nil fields are left untouched.
// Merging is shallow field replacement, never a deep merge.
type Patch struct {
	View            *string
	WorkspaceID     *string
	WorkspaceName   *string
	Categories      *[]string
	Cards           *[]types.Card
	CurrentCategory *string
	SelectedCardID  *string
	SplitView       *bool
	EditMode        *bool
	DarkMode        *bool
	SearchQuery     *string
	ThemePreset     *string
	FilteredCards   *[]types.Card
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// Store owns a Snapshot and a subscriber registry.
type Store struct {
	mu     sync.Mutex
	snap   Snapshot
	subs   []subscriber
	nextID int
	log    zerolog.Logger
}

// NewStore creates a store seeded with the given state.
func NewStore(initial Snapshot, log zerolog.Logger) *Store {
	return &Store{snap: initial.clone(), log: log}
}

// Get returns a defensive copy of the current state. Mutating the
// returned value does not affect the store.
func (s *Store) Get() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.clone()
}

// Set merges the patch into the state, then invokes every subscriber
// with the new state in registration order. A panicking subscriber is
// recovered and logged; it never blocks the remaining subscribers or
// corrupts the state. Nested Set calls from inside a notification are
// not supported.
func (s *Store) Set(p Patch) {
	s.mu.Lock()
	s.apply(p)
	snap := s.snap.clone()
	subs := append([]subscriber(nil), s.subs...)
	s.mu.Unlock()

	for _, sub := range subs {
		s.notify(sub, snap)
	}
}

func (s *Store) notify(sub subscriber, snap Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("state subscriber failed")
		}
	}()
	sub.fn(snap)
}

func (s *Store) apply(p Patch) {
	if p.View != nil {
		s.snap.View = *p.View
	}
	if p.WorkspaceID != nil {
		s.snap.WorkspaceID = *p.WorkspaceID
	}
	if p.WorkspaceName != nil {
		s.snap.WorkspaceName = *p.WorkspaceName
	}
	if p.Categories != nil {
		s.snap.Categories = append([]string(nil), (*p.Categories)...)
	}
	if p.Cards != nil {
		s.snap.Cards = append([]types.Card(nil), (*p.Cards)...)
	}
	if p.CurrentCategory != nil {
		s.snap.CurrentCategory = *p.CurrentCategory
	}
	if p.SelectedCardID != nil {
		s.snap.SelectedCardID = *p.SelectedCardID
	}
	if p.SplitView != nil {
		s.snap.SplitView = *p.SplitView
	}
	if p.EditMode != nil {
		s.snap.EditMode = *p.EditMode
	}
	if p.DarkMode != nil {
		s.snap.DarkMode = *p.DarkMode
	}
	if p.SearchQuery != nil {
		s.snap.SearchQuery = *p.SearchQuery
	}
	if p.ThemePreset != nil {
		s.snap.ThemePreset = *p.ThemePreset
	}
	if p.FilteredCards != nil {
		s.snap.FilteredCards = append([]types.Card(nil), (*p.FilteredCards)...)
	}
}

// Subscribe registers an observer and returns a function that removes
// it. Subscribing during an in-flight notification takes effect on the
// next Set.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// FilteredCards applies the category filter, then a case-insensitive
// substring match over title, hint, and content. Pure: stored cards are
// never mutated and relative order is preserved.
func (s *Store) FilteredCards() []types.Card {
	snap := s.Get()
	cards := snap.Cards

	if snap.CurrentCategory != CategoryAll {
		kept := make([]types.Card, 0, len(cards))
		for _, c := range cards {
			if c.Category == snap.CurrentCategory {
				kept = append(kept, c)
			}
		}
		cards = kept
	}

	if snap.SearchQuery != "" {
		q := strings.ToLower(snap.SearchQuery)
		kept := make([]types.Card, 0, len(cards))
		for _, c := range cards {
			if strings.Contains(strings.ToLower(c.Title), q) ||
				strings.Contains(strings.ToLower(c.Hint), q) ||
				strings.Contains(strings.ToLower(c.Content), q) {
				kept = append(kept, c)
			}
		}
		cards = kept
	}

	return cards
}

// --- patch field helpers ---

func Str(s string) *string               { return &s }
func Bool(b bool) *bool                  { return &b }
func Cards(c []types.Card) *[]types.Card { return &c }
func Strs(s []string) *[]string          { return &s }
