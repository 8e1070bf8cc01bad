// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workspace is the session service: it owns the active workspace
// through the state store and is the only caller of the storage adapter.
package workspace

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/kogniv/internal/state"
	"github.com/pdiddy/kogniv/internal/storage"
	"github.com/pdiddy/kogniv/internal/util"
	"github.com/pdiddy/kogniv/pkg/types"
)

// DefaultName is the name given to workspaces created blank.
const DefaultName = "Untitled Workspace"

// Service coordinates the state store and the storage adapter for one
// editing session.
type Service struct {
	store *storage.Adapter
	state *state.Store
	log   zerolog.Logger

	newID func() string
	now   func() time.Time
}

// NewService wires a session service over the given store and state.
func NewService(store *storage.Adapter, st *state.Store, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		state: st,
		log:   log,
		newID: util.NewID,
		now:   time.Now,
	}
}

// State exposes the session's state store for derived views and
// subscriptions.
func (s *Service) State() *state.Store {
	return s.state
}

// CreateBlank opens a fresh workspace with no cards and persists it
// immediately. Returns the new workspace id.
func (s *Service) CreateBlank() (string, error) {
	id := s.newID()
	s.state.Set(state.Patch{
		View:            state.Str("workspace"),
		WorkspaceID:     state.Str(id),
		WorkspaceName:   state.Str(DefaultName),
		Categories:      state.Strs([]string{}),
		Cards:           state.Cards([]types.Card{}),
		CurrentCategory: state.Str(state.CategoryAll),
		SelectedCardID:  state.Str(""),
		SplitView:       state.Bool(false),
		EditMode:        state.Bool(false),
		SearchQuery:     state.Str(""),
		FilteredCards:   state.Cards([]types.Card{}),
	})
	if err := s.Save(); err != nil {
		return "", err
	}
	return id, nil
}

// Load opens a persisted workspace into the session, resetting view
// filters. Missing index entries fall back to the default name; each
// data partition defaults independently.
func (s *Service) Load(id string) error {
	data := s.store.GetWorkspaceData(id)

	name := DefaultName
	for _, ws := range s.store.GetWorkspaces() {
		if ws.ID == id {
			name = ws.Name
			break
		}
	}

	s.state.Set(state.Patch{
		View:            state.Str("workspace"),
		WorkspaceID:     state.Str(id),
		WorkspaceName:   state.Str(name),
		Categories:      state.Strs(data.Categories),
		Cards:           state.Cards(data.Cards),
		CurrentCategory: state.Str(state.CategoryAll),
		SelectedCardID:  state.Str(""),
		SplitView:       state.Bool(false),
		EditMode:        state.Bool(false),
		SearchQuery:     state.Str(""),
		ThemePreset:     state.Str(data.Theme),
		FilteredCards:   state.Cards([]types.Card{}),
	})
	return nil
}

// Save persists the active workspace: both data partitions plus an index
// merge carrying the derived card count and a fresh timestamp. Index
// fields the save does not touch (starred) keep their stored value.
func (s *Service) Save() error {
	snap := s.state.Get()
	if snap.WorkspaceID == "" {
		return fmt.Errorf("no active workspace")
	}

	if err := s.store.SaveWorkspaceData(snap.WorkspaceID, snap.Categories, snap.Cards); err != nil {
		return fmt.Errorf("saving workspace data: %w", err)
	}

	count := len(snap.Cards)
	now := s.now()
	err := s.store.UpsertWorkspaceMeta(types.WorkspaceMetaPatch{
		ID:           snap.WorkspaceID,
		Name:         &snap.WorkspaceName,
		CardCount:    &count,
		LastModified: &now,
	})
	if err != nil {
		return fmt.Errorf("saving workspace index: %w", err)
	}
	return nil
}

// Rename sets the active workspace's display name. Blank names fall back
// to the default.
func (s *Service) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	s.state.Set(state.Patch{WorkspaceName: state.Str(name)})
	return s.Save()
}

// Delete removes a workspace from storage. Deleting the active
// workspace also resets the session to the dashboard. Unknown ids are a
// no-op.
func (s *Service) Delete(id string) error {
	if err := s.store.DeleteWorkspace(id); err != nil {
		return err
	}
	if s.state.Get().WorkspaceID == id {
		fresh := state.NewSnapshot()
		s.state.Set(state.Patch{
			View:            state.Str(fresh.View),
			WorkspaceID:     state.Str(""),
			WorkspaceName:   state.Str(fresh.WorkspaceName),
			Categories:      state.Strs(fresh.Categories),
			Cards:           state.Cards(fresh.Cards),
			CurrentCategory: state.Str(fresh.CurrentCategory),
			SelectedCardID:  state.Str(""),
			FilteredCards:   state.Cards(fresh.FilteredCards),
		})
	}
	return nil
}

// Star toggles the pinned flag on the workspace index.
func (s *Service) Star(id string, starred bool) error {
	return s.store.SetStarred(id, starred)
}

// SetTheme persists the active workspace's color preset.
func (s *Service) SetTheme(preset string) error {
	snap := s.state.Get()
	if snap.WorkspaceID == "" {
		return fmt.Errorf("no active workspace")
	}
	s.state.Set(state.Patch{ThemePreset: state.Str(preset)})
	return s.store.SaveWorkspaceTheme(snap.WorkspaceID, preset)
}

// SetDarkMode stores the process-wide dark mode preference.
func (s *Service) SetDarkMode(enabled bool) error {
	s.state.Set(state.Patch{DarkMode: state.Bool(enabled)})
	return s.store.SetPreference("darkMode", fmt.Sprintf("%t", enabled))
}

// Sort modes for List.
const (
	SortRecent  = "recent"
	SortStarred = "starred"
	SortName    = "name"
)

// List returns the workspace index ordered for the dashboard: most
// recently modified first, starred-then-recent, or by name.
func (s *Service) List(mode string) []types.WorkspaceMeta {
	list := s.store.GetWorkspaces()
	switch mode {
	case SortName:
		sort.SliceStable(list, func(i, j int) bool {
			return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
		})
	case SortStarred:
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].Starred != list[j].Starred {
				return list[i].Starred
			}
			return list[i].LastModified.After(list[j].LastModified)
		})
	default:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].LastModified.After(list[j].LastModified)
		})
	}
	return list
}
