// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package storage persists workspaces under a key-partitioned scheme in a
// local SQLite database. It is the only component that touches the
// durable copy; everything else goes through the session service.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/pdiddy/kogniv/pkg/types"
)

// Logical keys. One value per key; per-workspace partitions interpolate
// the workspace id.
const (
	keyWorkspaces = "workspaces"
	keyMigrated   = "migrated"

	fmtCategories = "ws_%s_cat"
	fmtCards      = "ws_%s_data"
	fmtTheme      = "ws_%s_theme"
	fmtPreference = "pref_%s"
)

// Adapter is the key-partitioned store. All reads fall back to the
// partition's default when the key is absent or its value unparseable;
// callers never see a missing-vs-empty distinction.
type Adapter struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens or creates the store at cfg.Path, creating parent
// directories and the schema as needed.
func Open(cfg types.StorageConfig, log zerolog.Logger) (*Adapter, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating storage directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	a := &Adapter{db: db, log: log}
	if err := a.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return a, nil
}

// Close releases the database connection.
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) createSchema() error {
	_, err := a.db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// --- raw key access ---

func (a *Adapter) get(key string) (string, bool) {
	var value string
	err := a.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			a.log.Warn().Str("key", key).Err(err).Msg("storage read failed")
		}
		return "", false
	}
	return value, true
}

func (a *Adapter) set(key, value string) error {
	_, err := a.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing key %s: %w", key, err)
	}
	return nil
}

func (a *Adapter) remove(key string) error {
	if _, err := a.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("removing key %s: %w", key, err)
	}
	return nil
}

// getJSON unmarshals the value at key into out. A missing or corrupt
// value leaves out untouched and reports false; corruption is treated as
// absence, never propagated.
func (a *Adapter) getJSON(key string, out any) bool {
	value, ok := a.get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(value), out); err != nil {
		a.log.Warn().Str("key", key).Err(err).Msg("discarding unparseable value")
		return false
	}
	return true
}

func (a *Adapter) setJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling key %s: %w", key, err)
	}
	return a.set(key, string(data))
}

// --- workspace index ---

// GetWorkspaces returns the workspace index, or an empty list when the
// index is absent or unparseable.
func (a *Adapter) GetWorkspaces() []types.WorkspaceMeta {
	list := []types.WorkspaceMeta{}
	a.getJSON(keyWorkspaces, &list)
	return list
}

// SaveWorkspaces overwrites the entire index.
func (a *Adapter) SaveWorkspaces(list []types.WorkspaceMeta) error {
	return a.setJSON(keyWorkspaces, list)
}

// UpsertWorkspaceMeta inserts a new index entry or merges the patch's
// set fields into the existing entry. Fields left nil on the patch keep
// their stored value.
func (a *Adapter) UpsertWorkspaceMeta(patch types.WorkspaceMetaPatch) error {
	list := a.GetWorkspaces()

	idx := -1
	for i, ws := range list {
		if ws.ID == patch.ID {
			idx = i
			break
		}
	}

	if idx < 0 {
		list = append(list, types.WorkspaceMeta{ID: patch.ID})
		idx = len(list) - 1
	}

	ws := &list[idx]
	if patch.Name != nil {
		ws.Name = *patch.Name
	}
	if patch.CardCount != nil {
		ws.CardCount = *patch.CardCount
	}
	if patch.LastModified != nil {
		ws.LastModified = *patch.LastModified
	}
	if patch.Starred != nil {
		ws.Starred = *patch.Starred
	}

	return a.SaveWorkspaces(list)
}

// SetStarred toggles the starred flag on an index entry. A missing id is
// a no-op.
func (a *Adapter) SetStarred(id string, starred bool) error {
	list := a.GetWorkspaces()
	for i := range list {
		if list[i].ID == id {
			list[i].Starred = starred
			return a.SaveWorkspaces(list)
		}
	}
	return nil
}

// --- per-workspace partitions ---

// GetWorkspaceData reads the three per-workspace partitions. Each
// partition defaults independently, so loss of one never blocks the
// others.
func (a *Adapter) GetWorkspaceData(id string) types.WorkspaceData {
	data := types.WorkspaceData{
		Categories: []string{},
		Cards:      []types.Card{},
		Theme:      types.DefaultTheme,
	}
	a.getJSON(fmt.Sprintf(fmtCategories, id), &data.Categories)
	a.getJSON(fmt.Sprintf(fmtCards, id), &data.Cards)
	if theme, ok := a.get(fmt.Sprintf(fmtTheme, id)); ok && theme != "" {
		data.Theme = theme
	}
	return data
}

// SaveWorkspaceData overwrites the categories and cards partitions
// together. The theme partition is saved separately.
func (a *Adapter) SaveWorkspaceData(id string, categories []string, cards []types.Card) error {
	if categories == nil {
		categories = []string{}
	}
	if cards == nil {
		cards = []types.Card{}
	}
	if err := a.setJSON(fmt.Sprintf(fmtCategories, id), categories); err != nil {
		return err
	}
	return a.setJSON(fmt.Sprintf(fmtCards, id), cards)
}

// SaveWorkspaceTheme overwrites the theme partition alone.
func (a *Adapter) SaveWorkspaceTheme(id, theme string) error {
	return a.set(fmt.Sprintf(fmtTheme, id), theme)
}

// DeleteWorkspace removes the index entry and all three data partitions.
// Safe to call on an id that was never created.
func (a *Adapter) DeleteWorkspace(id string) error {
	list := a.GetWorkspaces()
	kept := list[:0]
	for _, ws := range list {
		if ws.ID != id {
			kept = append(kept, ws)
		}
	}
	if err := a.SaveWorkspaces(kept); err != nil {
		return err
	}

	for _, key := range []string{
		fmt.Sprintf(fmtCategories, id),
		fmt.Sprintf(fmtCards, id),
		fmt.Sprintf(fmtTheme, id),
	} {
		if err := a.remove(key); err != nil {
			return err
		}
	}
	return nil
}

// --- preferences ---

// GetPreference reads a process-wide preference, independent of any
// workspace.
func (a *Adapter) GetPreference(key string) (string, bool) {
	return a.get(fmt.Sprintf(fmtPreference, key))
}

// SetPreference writes a process-wide preference.
func (a *Adapter) SetPreference(key, value string) error {
	return a.set(fmt.Sprintf(fmtPreference, key), value)
}
