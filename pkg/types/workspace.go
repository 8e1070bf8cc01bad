// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DefaultTheme is the preset applied when a workspace has no stored theme.
const DefaultTheme = "ocean"

// WorkspaceMeta is one entry in the workspace index: the lightweight record
// the dashboard lists without loading card data.
type WorkspaceMeta struct {
	// ID identifies the workspace and keys its data partitions.
	ID string `json:"id" yaml:"id"`

	// Name is the display name.
	Name string `json:"name" yaml:"name"`

	// CardCount caches the number of cards. Derived from the cards
	// partition on every save; never trusted for correctness.
	CardCount int `json:"cardCount" yaml:"cardCount"`

	// LastModified is the time of the last persisted mutation.
	LastModified time.Time `json:"lastModified" yaml:"lastModified"`

	// Starred marks the workspace as pinned on the dashboard.
	Starred bool `json:"starred" yaml:"starred"`
}

// WorkspaceMetaPatch is a partial index update. Nil fields are left
// untouched on the stored record, so a save that only bumps the card count
// does not clobber the starred flag.
type WorkspaceMetaPatch struct {
	ID           string
	Name         *string
	CardCount    *int
	LastModified *time.Time
	Starred      *bool
}

// WorkspaceData is the per-workspace content: the three independently
// persisted partitions read together when a workspace opens.
type WorkspaceData struct {
	// Categories is the ordered category list. Insertion order is
	// display order.
	Categories []string `json:"categories" yaml:"categories"`

	// Cards holds the workspace's cards.
	Cards []Card `json:"cards" yaml:"cards"`

	// Theme is the active color preset identifier.
	Theme string `json:"theme" yaml:"theme"`
}

// ExportDocument is the JSON/YAML interchange format for a workspace.
type ExportDocument struct {
	// WorkspaceName is the display name of the exported workspace.
	WorkspaceName string `json:"workspaceName" yaml:"workspaceName"`

	// Categories is the workspace's ordered category list.
	Categories []string `json:"categories" yaml:"categories"`

	// Cards holds every card in the workspace.
	Cards []Card `json:"cards" yaml:"cards"`

	// ExportedAt is the export timestamp.
	ExportedAt time.Time `json:"exportedAt" yaml:"exportedAt"`
}
