// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package storage

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/kogniv/pkg/types"
)

// --- test helpers ---

func testAdapter(t *testing.T) *Adapter {
	t.Helper()
	cfg := types.StorageConfig{Path: filepath.Join(t.TempDir(), "kogniv.db")}
	a, err := Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func strPtr(s string) *string       { return &s }
func intPtr(i int) *int             { return &i }
func boolPtr(b bool) *bool          { return &b }
func timePtr(t time.Time) *time.Time { return &t }

func sampleCards(n int) []types.Card {
	cards := make([]types.Card, n)
	for i := range cards {
		cards[i] = types.Card{
			ID:       fmt.Sprintf("card-%d", i),
			Title:    fmt.Sprintf("Card %d", i),
			Hint:     "hint",
			Content:  "<p>content</p>",
			Category: "biology",
			Created:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		}
	}
	return cards
}

// --- workspace index ---

func TestGetWorkspacesDefaultsEmpty(t *testing.T) {
	a := testAdapter(t)
	if got := a.GetWorkspaces(); len(got) != 0 {
		t.Errorf("expected empty index, got %d entries", len(got))
	}
}

func TestGetWorkspacesCorruptIndexDefaultsEmpty(t *testing.T) {
	a := testAdapter(t)
	if err := a.set(keyWorkspaces, "{not json"); err != nil {
		t.Fatal(err)
	}
	if got := a.GetWorkspaces(); len(got) != 0 {
		t.Errorf("expected empty index for corrupt value, got %d entries", len(got))
	}
}

func TestSaveWorkspacesRoundTrip(t *testing.T) {
	a := testAdapter(t)
	list := []types.WorkspaceMeta{
		{ID: "w1", Name: "Biology", CardCount: 3, Starred: true},
		{ID: "w2", Name: "History"},
	}
	if err := a.SaveWorkspaces(list); err != nil {
		t.Fatal(err)
	}

	got := a.GetWorkspaces()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].ID != "w1" || got[0].Name != "Biology" || !got[0].Starred {
		t.Errorf("entry = %+v", got[0])
	}
}

func TestUpsertWorkspaceMetaInsertsThenMerges(t *testing.T) {
	a := testAdapter(t)

	if err := a.UpsertWorkspaceMeta(types.WorkspaceMetaPatch{
		ID: "w1", Name: strPtr("Biology"), Starred: boolPtr(true),
	}); err != nil {
		t.Fatal(err)
	}

	// A later save that only touches count and timestamp must keep the
	// starred flag and name.
	when := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	if err := a.UpsertWorkspaceMeta(types.WorkspaceMetaPatch{
		ID: "w1", CardCount: intPtr(7), LastModified: timePtr(when),
	}); err != nil {
		t.Fatal(err)
	}

	got := a.GetWorkspaces()
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	ws := got[0]
	if ws.Name != "Biology" || !ws.Starred {
		t.Errorf("merge dropped untouched fields: %+v", ws)
	}
	if ws.CardCount != 7 || !ws.LastModified.Equal(when) {
		t.Errorf("merge missed patched fields: %+v", ws)
	}
}

func TestSetStarred(t *testing.T) {
	a := testAdapter(t)
	if err := a.SaveWorkspaces([]types.WorkspaceMeta{{ID: "w1", Name: "N"}}); err != nil {
		t.Fatal(err)
	}

	if err := a.SetStarred("w1", true); err != nil {
		t.Fatal(err)
	}
	if got := a.GetWorkspaces(); !got[0].Starred {
		t.Error("starred flag not set")
	}

	// Absent id is a no-op.
	if err := a.SetStarred("ghost", true); err != nil {
		t.Fatal(err)
	}
	if got := a.GetWorkspaces(); len(got) != 1 {
		t.Errorf("index changed: %d entries", len(got))
	}
}

// --- per-workspace partitions ---

func TestGetWorkspaceDataDefaults(t *testing.T) {
	a := testAdapter(t)
	data := a.GetWorkspaceData("nope")
	if len(data.Categories) != 0 || len(data.Cards) != 0 {
		t.Errorf("expected empty partitions, got %+v", data)
	}
	if data.Theme != "ocean" {
		t.Errorf("theme = %q", data.Theme)
	}
}

func TestWorkspaceDataRoundTrip(t *testing.T) {
	a := testAdapter(t)
	cards := sampleCards(2)

	if err := a.SaveWorkspaceData("w1", []string{"biology", "history"}, cards); err != nil {
		t.Fatal(err)
	}
	if err := a.SaveWorkspaceTheme("w1", "midnight"); err != nil {
		t.Fatal(err)
	}

	data := a.GetWorkspaceData("w1")
	if len(data.Categories) != 2 || data.Categories[0] != "biology" {
		t.Errorf("categories = %v", data.Categories)
	}
	if len(data.Cards) != 2 || data.Cards[0].ID != "card-0" {
		t.Errorf("cards = %+v", data.Cards)
	}
	if data.Theme != "midnight" {
		t.Errorf("theme = %q", data.Theme)
	}
}

func TestCorruptPartitionDoesNotBlockOthers(t *testing.T) {
	a := testAdapter(t)
	if err := a.SaveWorkspaceData("w1", []string{"biology"}, sampleCards(1)); err != nil {
		t.Fatal(err)
	}
	// Corrupt only the cards partition.
	if err := a.set(fmt.Sprintf(fmtCards, "w1"), "]]]"); err != nil {
		t.Fatal(err)
	}

	data := a.GetWorkspaceData("w1")
	if len(data.Cards) != 0 {
		t.Errorf("corrupt cards partition should default empty, got %d", len(data.Cards))
	}
	if len(data.Categories) != 1 {
		t.Errorf("categories partition lost: %v", data.Categories)
	}
}

func TestDeleteWorkspace(t *testing.T) {
	a := testAdapter(t)
	if err := a.SaveWorkspaces([]types.WorkspaceMeta{{ID: "w1"}, {ID: "w2"}}); err != nil {
		t.Fatal(err)
	}
	if err := a.SaveWorkspaceData("w1", []string{"c"}, sampleCards(1)); err != nil {
		t.Fatal(err)
	}

	if err := a.DeleteWorkspace("w1"); err != nil {
		t.Fatal(err)
	}

	got := a.GetWorkspaces()
	if len(got) != 1 || got[0].ID != "w2" {
		t.Errorf("index after delete = %+v", got)
	}
	data := a.GetWorkspaceData("w1")
	if len(data.Cards) != 0 || len(data.Categories) != 0 {
		t.Errorf("partitions survived delete: %+v", data)
	}
}

func TestDeleteWorkspaceNeverCreatedIsNoOp(t *testing.T) {
	a := testAdapter(t)
	if err := a.SaveWorkspaces([]types.WorkspaceMeta{{ID: "w1"}}); err != nil {
		t.Fatal(err)
	}

	if err := a.DeleteWorkspace("ghost"); err != nil {
		t.Fatalf("delete of unknown id errored: %v", err)
	}
	if got := a.GetWorkspaces(); len(got) != 1 {
		t.Errorf("index affected: %+v", got)
	}
}

// --- preferences ---

func TestPreferences(t *testing.T) {
	a := testAdapter(t)

	if _, ok := a.GetPreference("darkMode"); ok {
		t.Error("unset preference should be absent")
	}
	if err := a.SetPreference("darkMode", "true"); err != nil {
		t.Fatal(err)
	}
	if v, ok := a.GetPreference("darkMode"); !ok || v != "true" {
		t.Errorf("preference = %q, %v", v, ok)
	}
}
