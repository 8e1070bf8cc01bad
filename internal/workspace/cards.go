// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workspace

import (
	"fmt"

	"github.com/pdiddy/kogniv/internal/state"
	"github.com/pdiddy/kogniv/internal/util"
	"github.com/pdiddy/kogniv/pkg/types"
)

// CardPatch is a partial card edit. Nil fields are left untouched. When
// Content changes without an explicit Hint, the hint is re-derived from
// the new content.
type CardPatch struct {
	Title    *string
	Content  *string
	Category *string
	Hint     *string
}

// AddCard appends a manually authored card to the active workspace and
// persists. The card's category is reconciled into the category list.
func (s *Service) AddCard(title, content, category string) (types.Card, error) {
	snap := s.state.Get()
	if snap.WorkspaceID == "" {
		return types.Card{}, fmt.Errorf("no active workspace")
	}

	card := types.Card{
		ID:       s.newID(),
		Title:    util.Truncate(title, types.TitleMaxLen),
		Hint:     util.Snippet(content, types.HintMaxLen),
		Content:  content,
		Category: category,
		Created:  s.now(),
	}

	cards := append(snap.Cards, card)
	categories := appendMissing(snap.Categories, category)
	s.state.Set(state.Patch{Cards: state.Cards(cards), Categories: state.Strs(categories)})

	if err := s.Save(); err != nil {
		return types.Card{}, err
	}
	return card, nil
}

// UpdateCard applies a partial edit to a card by id and persists.
func (s *Service) UpdateCard(id string, patch CardPatch) (types.Card, error) {
	snap := s.state.Get()

	idx := -1
	for i, c := range snap.Cards {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return types.Card{}, fmt.Errorf("card %s not found", id)
	}

	card := &snap.Cards[idx]
	if patch.Title != nil {
		card.Title = util.Truncate(*patch.Title, types.TitleMaxLen)
	}
	if patch.Content != nil {
		card.Content = *patch.Content
		if patch.Hint == nil {
			card.Hint = util.Snippet(card.Content, types.HintMaxLen)
		}
	}
	if patch.Hint != nil {
		card.Hint = util.Truncate(util.StripTags(*patch.Hint), types.HintMaxLen)
	}

	categories := snap.Categories
	if patch.Category != nil {
		card.Category = *patch.Category
		categories = appendMissing(categories, *patch.Category)
	}

	s.state.Set(state.Patch{Cards: state.Cards(snap.Cards), Categories: state.Strs(categories)})
	if err := s.Save(); err != nil {
		return types.Card{}, err
	}
	return *card, nil
}

// DeleteCard removes a card by id and persists. Unknown ids are a no-op.
func (s *Service) DeleteCard(id string) error {
	snap := s.state.Get()

	kept := snap.Cards[:0]
	for _, c := range snap.Cards {
		if c.ID != id {
			kept = append(kept, c)
		}
	}

	selected := snap.SelectedCardID
	if selected == id {
		selected = ""
	}

	s.state.Set(state.Patch{
		Cards:          state.Cards(kept),
		SelectedCardID: state.Str(selected),
	})
	return s.Save()
}

// appendMissing appends label to list when absent. Empty labels are
// ignored; insertion order is display order.
func appendMissing(list []string, label string) []string {
	if label == "" {
		return list
	}
	for _, existing := range list {
		if existing == label {
			return list
		}
	}
	return append(list, label)
}
