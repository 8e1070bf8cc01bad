// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workspace

import (
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/kogniv/internal/state"
	"github.com/pdiddy/kogniv/internal/util"
	"github.com/pdiddy/kogniv/pkg/types"
)

// Export builds the interchange document for the active workspace.
func (s *Service) Export() (types.ExportDocument, error) {
	snap := s.state.Get()
	if snap.WorkspaceID == "" {
		return types.ExportDocument{}, fmt.Errorf("no active workspace")
	}
	return types.ExportDocument{
		WorkspaceName: snap.WorkspaceName,
		Categories:    snap.Categories,
		Cards:         snap.Cards,
		ExportedAt:    s.now(),
	}, nil
}

// importDocument mirrors ExportDocument with a pointer card list so a
// missing or null cards field is detectable at the validation boundary.
type importDocument struct {
	WorkspaceName string        `json:"workspaceName" yaml:"workspaceName"`
	Categories    []string      `json:"categories" yaml:"categories"`
	Cards         *[]types.Card `json:"cards" yaml:"cards"`
}

// ImportJSON merges an interchange document into the active workspace.
// A payload whose cards field is missing or not a sequence is rejected
// wholesale, leaving state untouched. Returns the number of imported
// cards.
func (s *Service) ImportJSON(data []byte) (int, error) {
	var doc importDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("invalid import payload: %w", err)
	}
	return s.importDoc(doc)
}

// ImportYAML is the YAML flavor of ImportJSON.
func (s *Service) ImportYAML(data []byte) (int, error) {
	var doc importDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("invalid import payload: %w", err)
	}
	return s.importDoc(doc)
}

func (s *Service) importDoc(doc importDocument) (int, error) {
	if doc.Cards == nil {
		return 0, fmt.Errorf("invalid import payload: missing cards")
	}

	snap := s.state.Get()
	if snap.WorkspaceID == "" {
		return 0, fmt.Errorf("no active workspace")
	}

	categories := snap.Categories
	for _, cat := range doc.Categories {
		categories = appendMissing(categories, cat)
	}

	cards := snap.Cards
	for _, card := range *doc.Cards {
		card = s.sanitizeCard(card)
		cards = append(cards, card)
		// Categories referenced only by cards are reconciled lazily.
		categories = appendMissing(categories, card.Category)
	}

	s.state.Set(state.Patch{Cards: state.Cards(cards), Categories: state.Strs(categories)})
	if err := s.Save(); err != nil {
		return 0, err
	}
	return len(*doc.Cards), nil
}

// ImportExtraction merges extraction results into the active workspace.
// Failed results are skipped; accepted cards bring their categories into
// the workspace list. Returns the number of merged cards.
func (s *Service) ImportExtraction(results []types.ExtractionResult) (int, error) {
	snap := s.state.Get()
	if snap.WorkspaceID == "" {
		return 0, fmt.Errorf("no active workspace")
	}

	cards := snap.Cards
	categories := snap.Categories
	merged := 0

	for _, res := range results {
		if res.Failed() {
			continue
		}
		for _, card := range res.Cards {
			cards = append(cards, card)
			categories = appendMissing(categories, card.Category)
			merged++
		}
	}

	s.state.Set(state.Patch{Cards: state.Cards(cards), Categories: state.Strs(categories)})
	if err := s.Save(); err != nil {
		return 0, err
	}
	return merged, nil
}

// sanitizeCard enforces field constraints at the import boundary rather
// than trusting shape at every use site.
func (s *Service) sanitizeCard(card types.Card) types.Card {
	if card.ID == "" {
		card.ID = s.newID()
	}
	card.Title = util.Truncate(card.Title, types.TitleMaxLen)
	if card.Hint == "" {
		card.Hint = util.Snippet(card.Content, types.HintMaxLen)
	} else {
		card.Hint = util.Truncate(util.StripTags(card.Hint), types.HintMaxLen)
	}
	if card.Created.IsZero() {
		card.Created = s.now()
	}
	return card
}
