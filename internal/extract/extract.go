// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract converts uploaded documents into ordered card drafts.
// Format dispatch is by file extension; each format routes through a
// segmentation pass that splits the content on headings.
package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/kogniv/internal/util"
	"github.com/pdiddy/kogniv/pkg/types"
)

// MarkdownRenderer converts Markdown source to HTML. The pipeline treats
// the renderer as a black box and only segments its output.
type MarkdownRenderer interface {
	Render(src []byte) (string, error)
}

// WordConverter converts a word-processor document to HTML.
type WordConverter interface {
	ConvertToHTML(doc []byte) (string, error)
}

// PageTextExtractor returns the extracted text items of every page of a
// PDF, in page order.
type PageTextExtractor interface {
	Pages(doc []byte) ([][]string, error)
}

// Pipeline turns a single uploaded file into card drafts. It never
// persists anything and never fails outward: per-file errors are captured
// into the ExtractionResult.
type Pipeline struct {
	markdown MarkdownRenderer
	word     WordConverter
	pdf      PageTextExtractor
	log      zerolog.Logger

	// newID and now are swappable for deterministic tests.
	newID func() string
	now   func() time.Time
}

// NewPipeline assembles a pipeline from the three format collaborators.
func NewPipeline(md MarkdownRenderer, word WordConverter, pdf PageTextExtractor, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		markdown: md,
		word:     word,
		pdf:      pdf,
		log:      log,
		newID:    util.NewID,
		now:      time.Now,
	}
}

// Extract produces card drafts from one file. The category is always the
// filename with its extension stripped; unsupported extensions and
// converter failures surface in the result's Error with zero cards.
func (p *Pipeline) Extract(name string, content []byte) types.ExtractionResult {
	ext := util.Ext(name)
	category := util.BaseName(name)

	var (
		cards []types.Card
		err   error
	)
	switch ext {
	case "pdf":
		cards, err = p.extractPDF(content, category)
	case "docx":
		cards, err = p.extractWord(content, category)
	case "txt":
		cards = p.cardsFromText(string(content), category)
	case "md":
		cards, err = p.extractMarkdown(content, category)
	default:
		err = fmt.Errorf("Unsupported file type: .%s", ext)
	}

	if err != nil {
		p.log.Warn().Str("file", name).Err(err).Msg("extraction failed")
		return types.ExtractionResult{Cards: []types.Card{}, Category: category, Error: err.Error()}
	}
	return types.ExtractionResult{Cards: cards, Category: category}
}

// ExtractPaths processes files strictly one at a time, in the given order,
// writing per-file progress to w. A failed file is reported and skipped;
// the batch never aborts.
func (p *Pipeline) ExtractPaths(paths []string, w io.Writer) []types.ExtractionResult {
	results := make([]types.ExtractionResult, 0, len(paths))

	for _, path := range paths {
		base := filepath.Base(path)
		fmt.Fprintf(w, "parsing %s\n", base)

		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", base, err)
			results = append(results, types.ExtractionResult{
				Cards:    []types.Card{},
				Category: util.BaseName(base),
				Error:    err.Error(),
			})
			continue
		}

		res := p.Extract(base, content)
		if res.Failed() {
			fmt.Fprintf(w, "failed  %s: %s\n", base, res.Error)
		} else {
			fmt.Fprintf(w, "parsed  %s (%d cards)\n", base, len(res.Cards))
		}
		results = append(results, res)
	}

	return results
}

// extractPDF concatenates every page's text items (items joined by
// spaces, pages joined by newlines) and routes the result through the
// plain-text heuristic.
func (p *Pipeline) extractPDF(content []byte, category string) ([]types.Card, error) {
	pages, err := p.pdf.Pages(content)
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}

	var text string
	for _, items := range pages {
		text += joinItems(items) + "\n"
	}
	return p.cardsFromText(text, category), nil
}

func joinItems(items []string) string {
	s := ""
	for i, item := range items {
		if i > 0 {
			s += " "
		}
		s += item
	}
	return s
}

// extractMarkdown renders the source to HTML and segments on h1-h6.
func (p *Pipeline) extractMarkdown(content []byte, category string) ([]types.Card, error) {
	rendered, err := p.markdown.Render(content)
	if err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return p.cardsFromHTML(rendered, category, markdownRules)
}

// extractWord converts the document to HTML and segments on h1-h3.
func (p *Pipeline) extractWord(content []byte, category string) ([]types.Card, error) {
	rendered, err := p.word.ConvertToHTML(content)
	if err != nil {
		return nil, fmt.Errorf("converting document: %w", err)
	}
	return p.cardsFromHTML(rendered, category, wordRules)
}

// newCard builds a card from a closed section. Title is capped at
// TitleMaxLen; the hint is the leading slice of the content with tags
// stripped.
func (p *Pipeline) newCard(title, content, category string) types.Card {
	return types.Card{
		ID:       p.newID(),
		Title:    util.Truncate(title, types.TitleMaxLen),
		Hint:     util.Snippet(content, types.HintMaxLen),
		Content:  content,
		Category: category,
		Created:  p.now(),
	}
}
