// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/kogniv/pkg/types"
)

// --- mock collaborators ---

type mockRenderer struct {
	html string
	err  error
}

func (m *mockRenderer) Render(_ []byte) (string, error) {
	return m.html, m.err
}

type mockWord struct {
	html string
	err  error
}

func (m *mockWord) ConvertToHTML(_ []byte) (string, error) {
	return m.html, m.err
}

type mockPDF struct {
	pages [][]string
	err   error
}

func (m *mockPDF) Pages(_ []byte) ([][]string, error) {
	return m.pages, m.err
}

func testPipeline(md MarkdownRenderer, word WordConverter, pdf PageTextExtractor) *Pipeline {
	p := NewPipeline(md, word, pdf, zerolog.Nop())
	n := 0
	p.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	p.now = func() time.Time {
		return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	}
	return p
}

// --- dispatch ---

func TestExtractUnsupportedExtension(t *testing.T) {
	p := testPipeline(nil, nil, nil)

	res := p.Extract("notes.xlsx", []byte("data"))

	if res.Error != "Unsupported file type: .xlsx" {
		t.Errorf("error = %q", res.Error)
	}
	if len(res.Cards) != 0 {
		t.Errorf("expected zero cards, got %d", len(res.Cards))
	}
	if res.Category != "notes" {
		t.Errorf("category = %q", res.Category)
	}
}

func TestExtractDispatchIsCaseInsensitive(t *testing.T) {
	p := testPipeline(nil, nil, nil)

	res := p.Extract("Biology.TXT", []byte("CHAPTER ONE\nContent line."))

	if res.Failed() {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.Category != "Biology" {
		t.Errorf("category = %q", res.Category)
	}
	if len(res.Cards) == 0 {
		t.Fatal("expected cards")
	}
}

func TestExtractConverterFailureIsCaptured(t *testing.T) {
	p := testPipeline(&mockRenderer{err: fmt.Errorf("boom")}, nil, nil)

	res := p.Extract("notes.md", []byte("# hi"))

	if !res.Failed() {
		t.Fatal("expected captured error")
	}
	if !strings.Contains(res.Error, "boom") {
		t.Errorf("error = %q", res.Error)
	}
	if len(res.Cards) != 0 {
		t.Errorf("expected zero cards, got %d", len(res.Cards))
	}
}

// --- plain text ---

func TestCardsFromTextChapterScenario(t *testing.T) {
	p := testPipeline(nil, nil, nil)

	res := p.Extract("book.txt", []byte("CHAPTER ONE\nContent line.\nCHAPTER TWO\nMore content."))

	if len(res.Cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(res.Cards))
	}
	if res.Cards[0].Title != "CHAPTER ONE" || res.Cards[1].Title != "CHAPTER TWO" {
		t.Errorf("titles = %q, %q", res.Cards[0].Title, res.Cards[1].Title)
	}
	if res.Cards[0].Content != "Content line.\n" {
		t.Errorf("content = %q", res.Cards[0].Content)
	}
	if res.Cards[1].Content != "More content.\n" {
		t.Errorf("content = %q", res.Cards[1].Content)
	}
}

func TestCardsFromTextHeadingMarkers(t *testing.T) {
	tests := []struct {
		name    string
		heading string
	}{
		{"question marker", "Q: What is mitosis"},
		{"numbered question", "Q12: Define osmosis"},
		{"chapter marker", "chapter: The Cell"},
		{"section marker", "Section: Energy"},
		{"lesson marker", "Lesson: Plants"},
		{"hash prefix", "# Photosynthesis"},
		{"all caps", "GLOSSARY of terms"},
	}
	p := testPipeline(nil, nil, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := tt.heading + "\nThe body text for this section carries quite a lot of explanatory words with it, well past any short-line threshold."
			res := p.Extract("f.txt", []byte(text))
			if len(res.Cards) != 1 {
				t.Fatalf("expected 1 card, got %d", len(res.Cards))
			}
			want := strings.TrimPrefix(tt.heading, "# ")
			if res.Cards[0].Title != want {
				t.Errorf("title = %q, want %q", res.Cards[0].Title, want)
			}
		})
	}
}

func TestCardsFromTextShortLineBootstrapsTitle(t *testing.T) {
	p := testPipeline(nil, nil, nil)

	text := "A short opener\n" +
		"this body line is deliberately made long enough that it cannot be mistaken for a title by any length-based rule at all"
	res := p.Extract("f.txt", []byte(text))

	if len(res.Cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(res.Cards))
	}
	if res.Cards[0].Title != "A short opener" {
		t.Errorf("title = %q", res.Cards[0].Title)
	}
}

func TestCardsFromTextFallbackContentCard(t *testing.T) {
	p := testPipeline(nil, nil, nil)

	// A single line is never a heading (it is the final line), so no
	// section forms and the whole text becomes one "Content" card.
	text := "just one lonely line of prose without any heading in sight"
	res := p.Extract("f.txt", []byte(text))

	if len(res.Cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(res.Cards))
	}
	if res.Cards[0].Title != "Content" {
		t.Errorf("title = %q", res.Cards[0].Title)
	}
	if res.Cards[0].Content != text {
		t.Errorf("content = %q", res.Cards[0].Content)
	}
}

func TestCardsFromTextEmptyInput(t *testing.T) {
	p := testPipeline(nil, nil, nil)

	res := p.Extract("f.txt", []byte("   \n \n"))

	if len(res.Cards) != 0 {
		t.Errorf("expected zero cards for blank input, got %d", len(res.Cards))
	}
	if res.Failed() {
		t.Errorf("blank input is not an error: %s", res.Error)
	}
}

func TestCardLimitsAndStamps(t *testing.T) {
	p := testPipeline(nil, nil, nil)

	longTitle := "Q: " + strings.Repeat("t", 400)
	longBody := strings.Repeat("<b>x</b> words ", 100)
	res := p.Extract("f.txt", []byte(longTitle+"\n"+longBody))

	if len(res.Cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(res.Cards))
	}
	card := res.Cards[0]
	if len([]rune(card.Title)) != types.TitleMaxLen {
		t.Errorf("title length = %d", len([]rune(card.Title)))
	}
	if len([]rune(card.Hint)) > types.HintMaxLen {
		t.Errorf("hint length = %d", len([]rune(card.Hint)))
	}
	if strings.ContainsAny(card.Hint, "<>") {
		t.Errorf("hint carries markup: %q", card.Hint)
	}
	if card.ID == "" || card.Created.IsZero() {
		t.Error("card missing id or created stamp")
	}
}

// --- markdown ---

func TestExtractMarkdownSegmentsOnHeadings(t *testing.T) {
	rendered := `<h1>Overview</h1><p>Intro text.</p><h2>Process</h2><p>Steps.</p><blockquote>note</blockquote>`
	p := testPipeline(&mockRenderer{html: rendered}, nil, nil)

	res := p.Extract("bio.md", []byte("ignored"))

	if len(res.Cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(res.Cards))
	}
	if res.Cards[0].Title != "Overview" || res.Cards[1].Title != "Process" {
		t.Errorf("titles = %q, %q", res.Cards[0].Title, res.Cards[1].Title)
	}
	if res.Cards[0].Content != "<p>Intro text.</p><br>" {
		t.Errorf("content = %q", res.Cards[0].Content)
	}
	// Non-paragraph blocks still accumulate on the markdown path.
	if !strings.Contains(res.Cards[1].Content, "<blockquote>") {
		t.Errorf("content = %q", res.Cards[1].Content)
	}
}

func TestExtractMarkdownFallbackCard(t *testing.T) {
	rendered := `<p>no headings</p><p>at all</p>`
	p := testPipeline(&mockRenderer{html: rendered}, nil, nil)

	res := p.Extract("plain.md", []byte("ignored"))

	if len(res.Cards) != 1 {
		t.Fatalf("expected 1 fallback card, got %d", len(res.Cards))
	}
	if res.Cards[0].Title != "Card 1" {
		t.Errorf("title = %q", res.Cards[0].Title)
	}
	if res.Cards[0].Content != rendered {
		t.Errorf("content = %q", res.Cards[0].Content)
	}
}

func TestExtractMarkdownEndToEnd(t *testing.T) {
	p := testPipeline(NewGoldmarkRenderer(), nil, nil)

	src := "# Overview\n\nIntro paragraph.\n\n## Process\n\nStep one.\n"
	res := p.Extract("guide.md", []byte(src))

	if res.Failed() {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if len(res.Cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(res.Cards))
	}
	if res.Cards[0].Title != "Overview" || res.Cards[1].Title != "Process" {
		t.Errorf("titles = %q, %q", res.Cards[0].Title, res.Cards[1].Title)
	}
}

// --- word-processor documents ---

func TestExtractDocxScenario(t *testing.T) {
	rendered := `<h1>Overview</h1><p>Plants make food.</p><h2>Process</h2><p>Light reactions.</p><ul><li>step</li></ul>`
	p := testPipeline(nil, &mockWord{html: rendered}, nil)

	res := p.Extract("photosynthesis.docx", []byte("ignored"))

	if res.Category != "photosynthesis" {
		t.Errorf("category = %q", res.Category)
	}
	if len(res.Cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(res.Cards))
	}
	if res.Cards[0].Title != "Overview" || res.Cards[1].Title != "Process" {
		t.Errorf("titles = %q, %q", res.Cards[0].Title, res.Cards[1].Title)
	}
}

func TestExtractDocxOnlyParagraphAndListBlocksAccumulate(t *testing.T) {
	rendered := `<h1>Topic</h1><p>kept</p><table><tr><td>dropped</td></tr></table><ul><li>kept too</li></ul>`
	p := testPipeline(nil, &mockWord{html: rendered}, nil)

	res := p.Extract("doc.docx", []byte("ignored"))

	if len(res.Cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(res.Cards))
	}
	content := res.Cards[0].Content
	if !strings.Contains(content, "kept") || strings.Contains(content, "dropped") {
		t.Errorf("content = %q", content)
	}
	// Inner markup only: no enclosing <p> tags on the paragraph text.
	if strings.Contains(content, "<p>") {
		t.Errorf("content carries block wrapper: %q", content)
	}
}

func TestExtractDocxDeepHeadingsDoNotSegment(t *testing.T) {
	rendered := `<h4>Not a section</h4><p>body</p>`
	p := testPipeline(nil, &mockWord{html: rendered}, nil)

	res := p.Extract("doc.docx", []byte("ignored"))

	if len(res.Cards) != 1 || res.Cards[0].Title != "Card 1" {
		t.Fatalf("expected the fallback card, got %+v", res.Cards)
	}
}

// --- pdf ---

func TestExtractPDFJoinsPagesIntoTextHeuristic(t *testing.T) {
	pages := [][]string{
		{"CHAPTER", "ONE"},
		{"Body of the first chapter, long enough that the length heuristic never takes it for a candidate section title."},
	}
	p := testPipeline(nil, nil, &mockPDF{pages: pages})

	res := p.Extract("scan.pdf", []byte("ignored"))

	if res.Failed() {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if len(res.Cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(res.Cards))
	}
	// Items on a page join with spaces, pages join with newlines.
	if res.Cards[0].Title != "CHAPTER ONE" {
		t.Errorf("title = %q", res.Cards[0].Title)
	}
}

func TestExtractPDFReadFailure(t *testing.T) {
	p := testPipeline(nil, nil, &mockPDF{err: fmt.Errorf("corrupt xref")})

	res := p.Extract("bad.pdf", []byte("ignored"))

	if !res.Failed() || !strings.Contains(res.Error, "corrupt xref") {
		t.Errorf("error = %q", res.Error)
	}
}

// --- batch ---

func TestExtractPathsProcessesInOrderAndIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.txt")
	bad := filepath.Join(dir, "b.xlsx")
	last := filepath.Join(dir, "c.txt")
	for path, content := range map[string]string{
		good: "CHAPTER ONE\nSome body.",
		bad:  "junk",
		last: "CHAPTER TWO\nMore body.",
	} {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	p := testPipeline(nil, nil, nil)
	var out bytes.Buffer
	results := p.ExtractPaths([]string{good, bad, last}, &out)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Category != "a" || results[1].Category != "b" || results[2].Category != "c" {
		t.Errorf("categories out of order: %q %q %q",
			results[0].Category, results[1].Category, results[2].Category)
	}
	if !results[1].Failed() {
		t.Error("expected the unsupported file to fail")
	}
	if results[2].Failed() {
		t.Error("failure must not abort the batch")
	}
	progress := out.String()
	if !strings.Contains(progress, "failed  b.xlsx") || !strings.Contains(progress, "parsed  c.txt") {
		t.Errorf("progress output = %q", progress)
	}
}

func TestExtractPathsMissingFile(t *testing.T) {
	p := testPipeline(nil, nil, nil)
	var out bytes.Buffer

	results := p.ExtractPaths([]string{filepath.Join(t.TempDir(), "ghost.txt")}, &out)

	if len(results) != 1 || !results[0].Failed() {
		t.Fatalf("expected a captured read failure, got %+v", results)
	}
}
