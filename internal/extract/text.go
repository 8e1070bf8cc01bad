// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/kogniv/pkg/types"
)

// shortLineLimit is the length under which a line may be adopted as a
// bootstrap title when no section is open yet.
const shortLineLimit = 80

// headingPatterns classify a line as a heading, checked in order with
// short-circuit OR: an all-caps run of three or more letters, a
// question/chapter/section/numbered/lesson marker prefix, or a
// Markdown-style hash prefix.
var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z]{3,}`),
	regexp.MustCompile(`(?i)^(Q|Q\d+|Chapter|Section|\d+\.|Lesson):`),
	regexp.MustCompile(`^#+\s`),
}

var hashPrefix = regexp.MustCompile(`^#+\s`)

func matchesHeadingPattern(line string) bool {
	for _, p := range headingPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// cardsFromText segments plain text into cards with the heading
// heuristic. Pattern-matched lines always open a new section; a short
// line only bootstraps the first title when no section is open yet.
// Non-empty input never yields zero cards: with no sections at all, the
// whole text becomes a single "Content" card.
func (p *Pipeline) cardsFromText(text, category string) []types.Card {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}

	var cards []types.Card
	var title, content string

	for i, line := range lines {
		patterned := matchesHeadingPattern(line)
		short := utf8.RuneCountInString(line) < shortLineLimit && i < len(lines)-1

		switch {
		case patterned && title != "":
			if strings.TrimSpace(content) != "" {
				cards = append(cards, p.newCard(title, content, category))
			}
			title = hashPrefix.ReplaceAllString(line, "")
			content = ""
		case patterned || (short && title == ""):
			title = hashPrefix.ReplaceAllString(line, "")
		default:
			content += line + "\n"
		}
	}

	if title != "" && strings.TrimSpace(content) != "" {
		cards = append(cards, p.newCard(title, content, category))
	}

	if len(cards) == 0 && strings.TrimSpace(text) != "" {
		cards = append(cards, p.newCard("Content", text, category))
	}

	return cards
}
