// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/pdiddy/kogniv/pkg/types"
)

// segmentRules describe how one HTML-bearing format is split into cards.
type segmentRules struct {
	// headings are the element names that open a new section.
	headings map[string]bool

	// content restricts which non-heading elements accumulate. Nil
	// means every element counts.
	content map[string]bool

	// inner accumulates only the element's children instead of the
	// element itself.
	inner bool
}

// markdownRules segment rendered Markdown: any h1-h6 starts a section and
// every other block contributes its full markup.
var markdownRules = segmentRules{
	headings: map[string]bool{"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true},
}

// wordRules segment converted word-processor HTML: h1-h3 start sections
// and only paragraph and list blocks contribute, by their inner markup.
var wordRules = segmentRules{
	headings: map[string]bool{"h1": true, "h2": true, "h3": true},
	content:  map[string]bool{"p": true, "ul": true, "ol": true},
	inner:    true,
}

const untitled = "Untitled"

// cardsFromHTML walks the body's block elements in document order,
// closing a section into a card at each heading. With no headings at all
// the whole rendered markup becomes a single "Card 1" fallback card.
func (p *Pipeline) cardsFromHTML(src, category string, rules segmentRules) ([]types.Card, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	body := findBody(doc)
	if body == nil {
		return nil, fmt.Errorf("parsing html: no body element")
	}

	var cards []types.Card
	title := untitled
	var content string

	for n := body.FirstChild; n != nil; n = n.NextSibling {
		if n.Type != html.ElementNode {
			continue
		}

		if rules.headings[n.Data] {
			if title != untitled && strings.TrimSpace(content) != "" {
				cards = append(cards, p.newCard(title, content, category))
			}
			title = strings.TrimSpace(nodeText(n))
			content = ""
			continue
		}

		if rules.content != nil && !rules.content[n.Data] {
			continue
		}
		if rules.inner {
			content += innerHTML(n) + "<br>"
		} else {
			content += outerHTML(n) + "<br>"
		}
	}

	if title != untitled && strings.TrimSpace(content) != "" {
		cards = append(cards, p.newCard(title, content, category))
	}

	if len(cards) == 0 {
		cards = append(cards, p.newCard("Card 1", src, category))
	}

	return cards, nil
}

// findBody locates the body element in a parsed document tree.
func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

// nodeText concatenates all text descendants of n.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

// outerHTML renders the element including its own tags.
func outerHTML(n *html.Node) string {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return ""
	}
	return b.String()
}

// innerHTML renders only the element's children.
func innerHTML(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return ""
		}
	}
	return b.String()
}
