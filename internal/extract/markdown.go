// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// GoldmarkRenderer renders Markdown to HTML with goldmark. Raw HTML in
// the source is passed through so authored markup survives segmentation.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewGoldmarkRenderer builds the production Markdown renderer.
func NewGoldmarkRenderer() *GoldmarkRenderer {
	return &GoldmarkRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
		),
	}
}

// Render converts Markdown source to HTML.
func (g *GoldmarkRenderer) Render(src []byte) (string, error) {
	var b strings.Builder
	if err := g.md.Convert(src, &b); err != nil {
		return "", fmt.Errorf("goldmark: %w", err)
	}
	return b.String(), nil
}
