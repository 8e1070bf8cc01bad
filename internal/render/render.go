// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render assembles a printable HTML document from a card set
// and hands it to an external HTML-to-PDF renderer.
package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/pdiddy/kogniv/internal/toolexec"
	"github.com/pdiddy/kogniv/pkg/types"
)

// PDFRenderer converts rendered HTML into PDF bytes.
type PDFRenderer interface {
	RenderPDF(html string) ([]byte, error)
}

var deckTemplate = template.Must(template.New("deck").Funcs(template.FuncMap{
	"raw":  func(s string) template.HTML { return template.HTML(s) },
	"last": func(i int, cards []types.Card) bool { return i == len(cards)-1 },
}).Parse(deckSource))

// BuildDeckHTML renders the card deck markup: escaped category banner
// and title per card, raw rich-text content, a rule between cards.
func BuildDeckHTML(name string, cards []types.Card) (string, error) {
	var b strings.Builder
	if err := deckTemplate.Execute(&b, struct {
		Name  string
		Cards []types.Card
	}{name, cards}); err != nil {
		return "", fmt.Errorf("rendering deck: %w", err)
	}
	return b.String(), nil
}

const deckSource = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>{{.Name}}</title></head>
<body style="padding:20px;font-family:Arial,sans-serif;">
{{- range $i, $c := .Cards}}
<div style="margin-bottom:30px;page-break-inside:avoid;">
<div style="background:#f0f0f0;padding:10px;margin-bottom:10px;border-radius:4px;"><strong>{{$c.Category}}</strong></div>
<h2 style="margin:10px 0;">{{$c.Title}}</h2>
<div style="line-height:1.6;color:#333;">{{raw $c.Content}}</div>
{{- if not (last $i $.Cards)}}
<hr style="margin:30px 0;border:none;border-top:1px solid #ddd;">
{{- end}}
</div>
{{- end}}
</body></html>
`

const defaultPDFBin = "weasyprint"

// ExecRenderer pipes HTML through an external renderer binary that
// reads from stdin and writes PDF to stdout.
type ExecRenderer struct {
	bin string
	run toolexec.Runner
}

// NewExecRenderer creates a renderer using the given binary name. An
// empty bin falls back to "weasyprint".
func NewExecRenderer(bin string, run toolexec.Runner) *ExecRenderer {
	if bin == "" {
		bin = defaultPDFBin
	}
	return &ExecRenderer{bin: bin, run: run}
}

// RenderPDF converts the HTML document to PDF bytes.
func (r *ExecRenderer) RenderPDF(html string) ([]byte, error) {
	out, err := toolexec.Pipe(r.run, r.bin, []string{"-", "-"}, []byte(html))
	if err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return out, nil
}
