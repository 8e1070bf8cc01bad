// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"

	"github.com/pdiddy/kogniv/internal/toolexec"
)

const defaultPandocBin = "pandoc"

// PandocConverter converts word-processor documents to HTML by piping
// them through the pandoc binary.
type PandocConverter struct {
	bin string
	run toolexec.Runner
}

// NewPandocConverter creates a converter using the given binary name.
// An empty bin falls back to "pandoc".
func NewPandocConverter(bin string, run toolexec.Runner) *PandocConverter {
	if bin == "" {
		bin = defaultPandocBin
	}
	return &PandocConverter{bin: bin, run: run}
}

// ConvertToHTML pipes the document through pandoc.
func (c *PandocConverter) ConvertToHTML(doc []byte) (string, error) {
	out, err := toolexec.Pipe(c.run, c.bin, []string{"-f", "docx", "-t", "html"}, doc)
	if err != nil {
		return "", fmt.Errorf("converting docx: %w", err)
	}
	return string(out), nil
}
