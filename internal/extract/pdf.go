// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PDFTextExtractor reads page text with the ledongthuc/pdf reader. Each
// page yields a single text item; malformed pages contribute nothing
// rather than failing the document.
type PDFTextExtractor struct{}

// Pages returns every page's extracted text, in page order.
func (PDFTextExtractor) Pages(doc []byte) ([][]string, error) {
	r, err := pdf.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}

	pages := make([][]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, nil)
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, nil)
			continue
		}
		pages = append(pages, []string{text})
	}
	return pages, nil
}
