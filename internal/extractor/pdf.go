package extractor

import (
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/Gitanjali1909/pdf-chat/internal/domain"
)

// PDF extracts per-page plain text from a PDF file. Page numbers are
// 0-based and follow the physical page order; pages that yield no text
// (images, extraction failures) are kept as empty pages so numbering
// stays aligned with the source document.
type PDF struct{}

func (PDF) Extract(path string) ([]domain.Page, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([]domain.Page, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, domain.Page{Number: i - 1})
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, domain.Page{Number: i - 1})
			continue
		}
		pages = append(pages, domain.Page{Number: i - 1, Text: text})
	}

	return pages, nil
}
