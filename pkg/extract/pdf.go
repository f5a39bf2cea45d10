package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDFText pulls text out of a PDF page by page. Text items on a
// page are joined with single spaces; pages are separated by a blank
// line; trailing whitespace is trimmed from the final result.
func extractPDFText(data []byte) (text string, err error) {
	// The pdf package panics on some malformed documents; convert
	// that into an ordinary extraction error.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("failed to extract text from PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to extract text from PDF: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		items := make([]string, 0, len(content.Text))
		for _, t := range content.Text {
			items = append(items, t.S)
		}
		pages = append(pages, strings.Join(items, " "))
	}

	return strings.TrimRight(strings.Join(pages, "\n\n"), " \t\n"), nil
}
