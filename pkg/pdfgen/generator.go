package pdfgen

import (
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin = 14.0 // mm
	lineHeight = 7.0  // mm
)

// Generate renders text content into a paginated A4 document, wrapping
// long lines to the page width and breaking pages when the cursor
// passes the bottom margin. An optional title block is set in a larger
// face above the body.
func Generate(w io.Writer, content, title string) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, pageMargin)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)

	pageWidth, pageHeight := doc.GetPageSize()
	maxWidth := pageWidth - pageMargin*2

	y := 20.0
	if title != "" {
		doc.SetFontSize(18)
		doc.Text(pageMargin, y, title)
		doc.SetFontSize(12)
		y = 35.0
	}

	for _, paragraph := range strings.Split(content, "\n") {
		if strings.TrimSpace(paragraph) == "" {
			y += lineHeight
			continue
		}

		for _, line := range doc.SplitText(paragraph, maxWidth) {
			if y > pageHeight-pageMargin {
				doc.AddPage()
				y = pageMargin
			}
			doc.Text(pageMargin, y, line)
			y += lineHeight
		}

		// Small gap between paragraphs.
		y += 2
	}

	return doc.Output(w)
}
