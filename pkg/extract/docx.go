package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// extractDOCXText reads the raw text of a DOCX document. A .docx file
// is a zip archive whose word/document.xml holds the text runs; we
// collect the character data of every <w:t> element and break lines on
// paragraph boundaries.
func extractDOCXText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to extract text from DOCX: %w", err)
	}

	var doc io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc, err = f.Open()
			if err != nil {
				return "", fmt.Errorf("failed to extract text from DOCX: %w", err)
			}
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("failed to extract text from DOCX: word/document.xml not found")
	}
	defer doc.Close()

	var sb strings.Builder
	decoder := xml.NewDecoder(doc)
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to extract text from DOCX: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(el)
			}
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
