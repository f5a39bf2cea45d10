package pdfgen

import (
	"regexp"
	"strings"
	"time"
)

// Request is a PDF generation request embedded in a model response via
// [PDF_START]/[PDF_END] markers.
type Request struct {
	Content  string
	Filename string
	Title    string
}

var (
	startMarkerRe = regexp.MustCompile(`(?i)\[PDF_START(?::([^\]]+))?\]`)
	endMarkerRe   = regexp.MustCompile(`(?i)\[PDF_END\]`)
)

// ParseResponse recognizes a single marker-delimited PDF body inside a
// model response. It returns the request (nil when no matching pair
// exists) and the chat-visible text with the whole marked block
// removed. Without a matching pair the text is returned with any stray
// markers stripped and no PDF action is taken.
func ParseResponse(response string) (*Request, string) {
	start := startMarkerRe.FindStringSubmatchIndex(response)
	end := endMarkerRe.FindStringIndex(response)
	if start == nil || end == nil || end[0] < start[1] {
		return nil, strings.TrimSpace(stripMarkers(response))
	}

	body := strings.TrimSpace(response[start[1]:end[0]])

	filename := ""
	if start[2] >= 0 {
		filename = strings.TrimSpace(response[start[2]:start[3]])
	}
	if filename != "" {
		filename += ".pdf"
	} else {
		filename = "document_" + time.Now().Format("2006-01-02") + ".pdf"
	}

	title := truncate(firstLine(body), 50)
	if title == "" {
		title = "Document"
	}

	visible := strings.TrimSpace(response[:start[0]] + response[end[1]:])
	return &Request{Content: body, Filename: filename, Title: title}, visible
}

func stripMarkers(s string) string {
	s = startMarkerRe.ReplaceAllString(s, "")
	return endMarkerRe.ReplaceAllString(s, "")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}
