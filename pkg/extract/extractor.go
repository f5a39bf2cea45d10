package extract

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// FileDescriptor is the normalized result of extracting one uploaded
// file. Extraction is attempted exactly once, at attach time; a failed
// extraction is recorded on the descriptor instead of propagating.
type FileDescriptor struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Size    int64  `json:"size"`
	Content string `json:"content"`
	IsText  bool   `json:"isText"`
	IsImage bool   `json:"isImage"`
	IsPDF   bool   `json:"isPDF"`
	IsDOCX  bool   `json:"isDOCX"`
	Error   bool   `json:"error,omitempty"`
}

// Input is one raw uploaded file.
type Input struct {
	Name string
	Type string // declared MIME type, may be empty
	Data []byte
}

const docxMimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// textExtensions is the fixed allow-list of text-like file extensions
// accepted for plain-text reading, matching the upload accept filter.
var textExtensions = regexp.MustCompile(`(?i)\.(txt|js|jsx|ts|tsx|css|html|md|csv|json|xml|yaml|yml)$`)

func isImageType(in Input) bool {
	return strings.HasPrefix(in.Type, "image/")
}

func isPDFType(in Input) bool {
	return in.Type == "application/pdf" || strings.HasSuffix(strings.ToLower(in.Name), ".pdf")
}

func isDOCXType(in Input) bool {
	return in.Type == docxMimeType || strings.HasSuffix(strings.ToLower(in.Name), ".docx")
}

func isTextType(in Input) bool {
	return strings.HasPrefix(in.Type, "text/") ||
		in.Type == "application/json" ||
		textExtensions.MatchString(in.Name)
}

// Process extracts content from a single file. It never returns an
// error: failures are recorded on the descriptor with Error=true and a
// human-readable message in Content.
func Process(ctx context.Context, in Input) FileDescriptor {
	d := FileDescriptor{
		Name:    in.Name,
		Type:    in.Type,
		Size:    int64(len(in.Data)),
		IsImage: isImageType(in),
		IsPDF:   isPDFType(in),
		IsDOCX:  isDOCXType(in),
	}
	d.IsText = isTextType(in) || d.IsPDF || d.IsDOCX

	content, err := readContent(ctx, in)
	if err != nil {
		return FileDescriptor{
			Name:    in.Name,
			Type:    in.Type,
			Size:    int64(len(in.Data)),
			Content: fmt.Sprintf("Error reading file: %v", err),
			Error:   true,
		}
	}
	d.Content = content
	return d
}

// readContent dispatches on MIME type and extension, in priority
// order: image, PDF, DOCX, text-like, opaque binary.
func readContent(ctx context.Context, in Input) (string, error) {
	switch {
	case isImageType(in):
		return dataURL(in), nil
	case isPDFType(in):
		return extractPDFText(in.Data)
	case isDOCXType(in):
		return extractDOCXText(in.Data)
	case isTextType(in):
		return string(in.Data), nil
	default:
		return dataURL(in), nil
	}
}

func dataURL(in Input) string {
	mime := in.Type
	if mime == "" {
		mime = "application/octet-stream"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(in.Data)
}

// ProcessAll extracts every file independently and concurrently. One
// slow or failing file does not delay or drop its siblings; the result
// has exactly one descriptor per input, in input order.
func ProcessAll(ctx context.Context, ins []Input) []FileDescriptor {
	out := make([]FileDescriptor, len(ins))
	var wg sync.WaitGroup
	for i, in := range ins {
		wg.Add(1)
		go func(i int, in Input) {
			defer wg.Done()
			out[i] = Process(ctx, in)
		}(i, in)
	}
	wg.Wait()
	return out
}
