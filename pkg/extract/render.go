package extract

import (
	"fmt"
	"strings"
)

// RenderForPrompt serializes a descriptor into outbound prompt text.
// Text-extracted files (including PDF/DOCX) carry their content under
// a [File: name] header; opaque binaries are represented by a size
// placeholder instead of raw bytes. Errored descriptors render empty
// and are expected to be skipped by the caller.
func RenderForPrompt(d FileDescriptor) string {
	if d.Error {
		return ""
	}
	if d.IsText {
		return fmt.Sprintf("[File: %s]\n%s", d.Name, d.Content)
	}
	return fmt.Sprintf("[File: %s - Binary file, size: %.2f KB]", d.Name, float64(d.Size)/1024)
}

// RenderAllForPrompt renders every non-errored, non-image descriptor,
// joined by blank lines.
func RenderAllForPrompt(descriptors []FileDescriptor) string {
	blocks := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		if d.Error || d.IsImage {
			continue
		}
		blocks = append(blocks, RenderForPrompt(d))
	}
	return strings.Join(blocks, "\n\n")
}
