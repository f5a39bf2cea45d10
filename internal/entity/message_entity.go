package entity

import (
	"encoding/json"
	"fmt"
)

const (
	ContentPartTypeText     = "text"
	ContentPartTypeImageURL = "image_url"
)

// ContentPart is one typed segment of a multimodal message.
type ContentPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"-"`
}

type imageURLRef struct {
	URL string `json:"url"`
}

type contentPartJSON struct {
	Type     string       `json:"type"`
	Text     string       `json:"text,omitempty"`
	ImageURL *imageURLRef `json:"image_url,omitempty"`
}

func (p ContentPart) MarshalJSON() ([]byte, error) {
	out := contentPartJSON{Type: p.Type, Text: p.Text}
	if p.Type == ContentPartTypeImageURL {
		out.ImageURL = &imageURLRef{URL: p.ImageURL}
	}
	return json.Marshal(out)
}

func (p *ContentPart) UnmarshalJSON(data []byte) error {
	var in contentPartJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	p.Type = in.Type
	p.Text = in.Text
	if in.ImageURL != nil {
		p.ImageURL = in.ImageURL.URL
	}
	return nil
}

// MessageContent is a tagged variant: either plain text or an ordered
// part sequence. The wire shape is chosen by arity — a single text part
// collapses to a bare JSON string, anything else serializes as an
// array of typed parts.
type MessageContent struct {
	Text  string
	Parts []ContentPart
}

// NewTextContent wraps plain text.
func NewTextContent(text string) MessageContent {
	return MessageContent{Text: text}
}

// NewPartsContent normalizes a part list: a single text part collapses
// to the bare-string form.
func NewPartsContent(parts []ContentPart) MessageContent {
	if len(parts) == 1 && parts[0].Type == ContentPartTypeText {
		return MessageContent{Text: parts[0].Text}
	}
	return MessageContent{Parts: parts}
}

// IsPlain reports whether the content is the bare-string form.
func (c MessageContent) IsPlain() bool {
	return c.Parts == nil
}

// PlainText returns the textual portion of the content: the bare string
// itself, or the concatenated text parts of the array form.
func (c MessageContent) PlainText() string {
	if c.IsPlain() {
		return c.Text
	}
	out := ""
	for _, p := range c.Parts {
		if p.Type == ContentPartTypeText {
			if out != "" {
				out += "\n"
			}
			out += p.Text
		}
	}
	return out
}

func (c MessageContent) MarshalJSON() ([]byte, error) {
	if c.IsPlain() {
		return json.Marshal(c.Text)
	}
	return json.Marshal(c.Parts)
}

func (c *MessageContent) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		c.Text = text
		c.Parts = nil
		return nil
	}
	var parts []ContentPart
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("message content is neither string nor part list: %w", err)
	}
	*c = NewPartsContent(parts)
	return nil
}

// FileRef is the lightweight attachment record kept on a sent message:
// name and type only, content dropped after send.
type FileRef struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Message is one immutable turn in a conversation. Ids are derived from
// wall-clock milliseconds and strictly increase within a session.
type Message struct {
	Id      int64          `json:"id"`
	Role    string         `json:"role"`
	Content MessageContent `json:"content"`
	Persona string         `json:"tool"`
	Files   []FileRef      `json:"files,omitempty"`
}
