package entity

import (
	"encoding/json"
	"testing"
)

func TestMessageContentMarshal(t *testing.T) {
	tests := []struct {
		name    string
		content MessageContent
		want    string
	}{
		{
			name:    "plain text marshals as bare string",
			content: NewTextContent("hello"),
			want:    `"hello"`,
		},
		{
			name: "multimodal parts marshal as typed array",
			content: NewPartsContent([]ContentPart{
				{Type: ContentPartTypeText, Text: "look at this"},
				{Type: ContentPartTypeImageURL, ImageURL: "data:image/png;base64,xyz"},
			}),
			want: `[{"type":"text","text":"look at this"},{"type":"image_url","image_url":{"url":"data:image/png;base64,xyz"}}]`,
		},
		{
			name:    "single text part collapses to bare string",
			content: NewPartsContent([]ContentPart{{Type: ContentPartTypeText, Text: "solo"}}),
			want:    `"solo"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.content)
			if err != nil {
				t.Fatalf("marshal error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("marshal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMessageContentUnmarshal(t *testing.T) {
	t.Run("bare string", func(t *testing.T) {
		var c MessageContent
		if err := json.Unmarshal([]byte(`"hello"`), &c); err != nil {
			t.Fatalf("unmarshal error: %v", err)
		}
		if !c.IsPlain() || c.Text != "hello" {
			t.Errorf("got %+v, want plain %q", c, "hello")
		}
	})

	t.Run("part array with nested image url", func(t *testing.T) {
		raw := `[{"type":"text","text":"a"},{"type":"image_url","image_url":{"url":"http://x/y.png"}}]`
		var c MessageContent
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			t.Fatalf("unmarshal error: %v", err)
		}
		if c.IsPlain() {
			t.Fatal("expected part form")
		}
		if len(c.Parts) != 2 {
			t.Fatalf("got %d parts, want 2", len(c.Parts))
		}
		if c.Parts[1].ImageURL != "http://x/y.png" {
			t.Errorf("image url = %q", c.Parts[1].ImageURL)
		}
	})

	t.Run("single text part array collapses", func(t *testing.T) {
		var c MessageContent
		if err := json.Unmarshal([]byte(`[{"type":"text","text":"solo"}]`), &c); err != nil {
			t.Fatalf("unmarshal error: %v", err)
		}
		if !c.IsPlain() || c.Text != "solo" {
			t.Errorf("got %+v, want collapsed plain %q", c, "solo")
		}
	})

	t.Run("rejects objects", func(t *testing.T) {
		var c MessageContent
		if err := json.Unmarshal([]byte(`{"bogus":1}`), &c); err == nil {
			t.Fatal("expected error for object content")
		}
	})
}

func TestMessageContentPlainText(t *testing.T) {
	c := NewPartsContent([]ContentPart{
		{Type: ContentPartTypeText, Text: "first"},
		{Type: ContentPartTypeImageURL, ImageURL: "data:x"},
		{Type: ContentPartTypeText, Text: "second"},
	})
	if got := c.PlainText(); got != "first\nsecond" {
		t.Errorf("PlainText() = %q, want %q", got, "first\nsecond")
	}
}

func TestMessageRoundTrip(t *testing.T) {
	msg := Message{
		Id:      1700000000000,
		Role:    "user",
		Content: NewTextContent("hi"),
		Persona: "Tool 1",
		Files:   []FileRef{{Name: "a.txt", Type: "text/plain"}},
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	var back Message
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if back.Id != msg.Id || back.Role != msg.Role || back.Persona != msg.Persona {
		t.Errorf("round trip mismatch: %+v", back)
	}
	if back.Content.PlainText() != "hi" {
		t.Errorf("content = %q", back.Content.PlainText())
	}
	if len(back.Files) != 1 || back.Files[0].Name != "a.txt" {
		t.Errorf("files = %+v", back.Files)
	}
}
