package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format.
// Content carries plain text; when Parts is non-empty the message is
// multimodal and Content is ignored.
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
	Parts   []Part
}

// Part is one typed segment of a multimodal message.
type Part struct {
	Type     string // PartTypeText or PartTypeImageURL
	Text     string
	ImageURL string // data URL or remote URL
}

const (
	PartTypeText     = "text"
	PartTypeImageURL = "image_url"

	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
