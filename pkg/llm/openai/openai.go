package openai

import (
	"context"
	"fmt"

	"persona-chat-be/pkg/llm"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIProvider struct {
	client    *openai.Client
	modelName string
}

// Ensure OpenAIProvider implements LLMProvider
var _ llm.LLMProvider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, modelName string) *OpenAIProvider {
	return &OpenAIProvider{
		client:    openai.NewClient(apiKey),
		modelName: modelName,
	}
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.7, // Default
	}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]openai.ChatCompletionMessage, len(history))
	for i, msg := range history {
		messages[i] = toChatCompletionMessage(msg)
	}

	model := p.modelName
	if options.Model != "" {
		model = options.Model
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(options.Temperature),
	}
	if options.MaxTokens > 0 {
		req.MaxTokens = options.MaxTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

// toChatCompletionMessage maps the generic message to the OpenAI wire
// shape. Multimodal messages use MultiContent; plain ones use Content.
func toChatCompletionMessage(msg llm.Message) openai.ChatCompletionMessage {
	if len(msg.Parts) == 0 {
		return openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	parts := make([]openai.ChatMessagePart, 0, len(msg.Parts))
	for _, part := range msg.Parts {
		switch part.Type {
		case llm.PartTypeImageURL:
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: part.ImageURL,
				},
			})
		default:
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: part.Text,
			})
		}
	}

	return openai.ChatCompletionMessage{
		Role:         msg.Role,
		MultiContent: parts,
	}
}
