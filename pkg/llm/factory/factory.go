package factory

import (
	"fmt"

	"persona-chat-be/pkg/llm"
	"persona-chat-be/pkg/llm/openai"
)

func NewLLMProvider(providerType, apiKey, modelName string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai", "":
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		if modelName == "" {
			modelName = "gpt-4o" // Default
		}
		return openai.NewOpenAIProvider(apiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
