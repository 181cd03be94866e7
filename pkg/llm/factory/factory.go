package factory

import (
	"fmt"

	"reflecta-be/pkg/llm"
	"reflecta-be/pkg/llm/ollama"
	"reflecta-be/pkg/llm/openai"
)

func NewCompletionProvider(providerType, modelName, baseURL, apiKey string) (llm.CompletionProvider, error) {
	switch providerType {
	case "openai":
		return openai.NewOpenAIProvider(baseURL, apiKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
