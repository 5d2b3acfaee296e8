package factory

import (
	"fmt"
	"time"

	"voicedraft-be/pkg/llm"
	"voicedraft-be/pkg/llm/gemini"
	"voicedraft-be/pkg/llm/ollama"
)

func NewProvider(providerType, modelName, baseURL, apiKey string, timeout time.Duration) (llm.Provider, error) {
	switch providerType {
	case "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return gemini.NewGeminiProvider(apiKey, modelName, timeout), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
