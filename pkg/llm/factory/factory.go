package factory

import (
	"fmt"

	"helpdesk-rag-be/pkg/llm"
	"helpdesk-rag-be/pkg/llm/deepseek"
	"helpdesk-rag-be/pkg/llm/ollama"
	"helpdesk-rag-be/pkg/llm/qwen"
)

// NewLLMProvider builds a provider from configuration. Provider type
// selects the backend, the rest parameterizes it.
func NewLLMProvider(providerType, apiKey, baseURL, modelName string) (llm.LLMProvider, error) {
	switch providerType {
	case "qwen":
		return qwen.NewQwenProvider(apiKey, baseURL, modelName), nil
	case "deepseek":
		return deepseek.NewDeepseekProvider(apiKey, baseURL, modelName), nil
	case "ollama":
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
