package llm

import "fmt"

// NewProvider creates a provider from configuration.
func NewProvider(config Config) (Provider, error) {
	switch config.Provider {
	case "openai":
		return NewOpenAIProvider(config)
	case "openrouter":
		return NewOpenRouterProvider(config)
	case "ollama":
		return NewOllamaProvider(config)
	case "":
		return nil, ErrNotConfigured
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", config.Provider)
	}
}
