package llm

import (
	"context"

	"github.com/memoweave/memoweave/internal/model"
)

// Provider abstracts a chat-completion backend. Implementations must be
// safe for concurrent use.
type Provider interface {
	// Name returns the provider identifier used in logs and errors.
	Name() string

	// Complete sends a single chat completion request and returns the
	// model's reply. Sampling is deterministic (temperature zero) so
	// identical requests produce stable output where the backend allows.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable reports whether the backend is reachable and configured.
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest is a provider-agnostic chat completion request.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Model        string
	MaxTokens    int
}

// CompletionResponse is a provider-agnostic chat completion reply.
type CompletionResponse struct {
	Text       string
	Model      string
	TokensUsed int
}

// Config holds provider settings.
type Config struct {
	Provider          string // "openai", "openrouter", or "ollama"
	Model             string
	APIKey            string
	BaseURL           string
	Timeout           int // seconds, per request
	MaxTokens         int
	RequestsPerMinute float64
}

// DefaultConfig returns sensible defaults for consistency checking.
func DefaultConfig() Config {
	return Config{
		Provider:          "openrouter",
		Model:             "gpt-oss-120b",
		Timeout:           60,
		MaxTokens:         1500,
		RequestsPerMinute: 30,
	}
}

// ConfigFromModel adapts the application configuration block.
func ConfigFromModel(mc model.LLMConfig) Config {
	cfg := DefaultConfig()
	if mc.Provider != "" {
		cfg.Provider = mc.Provider
	}
	if mc.Model != "" {
		cfg.Model = mc.Model
	}
	cfg.APIKey = mc.APIKey
	if mc.BaseURL != "" {
		cfg.BaseURL = mc.BaseURL
	}
	if mc.Timeout > 0 {
		cfg.Timeout = mc.Timeout
	}
	if mc.MaxTokens > 0 {
		cfg.MaxTokens = mc.MaxTokens
	}
	if mc.RequestsPerMinute > 0 {
		cfg.RequestsPerMinute = mc.RequestsPerMinute
	}
	return cfg
}
