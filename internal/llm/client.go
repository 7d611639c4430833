package llm

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/time/rate"
)

// Client is the reasoning client used by the pipeline. It performs
// exactly one outbound call per Evaluate and applies a request-rate
// limit across all callers sharing the client.
type Client struct {
	provider Provider
	limiter  *rate.Limiter
	config   Config
}

// NewClient builds a rate-limited client over the configured provider.
func NewClient(config Config) (*Client, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Client{
		provider: provider,
		limiter:  newLimiter(config.RequestsPerMinute),
		config:   config,
	}, nil
}

func newLimiter(rpm float64) *rate.Limiter {
	if rpm <= 0 {
		rpm = DefaultConfig().RequestsPerMinute
	}
	return rate.NewLimiter(rate.Limit(rpm/60.0), 1)
}

// NewClientWithProvider wraps an existing provider. Used by tests and
// callers that construct providers themselves.
func NewClientWithProvider(provider Provider, config Config) *Client {
	return &Client{
		provider: provider,
		limiter:  newLimiter(config.RequestsPerMinute),
		config:   config,
	}
}

// Evaluate sends one prompt pair to the provider and returns the
// trimmed reply text. No retries: a failed call surfaces to the caller.
func (c *Client) Evaluate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", serviceErr(c.provider.Name(), KindTimeout, err)
	}
	resp, err := c.provider.Complete(ctx, CompletionRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Model:        c.config.Model,
		MaxTokens:    c.config.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", serviceErr(c.provider.Name(), KindMalformedBody, errors.New("empty reply"))
	}
	return text, nil
}

// ProviderName reports the backing provider for logs.
func (c *Client) ProviderName() string { return c.provider.Name() }
