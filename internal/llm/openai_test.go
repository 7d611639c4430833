package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) (*OpenAIProvider, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	provider, err := NewOpenAIProvider(Config{
		Provider:  "openai",
		Model:     "test-model",
		APIKey:    "test-key",
		BaseURL:   server.URL + "/v1",
		Timeout:   5,
		MaxTokens: 100,
	})
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}
	return provider, server
}

func TestOpenAICompleteSendsDeterministicRequest(t *testing.T) {
	var captured map[string]any
	provider, _ := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model": "test-model",
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "No Violations. Wohoo!"}},
			},
			"usage": map[string]any{"total_tokens": 42},
		})
	})

	resp, err := provider.Complete(context.Background(), CompletionRequest{
		SystemPrompt: "sys",
		UserPrompt:   "user",
		Model:        "test-model",
		MaxTokens:    100,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Text != "No Violations. Wohoo!" {
		t.Errorf("Text = %q", resp.Text)
	}
	if resp.TokensUsed != 42 {
		t.Errorf("TokensUsed = %d, want 42", resp.TokensUsed)
	}

	temp, ok := captured["temperature"].(float64)
	if !ok {
		t.Fatal("request omitted temperature")
	}
	if temp > 0.001 {
		t.Errorf("temperature = %v, want effectively zero", temp)
	}
	msgs, _ := captured["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want 2", len(msgs))
	}
	first, _ := msgs[0].(map[string]any)
	if first["role"] != "system" || first["content"] != "sys" {
		t.Errorf("first message = %v", first)
	}
}

func TestOpenAICompleteBadStatus(t *testing.T) {
	provider, _ := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "boom", "type": "server_error"}}`))
	})

	_, err := provider.Complete(context.Background(), CompletionRequest{Model: "test-model"})
	if err == nil {
		t.Fatal("expected error")
	}
	if kind, ok := KindOf(err); !ok || kind != KindBadStatus {
		t.Errorf("kind = %v, want %v", kind, KindBadStatus)
	}
}

func TestOpenAICompleteEmptyChoices(t *testing.T) {
	provider, _ := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"model": "test-model", "choices": []}`))
	})

	_, err := provider.Complete(context.Background(), CompletionRequest{Model: "test-model"})
	if err == nil {
		t.Fatal("expected error")
	}
	if kind, ok := KindOf(err); !ok || kind != KindMalformedBody {
		t.Errorf("kind = %v, want %v", kind, KindMalformedBody)
	}
}

func TestOpenAIRequiresAPIKey(t *testing.T) {
	if _, err := NewOpenAIProvider(Config{Provider: "openai"}); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestOpenRouterDefaultsBaseURL(t *testing.T) {
	provider, err := NewOpenRouterProvider(Config{Provider: "openrouter", APIKey: "k"})
	if err != nil {
		t.Fatalf("NewOpenRouterProvider: %v", err)
	}
	if provider.Name() != "openrouter" {
		t.Errorf("Name() = %q", provider.Name())
	}
	if provider.config.BaseURL != openRouterBaseURL {
		t.Errorf("BaseURL = %q, want %q", provider.config.BaseURL, openRouterBaseURL)
	}
}
