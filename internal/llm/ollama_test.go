package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestOllama(t *testing.T, handler http.HandlerFunc) *OllamaProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	provider, err := NewOllamaProvider(Config{
		Provider: "ollama",
		Model:    "llama3",
		BaseURL:  server.URL,
		Timeout:  5,
	})
	if err != nil {
		t.Fatalf("NewOllamaProvider: %v", err)
	}
	return provider
}

func TestOllamaComplete(t *testing.T) {
	var captured ollamaChatRequest
	provider := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:   "llama3",
			Message: ollamaMessage{Role: "assistant", Content: "reply text"},
			EvalCnt: 7,
		})
	})

	resp, err := provider.Complete(context.Background(), CompletionRequest{
		SystemPrompt: "sys",
		UserPrompt:   "user",
		Model:        "llama3",
		MaxTokens:    64,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Text != "reply text" {
		t.Errorf("Text = %q", resp.Text)
	}
	if captured.Stream {
		t.Error("request must not stream")
	}
	if captured.Options.Temperature != 0 {
		t.Errorf("temperature = %v, want 0", captured.Options.Temperature)
	}
	if captured.Options.NumPredict != 64 {
		t.Errorf("num_predict = %d, want 64", captured.Options.NumPredict)
	}
}

func TestOllamaBadStatus(t *testing.T) {
	provider := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	})

	_, err := provider.Complete(context.Background(), CompletionRequest{Model: "llama3"})
	if kind, ok := KindOf(err); !ok || kind != KindBadStatus {
		t.Errorf("kind = %v, want %v", kind, KindBadStatus)
	}
}

func TestOllamaMalformedBody(t *testing.T) {
	provider := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := provider.Complete(context.Background(), CompletionRequest{Model: "llama3"})
	if kind, ok := KindOf(err); !ok || kind != KindMalformedBody {
		t.Errorf("kind = %v, want %v", kind, KindMalformedBody)
	}
}

func TestOllamaEmptyMessage(t *testing.T) {
	provider := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaChatResponse{Model: "llama3"})
	})

	_, err := provider.Complete(context.Background(), CompletionRequest{Model: "llama3"})
	if kind, ok := KindOf(err); !ok || kind != KindMalformedBody {
		t.Errorf("kind = %v, want %v", kind, KindMalformedBody)
	}
}
